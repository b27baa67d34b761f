package ecs

import "github.com/rs/zerolog"

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger registry events are written to. The default
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger.With().Str("component", "registry").Logger()
	}
}

// WithPoolSize sets the initial slot count of newly created component pools.
func WithPoolSize(size int) Option {
	return func(r *Registry) {
		if size > 0 {
			r.poolSize = size
		}
	}
}
