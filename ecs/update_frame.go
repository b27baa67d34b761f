package ecs

import "github.com/rs/zerolog"

// UpdateFrame is handed to every Executor once per tick, after the registry
// has been reconciled.
type UpdateFrame struct {
	DeltaTime float64
	Registry  *Registry
	// Logger is scoped to the executing system.
	Logger *zerolog.Logger
}

func newUpdateFrame(dt float64, registry *Registry) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Registry:  registry,
		Logger:    registry.Logger(),
	}
}
