package ecs

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	ecslog "github.com/plus3/ecsreg/ecs/log"
)

// GetRegisteredComponents implements ecslog.Loggable.
func (r *Registry) GetRegisteredComponents() []ecslog.Component {
	infos := r.components.Components()
	out := make([]ecslog.Component, len(infos))
	for i, info := range infos {
		out[i] = ecslog.Component{ID: int(info.Id), Name: info.Name()}
	}
	return out
}

// GetRegisteredSystems implements ecslog.Loggable.
func (r *Registry) GetRegisteredSystems() []string {
	names := make([]string, len(r.systemOrder))
	for i, sys := range r.systemOrder {
		names[i] = sys.base().name
	}
	return names
}

// LogRegistry logs every registered component and system.
func (r *Registry) LogRegistry(level zerolog.Level) {
	ecslog.Registry(&r.logger, r, level)
}

// LogEntity logs e's state, signature and components.
func (r *Registry) LogEntity(level zerolog.Level, e Entity) error {
	state := r.EntityState(e)
	if !state.exists() {
		return eris.Wrapf(ErrInvalidEntity, "cannot log %s in state %s", e, state)
	}
	sig := r.signatures[e.id]
	components := make([]ecslog.Component, 0, sig.Count())
	for _, id := range sig.Ids() {
		components = append(components, ecslog.Component{ID: int(id), Name: r.components.Type(id).String()})
	}
	ecslog.Entity(&r.logger, level, uint32(e.id), state.String(), sig.String(), components)
	return nil
}
