package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// ComponentId is the small integer a component type is known by inside a
// Registry. It indexes both the pool table and Signature bits.
type ComponentId uint8

// ComponentInfo describes a registered component type.
type ComponentInfo struct {
	Id   ComponentId
	Type reflect.Type
}

// Name returns the Go name of the component type.
func (c ComponentInfo) Name() string {
	return c.Type.String()
}

// ComponentRegistry assigns each distinct component type a stable id on first
// registration, up to MaxComponents types. Each Registry owns its own
// ComponentRegistry, so independent registries never share ids.
type ComponentRegistry struct {
	ids   map[reflect.Type]ComponentId
	types []reflect.Type
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentId),
	}
}

// RegisterComponent returns the id for T, assigning the next free one if T
// has not been seen. It fails with ErrComponentLimitExceeded once
// MaxComponents types are registered.
func RegisterComponent[T any](r *ComponentRegistry) (ComponentId, error) {
	return r.registerType(reflect.TypeFor[T]())
}

// MustRegisterComponent is RegisterComponent for startup code: exceeding the
// component limit leaves the signature width inconsistent, so it panics.
func MustRegisterComponent[T any](r *ComponentRegistry) ComponentId {
	id, err := RegisterComponent[T](r)
	if err != nil {
		panic(eris.ToString(err, true))
	}
	return id
}

// ComponentIdOf returns the id of T if it has been registered.
func ComponentIdOf[T any](r *ComponentRegistry) (ComponentId, bool) {
	return r.Id(reflect.TypeFor[T]())
}

func (r *ComponentRegistry) registerType(t reflect.Type) (ComponentId, error) {
	if id, ok := r.ids[t]; ok {
		return id, nil
	}
	if err := checkComponentType(t); err != nil {
		return 0, err
	}
	if len(r.types) >= MaxComponents {
		return 0, eris.Wrapf(ErrComponentLimitExceeded, "cannot register %s: limit is %d", t, MaxComponents)
	}
	id := ComponentId(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id, nil
}

// Id returns the id registered for t.
func (r *ComponentRegistry) Id(t reflect.Type) (ComponentId, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// Type returns the type registered under id, or nil.
func (r *ComponentRegistry) Type(id ComponentId) reflect.Type {
	if int(id) >= len(r.types) {
		return nil
	}
	return r.types[id]
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Components returns every registered component ordered by id.
func (r *ComponentRegistry) Components() []ComponentInfo {
	infos := make([]ComponentInfo, len(r.types))
	for i, t := range r.types {
		infos[i] = ComponentInfo{Id: ComponentId(i), Type: t}
	}
	return infos
}

// Names returns the type names of the components set in sig.
func (r *ComponentRegistry) Names(sig Signature) []string {
	names := make([]string, 0, sig.Count())
	for _, id := range sig.Ids() {
		if t := r.Type(id); t != nil {
			names = append(names, t.String())
		}
	}
	return names
}

// checkComponentType rejects types that are not plain values. Structs and
// primitives are fine; pointers, maps, channels and functions are not.
func checkComponentType(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return eris.Wrapf(ErrInvalidComponentType, "type %s", t)
	}
	return nil
}
