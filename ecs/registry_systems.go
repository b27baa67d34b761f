package ecs

import (
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
)

// systemKey returns the type a system is registered under: the struct type
// behind the handle pointer.
func systemKey(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// AddSystem registers s under its concrete type. The required signature is
// resolved here, registering component types seen for the first time, and the
// system is filled with every live entity that already satisfies it.
func (r *Registry) AddSystem(s SystemHandle) error {
	key := systemKey(reflect.TypeOf(s))
	if _, ok := r.systems[key]; ok {
		return eris.Wrapf(ErrSystemAlreadyRegistered, "system %s", key)
	}

	b := s.base()
	if err := b.resolve(key.Name(), r.components); err != nil {
		return eris.Wrapf(err, "system %s", key)
	}
	b.clearEntities()

	r.systems[key] = s
	r.systemOrder = append(r.systemOrder, s)

	for id, state := range r.states {
		e := Entity{id: EntityId(id)}
		if state == EntityLive && b.matches(r.signatures[id]) {
			b.AddEntityToSystem(e)
		}
	}

	r.logger.Info().
		Str("system", b.name).
		Str("signature", b.signature.String()).
		Int("entities", b.Len()).
		Msg("system registered")
	return nil
}

// RemoveSystem unregisters the system of type S, reporting whether one was
// registered.
func RemoveSystem[S SystemHandle](r *Registry) bool {
	key := systemKey(reflect.TypeFor[S]())
	s, ok := r.systems[key]
	if !ok {
		return false
	}
	delete(r.systems, key)
	r.systemOrder = slices.DeleteFunc(r.systemOrder, func(other SystemHandle) bool {
		return other == s
	})
	s.base().clearEntities()

	r.logger.Info().Str("system", key.Name()).Msg("system removed")
	return true
}

// HasSystem reports whether a system of type S is registered.
func HasSystem[S SystemHandle](r *Registry) bool {
	_, ok := r.systems[systemKey(reflect.TypeFor[S]())]
	return ok
}

// GetSystem returns the registered system of type S.
func GetSystem[S SystemHandle](r *Registry) (S, bool) {
	s, ok := r.systems[systemKey(reflect.TypeFor[S]())]
	if !ok {
		var zero S
		return zero, false
	}
	typed, ok := s.(S)
	return typed, ok
}

func (r *Registry) isRegistered(s SystemHandle) bool {
	registered, ok := r.systems[systemKey(reflect.TypeOf(s))]
	return ok && registered == s
}

// Systems returns every registered system in registration order.
func (r *Registry) Systems() []SystemHandle {
	return slices.Clone(r.systemOrder)
}

// SystemOf returns the embedded System of a handle, giving callers outside the
// package access to membership and signature.
func SystemOf(s SystemHandle) *System {
	return s.base()
}
