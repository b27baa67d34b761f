package ecs

import (
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// SystemHandle is implemented by every type that embeds System. The Registry
// keys systems by the concrete Go type of the handle.
type SystemHandle interface {
	base() *System
}

// System holds a required-component signature and the entities currently
// known to satisfy it. Embed it in a struct to define a system and call
// RequireComponent while constructing that struct:
//
//	type MovementSystem struct{ ecs.System }
//
//	func NewMovementSystem() *MovementSystem {
//		s := &MovementSystem{}
//		ecs.RequireComponent[Transform](&s.System)
//		ecs.RequireComponent[RigidBody](&s.System)
//		return s
//	}
//
// Membership is maintained by the Registry; systems only read it.
type System struct {
	name      string
	required  []reflect.Type
	signature Signature
	resolved  bool
	entities  []Entity
	members   *intmap.Map[EntityId, struct{}]
}

func (s *System) base() *System {
	return s
}

// RequireComponent adds T to the components s requires. It must be called
// before the system is registered; the signature is resolved against the
// registry's component ids once, at registration.
func RequireComponent[T any](s *System) {
	if s.resolved {
		panic("RequireComponent called on a registered system")
	}
	t := reflect.TypeFor[T]()
	if slices.Contains(s.required, t) {
		return
	}
	s.required = append(s.required, t)
}

// Name returns the Go type name the system was registered under.
func (s *System) Name() string {
	return s.name
}

// RequiredTypes returns the component types declared with RequireComponent.
func (s *System) RequiredTypes() []reflect.Type {
	return s.required
}

// GetComponentSignature returns the required signature. It is empty until the
// system has been registered.
func (s *System) GetComponentSignature() Signature {
	return s.signature
}

// GetSystemEntities returns the matching entities in insertion order. The
// slice is owned by the system and must not be modified.
func (s *System) GetSystemEntities() []Entity {
	return s.entities
}

// Len returns the number of matching entities.
func (s *System) Len() int {
	return len(s.entities)
}

// HasEntity reports whether e is currently a member.
func (s *System) HasEntity(e Entity) bool {
	if s.members == nil {
		return false
	}
	_, ok := s.members.Get(e.id)
	return ok
}

// AddEntityToSystem appends e unless it is already a member.
func (s *System) AddEntityToSystem(e Entity) {
	if s.members == nil {
		s.members = intmap.New[EntityId, struct{}](64)
	}
	if _, ok := s.members.Get(e.id); ok {
		return
	}
	s.members.Put(e.id, struct{}{})
	s.entities = append(s.entities, e)
}

// RemoveEntityFromSystem removes e, keeping the order of the remaining
// entities.
func (s *System) RemoveEntityFromSystem(e Entity) {
	if !s.HasEntity(e) {
		return
	}
	s.members.Del(e.id)
	s.entities = slices.DeleteFunc(s.entities, func(other Entity) bool {
		return other == e
	})
}

// clearEntities drops every member.
func (s *System) clearEntities() {
	if s.members != nil {
		s.members.Clear()
	}
	clear(s.entities)
	s.entities = s.entities[:0]
}

// resolve computes the required signature against the registry's component
// ids, registering types seen for the first time. Nothing is registered
// unless every required type fits.
func (s *System) resolve(name string, components *ComponentRegistry) error {
	unseen := make(map[reflect.Type]struct{})
	for _, t := range s.required {
		if _, ok := components.Id(t); ok {
			continue
		}
		if err := checkComponentType(t); err != nil {
			return err
		}
		unseen[t] = struct{}{}
	}
	if components.Len()+len(unseen) > MaxComponents {
		return eris.Wrapf(ErrComponentLimitExceeded, "cannot register %d new component types: %d of %d in use",
			len(unseen), components.Len(), MaxComponents)
	}

	var sig Signature
	for _, t := range s.required {
		id, err := components.registerType(t)
		if err != nil {
			return err
		}
		sig.Set(id)
	}
	s.name = name
	s.signature = sig
	s.resolved = true
	return nil
}

// matches applies the membership rule to an entity signature.
func (s *System) matches(sig Signature) bool {
	return sig.Contains(s.signature)
}
