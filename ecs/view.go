package ecs

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

// View fills a struct of component pointers for an entity. The type T must be
// a struct whose fields are pointers to component types:
//
//	type movable struct {
//		*Transform
//		Body *RigidBody `ecs:"optional"`
//	}
//
// Embedded fields are always required. Named fields can be marked optional
// with the `ecs:"optional"` tag and are left nil when the entity lacks them.
// Systems use views to run against their matched entity sets.
type View[T any] struct {
	registry    *Registry
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	ids         []int
}

// NewView creates a view over the registry for the struct type T.
func NewView[T any](registry *Registry) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	n := structType.NumField()
	v := &View[T]{
		registry:    registry,
		types:       make([]reflect.Type, 0, n),
		optional:    make([]bool, 0, n),
		fieldOffset: make([]uintptr, 0, n),
		ids:         make([]int, 0, n),
	}

	for i := 0; i < n; i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.ids = append(v.ids, -1)
	}
	return v
}

// Init initializes or re-initializes the view with a registry. The Scheduler
// calls it for View fields of registered systems.
func (v *View[T]) Init(registry *Registry) {
	*v = *NewView[T](registry)
}

// resolveIds looks up component ids that were not registered when the view
// was created.
func (v *View[T]) resolveIds() {
	for i, id := range v.ids {
		if id >= 0 {
			continue
		}
		if cid, ok := v.registry.components.Id(v.types[i]); ok {
			v.ids[i] = int(cid)
		}
	}
}

// Fill points the fields of *ptr at e's components. It returns false if e does
// not exist or lacks a required component.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	if !v.registry.EntityState(e).exists() {
		return false
	}
	v.resolveIds()

	sig := v.registry.signatures[e.id]
	structPtr := unsafe.Pointer(ptr)

	for i, id := range v.ids {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		if id < 0 || !sig.Test(ComponentId(id)) {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		component := v.registry.pools[id].GetAny(int(e.id))
		componentPtr := (*iface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}
	return true
}

// Get returns a populated view struct for e, or nil.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Iter yields a populated view struct for each of the given entities that
// has the required components, in the order given.
func (v *View[T]) Iter(entities []Entity) iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		var result T
		for _, e := range entities {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// IterSystem iterates the entities matched by s when the call is made.
// Component changes made while iterating do not disturb the iteration.
func (v *View[T]) IterSystem(s SystemHandle) iter.Seq2[Entity, T] {
	return v.Iter(slices.Clone(s.base().entities))
}

// Values yields only the view structs for the given entities.
func (v *View[T]) Values(entities []Entity) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter(entities) {
			if !yield(value) {
				return
			}
		}
	}
}
