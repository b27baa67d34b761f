package ecs

import "reflect"

// iComponentPool is the type-erased handle the Registry keeps for each
// component pool. Typed access goes through a checked downcast to
// *ComponentPool[T].
type iComponentPool interface {
	Resize(n int)
	Clear()
	Len() int
	Type() reflect.Type
	GetAny(index int) any
	Zero(index int)
}
