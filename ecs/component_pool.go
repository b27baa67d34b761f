package ecs

import "reflect"

// DefaultPoolSize is the number of slots a pool starts with.
const DefaultPoolSize = 100

// ComponentPool stores the values of one component type densely, indexed by
// entity id. The pool never grows on its own; the Registry resizes it before
// writing past the end.
type ComponentPool[T any] struct {
	data []T
}

// NewComponentPool creates a pool with size zero-valued slots.
func NewComponentPool[T any](size int) *ComponentPool[T] {
	if size < 0 {
		size = 0
	}
	return &ComponentPool[T]{data: make([]T, size)}
}

// IsEmpty reports whether the pool has no slots.
func (p *ComponentPool[T]) IsEmpty() bool {
	return len(p.data) == 0
}

// Len returns the number of slots.
func (p *ComponentPool[T]) Len() int {
	return len(p.data)
}

// Resize grows or shrinks the pool to n slots. Values at indices below both
// the old and the new length are preserved.
func (p *ComponentPool[T]) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(p.data) {
		old := len(p.data)
		p.data = p.data[:n]
		// Slots re-exposed after a shrink must not leak stale values.
		if n > old {
			clear(p.data[old:n])
		}
		return
	}
	grown := make([]T, n, max(n, 2*cap(p.data)))
	copy(grown, p.data)
	p.data = grown
}

// Clear logically empties the pool.
func (p *ComponentPool[T]) Clear() {
	clear(p.data)
	p.data = p.data[:0]
}

// Set writes value at index. It panics if index is out of range.
func (p *ComponentPool[T]) Set(index int, value T) {
	p.data[index] = value
}

// Get returns a pointer to the slot at index. It panics if index is out of
// range. Writes through the pointer are lost once a Resize reallocates.
func (p *ComponentPool[T]) Get(index int) *T {
	return &p.data[index]
}

// GetAny returns the slot at index as a *T, or nil when out of range.
func (p *ComponentPool[T]) GetAny(index int) any {
	if index < 0 || index >= len(p.data) {
		return nil
	}
	return &p.data[index]
}

// Type returns the component type stored in the pool.
func (p *ComponentPool[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Zero resets the slot at index to the zero value so the pool stops holding
// references from a discarded component. Out of range indices are ignored.
func (p *ComponentPool[T]) Zero(index int) {
	if index < 0 || index >= len(p.data) {
		return
	}
	var zero T
	p.data[index] = zero
}
