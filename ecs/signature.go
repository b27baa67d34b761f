package ecs

import (
	"math/bits"
	"strings"
)

// MaxComponents is the number of distinct component types a Registry can
// hold. It fixes the width of Signature.
const MaxComponents = 32

// Signature is a fixed-width bitset over component ids. An entity signature
// records which components the entity has; a system signature records which
// components the system requires.
type Signature uint32

// Set enables the bit for the given component id.
func (s *Signature) Set(id ComponentId) {
	*s |= 1 << id
}

// Clear disables the bit for the given component id.
func (s *Signature) Clear(id ComponentId) {
	*s &^= 1 << id
}

// Test reports whether the bit for the given component id is set.
func (s Signature) Test(id ComponentId) bool {
	return s&(1<<id) != 0
}

// Contains reports whether every bit set in sub is also set in s. This is the
// system matching rule: extra components on an entity never disqualify it.
func (s Signature) Contains(sub Signature) bool {
	return s&sub == sub
}

// Count returns the number of set bits.
func (s Signature) Count() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether no bit is set.
func (s Signature) IsEmpty() bool {
	return s == 0
}

// Ids returns the set component ids in ascending order.
func (s Signature) Ids() []ComponentId {
	ids := make([]ComponentId, 0, s.Count())
	for v := uint32(s); v != 0; v &= v - 1 {
		ids = append(ids, ComponentId(bits.TrailingZeros32(v)))
	}
	return ids
}

// String renders the bitset with the highest component id first.
func (s Signature) String() string {
	var b strings.Builder
	b.Grow(MaxComponents)
	for i := MaxComponents - 1; i >= 0; i-- {
		if s.Test(ComponentId(i)) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
