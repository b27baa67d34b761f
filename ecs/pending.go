package ecs

import (
	"cmp"
	"slices"

	"github.com/kamstrup/intmap"
)

// entitySet buffers entities awaiting the next Update. Inserting an entity
// twice has no effect, and drain hands entities back in ascending id order so
// reconciliation is reproducible from run to run.
type entitySet struct {
	index    *intmap.Map[EntityId, struct{}]
	entities []Entity
}

func newEntitySet() *entitySet {
	return &entitySet{
		index: intmap.New[EntityId, struct{}](64),
	}
}

// insert queues e, reporting whether it was not already queued.
func (s *entitySet) insert(e Entity) bool {
	if _, ok := s.index.Get(e.id); ok {
		return false
	}
	s.index.Put(e.id, struct{}{})
	s.entities = append(s.entities, e)
	return true
}

func (s *entitySet) contains(e Entity) bool {
	_, ok := s.index.Get(e.id)
	return ok
}

func (s *entitySet) len() int {
	return len(s.entities)
}

// sorted returns a copy of the queued entities in ascending id order.
func (s *entitySet) sorted() []Entity {
	out := slices.Clone(s.entities)
	slices.SortFunc(out, func(a, b Entity) int {
		return cmp.Compare(a.id, b.id)
	})
	return out
}

// drain empties the set and returns its former contents in ascending id
// order.
func (s *entitySet) drain() []Entity {
	out := s.sorted()
	s.reset()
	return out
}

func (s *entitySet) reset() {
	s.index.Clear()
	clear(s.entities)
	s.entities = s.entities[:0]
}
