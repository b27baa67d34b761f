package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Registry owns every component pool, entity signature and system. Structural
// changes are deferred: created entities join systems and killed entities
// leave them only when Update runs. Component changes on live entities are the
// exception and apply at once.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	logger   zerolog.Logger
	poolSize int

	components *ComponentRegistry
	// Pool index is the component id; slot index inside a pool is the entity id.
	pools []iComponentPool

	// Indexed by entity id. Pending kills are tracked by toKill, not here.
	signatures []Signature
	states     []EntityState
	numLive    int

	systems     map[reflect.Type]SystemHandle
	systemOrder []SystemHandle

	toAdd  *entitySet
	toKill *entitySet
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger:     zerolog.Nop(),
		poolSize:   DefaultPoolSize,
		components: NewComponentRegistry(),
		systems:    make(map[reflect.Type]SystemHandle),
		toAdd:      newEntitySet(),
		toKill:     newEntitySet(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Components returns the registry's component type table.
func (r *Registry) Components() *ComponentRegistry {
	return r.components
}

// Logger returns the registry logger.
func (r *Registry) Logger() *zerolog.Logger {
	return &r.logger
}

// CreateEntity allocates the next id and queues the entity for promotion at
// the next Update. Components can be attached right away.
func (r *Registry) CreateEntity() Entity {
	e := Entity{id: EntityId(len(r.states))}
	r.states = append(r.states, EntityPendingAdd)
	r.signatures = append(r.signatures, 0)
	r.toAdd.insert(e)

	r.logger.Debug().Uint32("entity_id", uint32(e.id)).Msg("entity created")
	return e
}

// KillEntity queues e for removal at the next Update. Killing an entity that
// is already queued has no further effect.
func (r *Registry) KillEntity(e Entity) error {
	state := r.EntityState(e)
	if !state.exists() {
		return eris.Wrapf(ErrInvalidEntity, "cannot kill %s in state %s", e, state)
	}
	if r.toKill.insert(e) {
		r.logger.Debug().Uint32("entity_id", uint32(e.id)).Msg("entity killed")
	}
	return nil
}

// Update is the sync point. It promotes every pending entity, matching it
// against all systems, then removes every killed entity from all systems and
// discards its components. Both passes complete before Update returns.
func (r *Registry) Update() {
	added := r.toAdd.drain()
	promoted := 0
	for _, e := range added {
		// Entities killed before their first Update never join a system.
		if r.states[e.id] != EntityPendingAdd || r.toKill.contains(e) {
			continue
		}
		r.states[e.id] = EntityLive
		r.numLive++
		promoted++
		r.matchEntity(e)
	}

	killed := r.toKill.drain()
	for _, e := range killed {
		r.removeEntity(e)
	}

	if len(added) > 0 || len(killed) > 0 {
		r.logger.Trace().
			Int("promoted", promoted).
			Int("removed", len(killed)).
			Int("live", r.numLive).
			Msg("registry updated")
	}
}

func (r *Registry) removeEntity(e Entity) {
	if r.states[e.id] == EntityLive {
		for _, sys := range r.systemOrder {
			sys.base().RemoveEntityFromSystem(e)
		}
		r.numLive--
	}

	sig := r.signatures[e.id]
	for _, id := range sig.Ids() {
		r.pools[id].Zero(int(e.id))
	}
	r.signatures[e.id] = 0
	r.states[e.id] = EntityRemoved

	r.logger.Debug().Uint32("entity_id", uint32(e.id)).Msg("entity removed")
}

// matchEntity re-evaluates e against every system, adding it where its
// signature now satisfies the requirement and removing it where it no longer
// does.
func (r *Registry) matchEntity(e Entity) {
	sig := r.signatures[e.id]
	for _, sys := range r.systemOrder {
		b := sys.base()
		if b.matches(sig) {
			if !b.HasEntity(e) {
				b.AddEntityToSystem(e)
				r.logger.Trace().Uint32("entity_id", uint32(e.id)).Str("system", b.name).Msg("entity joined system")
			}
		} else if b.HasEntity(e) {
			b.RemoveEntityFromSystem(e)
			r.logger.Trace().Uint32("entity_id", uint32(e.id)).Str("system", b.name).Msg("entity left system")
		}
	}
}

// EntityState returns where e is in its lifecycle.
func (r *Registry) EntityState(e Entity) EntityState {
	if int(e.id) >= len(r.states) {
		return EntityUnborn
	}
	state := r.states[e.id]
	if state.exists() && r.toKill.contains(e) {
		return EntityPendingKill
	}
	return state
}

// IsAlive reports whether e is live and not queued for removal.
func (r *Registry) IsAlive(e Entity) bool {
	return r.EntityState(e) == EntityLive
}

// Signature returns the component signature of e. It is empty for entities
// that do not exist.
func (r *Registry) Signature(e Entity) Signature {
	if !r.EntityState(e).exists() {
		return 0
	}
	return r.signatures[e.id]
}

// NumEntities returns how many ids have been assigned.
func (r *Registry) NumEntities() int {
	return len(r.states)
}

// NumLiveEntities returns the number of entities that have been promoted and
// not yet removed, including live entities queued for removal.
func (r *Registry) NumLiveEntities() int {
	return r.numLive
}

// LiveEntities returns the entities counted by NumLiveEntities in ascending
// id order.
func (r *Registry) LiveEntities() []Entity {
	out := make([]Entity, 0, r.numLive)
	for id, state := range r.states {
		if state == EntityLive {
			out = append(out, Entity{id: EntityId(id)})
		}
	}
	return out
}

// PendingAdd returns the entities awaiting promotion in ascending id order.
func (r *Registry) PendingAdd() []Entity {
	return r.toAdd.sorted()
}

// PendingKill returns the entities awaiting removal in ascending id order.
func (r *Registry) PendingKill() []Entity {
	return r.toKill.sorted()
}

// NumPendingAdd returns how many entities await promotion.
func (r *Registry) NumPendingAdd() int {
	return r.toAdd.len()
}

// NumPendingKill returns how many entities await removal.
func (r *Registry) NumPendingKill() int {
	return r.toKill.len()
}

// Clear resets the registry: pools are emptied, every entity is removed and
// systems lose their members. Registered component types and systems are kept,
// and ids are not handed out again.
func (r *Registry) Clear() {
	for _, pool := range r.pools {
		if pool != nil {
			pool.Clear()
		}
	}
	for id := range r.states {
		r.states[id] = EntityRemoved
		r.signatures[id] = 0
	}
	for _, sys := range r.systemOrder {
		sys.base().clearEntities()
	}
	r.toAdd.reset()
	r.toKill.reset()
	r.numLive = 0

	r.logger.Debug().Int("entities", len(r.states)).Msg("registry cleared")
}

// AddComponent stores value as e's component of type T and sets the matching
// signature bit. The pool for T is created on first use and grown to fit e.
// If e is live its system membership is re-evaluated immediately, so systems
// running later in the same tick already see the change. Adding a component e
// already has overwrites the stored value.
func AddComponent[T any](r *Registry, e Entity, value T) error {
	state := r.EntityState(e)
	if !state.exists() {
		return eris.Wrapf(ErrInvalidEntity, "cannot add %s to %s in state %s", reflect.TypeFor[T](), e, state)
	}

	id, err := r.components.registerType(reflect.TypeFor[T]())
	if err != nil {
		return err
	}

	pool := ensurePool[T](r, id)
	if int(e.id) >= pool.Len() {
		size := max(len(r.states), int(e.id)+1)
		pool.Resize(size)
		r.logger.Debug().Int("component_id", int(id)).Int("size", size).Msg("component pool resized")
	}
	pool.Set(int(e.id), value)

	had := r.signatures[e.id].Test(id)
	r.signatures[e.id].Set(id)
	if !had && r.states[e.id] == EntityLive {
		r.matchEntity(e)
	}
	return nil
}

// RemoveComponent discards e's component of type T and clears the signature
// bit. Live entities are re-evaluated immediately. Removing a component the
// entity does not have is a no-op.
func RemoveComponent[T any](r *Registry, e Entity) error {
	state := r.EntityState(e)
	if !state.exists() {
		return eris.Wrapf(ErrInvalidEntity, "cannot remove %s from %s in state %s", reflect.TypeFor[T](), e, state)
	}

	id, ok := ComponentIdOf[T](r.components)
	if !ok || !r.signatures[e.id].Test(id) {
		return nil
	}

	r.signatures[e.id].Clear(id)
	r.pools[id].Zero(int(e.id))
	if r.states[e.id] == EntityLive {
		r.matchEntity(e)
	}
	return nil
}

// HasComponent reports whether e currently has a component of type T.
func HasComponent[T any](r *Registry, e Entity) bool {
	if !r.EntityState(e).exists() {
		return false
	}
	id, ok := ComponentIdOf[T](r.components)
	return ok && r.signatures[e.id].Test(id)
}

// GetComponent returns a pointer to e's component of type T. The pointer is
// invalidated when the pool grows, so do not hold it across AddComponent
// calls.
func GetComponent[T any](r *Registry, e Entity) (*T, error) {
	state := r.EntityState(e)
	if !state.exists() {
		return nil, eris.Wrapf(ErrInvalidEntity, "cannot read %s from %s in state %s", reflect.TypeFor[T](), e, state)
	}
	id, ok := ComponentIdOf[T](r.components)
	if !ok || !r.signatures[e.id].Test(id) {
		return nil, eris.Wrapf(ErrComponentNotOnEntity, "%s has no %s", e, reflect.TypeFor[T]())
	}
	return r.pools[id].(*ComponentPool[T]).Get(int(e.id)), nil
}

// MustGetComponent is GetComponent for callers that already checked the
// signature, such as systems iterating their own entities. It panics on error.
func MustGetComponent[T any](r *Registry, e Entity) *T {
	c, err := GetComponent[T](r, e)
	if err != nil {
		panic(eris.ToString(err, true))
	}
	return c
}

// PoolFor returns the typed pool for T.
func PoolFor[T any](r *Registry) (*ComponentPool[T], error) {
	id, ok := ComponentIdOf[T](r.components)
	if !ok || int(id) >= len(r.pools) || r.pools[id] == nil {
		return nil, eris.Wrapf(ErrComponentNotRegistered, "no pool for %s", reflect.TypeFor[T]())
	}
	pool, ok := r.pools[id].(*ComponentPool[T])
	if !ok {
		return nil, eris.Errorf("pool %d holds %s, not %s", id, r.pools[id].Type(), reflect.TypeFor[T]())
	}
	return pool, nil
}

// ensurePool returns the pool for component id, creating it on first use.
func ensurePool[T any](r *Registry, id ComponentId) *ComponentPool[T] {
	if int(id) >= len(r.pools) {
		r.pools = append(r.pools, make([]iComponentPool, int(id)+1-len(r.pools))...)
	}
	if r.pools[id] == nil {
		size := max(r.poolSize, len(r.states))
		r.pools[id] = NewComponentPool[T](size)
		r.logger.Debug().
			Int("component_id", int(id)).
			Str("component_name", reflect.TypeFor[T]().String()).
			Int("size", size).
			Msg("component pool created")
	}
	return r.pools[id].(*ComponentPool[T])
}

// pool returns the type-erased pool for id, or nil.
func (r *Registry) pool(id ComponentId) iComponentPool {
	if int(id) >= len(r.pools) {
		return nil
	}
	return r.pools[id]
}

// GetComponentAny returns e's component with the given type as a pointer
// wrapped in an interface, or nil. Inspectors use it where the type is only
// known at runtime.
func (r *Registry) GetComponentAny(e Entity, t reflect.Type) any {
	if !r.EntityState(e).exists() {
		return nil
	}
	id, ok := r.components.Id(t)
	if !ok || !r.signatures[e.id].Test(id) {
		return nil
	}
	return r.pool(id).GetAny(int(e.id))
}
