package ecs

import "strconv"

// EntityId is the numeric identity the Registry assigns to an entity.
// Ids are handed out sequentially starting at 0 and are never reused.
type EntityId uint32

// Entity is a handle naming a row across the registry's component pools.
// Handles with the same id denote the same logical entity, so Entity values
// can be copied, compared with == and used as map keys.
type Entity struct {
	id EntityId
}

// NewEntity returns the handle for the given id.
func NewEntity(id EntityId) Entity {
	return Entity{id: id}
}

// Id returns the entity's numeric identity.
func (e Entity) Id() EntityId {
	return e.id
}

// Less orders entities by id.
func (e Entity) Less(other Entity) bool {
	return e.id < other.id
}

func (e Entity) String() string {
	return "entity(" + strconv.FormatUint(uint64(e.id), 10) + ")"
}

// EntityState is the position of an entity in its lifecycle.
type EntityState uint8

const (
	// EntityUnborn is reported for ids the registry has not assigned yet.
	EntityUnborn EntityState = iota
	// EntityPendingAdd entities exist and accept components but are not
	// matched against systems until the next Update.
	EntityPendingAdd
	// EntityLive entities take part in system matching.
	EntityLive
	// EntityPendingKill entities are removed at the next Update.
	EntityPendingKill
	// EntityRemoved is terminal.
	EntityRemoved
)

func (s EntityState) String() string {
	switch s {
	case EntityUnborn:
		return "unborn"
	case EntityPendingAdd:
		return "pending-add"
	case EntityLive:
		return "live"
	case EntityPendingKill:
		return "pending-kill"
	case EntityRemoved:
		return "removed"
	default:
		return "unknown(" + strconv.Itoa(int(s)) + ")"
	}
}

// exists reports whether components may still be attached in this state.
func (s EntityState) exists() bool {
	return s == EntityPendingAdd || s == EntityLive || s == EntityPendingKill
}
