package ecs_test

import "github.com/plus3/ecsreg/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

// Test systems

type MovementSystem struct {
	ecs.System
}

func NewMovementSystem() *MovementSystem {
	s := &MovementSystem{}
	ecs.RequireComponent[Position](&s.System)
	ecs.RequireComponent[Velocity](&s.System)
	return s
}

type PositionSystem struct {
	ecs.System
}

func NewPositionSystem() *PositionSystem {
	s := &PositionSystem{}
	ecs.RequireComponent[Position](&s.System)
	return s
}

type HealthSystem struct {
	ecs.System
}

func NewHealthSystem() *HealthSystem {
	s := &HealthSystem{}
	ecs.RequireComponent[Health](&s.System)
	return s
}

func entityIds(entities []ecs.Entity) []ecs.EntityId {
	ids := make([]ecs.EntityId, len(entities))
	for i, e := range entities {
		ids[i] = e.Id()
	}
	return ids
}
