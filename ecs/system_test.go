package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsreg/ecs"
)

func TestSystemMembership(t *testing.T) {
	var s ecs.System
	a, b, c := ecs.NewEntity(1), ecs.NewEntity(2), ecs.NewEntity(3)

	assert.False(t, s.HasEntity(a))

	s.AddEntityToSystem(a)
	s.AddEntityToSystem(b)
	s.AddEntityToSystem(c)
	s.AddEntityToSystem(a)
	assert.Equal(t, []ecs.Entity{a, b, c}, s.GetSystemEntities())
	assert.Equal(t, 3, s.Len())

	s.RemoveEntityFromSystem(b)
	assert.Equal(t, []ecs.Entity{a, c}, s.GetSystemEntities())
	assert.False(t, s.HasEntity(b))

	s.RemoveEntityFromSystem(b)
	assert.Equal(t, 2, s.Len())
}

func TestRequireComponent(t *testing.T) {
	s := NewMovementSystem()
	ecs.RequireComponent[Position](&s.System)

	assert.Equal(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, s.RequiredTypes())
	assert.True(t, s.GetComponentSignature().IsEmpty(), "unresolved until registered")

	registry := ecs.NewRegistry()
	require.NoError(t, registry.AddSystem(s))
	assert.Equal(t, "MovementSystem", s.Name())
	assert.Equal(t, 2, s.GetComponentSignature().Count())

	assert.Panics(t, func() {
		ecs.RequireComponent[Health](&s.System)
	})
}

func TestSystemSignatureUsesRegistryIds(t *testing.T) {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()
	require.NoError(t, ecs.AddComponent(registry, e, Health{}))
	require.NoError(t, ecs.AddComponent(registry, e, Velocity{}))

	s := NewMovementSystem()
	require.NoError(t, registry.AddSystem(s))

	velId, _ := ecs.ComponentIdOf[Velocity](registry.Components())
	posId, _ := ecs.ComponentIdOf[Position](registry.Components())
	assert.Equal(t, ecs.ComponentId(1), velId)
	assert.Equal(t, ecs.ComponentId(2), posId)
	assert.True(t, s.GetComponentSignature().Test(velId))
	assert.True(t, s.GetComponentSignature().Test(posId))
}

func TestSystemRegistry(t *testing.T) {
	registry := ecs.NewRegistry()

	movement := NewMovementSystem()
	health := NewHealthSystem()
	require.NoError(t, registry.AddSystem(movement))
	require.NoError(t, registry.AddSystem(health))

	assert.True(t, ecs.HasSystem[*MovementSystem](registry))
	assert.False(t, ecs.HasSystem[*PositionSystem](registry))

	got, ok := ecs.GetSystem[*MovementSystem](registry)
	require.True(t, ok)
	assert.Same(t, movement, got)

	_, ok = ecs.GetSystem[*PositionSystem](registry)
	assert.False(t, ok)

	systems := registry.Systems()
	require.Len(t, systems, 2)
	assert.Equal(t, "MovementSystem", ecs.SystemOf(systems[0]).Name())
	assert.Equal(t, "HealthSystem", ecs.SystemOf(systems[1]).Name())
	assert.Equal(t, []string{"MovementSystem", "HealthSystem"}, registry.GetRegisteredSystems())

	e := registry.CreateEntity()
	require.NoError(t, ecs.AddComponent(registry, e, Health{}))
	registry.Update()
	require.True(t, health.HasEntity(e))

	assert.True(t, ecs.RemoveSystem[*HealthSystem](registry))
	assert.False(t, ecs.RemoveSystem[*HealthSystem](registry))
	assert.False(t, ecs.HasSystem[*HealthSystem](registry))
	assert.Zero(t, health.Len())

	// Removed systems are no longer maintained.
	other := registry.CreateEntity()
	require.NoError(t, ecs.AddComponent(registry, other, Health{}))
	registry.Update()
	assert.Zero(t, health.Len())
}
