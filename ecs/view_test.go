package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsreg/ecs"
)

// with attaches value to e and fails the test on error.
func with[T any](t *testing.T, registry *ecs.Registry, e ecs.Entity, value T) ecs.Entity {
	t.Helper()
	require.NoError(t, ecs.AddComponent(registry, e, value))
	return e
}

func TestView(t *testing.T) {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()
	with(t, registry, e, Position{X: 1, Y: 2})
	with(t, registry, e, Temperature(32))

	view := ecs.NewView[struct {
		*Position
		*Temperature
	}](registry)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, Temperature(32), *item.Temperature)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Position.Y)
}

func TestViewMultipleComponents(t *testing.T) {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()
	with(t, registry, e, Position{X: 10, Y: 20})
	with(t, registry, e, Velocity{DX: 1.5, DY: 2.5})
	with(t, registry, e, Name{Value: "Test Entity"})

	view := ecs.NewView[struct {
		*Position
		*Velocity
		*Name
	}](registry)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, float32(10), item.Position.X)
	assert.Equal(t, float32(2.5), item.Velocity.DY)
	assert.Equal(t, "Test Entity", item.Name.Value)
}

func TestViewMissingComponent(t *testing.T) {
	registry := ecs.NewRegistry()
	e := with(t, registry, registry.CreateEntity(), Position{X: 5, Y: 10})
	with(t, registry, registry.CreateEntity(), Velocity{})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](registry)

	assert.Nil(t, view.Get(e))
}

func TestViewComponentNeverRegistered(t *testing.T) {
	registry := ecs.NewRegistry()
	e := with(t, registry, registry.CreateEntity(), Position{})

	view := ecs.NewView[struct {
		*Position
		*Inventory
	}](registry)

	assert.Nil(t, view.Get(e))
}

func TestViewFill(t *testing.T) {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()
	with(t, registry, e, Position{X: 3, Y: 4})
	with(t, registry, e, Health{Current: 50, Max: 100})

	view := ecs.NewView[struct {
		*Position
		*Health
	}](registry)

	var item struct {
		*Position
		*Health
	}
	require.True(t, view.Fill(e, &item))
	assert.Equal(t, float32(3), item.Position.X)
	assert.Equal(t, 50, item.Health.Current)
}

func TestViewComponentMutation(t *testing.T) {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()
	with(t, registry, e, Position{X: 1, Y: 1})
	with(t, registry, e, Velocity{DX: 2, DY: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](registry)

	item := view.Get(e)
	require.NotNil(t, item)
	item.Position.X += item.Velocity.DX
	item.Position.Y += item.Velocity.DY

	pos := ecs.MustGetComponent[Position](registry, e)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)
}

func TestViewWithPrimitiveComponents(t *testing.T) {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()
	with(t, registry, e, Score(1500))
	with(t, registry, e, Tag("hero"))

	view := ecs.NewView[struct {
		*Score
		*Tag
	}](registry)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, Score(1500), *item.Score)
	assert.Equal(t, Tag("hero"), *item.Tag)
}

func TestViewInvalidEntity(t *testing.T) {
	registry := ecs.NewRegistry()
	view := ecs.NewView[struct{ *Position }](registry)
	assert.Nil(t, view.Get(ecs.NewEntity(99)))

	e := with(t, registry, registry.CreateEntity(), Position{})
	require.NoError(t, registry.KillEntity(e))

	// Still readable until the sync point removes it.
	assert.NotNil(t, view.Get(e))
	registry.Update()
	assert.Nil(t, view.Get(e))
}

func TestViewIterSystem(t *testing.T) {
	registry := ecs.NewRegistry()
	movement := NewMovementSystem()
	require.NoError(t, registry.AddSystem(movement))

	for i := 0; i < 4; i++ {
		e := with(t, registry, registry.CreateEntity(), Position{X: float32(i)})
		if i%2 == 0 {
			with(t, registry, e, Velocity{DX: 1})
		}
	}
	registry.Update()

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](registry)

	var seen []ecs.EntityId
	for e, item := range view.IterSystem(movement) {
		seen = append(seen, e.Id())
		item.Position.X += item.Velocity.DX
	}
	assert.Equal(t, []ecs.EntityId{0, 2}, seen)
	assert.Equal(t, float32(3), ecs.MustGetComponent[Position](registry, ecs.NewEntity(2)).X)
	assert.Equal(t, float32(1), ecs.MustGetComponent[Position](registry, ecs.NewEntity(1)).X)
}

func TestViewIterSystemSurvivesMembershipChanges(t *testing.T) {
	registry := ecs.NewRegistry()
	movement := NewMovementSystem()
	require.NoError(t, registry.AddSystem(movement))

	for i := 0; i < 5; i++ {
		e := with(t, registry, registry.CreateEntity(), Position{})
		with(t, registry, e, Velocity{})
	}
	registry.Update()

	view := ecs.NewView[struct{ *Position }](registry)

	count := 0
	for e := range view.IterSystem(movement) {
		count++
		require.NoError(t, ecs.RemoveComponent[Velocity](registry, e))
	}
	assert.Equal(t, 5, count)
	assert.Zero(t, movement.Len())
}

func TestViewIterEmpty(t *testing.T) {
	registry := ecs.NewRegistry()
	view := ecs.NewView[struct{ *Position }](registry)

	count := 0
	for range view.Iter(nil) {
		count++
	}
	assert.Zero(t, count)
}

func TestViewIterSkipsNonMatching(t *testing.T) {
	registry := ecs.NewRegistry()
	a := with(t, registry, registry.CreateEntity(), Position{X: 1})
	b := with(t, registry, registry.CreateEntity(), Velocity{})
	c := with(t, registry, registry.CreateEntity(), Position{X: 3})

	view := ecs.NewView[struct{ *Position }](registry)

	var xs []float32
	for item := range view.Values([]ecs.Entity{a, b, c}) {
		xs = append(xs, item.Position.X)
	}
	assert.Equal(t, []float32{1, 3}, xs)
}

func TestViewIterEarlyBreak(t *testing.T) {
	registry := ecs.NewRegistry()
	entities := make([]ecs.Entity, 10)
	for i := range entities {
		entities[i] = with(t, registry, registry.CreateEntity(), Position{X: float32(i)})
	}

	view := ecs.NewView[struct{ *Position }](registry)

	count := 0
	for range view.Iter(entities) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewOptionalComponent(t *testing.T) {
	registry := ecs.NewRegistry()
	withVel := registry.CreateEntity()
	with(t, registry, withVel, Position{X: 1})
	with(t, registry, withVel, Velocity{DX: 5})
	without := with(t, registry, registry.CreateEntity(), Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](registry)

	item := view.Get(withVel)
	require.NotNil(t, item)
	require.NotNil(t, item.Velocity)
	assert.Equal(t, float32(5), item.Velocity.DX)

	item = view.Get(without)
	require.NotNil(t, item)
	assert.Nil(t, item.Velocity)
	assert.Equal(t, float32(2), item.Position.X)
}

func TestViewOptionalDoesNotAffectRequiredMatching(t *testing.T) {
	registry := ecs.NewRegistry()
	e := with(t, registry, registry.CreateEntity(), Velocity{})

	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](registry)

	assert.Nil(t, view.Get(e))
}

func TestViewAllOptional(t *testing.T) {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()

	view := ecs.NewView[struct {
		Position *Position `ecs:"optional"`
		Health   *Health   `ecs:"optional"`
	}](registry)

	item := view.Get(e)
	require.NotNil(t, item)
	assert.Nil(t, item.Position)
	assert.Nil(t, item.Health)
}

func TestViewFillResetsOptional(t *testing.T) {
	registry := ecs.NewRegistry()
	a := registry.CreateEntity()
	with(t, registry, a, Position{})
	with(t, registry, a, Health{Current: 7})
	b := with(t, registry, registry.CreateEntity(), Position{})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](registry)

	var item struct {
		*Position
		Health *Health `ecs:"optional"`
	}
	require.True(t, view.Fill(a, &item))
	require.NotNil(t, item.Health)
	require.True(t, view.Fill(b, &item))
	assert.Nil(t, item.Health)
}

func TestViewResolvesLateRegistrations(t *testing.T) {
	registry := ecs.NewRegistry()
	view := ecs.NewView[struct{ *Health }](registry)

	e := with(t, registry, registry.CreateEntity(), Health{Current: 3})
	item := view.Get(e)
	require.NotNil(t, item)
	assert.Equal(t, 3, item.Health.Current)
}

func TestViewInvalidTag(t *testing.T) {
	registry := ecs.NewRegistry()
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](registry)
	})
}

func TestViewNonPointerFieldPanics(t *testing.T) {
	registry := ecs.NewRegistry()
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position Position
		}](registry)
	})
	assert.Panics(t, func() {
		ecs.NewView[Position](registry)
	})
}

func TestViewWithSliceComponent(t *testing.T) {
	registry := ecs.NewRegistry()
	e := with(t, registry, registry.CreateEntity(), Inventory{Items: []string{"sword"}})

	view := ecs.NewView[struct{ *Inventory }](registry)

	item := view.Get(e)
	require.NotNil(t, item)
	item.Inventory.Items = append(item.Inventory.Items, "shield")

	inv := ecs.MustGetComponent[Inventory](registry, e)
	assert.Equal(t, []string{"sword", "shield"}, inv.Items)
}
