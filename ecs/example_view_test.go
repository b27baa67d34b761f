package ecs_test

import (
	"fmt"

	"github.com/plus3/ecsreg/ecs"
)

// ExampleView demonstrates reading several components of one entity at once.
// Views do not need a Scheduler, which makes them handy for one-off lookups
// and tools that inspect entities outside of a system.
func ExampleView() {
	registry := ecs.NewRegistry()

	player := registry.CreateEntity()
	_ = ecs.AddComponent(registry, player, Position{X: 10, Y: 20})
	_ = ecs.AddComponent(registry, player, Velocity{DX: 1, DY: 0})
	_ = ecs.AddComponent(registry, player, Health{Current: 100, Max: 100})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](registry)

	if item := view.Get(player); item != nil {
		fmt.Printf("Player at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}

	// Output:
	// Player at (10, 20) moving (1, 0)
}

// ExampleView_IterSystem shows iterating the entities a system has matched.
// The system keeps its list in the order entities joined, and the view fills
// the component pointers for each one.
func ExampleView_IterSystem() {
	registry := ecs.NewRegistry()
	movement := NewMovementSystem()
	_ = registry.AddSystem(movement)

	spawn := func(pos Position, vel *Velocity) {
		e := registry.CreateEntity()
		_ = ecs.AddComponent(registry, e, pos)
		if vel != nil {
			_ = ecs.AddComponent(registry, e, *vel)
		}
	}
	spawn(Position{X: 0, Y: 0}, &Velocity{DX: 1, DY: 0})
	spawn(Position{X: 10, Y: 10}, &Velocity{DX: 0, DY: 1})
	spawn(Position{X: 20, Y: 20}, &Velocity{DX: -1, DY: -1})
	spawn(Position{X: 100, Y: 100}, nil)
	registry.Update()

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](registry)

	fmt.Println("Entities with position and velocity:")
	for e, item := range view.IterSystem(movement) {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
		fmt.Printf("%s: (%.0f, %.0f)\n", e, item.Position.X, item.Position.Y)
	}

	// Output:
	// Entities with position and velocity:
	// entity(0): (1, 0)
	// entity(1): (10, 11)
	// entity(2): (19, 19)
}

// ExampleView_optional demonstrates optional components. A field tagged
// `ecs:"optional"` is nil when the entity lacks that component instead of
// excluding the entity.
func ExampleView_optional() {
	registry := ecs.NewRegistry()
	positions := NewPositionSystem()
	_ = registry.AddSystem(positions)

	for i, hp := range []int{50, 75, 0} {
		e := registry.CreateEntity()
		_ = ecs.AddComponent(registry, e, Position{X: float32(10 * (i + 1)), Y: float32(10 * (i + 1))})
		if hp > 0 {
			_ = ecs.AddComponent(registry, e, Health{Current: hp, Max: 100})
		}
	}
	registry.Update()

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](registry)

	fmt.Println("All positioned entities:")
	for _, item := range view.IterSystem(positions) {
		if item.Health != nil {
			fmt.Printf("Entity at (%.0f, %.0f) with health %d/%d\n",
				item.Position.X, item.Position.Y, item.Health.Current, item.Health.Max)
		} else {
			fmt.Printf("Invulnerable entity at (%.0f, %.0f)\n", item.Position.X, item.Position.Y)
		}
	}

	// Output:
	// All positioned entities:
	// Entity at (10, 10) with health 50/100
	// Entity at (20, 20) with health 75/100
	// Invulnerable entity at (30, 30)
}
