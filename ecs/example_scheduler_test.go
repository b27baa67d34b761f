package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/ecsreg/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

type PhysicsSystem struct {
	ecs.System
	Bodies ecs.View[struct {
		*Transform
		*Speed
	}]
}

func NewPhysicsSystem() *PhysicsSystem {
	s := &PhysicsSystem{}
	ecs.RequireComponent[Transform](&s.System)
	ecs.RequireComponent[Speed](&s.System)
	return s
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for _, body := range s.Bodies.IterSystem(s) {
		body.Transform.X += body.Speed.DX * float32(frame.DeltaTime)
		body.Transform.Y += body.Speed.DY * float32(frame.DeltaTime)
	}
}

type HealingSystem struct {
	ecs.System
	RegenRate float32
}

func NewHealingSystem(rate float32) *HealingSystem {
	s := &HealingSystem{RegenRate: rate}
	ecs.RequireComponent[Hitpoints](&s.System)
	return s
}

func (s *HealingSystem) Execute(frame *ecs.UpdateFrame) {
	for _, e := range s.GetSystemEntities() {
		hp := ecs.MustGetComponent[Hitpoints](frame.Registry, e)
		if hp.Current < hp.Max {
			hp.Current = min(hp.Max, hp.Current+int(s.RegenRate*float32(frame.DeltaTime)))
		}
	}
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// Each tick the Scheduler runs the registry's sync point, so entities created
// since the last tick join their systems, and then executes systems in
// registration order.
func ExampleScheduler() {
	registry := ecs.NewRegistry()
	scheduler := ecs.NewScheduler(registry)
	_ = scheduler.Register(NewPhysicsSystem())
	_ = scheduler.Register(NewHealingSystem(10))

	a := registry.CreateEntity()
	_ = ecs.AddComponent(registry, a, Transform{X: 0, Y: 0})
	_ = ecs.AddComponent(registry, a, Speed{DX: 10, DY: 5})
	_ = ecs.AddComponent(registry, a, Hitpoints{Current: 80, Max: 100})

	b := registry.CreateEntity()
	_ = ecs.AddComponent(registry, b, Transform{X: 100, Y: 100})
	_ = ecs.AddComponent(registry, b, Speed{DX: -5, DY: -5})
	_ = ecs.AddComponent(registry, b, Hitpoints{Current: 95, Max: 100})

	scheduler.Once(1.0)

	view := ecs.NewView[struct {
		*Transform
		*Hitpoints
	}](registry)

	fmt.Println("After one frame:")
	for _, item := range view.Iter(registry.LiveEntities()) {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			item.Transform.X, item.Transform.Y,
			item.Hitpoints.Current, item.Hitpoints.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 100/100
}

// ExampleScheduler_Run demonstrates running a continuous game loop.
// Run blocks and ticks at a fixed interval until the context is cancelled.
func ExampleScheduler_Run() {
	registry := ecs.NewRegistry()
	e := registry.CreateEntity()
	_ = ecs.AddComponent(registry, e, Transform{X: 0, Y: 0})
	_ = ecs.AddComponent(registry, e, Speed{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(registry)
	_ = scheduler.Register(NewPhysicsSystem())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

type Lifetime struct {
	Remaining float64
}

// ExpirySystem kills entities whose lifetime has run out.
type ExpirySystem struct {
	ecs.System
}

func NewExpirySystem() *ExpirySystem {
	s := &ExpirySystem{}
	ecs.RequireComponent[Lifetime](&s.System)
	return s
}

func (s *ExpirySystem) Execute(frame *ecs.UpdateFrame) {
	for _, e := range s.GetSystemEntities() {
		life := ecs.MustGetComponent[Lifetime](frame.Registry, e)
		life.Remaining -= frame.DeltaTime
		if life.Remaining <= 0 {
			_ = frame.Registry.KillEntity(e)
		}
	}
}

// ExampleScheduler_deferredKill shows that killing an entity from inside a
// system is safe while iterating: the entity stays in every system until the
// next tick's sync point removes it.
func ExampleScheduler_deferredKill() {
	registry := ecs.NewRegistry()
	scheduler := ecs.NewScheduler(registry)
	expiry := NewExpirySystem()
	_ = scheduler.Register(expiry)

	for _, seconds := range []float64{1, 2, 3} {
		_ = ecs.AddComponent(registry, registry.CreateEntity(), Lifetime{Remaining: seconds})
	}

	for tick := 1; tick <= 3; tick++ {
		scheduler.Once(1.0)
		fmt.Printf("tick %d: %d tracked, %d pending kill\n",
			tick, expiry.Len(), len(registry.PendingKill()))
	}

	// Output:
	// tick 1: 3 tracked, 1 pending kill
	// tick 2: 2 tracked, 1 pending kill
	// tick 3: 1 tracked, 1 pending kill
}
