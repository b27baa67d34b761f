package main

import (
	"math/rand"
	"slices"

	"github.com/plus3/ecsreg/ecs"
)

type Position struct{ X, Y float64 }
type Velocity struct{ DX, DY float64 }
type Health struct{ Current, Max int }
type Armor struct{ Rating int }
type Heat struct{ Value float64 }
type Fuel struct{ Liters float64 }
type Ammo struct{ Rounds int }
type Team struct{ Id uint8 }

// componentAdders attaches one of each stress component with random values.
var componentAdders = []func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error{
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Position{X: rng.Float64() * 100, Y: rng.Float64() * 100})
	},
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Velocity{DX: rng.Float64() - 0.5, DY: rng.Float64() - 0.5})
	},
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Health{Current: rng.Intn(100) + 1, Max: 100})
	},
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Armor{Rating: rng.Intn(10)})
	},
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Heat{Value: rng.Float64()})
	},
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Fuel{Liters: rng.Float64() * 50})
	},
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Ammo{Rounds: rng.Intn(30)})
	},
	func(r *ecs.Registry, e ecs.Entity, rng *rand.Rand) error {
		return ecs.AddComponent(r, e, Team{Id: uint8(rng.Intn(4))})
	},
}

// SpawnRandomEntity creates an entity with numComponents distinct components
// picked at random.
func SpawnRandomEntity(r *ecs.Registry, rng *rand.Rand, numComponents int) (ecs.Entity, error) {
	e := r.CreateEntity()
	for _, idx := range rng.Perm(len(componentAdders))[:min(numComponents, len(componentAdders))] {
		if err := componentAdders[idx](r, e, rng); err != nil {
			return e, err
		}
	}
	return e, nil
}

// pairSystem requires A and B. Each instantiation is a distinct system type.
// Type parameters cannot be embedded, so the view fields are named.
type pairSystem[A, B any] struct {
	ecs.System
	Pairs ecs.View[struct {
		First  *A
		Second *B
	}]
	visited int
}

func newPairSystem[A, B any]() ecs.SystemHandle {
	s := &pairSystem[A, B]{}
	ecs.RequireComponent[A](&s.System)
	ecs.RequireComponent[B](&s.System)
	return s
}

func (s *pairSystem[A, B]) Execute(frame *ecs.UpdateFrame) {
	for range s.Pairs.IterSystem(s) {
		s.visited++
	}
}

// movementSystem integrates Position by Velocity.
type movementSystem struct {
	ecs.System
	Bodies ecs.View[struct {
		*Position
		*Velocity
	}]
}

func newMovementSystem() ecs.SystemHandle {
	s := &movementSystem{}
	ecs.RequireComponent[Position](&s.System)
	ecs.RequireComponent[Velocity](&s.System)
	return s
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	for _, body := range s.Bodies.IterSystem(s) {
		body.Position.X += body.Velocity.DX * frame.DeltaTime
		body.Position.Y += body.Velocity.DY * frame.DeltaTime
	}
}

// decaySystem wears Health down and kills entities that reach zero. Kills
// take effect at the next tick.
type decaySystem struct {
	ecs.System
	Killed int
}

func newDecaySystem() ecs.SystemHandle {
	s := &decaySystem{}
	ecs.RequireComponent[Health](&s.System)
	ecs.RequireComponent[Heat](&s.System)
	return s
}

func (s *decaySystem) Execute(frame *ecs.UpdateFrame) {
	for _, e := range s.GetSystemEntities() {
		health := ecs.MustGetComponent[Health](frame.Registry, e)
		health.Current--
		if health.Current == 0 {
			if err := frame.Registry.KillEntity(e); err != nil {
				frame.Logger.Warn().Err(err).Msg("decay kill")
				continue
			}
			s.Killed++
		}
	}
}

// systemFactories lists every system the stress run can register. Runs pick
// a random subset.
var systemFactories = []func() ecs.SystemHandle{
	newMovementSystem,
	newDecaySystem,
	newPairSystem[Position, Team],
	newPairSystem[Health, Armor],
	newPairSystem[Fuel, Velocity],
	newPairSystem[Ammo, Team],
	newPairSystem[Heat, Fuel],
	newPairSystem[Armor, Ammo],
	newPairSystem[Position, Health],
	newPairSystem[Velocity, Team],
	newPairSystem[Heat, Armor],
	newPairSystem[Fuel, Ammo],
}

// RegisterRandomSystems registers count systems chosen at random.
func RegisterRandomSystems(scheduler *ecs.Scheduler, rng *rand.Rand, count int) error {
	for _, idx := range rng.Perm(len(systemFactories))[:min(count, len(systemFactories))] {
		if err := scheduler.Register(systemFactories[idx]()); err != nil {
			return err
		}
	}
	return nil
}

// Churn kills up to n random live entities and creates n new ones. Entities
// already queued for removal are not picked.
func Churn(r *ecs.Registry, rng *rand.Rand, n int) error {
	live := slices.DeleteFunc(r.LiveEntities(), func(e ecs.Entity) bool {
		return !r.IsAlive(e)
	})
	for i := 0; i < n && len(live) > 0; i++ {
		idx := rng.Intn(len(live))
		if err := r.KillEntity(live[idx]); err != nil {
			return err
		}
		live[idx] = live[len(live)-1]
		live = live[:len(live)-1]
	}
	for i := 0; i < n; i++ {
		if _, err := SpawnRandomEntity(r, rng, rng.Intn(5)+1); err != nil {
			return err
		}
	}
	return nil
}
