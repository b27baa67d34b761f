package ecs

import (
	"context"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	ecslog "github.com/plus3/ecsreg/ecs/log"
)

// Executor is implemented by systems that run once per tick.
type Executor interface {
	Execute(frame *UpdateFrame)
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	UpdateDuration  time.Duration
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	EntityCount    int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type scheduledSystem struct {
	handle   SystemHandle
	executor Executor
	logger   *zerolog.Logger
	stats    *systemStatsInternal
}

// Scheduler drives a Registry: each tick it runs the sync point and then
// every registered system that implements Executor, in registration order.
type Scheduler struct {
	registry       *Registry
	systems        []scheduledSystem
	lastUpdateTime time.Duration
}

// NewScheduler creates a new scheduler for the given registry.
func NewScheduler(registry *Registry) *Scheduler {
	return &Scheduler{
		registry: registry,
		systems:  make([]scheduledSystem, 0),
	}
}

// Registry returns the registry the scheduler drives.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Register adds the system to the registry, initializes its View fields and,
// if it implements Executor, appends it to the execution order.
func (s *Scheduler) Register(system SystemHandle) error {
	if err := s.registry.AddSystem(system); err != nil {
		return err
	}
	s.pruneRemoved()
	s.initializeViews(system)

	executor, ok := system.(Executor)
	if !ok {
		return nil
	}

	name := system.base().Name()
	s.systems = append(s.systems, scheduledSystem{
		handle:   system,
		executor: executor,
		logger:   ecslog.CreateSystemLogger(s.registry.Logger(), name),
		stats: &systemStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		},
	})
	return nil
}

// pruneRemoved drops entries for systems that were removed from the registry
// since they were scheduled.
func (s *Scheduler) pruneRemoved() {
	s.systems = slices.DeleteFunc(s.systems, func(sys scheduledSystem) bool {
		return !s.registry.isRegistered(sys.handle)
	})
}

func (s *Scheduler) initializeViews(system SystemHandle) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		if strings.HasPrefix(field.Type().Name(), "View[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("Init method not found on View field: " + fieldType.Name)
			}

			initMethod.Call([]reflect.Value{
				reflect.ValueOf(s.registry),
			})
		}
	}
}

// Once reconciles the registry and then executes every system with the given
// delta time.
func (s *Scheduler) Once(dt float64) {
	start := time.Now()
	s.registry.Update()
	s.lastUpdateTime = time.Since(start)

	frame := newUpdateFrame(dt, s.registry)

	for _, sys := range s.systems {
		if !s.registry.isRegistered(sys.handle) {
			continue
		}
		frame.Logger = sys.logger

		start := time.Now()
		sys.executor.Execute(frame)
		duration := time.Since(start)

		stats := sys.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		UpdateDuration: s.lastUpdateTime,
		Systems:        make([]SystemStats, 0, len(s.systems)),
	}

	var totalExecs int64
	for _, sys := range s.systems {
		if !s.registry.isRegistered(sys.handle) {
			continue
		}
		internal := sys.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems = append(stats.Systems, SystemStats{
			Name:           internal.name,
			EntityCount:    sys.handle.base().Len(),
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})
		totalExecs += internal.executionCount
	}

	stats.SystemCount = len(stats.Systems)
	stats.TotalExecutions = totalExecs
	return stats
}
