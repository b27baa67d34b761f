package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plus3/ecsreg/ecs"
	ecslog "github.com/plus3/ecsreg/ecs/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, true))
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Msg(eris.ToString(err, true))
	}
}

func run(cfg Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	duration, err := cfg.RunDuration()
	if err != nil {
		return err
	}

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log.Info().Msg("starting ECS stress test")

	rng := rand.New(rand.NewSource(cfg.Seed))
	runLogger := ecslog.CreateTraceLogger(&log.Logger, fmt.Sprintf("stress-%d", cfg.Seed))
	registry := ecs.NewRegistry(ecs.WithLogger(*runLogger))
	scheduler := ecs.NewScheduler(registry)
	if err := RegisterRandomSystems(scheduler, rng, cfg.Systems); err != nil {
		return eris.Wrap(err, "registering systems")
	}

	log.Info().Int("entities", cfg.Entities).Msg("populating registry")
	for i := 0; i < cfg.Entities; i++ {
		if _, err := SpawnRandomEntity(registry, rng, rng.Intn(5)+1); err != nil {
			return eris.Wrap(err, "populating registry")
		}
	}
	log.Info().Msg("population complete")

	report := &Report{
		Duration:       duration,
		Entities:       cfg.Entities,
		Components:     len(componentAdders),
		Systems:        min(cfg.Systems, len(systemFactories)),
		ChurnPerTick:   cfg.ChurnPerTick,
		Seed:           cfg.Seed,
		GCPauseMetrics: cfg.GCPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
		SyncTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info().Stringer("duration", duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if err := Churn(registry, rng, cfg.ChurnPerTick); err != nil {
				return eris.Wrap(err, "churning entities")
			}

			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			report.SyncTime.Samples = append(report.SyncTime.Samples, scheduler.GetStats().UpdateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.SyncTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Registry = registry.CollectStats()
	report.Scheduler = scheduler.GetStats()

	log.Info().Int64("updates", totalUpdates).Msg("simulation finished")
	registry.LogRegistry(zerolog.DebugLevel)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return eris.Wrap(err, "generating report")
	}
	fmt.Println("--- End of Report ---")
	return nil
}
