package main

import (
	"flag"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// Config controls a stress run. Environment variables are read first and
// command line flags override them.
type Config struct {
	Duration       string `config:"ECS_STRESS_DURATION"`
	Entities       int    `config:"ECS_STRESS_ENTITIES"`
	Systems        int    `config:"ECS_STRESS_SYSTEMS"`
	ChurnPerTick   int    `config:"ECS_STRESS_CHURN"`
	Seed           int64  `config:"ECS_STRESS_SEED"`
	LogLevel       string `config:"ECS_STRESS_LOG_LEVEL"`
	Profile        string `config:"ECS_STRESS_PROFILE"`
	GCPauseMetrics bool   `config:"ECS_STRESS_GC_PAUSE_METRICS"`
}

func defaultConfig() Config {
	return Config{
		Duration:     "10s",
		Entities:     10000,
		Systems:      8,
		ChurnPerTick: 50,
		Seed:         1,
		LogLevel:     "info",
	}
}

// LoadConfig builds the run configuration from defaults, the environment and
// args, in that order of precedence.
func LoadConfig(args []string) (Config, error) {
	cfg := defaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "reading environment")
	}

	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	fs.StringVar(&cfg.Duration, "duration", cfg.Duration, "The total duration the test should run for.")
	fs.IntVar(&cfg.Entities, "entities", cfg.Entities, "The initial number of entities to create.")
	fs.IntVar(&cfg.Systems, "systems", cfg.Systems, "The number of systems to register.")
	fs.IntVar(&cfg.ChurnPerTick, "churn", cfg.ChurnPerTick, "Entities killed and created each tick.")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level: trace, debug, info, warn, error.")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Write a profile: cpu or mem.")
	fs.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", cfg.GCPauseMetrics, "Enable detailed GC pause metrics in the report.")
	if err := fs.Parse(args); err != nil {
		return cfg, eris.Wrap(err, "parsing flags")
	}

	return cfg, cfg.validate()
}

// RunDuration parses Duration.
func (c Config) RunDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Duration)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid duration %q", c.Duration)
	}
	return d, nil
}

func (c Config) validate() error {
	d, err := c.RunDuration()
	if err != nil {
		return err
	}
	switch {
	case d <= 0:
		return eris.Errorf("duration must be positive, got %s", d)
	case c.Entities < 0:
		return eris.Errorf("entities must not be negative, got %d", c.Entities)
	case c.Systems < 0 || c.Systems > len(systemFactories):
		return eris.Errorf("systems must be between 0 and %d, got %d", len(systemFactories), c.Systems)
	case c.ChurnPerTick < 0:
		return eris.Errorf("churn must not be negative, got %d", c.ChurnPerTick)
	case c.Profile != "" && c.Profile != "cpu" && c.Profile != "mem":
		return eris.Errorf("profile must be cpu or mem, got %q", c.Profile)
	}
	return nil
}
