package main

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/tcc-lang/tcc/modules/physics"
)

// config holds engine settings. Precedence: defaults, then the config
// file, then command-line flags.
type config struct {
	Gravity   float64
	Timestep  float64
	MaxSteps  int
	MaxErrors int
	LogLevel  string
	NoColor   bool
}

func defaultConfig() config {
	return config{
		Gravity:   -9.81,
		Timestep:  0.01,
		MaxSteps:  100000,
		MaxErrors: 10,
		LogLevel:  "warn",
		NoColor:   false,
	}
}

// registerConfigFlags adds the engine settings as flags on a flag set.
func registerConfigFlags(flags *pflag.FlagSet) {
	defaults := defaultConfig()
	flags.Float64("physics.gravity", defaults.Gravity, "gravitational acceleration (m/s^2, negative is down)")
	flags.Float64("physics.timestep", defaults.Timestep, "simulation timestep in seconds")
	flags.Int("physics.max-steps", defaults.MaxSteps, "maximum simulation steps per trajectory")
	flags.Int("engine.max-errors", defaults.MaxErrors, "syntax errors reported before giving up")
	flags.String("log.level", defaults.LogLevel, "log level (trace, debug, info, warn, error)")
	flags.Bool("no-color", defaults.NoColor, "disable colored output")
}

// loadConfig merges the config file (if any) and flags over the defaults.
func loadConfig(configFile string, flags *pflag.FlagSet) (config, error) {
	k := koanf.New(".")
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return config{}, fmt.Errorf("loading config %s: %w", configFile, err)
		}
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return config{}, fmt.Errorf("loading flags: %w", err)
	}
	cfg := defaultConfig()
	if k.Exists("physics.gravity") {
		cfg.Gravity = k.Float64("physics.gravity")
	}
	if k.Exists("physics.timestep") {
		cfg.Timestep = k.Float64("physics.timestep")
	}
	if k.Exists("physics.max-steps") {
		cfg.MaxSteps = k.Int("physics.max-steps")
	}
	if k.Exists("engine.max-errors") {
		cfg.MaxErrors = k.Int("engine.max-errors")
	}
	if k.Exists("log.level") {
		cfg.LogLevel = k.String("log.level")
	}
	if k.Exists("no-color") {
		cfg.NoColor = k.Bool("no-color")
	}
	if cfg.Timestep <= 0 {
		return config{}, fmt.Errorf("physics.timestep must be positive, got %v", cfg.Timestep)
	}
	if cfg.MaxSteps <= 0 {
		return config{}, fmt.Errorf("physics.max-steps must be positive, got %d", cfg.MaxSteps)
	}
	return cfg, nil
}

// apply installs the settings into the engine and returns a logger at the
// configured level.
func (cfg config) apply() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	physics.Gravity = cfg.Gravity
	physics.Timestep = cfg.Timestep
	physics.MaxSimTime = float64(cfg.MaxSteps) * cfg.Timestep

	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: cfg.NoColor}
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	physics.SetLogger(logger)
	return logger, nil
}
