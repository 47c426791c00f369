// Package config holds the hwspin-sim configuration, loaded through viper
// from defaults, an optional config file and HWSPIN_* environment variables.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete hwspin-sim configuration
type Config struct {
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SimConfig controls the emulated multicore scenario
type SimConfig struct {
	// Lock is the hardware spinlock number, 0-31
	Lock int `mapstructure:"lock"`
	// Cores is the number of concurrent execution contexts
	Cores int `mapstructure:"cores"`
	// Iterations is the number of lock/increment/unlock rounds per core
	Iterations int `mapstructure:"iterations"`
	// Mode selects how a core acquires the lock
	// Options: "lock" (spin until granted), "trylock" (retry TryLock until Deadline)
	Mode string `mapstructure:"mode"`
	// Deadline bounds each acquisition in trylock mode
	Deadline time.Duration `mapstructure:"deadline"`
	// Hold is how long the contending holder keeps the lock
	Hold time.Duration `mapstructure:"hold"`
}

// LoggingConfig controls the simulator's log output
type LoggingConfig struct {
	// Level is the minimum level logged: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
}

// Acquisition modes
const (
	ModeLock    = "lock"
	ModeTryLock = "trylock"
)

// Default returns the configuration used when nothing else is set: the
// two-core, ten-round counter scenario on spinlock 7.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			Lock:       7,
			Cores:      2,
			Iterations: 10,
			Mode:       ModeLock,
			Deadline:   time.Second,
			Hold:       20 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers the default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("sim.lock", defaults.Sim.Lock)
	viper.SetDefault("sim.cores", defaults.Sim.Cores)
	viper.SetDefault("sim.iterations", defaults.Sim.Iterations)
	viper.SetDefault("sim.mode", defaults.Sim.Mode)
	viper.SetDefault("sim.deadline", defaults.Sim.Deadline)
	viper.SetDefault("sim.hold", defaults.Sim.Hold)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}
