package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultIsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Fatalf("Default().Validate() = %v", errs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"lock too high", func(c *Config) { c.Sim.Lock = 32 }, "sim.lock"},
		{"negative lock", func(c *Config) { c.Sim.Lock = -1 }, "sim.lock"},
		{"no cores", func(c *Config) { c.Sim.Cores = 0 }, "sim.cores"},
		{"negative iterations", func(c *Config) { c.Sim.Iterations = -1 }, "sim.iterations"},
		{"unknown mode", func(c *Config) { c.Sim.Mode = "spin" }, "sim.mode"},
		{"zero deadline", func(c *Config) { c.Sim.Deadline = 0 }, "sim.deadline"},
		{"negative hold", func(c *Config) { c.Sim.Hold = -time.Second }, "sim.hold"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("Validate() = %v, want exactly one error", errs)
			}
			if errs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.field)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	cfg := Default()
	cfg.Sim.Lock = 99
	cfg.Sim.Cores = 0
	err := ValidationErrors(cfg.Validate())
	msg := err.Error()
	if !strings.HasPrefix(msg, "2 validation errors:") {
		t.Errorf("Error() = %q", msg)
	}
	if !strings.Contains(msg, "sim.lock") || !strings.Contains(msg, "sim.cores") {
		t.Errorf("Error() = %q, want both fields", msg)
	}
}

func TestLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("sim.lock", 3)
	viper.Set("sim.deadline", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Lock != 3 {
		t.Errorf("Sim.Lock = %d, want 3", cfg.Sim.Lock)
	}
	if cfg.Sim.Deadline != 250*time.Millisecond {
		t.Errorf("Sim.Deadline = %v, want 250ms", cfg.Sim.Deadline)
	}
	if cfg.Sim.Cores != 2 || cfg.Sim.Iterations != 10 {
		t.Errorf("defaults not applied: %+v", cfg.Sim)
	}

	viper.Set("sim.mode", "bogus")
	_, err = Load()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Load() error = %v, want ValidationErrors", err)
	}
}
