package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/llxisdsh/hwspin"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "sim.lock")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// ValidModes returns the list of valid acquisition modes
func ValidModes() []string {
	return []string{ModeLock, ModeTryLock}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.validateSim()...)
	errors = append(errors, c.validateLogging()...)
	return errors
}

func (c *Config) validateSim() []ValidationError {
	var errors []ValidationError
	s := c.Sim

	if s.Lock < 0 || s.Lock >= hwspin.NumSpinlocks {
		errors = append(errors, ValidationError{
			Field:   "sim.lock",
			Value:   s.Lock,
			Message: fmt.Sprintf("must be between 0 and %d", hwspin.NumSpinlocks-1),
		})
	}
	if s.Cores < 1 {
		errors = append(errors, ValidationError{
			Field:   "sim.cores",
			Value:   s.Cores,
			Message: "must be at least 1",
		})
	}
	if s.Iterations < 0 {
		errors = append(errors, ValidationError{
			Field:   "sim.iterations",
			Value:   s.Iterations,
			Message: "must not be negative",
		})
	}
	if !slices.Contains(ValidModes(), s.Mode) {
		errors = append(errors, ValidationError{
			Field:   "sim.mode",
			Value:   s.Mode,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidModes(), ", ")),
		})
	}
	if s.Deadline <= 0 {
		errors = append(errors, ValidationError{
			Field:   "sim.deadline",
			Value:   s.Deadline,
			Message: "must be positive",
		})
	}
	if s.Hold < 0 {
		errors = append(errors, ValidationError{
			Field:   "sim.hold",
			Value:   s.Hold,
			Message: "must not be negative",
		})
	}
	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError
	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}
	return errors
}
