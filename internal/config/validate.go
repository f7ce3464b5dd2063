package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCharsPerToken indicates a non-positive chars-per-token ratio
	ErrInvalidCharsPerToken = errors.New("invalid chars per token")

	// ErrInvalidMaxFileBytes indicates a negative file size cap
	ErrInvalidMaxFileBytes = errors.New("invalid max file bytes")

	// ErrInvalidBudget indicates a non-positive default token budget
	ErrInvalidBudget = errors.New("invalid default budget")

	// ErrEmptyOutputDir indicates a missing output directory
	ErrEmptyOutputDir = errors.New("empty output dir")

	// ErrAbsoluteOutputDir indicates an output dir escaping the repo root
	ErrAbsoluteOutputDir = errors.New("output dir must be relative")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if err := validateEstimator(&cfg.Estimator); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	if strings.TrimSpace(cfg.Dir) == "" {
		return ErrEmptyOutputDir
	}
	if strings.HasPrefix(cfg.Dir, "/") || strings.HasPrefix(cfg.Dir, "..") {
		return fmt.Errorf("%w: got %q", ErrAbsoluteOutputDir, cfg.Dir)
	}
	return nil
}

func validateEstimator(cfg *EstimatorConfig) error {
	var errs []error

	if cfg.CharsPerToken <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidCharsPerToken, cfg.CharsPerToken))
	}
	if cfg.MaxFileBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: must be non-negative, got %d", ErrInvalidMaxFileBytes, cfg.MaxFileBytes))
	}
	if cfg.DefaultBudgetTokens <= 0 {
		errs = append(errs, fmt.Errorf("%w: must be positive, got %d", ErrInvalidBudget, cfg.DefaultBudgetTokens))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error message.
func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return errors.New(strings.Join(parts, "; "))
}
