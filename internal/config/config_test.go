package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfigFromDir() uses defaults when no config file exists
// - LoadConfigFromDir() loads from .codescope/config.yml when present
// - Config file values merge with defaults
// - Environment variables override config file values
// - Comma-separated env values override the scan lists
// - LoadConfigFromDir() returns error for malformed YAML
// - LoadConfigFromDir() returns error for invalid values
// - Validate() rejects bad estimator and output settings
// - Validate() returns combined errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)

	assert.Equal(t, ".codescope", cfg.Output.Dir)

	assert.Equal(t, 4, cfg.Estimator.CharsPerToken)
	assert.Equal(t, int64(1_000_000), cfg.Estimator.MaxFileBytes)
	assert.Equal(t, 32000, cfg.Estimator.DefaultBudgetTokens)

	assert.Contains(t, cfg.Scan.ExcludeDirs, "node_modules")
	assert.Contains(t, cfg.Scan.ExcludeDirs, ".git")
	assert.Contains(t, cfg.Scan.ExcludeDirs, ".codescope")
	assert.NotEmpty(t, cfg.Scan.Ignore)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFileMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	yaml := `
estimator:
  default_budget_tokens: 8000
output:
  dir: out
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yaml), 0o644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Estimator.DefaultBudgetTokens)
	assert.Equal(t, "out", cfg.Output.Dir)
	// Untouched values keep their defaults.
	assert.Equal(t, 4, cfg.Estimator.CharsPerToken)
	assert.Contains(t, cfg.Scan.ExcludeDirs, "node_modules")
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("output:\n  dir: from-file\n"), 0o644))

	t.Setenv("CODESCOPE_OUTPUT_DIR", "from-env")

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Output.Dir)
}

func TestLoad_EnvOverridesScanLists(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("CODESCOPE_SCAN_EXCLUDE_DIRS", "vendor,tmp")
	t.Setenv("CODESCOPE_SCAN_IGNORE", "**/*.generated.ts")

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"vendor", "tmp"}, cfg.Scan.ExcludeDirs)
	assert.Equal(t, []string{"**/*.generated.ts"}, cfg.Scan.Ignore)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("output: [unbalanced"), 0o644))

	_, err := LoadConfigFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	configDir := filepath.Join(dir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"),
		[]byte("estimator:\n  chars_per_token: 0\n"), 0o644))

	_, err := LoadConfigFromDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCharsPerToken)
}

func TestValidate_RejectsBadSettings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero chars per token", func(c *Config) { c.Estimator.CharsPerToken = 0 }, ErrInvalidCharsPerToken},
		{"negative file cap", func(c *Config) { c.Estimator.MaxFileBytes = -1 }, ErrInvalidMaxFileBytes},
		{"zero budget", func(c *Config) { c.Estimator.DefaultBudgetTokens = 0 }, ErrInvalidBudget},
		{"empty output dir", func(c *Config) { c.Output.Dir = "  " }, ErrEmptyOutputDir},
		{"absolute output dir", func(c *Config) { c.Output.Dir = "/tmp/out" }, ErrAbsoluteOutputDir},
		{"escaping output dir", func(c *Config) { c.Output.Dir = "../out" }, ErrAbsoluteOutputDir},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidate_CombinesMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Estimator.CharsPerToken = -1
	cfg.Estimator.DefaultBudgetTokens = 0

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInvalidCharsPerToken.Error())
	assert.Contains(t, err.Error(), ErrInvalidBudget.Error())
}
