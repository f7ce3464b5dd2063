package config

// Config represents the complete codescope configuration.
// It can be loaded from .codescope/config.yml with environment variable overrides.
type Config struct {
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Estimator EstimatorConfig `yaml:"estimator" mapstructure:"estimator"`
	Scan      ScanConfig      `yaml:"scan" mapstructure:"scan"`
}

// OutputConfig defines where slice artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // relative to the repo root
}

// EstimatorConfig tunes token estimation and slice budgeting.
type EstimatorConfig struct {
	CharsPerToken       int   `yaml:"chars_per_token" mapstructure:"chars_per_token"`
	MaxFileBytes        int64 `yaml:"max_file_bytes" mapstructure:"max_file_bytes"`
	DefaultBudgetTokens int   `yaml:"default_budget_tokens" mapstructure:"default_budget_tokens"`
}

// ScanConfig defines which files a scan skips.
type ScanConfig struct {
	ExcludeDirs []string `yaml:"exclude_dirs" mapstructure:"exclude_dirs"` // directory names pruned anywhere
	Ignore      []string `yaml:"ignore" mapstructure:"ignore"`             // glob patterns to ignore
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: ".codescope",
		},
		Estimator: EstimatorConfig{
			CharsPerToken:       4,
			MaxFileBytes:        1_000_000,
			DefaultBudgetTokens: 32000,
		},
		Scan: ScanConfig{
			ExcludeDirs: []string{
				".git",
				".vscode",
				"node_modules",
				"dist",
				"build",
				"target",
				".next",
				".turbo",
				".codescope",
				".cargo",
			},
			Ignore: []string{
				"**/*.lock",
				"**/*.min.js",
				"**/*.map",
				"**/__pycache__/**",
			},
		},
	}
}
