package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the bazelproj.yaml configuration.
type Config struct {
	Workspace      string       `yaml:"workspace"`
	BuildFileNames []string     `yaml:"build_file_names"`
	Ignore         []string     `yaml:"ignore"`
	Cache          CacheConfig  `yaml:"cache"`
	Output         OutputConfig `yaml:"output"`
}

// CacheConfig controls the parse-result cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// OutputConfig controls where output artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Workspace:      ".",
		BuildFileNames: []string{"BUILD.bazel", "BUILD"},
		Ignore: []string{
			"bazel-*/**",
			".git/**",
			"node_modules/**",
			"Pods/**",
			"DerivedData/**",
			".bazelproj/**",
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    ".bazelproj/cache.db",
		},
		Output: OutputConfig{
			Dir: ".bazelproj",
		},
	}
}

// Load reads a configuration file from the given path.
// Missing fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Ensure required defaults
	if cfg.Workspace == "" {
		cfg.Workspace = "."
	}
	if len(cfg.BuildFileNames) == 0 {
		cfg.BuildFileNames = []string{"BUILD.bazel", "BUILD"}
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = ".bazelproj"
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = ".bazelproj/cache.db"
	}

	return cfg, nil
}

// IsBuildFile reports whether name is one of the configured BUILD file names.
func (c *Config) IsBuildFile(name string) bool {
	for _, n := range c.BuildFileNames {
		if n == name {
			return true
		}
	}
	return false
}
