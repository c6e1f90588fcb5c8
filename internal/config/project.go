package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is the optional dlc.yaml sitting next to a source tree,
// following the same library the teacher uses for embedded YAML support
// (internal/evaluator/builtins_yaml.go), repurposed here for project-level
// CLI defaults instead of a DataLang-visible builtin.
type ProjectConfig struct {
	Output           string `yaml:"output"`
	WarningsAsErrors bool   `yaml:"warnings_as_errors"`
	Color            string `yaml:"color"` // "auto", "always", "never"
}

// DefaultProjectConfig returns the config used when no dlc.yaml is present.
func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{Color: "auto"}
}

// LoadProjectConfig reads and parses a dlc.yaml at path. A missing file is
// not an error: it simply yields the defaults.
func LoadProjectConfig(path string) (ProjectConfig, error) {
	cfg := DefaultProjectConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Color == "" {
		cfg.Color = "auto"
	}
	return cfg, nil
}
