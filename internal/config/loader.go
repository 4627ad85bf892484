package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the runtime configuration.
// Search order: customPath -> ~/.ledgewalk/config.yaml -> ./configs/ledgewalk.yaml -> embedded default
// Files are layered over the defaults, so they only need the keys they change.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			return parse(data, userCfgPath)
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/ledgewalk.yaml"); err == nil {
		return parse(data, "configs/ledgewalk.yaml")
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML, "embedded defaults")
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse layers YAML over the defaults and validates the result
func parse(data []byte, source string) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ledgewalk", filename)
}
