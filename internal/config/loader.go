package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a variant.
// Search order: customPath -> ~/.mindgrid/configs/<variant>.yaml -> ./configs/<variant>.yaml -> embedded default
func Load(variant, customPath string) (MindgridConfig, error) {
	fallback, ok := DefaultConfig(variant)
	if !ok {
		return MindgridConfig{}, fmt.Errorf("config: unknown variant %q", variant)
	}

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data, fallback)
		if err != nil {
			return fallback, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := variant + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data, fallback); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := parse(data, fallback); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(GetDefaultYAML(variant), fallback)
	if err != nil {
		return fallback, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the variant defaults so partial files only
// override what they name, then validates the result.
func parse(data []byte, base MindgridConfig) (MindgridConfig, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mindgrid", "configs", filename)
}
