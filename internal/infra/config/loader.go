// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/MarcStan/issue-tracker/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the name of the user configuration file.
const ConfigFileName = "config.toml"

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads the user configuration from a TOML file under the
// global config directory (e.g. ~/.config/issues/config.toml).
type Loader struct {
	globalConfDir string
}

// NewLoader creates a new Loader using the default global config
// directory.
func NewLoader() *Loader {
	return &Loader{globalConfDir: defaultGlobalConfigDir()}
}

// NewLoaderWithDir creates a new Loader with a custom config directory.
// This is useful for testing.
func NewLoaderWithDir(dir string) *Loader {
	return &Loader{globalConfDir: dir}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "issues")
}

// Load returns the user configuration merged over defaults. A missing
// config file is not an error; defaults are returned.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()
	if l.globalConfDir == "" {
		return base, nil
	}

	data, err := os.ReadFile(filepath.Join(l.globalConfDir, ConfigFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}

	var warnings []string
	for key, value := range raw {
		switch key {
		case "author":
			if s, ok := value.(string); ok {
				base.Author = s
			}
		case "display_limit":
			if n, ok := value.(int64); ok && n > 0 {
				base.DisplayLimit = int(n)
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						if s, ok := v.(string); ok {
							base.Log.Level = s
						}
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", key))
		}
	}

	sort.Strings(warnings)
	base.Warnings = warnings
	return base, nil
}
