package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPath is read when no path is given and silently skipped when absent.
const defaultPath = "./config.yaml"

// Load reads configuration from the file named by CONFIG_PATH (or
// ./config.yaml) and from environment variables. See LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("CONFIG_PATH"))
}

// LoadFrom reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). An empty path means
// ./config.yaml if it exists, otherwise ENV + defaults only; a non-empty path
// must exist. The library directory is made absolute so paths stored for
// scanned documents do not depend on the working directory.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	dir, err := filepath.Abs(cfg.Library.Dir)
	if err != nil {
		return nil, fmt.Errorf("config: library dir: %w", err)
	}
	cfg.Library.Dir = dir

	return &cfg, nil
}
