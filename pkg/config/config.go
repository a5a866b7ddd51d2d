// Package config loads modsync's layered configuration: embedded defaults,
// an optional modsync.toml in the working directory, then MODSYNC_*
// environment variables. Flag values are applied by the CLI on top.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"modsync/pkg/errors"
)

// FileName is the optional per-directory config file.
const FileName = "modsync.toml"

// API holds remote endpoint settings.
type API struct {
	BaseURL        string `koanf:"base_url"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// Sync holds reconciliation settings.
type Sync struct {
	Workers          int    `koanf:"workers"`
	ModsDir          string `koanf:"mods_dir"`
	ResourcePacksDir string `koanf:"resourcepacks_dir"`
}

// Log holds run-log settings.
type Log struct {
	Dir string `koanf:"dir"`
}

// Settings is the fully merged configuration.
type Settings struct {
	API  API  `koanf:"api"`
	Sync Sync `koanf:"sync"`
	Log  Log  `koanf:"log"`
}

// Load merges defaults, the optional config file and environment overrides.
func Load() (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default config")
	}

	// 2. Optional modsync.toml in the working directory
	if _, err := os.Stat(FileName); err == nil {
		if err := k.Load(file.Provider(FileName), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to load %s", FileName)
		}
	}

	// 3. Environment overrides: MODSYNC_API_BASE_URL -> api.base_url
	if err := k.Load(env.Provider("MODSYNC_", ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, "MODSYNC_")), "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to load environment config")
	}

	var settings Settings
	if err := k.Unmarshal("", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to unmarshal config")
	}
	return &settings, nil
}
