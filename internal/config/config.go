// Package config loads optional deepclean settings from a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Log configures the rotating audit log.
type Log struct {
	File       string `toml:"file"         yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"  yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"  yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `toml:"compress"     yaml:"compress"`
}

// File is the content of a config file. Pointer fields are nil when absent,
// so that only keys present in the file override defaults.
type File struct {
	DryRun  *bool    `toml:"dry_run" yaml:"dry_run"`
	Yes     *bool    `toml:"yes"     yaml:"yes"`
	Debug   *bool    `toml:"debug"   yaml:"debug"`
	Output  *string  `toml:"output"  yaml:"output"`
	Exclude []string `toml:"exclude" yaml:"exclude"`
	Log     Log      `toml:"log"     yaml:"log"`
}

// Default audit log rotation settings.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// ErrUnknownKey is returned when a config file contains keys deepclean does not know.
var ErrUnknownKey = errors.New("unknown config key")

// Load reads path. Files ending in .yaml or .yml are parsed as YAML, anything
// else as TOML. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	var cfg File

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing config %q: %w", path, err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()

		if err := dec.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("parsing config %q: %w: %s", path, ErrUnknownKey, strict.String())
			}

			return nil, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

func (f *File) applyDefaults() {
	if f.Log.MaxSizeMB <= 0 {
		f.Log.MaxSizeMB = DefaultMaxSizeMB
	}

	if f.Log.MaxBackups <= 0 {
		f.Log.MaxBackups = DefaultMaxBackups
	}

	if f.Log.MaxAgeDays <= 0 {
		f.Log.MaxAgeDays = DefaultMaxAgeDays
	}
}

// Defaults returns a File with no overrides and default log rotation.
func Defaults() *File {
	var f File

	f.applyDefaults()

	return &f
}
