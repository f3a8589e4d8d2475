// Package config loads and saves the optional .mellow.yaml file that
// carries default parsing options for the CLI.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/davine-io/mellow/internal/core"
	"github.com/davine-io/mellow/internal/ini"
)

// DefaultConfigFile is the config file looked up in the working
// directory. MELLOW_CONFIG overrides the location.
const DefaultConfigFile = ".mellow.yaml"

// IniConfig holds defaults for the INI parser flags.
type IniConfig struct {
	CommentMarkers   string `yaml:"comment-markers,omitempty"`
	IgnoreComments   bool   `yaml:"ignore-comments,omitempty"`
	InlineComments   bool   `yaml:"inline-comments,omitempty"`
	NullSectionName  string `yaml:"null-section,omitempty"`
	CommentKeyPrefix string `yaml:"comment-prefix,omitempty"`
	AllowBareKeys    bool   `yaml:"allow-bare-keys,omitempty"`
}

// OutputConfig holds presentation defaults.
type OutputConfig struct {
	Format  string `yaml:"format,omitempty"`
	NoColor bool   `yaml:"no-color,omitempty"`
}

// Config is the main configuration structure for mellow.
type Config struct {
	Ini    IniConfig    `yaml:"ini,omitempty"`
	Output OutputConfig `yaml:"output,omitempty"`
}

// Default returns the built-in configuration used when no config file
// exists.
func Default() *Config {
	return &Config{
		Ini: IniConfig{
			CommentMarkers:   ini.DefaultCommentMarkers,
			NullSectionName:  ini.DefaultNullSectionName,
			CommentKeyPrefix: ini.DefaultCommentKeyPrefix,
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// IniOptions converts the config defaults into parser options.
func (c *Config) IniOptions() ini.Options {
	return ini.Options{
		CommentMarkers:        c.Ini.CommentMarkers,
		IgnoreComments:        c.Ini.IgnoreComments,
		CommentsMustBeOwnLine: !c.Ini.InlineComments,
		NullSectionName:       c.Ini.NullSectionName,
		AllowKeyWithoutValue:  c.Ini.AllowBareKeys,
		CommentKeyPrefix:      c.Ini.CommentKeyPrefix,
	}
}

// Load reads the configuration, falling back to Default when no file
// is present. Lookup order: an explicit path argument, the
// MELLOW_CONFIG environment variable, then .mellow.yaml in the working
// directory. A file named by the caller or the environment must exist.
func Load(ctx context.Context, fsys core.FileSystem, path string) (*Config, error) {
	required := true
	if path == "" {
		path = os.Getenv("MELLOW_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
		required = false
	}

	data, err := fsys.ReadFile(ctx, path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Default(), nil
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

// Save writes the configuration as YAML with owner-only permissions.
func Save(ctx context.Context, fsys core.FileSystem, path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := fsys.WriteFile(ctx, path, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write config %q: %w", path, err)
	}
	return nil
}

// applyDefaults fills fields a sparse config file left empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Ini.CommentMarkers == "" {
		cfg.Ini.CommentMarkers = def.Ini.CommentMarkers
	}
	if cfg.Ini.NullSectionName == "" {
		cfg.Ini.NullSectionName = def.Ini.NullSectionName
	}
	if cfg.Ini.CommentKeyPrefix == "" {
		cfg.Ini.CommentKeyPrefix = def.Ini.CommentKeyPrefix
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = def.Output.Format
	}
}
