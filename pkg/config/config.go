// Package config layers cargo-dep settings from defaults, a config file,
// the environment and command-line flags.
//
// Priority, highest first:
//
//  1. Flags that were set explicitly
//  2. CARGO_DEP_* environment variables (CARGO_DEP_CACHE_TTL sets cache-ttl)
//  3. The config file: --config, or cargo-dep.toml in the working directory
//  4. Defaults
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// FileName is the config file looked up in the working directory.
const FileName = "cargo-dep.toml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CARGO_DEP_"

// Defaults for settings that are not plain zero values.
const (
	DefaultCargo    = "cargo"
	DefaultCacheTTL = time.Hour
)

// Output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted values of the format key.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG, FormatJSON, FormatYAML}

// Config holds all settings of one run.
type Config struct {
	ManifestPath string        `koanf:"manifest-path"`
	MetadataFile string        `koanf:"metadata-file"`
	GraphFile    string        `koanf:"graph-file"`
	Packages     []string      `koanf:"package"`
	Excludes     []string      `koanf:"exclude"`
	Format       string        `koanf:"format"`
	Output       string        `koanf:"output"`
	Cargo        string        `koanf:"cargo"`
	NoCache      bool          `koanf:"no-cache"`
	CacheTTL     time.Duration `koanf:"cache-ttl"`
	PrunedEdges  bool          `koanf:"pruned-edges"`
	EdgeKinds    bool          `koanf:"edge-kinds"`
	Verbose      bool          `koanf:"verbose"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"manifest-path": "",
		"metadata-file": "",
		"graph-file":    "",
		"package":       []string{},
		"exclude":       []string{},
		"format":        FormatDOT,
		"output":        "",
		"cargo":         DefaultCargo,
		"no-cache":      false,
		"cache-ttl":     DefaultCacheTTL.String(),
		"pruned-edges":  false,
		"edge-kinds":    false,
		"verbose":       false,
	}
}

// Load merges all configuration sources. f may be nil. configPath names an
// explicit config file, which must exist; when empty, FileName is read if
// present.
func Load(f *pflag.FlagSet, configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := configPath
	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to load config file `%s`", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to decode config")
	}
	return &cfg, nil
}

// Validate checks the merged settings.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format `%s` (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if c.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache-ttl must not be negative, got %s", c.CacheTTL)
	}
	if c.ManifestPath != "" && c.MetadataFile != "" {
		return errors.New(errors.ErrCodeInvalidInput, "--manifest-path and --metadata-file cannot be used together")
	}
	if c.GraphFile != "" && (c.ManifestPath != "" || c.MetadataFile != "") {
		return errors.New(errors.ErrCodeInvalidInput, "--graph-file cannot be combined with --manifest-path or --metadata-file")
	}
	if err := errors.ValidateManifestPath(c.ManifestPath); err != nil {
		return err
	}
	for _, name := range slices.Concat(c.Packages, c.Excludes) {
		if err := errors.ValidateCrateName(name); err != nil {
			return err
		}
	}
	return nil
}

// IsBinary reports whether the configured format produces non-text output,
// which is never written to a terminal.
func (c *Config) IsBinary() bool {
	return c.Format == FormatPNG
}

type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
