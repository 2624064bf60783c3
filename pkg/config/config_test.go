package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/cargo-dep/pkg/errors"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	f := pflag.NewFlagSet("cargo-dep", pflag.ContinueOnError)
	f.String("manifest-path", "", "")
	f.StringSliceP("package", "p", nil, "")
	f.StringSlice("exclude", nil, "")
	f.StringP("format", "f", FormatDOT, "")
	f.Duration("cache-ttl", time.Hour, "")
	f.Bool("no-cache", false, "")
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return f
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Format != FormatDOT {
		t.Errorf("Format = %q, want %q", cfg.Format, FormatDOT)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.Cargo != "cargo" {
		t.Errorf("Cargo = %q, want cargo", cfg.Cargo)
	}
	if len(cfg.Packages) != 0 || len(cfg.Excludes) != 0 {
		t.Errorf("filters = %v / %v, want empty", cfg.Packages, cfg.Excludes)
	}
}

func TestLoad_Priority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "format = \"svg\"\nexclude = [\"log\"]\ncache-ttl = \"10m\"\ncargo = \"/opt/cargo\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CARGO_DEP_FORMAT", "json")
	t.Setenv("CARGO_DEP_NO_CACHE", "true")

	cfg, err := Load(newFlags(t, "--format", "yaml", "-p", "app", "-p", "core"), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Format != FormatYAML {
		t.Errorf("Format = %q, flag should win", cfg.Format)
	}
	if !cfg.NoCache {
		t.Error("NoCache should come from the environment")
	}
	if cfg.Cargo != "/opt/cargo" {
		t.Errorf("Cargo = %q, want file value", cfg.Cargo)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("CacheTTL = %v, unset flag must not override file", cfg.CacheTTL)
	}
	if len(cfg.Excludes) != 1 || cfg.Excludes[0] != "log" {
		t.Errorf("Excludes = %v, want [log]", cfg.Excludes)
	}
	if len(cfg.Packages) != 2 || cfg.Packages[1] != "core" {
		t.Errorf("Packages = %v, want [app core]", cfg.Packages)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("format = \"svg\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CARGO_DEP_FORMAT", "png")

	cfg, err := Load(newFlags(t), path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Format != FormatPNG {
		t.Errorf("Format = %q, want png", cfg.Format)
	}
	if !cfg.IsBinary() {
		t.Error("png should be binary")
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(nil, filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load() error = %v, want INVALID_INPUT", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{"ok", Config{Format: FormatDOT, Excludes: []string{"serde_derive"}}, ""},
		{"unicode names", Config{Format: FormatDOT, Packages: []string{"café"}, Excludes: []string{"café"}}, ""},
		{"long name", Config{Format: FormatDOT, Packages: []string{strings.Repeat("x", 74)}}, ""},
		{"format", Config{Format: "pdf"}, errors.ErrCodeInvalidFormat},
		{"ttl", Config{Format: FormatDOT, CacheTTL: -time.Second}, errors.ErrCodeInvalidInput},
		{"exclusive", Config{Format: FormatDOT, ManifestPath: "Cargo.toml", MetadataFile: "m.json"}, errors.ErrCodeInvalidInput},
		{"graph file exclusive", Config{Format: FormatDOT, GraphFile: "deps.json", MetadataFile: "m.json"}, errors.ErrCodeInvalidInput},
		{"manifest", Config{Format: FormatDOT, ManifestPath: "crates/app/Cargo.lock"}, errors.ErrCodeInvalidManifest},
		{"package name", Config{Format: FormatDOT, Packages: []string{"bad name"}}, errors.ErrCodeInvalidInput},
		{"exclude name", Config{Format: FormatDOT, Excludes: []string{""}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
