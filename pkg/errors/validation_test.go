package errors

import (
	"strings"
	"testing"
)

func TestValidateCrateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "serde", false},
		{"valid with dash", "serde-json", false},
		{"valid with underscore", "serde_json", false},
		{"valid leading underscore", "_private", false},
		{"valid with digits", "base64", false},
		{"valid unicode", "café", false},
		{"valid non-latin", "пакет", false},
		{"valid long", strings.Repeat("a", 80), false},

		{"empty", "", true},
		{"leading digit", "1password", true},
		{"leading dash", "-foo", true},
		{"dot", "my.crate", true},
		{"slash", "foo/bar", true},
		{"space", "foo bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"symbol", "foo+bar", true},
		{"emoji", "crab🦀", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCrateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCrateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateCrateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateManifestPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"bare", "Cargo.toml", false},
		{"relative", "crates/core/Cargo.toml", false},
		{"absolute", "/src/project/Cargo.toml", false},

		{"directory", "/src/project", true},
		{"wrong name", "/src/project/cargo.toml", true},
		{"lockfile", "Cargo.lock", true},
		{"null byte", "Cargo.toml\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateManifestPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateManifestPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidVersion,
		ErrCodeInvalidMetadata,
		ErrCodeInvalidManifest,
		ErrCodeInvalidFormat,
		ErrCodeDuplicateID,
		ErrCodeResolveIDNotFound,
		ErrCodeDepIDNotFound,
		ErrCodeExcludeNotFound,
		ErrCodeFileNotFound,
		ErrCodeMetadataUnavailable,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
