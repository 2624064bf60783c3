package errors

import (
	"path/filepath"
	"regexp"
	"unicode"
)

// crateNameRegex follows cargo's package name rule: a Unicode identifier
// start character or '_', then identifier characters or '-'. Cargo does not
// limit the length; only crates.io does.
var crateNameRegex = regexp.MustCompile(`^[\p{L}\p{Nl}_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}-]*$`)

// ValidateCrateName validates a package name given as a --package or
// --exclude filter. Names are compared against packages verbatim, so a name
// that cargo would refuse for any package is rejected before any metadata
// is loaded.
func ValidateCrateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "package name cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "package name contains invalid control characters")
		}
	}
	if !crateNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid package name: %q", name)
	}
	return nil
}

// ValidateManifestPath checks that path names a Cargo.toml file, as cargo
// itself requires for --manifest-path. An empty path is valid and means
// "search upward from the working directory".
func ValidateManifestPath(path string) error {
	if path == "" {
		return nil
	}
	for _, r := range path {
		if r == '\x00' {
			return New(ErrCodeInvalidManifest, "manifest path contains invalid characters")
		}
	}
	if filepath.Base(path) != "Cargo.toml" {
		return New(ErrCodeInvalidManifest, "the manifest-path must be a path to a Cargo.toml file: %s", path)
	}
	return nil
}
