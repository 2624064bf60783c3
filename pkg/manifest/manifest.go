// Package manifest locates and reads Cargo.toml files.
//
// cargo-dep never resolves dependencies itself; cargo does. The manifest is
// read only to fail fast on a broken or missing Cargo.toml before cargo is
// started, and to fingerprint the workspace for the metadata cache.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// FileName is the name of a cargo manifest.
const FileName = "Cargo.toml"

// LockFileName is the name of a cargo lock file.
const LockFileName = "Cargo.lock"

// Manifest is the part of a Cargo.toml that cargo-dep reads.
type Manifest struct {
	Path      string
	Package   *Package
	Workspace *Workspace
}

// Package is the [package] table.
type Package struct {
	Name    string `toml:"name"`
	Version any    `toml:"version"` // string, or {workspace = true}
}

// Workspace is the [workspace] table.
type Workspace struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude"`
}

// IsVirtual reports whether the manifest declares a workspace without a
// root package.
func (m *Manifest) IsVirtual() bool {
	return m.Package == nil && m.Workspace != nil
}

// Name returns the package name, or the directory name for a virtual
// workspace.
func (m *Manifest) Name() string {
	if m.Package != nil && m.Package.Name != "" {
		return m.Package.Name
	}
	return filepath.Base(filepath.Dir(m.Path))
}

// Locate searches dir and its ancestors for a Cargo.toml and returns its
// path.
func Locate(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve directory %s", dir)
	}
	for d := abs; ; {
		path := filepath.Join(d, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", errors.New(errors.ErrCodeFileNotFound, "could not find `%s` in `%s` or any parent directory", FileName, abs)
		}
		d = parent
	}
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest `%s` does not exist", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "read manifest `%s`", path)
	}

	var raw struct {
		Package   *Package   `toml:"package"`
		Workspace *Workspace `toml:"workspace"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse manifest at `%s`", path)
	}
	if raw.Package == nil && raw.Workspace == nil {
		return nil, errors.New(errors.ErrCodeInvalidManifest,
			"manifest at `%s` is neither a package nor a workspace", path)
	}
	if raw.Package != nil && raw.Package.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "manifest at `%s` has a [package] without a name", path)
	}

	return &Manifest{Path: path, Package: raw.Package, Workspace: raw.Workspace}, nil
}
