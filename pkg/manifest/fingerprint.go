package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// Fingerprint hashes everything cargo reads to resolve the workspace of the
// manifest at path: that manifest, the nearest Cargo.lock in its directory
// or an ancestor, and every Cargo.toml below the workspace root. The root is
// the directory of the lock file, or the manifest's directory without one.
//
// Editing, adding or removing any of those files changes the result.
// Path dependencies outside the workspace root are not covered.
func Fingerprint(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve manifest path `%s`", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read manifest `%s`", path)
	}

	h := xxhash.New()
	_, _ = h.WriteString(abs)

	root := filepath.Dir(abs)
	files := []string{abs}
	if lock := findLock(root); lock != "" {
		root = filepath.Dir(lock)
		files = append(files, lock)
	}
	manifests, err := workspaceManifests(root)
	if err != nil {
		return "", err
	}
	for _, m := range manifests {
		if m != abs {
			files = append(files, m)
		}
	}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read `%s`", f)
		}
		rel, _ := filepath.Rel(root, f)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(filepath.ToSlash(rel))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write(data)
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// workspaceManifests returns every Cargo.toml below root in lexical order.
// Build output and hidden directories are skipped.
func workspaceManifests(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if p != root && (name == "target" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == FileName {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "scan workspace `%s`", root)
	}
	return out, nil
}

func findLock(dir string) string {
	for d := dir; ; {
		path := filepath.Join(d, LockFileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(d)
		if parent == d {
			return ""
		}
		d = parent
	}
}
