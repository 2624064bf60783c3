package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// Provider returns a raw `cargo metadata` JSON document.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Fetch returns the undecoded document.
	Fetch(ctx context.Context) ([]byte, error)
}

// Load fetches the document from p and decodes it.
func Load(ctx context.Context, p Provider) (*Metadata, error) {
	data, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// DefaultCargo is the cargo binary used when [Cargo.Binary] is empty.
const DefaultCargo = "cargo"

// Cargo runs `cargo metadata` for a workspace.
type Cargo struct {
	Binary       string // cargo executable (default "cargo")
	ManifestPath string // passed as --manifest-path when set
}

// Name implements [Provider].
func (c *Cargo) Name() string { return "cargo" }

// Args returns the arguments passed to cargo.
func (c *Cargo) Args() []string {
	args := []string{"metadata", "--format-version", "1"}
	if c.ManifestPath != "" {
		args = append(args, "--manifest-path", c.ManifestPath)
	}
	return args
}

// Fetch implements [Provider]. Cargo's stderr is attached to the error.
func (c *Cargo) Fetch(ctx context.Context) ([]byte, error) {
	bin := c.Binary
	if bin == "" {
		bin = DefaultCargo
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, c.Args()...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, errors.Wrap(errors.ErrCodeMetadataUnavailable, err, "failed to load cargo metadata")
	}
	return out, nil
}

// File reads a saved `cargo metadata` document. A Path of "-" reads Stdin.
type File struct {
	Path  string
	Stdin io.Reader // defaults to os.Stdin
}

// Name implements [Provider].
func (f *File) Name() string { return "file" }

// Fetch implements [Provider].
func (f *File) Fetch(ctx context.Context) ([]byte, error) {
	if f.Path == "-" {
		in := f.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMetadataUnavailable, err, "read metadata from stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "metadata file %s not found", f.Path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMetadataUnavailable, err, "read metadata file %s", f.Path)
	}
	return data, nil
}

// Static serves a fixed document. It is used by tests and by callers that
// already hold the metadata in memory.
type Static []byte

// Name implements [Provider].
func (Static) Name() string { return "static" }

// Fetch implements [Provider].
func (s Static) Fetch(context.Context) ([]byte, error) { return s, nil }
