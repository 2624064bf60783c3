package metadata

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// Metadata is the subset of the `cargo metadata` document used by cargo-dep.
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
	Resolve          *Resolve  `json:"resolve"`
	WorkspaceRoot    string    `json:"workspace_root"`
}

// Package is one package record as reported by cargo.
type Package struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	ID           string       `json:"id"`
	Source       string       `json:"source"`
	Dependencies []Dependency `json:"dependencies"`
	ManifestPath string       `json:"manifest_path"`
}

// Dependency is a dependency as declared in a package manifest, before
// resolution.
type Dependency struct {
	Name     string `json:"name"`
	Source   string `json:"source"`
	Req      string `json:"req"`
	Kind     string `json:"kind"` // "", "dev" or "build"
	Optional bool   `json:"optional"`
}

// Resolve is the resolved dependency graph.
type Resolve struct {
	Nodes []Node `json:"nodes"`
}

// Node lists the resolved dependency ids of one package.
type Node struct {
	ID           string   `json:"id"`
	Dependencies []string `json:"dependencies"`
}

// Member identifies a first-party workspace package.
type Member struct {
	Name    string
	Version *semver.Version
	Source  string
}

// Parse decodes a `cargo metadata --format-version 1` document.
// A document without a resolve graph is rejected: cargo omits it only for
// --no-deps, and the graph cannot be built without it.
func Parse(data []byte) (*Metadata, error) {
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "decode cargo metadata")
	}
	if md.Resolve == nil {
		return nil, errors.New(errors.ErrCodeInvalidMetadata, "cargo metadata has no resolve graph")
	}
	return &md, nil
}

// Members parses the workspace member ids into name/version pairs.
func (m *Metadata) Members() ([]Member, error) {
	members := make([]Member, 0, len(m.WorkspaceMembers))
	for _, id := range m.WorkspaceMembers {
		mem, err := ParseMember(id)
		if err != nil {
			return nil, err
		}
		members = append(members, mem)
	}
	return members, nil
}

// ParseMember parses a workspace member id.
func ParseMember(id string) (Member, error) {
	name, version, source := ParseID(id)
	if name == "" || version == "" {
		return Member{}, errors.New(errors.ErrCodeInvalidMetadata, "malformed workspace member id `%s`", id)
	}
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return Member{}, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "workspace member `%s` has invalid version", id)
	}
	return Member{Name: name, Version: v, Source: source}, nil
}
