package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cargo-dep/pkg/depgraph"
	"github.com/matzehuels/cargo-dep/pkg/errors"
)

// ReadJSON decodes a document written by [WriteJSON].
//
// Every edge must reference an exported node index. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadYAML decodes a document written by [WriteYAML].
func ReadYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Import reads the document in the file at path. Files ending in .yaml or
// .yml are read as YAML, everything else as JSON.
func Import(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open graph file `%s`", path)
	}
	defer f.Close()

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = ReadYAML(f)
	default:
		doc, err = ReadJSON(f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read graph file `%s`", path)
	}
	return doc, nil
}

// Graph rebuilds a resolved, unmarked graph from the document.
//
// Packages are renumbered in node order, so an exported graph keeps its
// relative order. The returned set holds the packages that were exported
// as Excluded; they stay excluded when the graph is marked again.
func (d *Document) Graph() (*depgraph.Graph, depgraph.IndexSet, error) {
	if err := d.validate(); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid graph document")
	}

	pos := make(map[int]int, len(d.Nodes))
	excluded := depgraph.IndexSet{}
	g := &depgraph.Graph{Packages: make([]depgraph.Package, 0, len(d.Nodes))}
	for i, n := range d.Nodes {
		v, err := semver.StrictNewVersion(n.Version)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidVersion, err, "node %d (`%s`) has invalid version `%s`", n.Index, n.Name, n.Version)
		}
		pos[n.Index] = i
		if n.Excluded {
			excluded.Add(i)
		}
		g.Packages = append(g.Packages, depgraph.Package{
			Name:     n.Name,
			Version:  v,
			Source:   n.Source,
			ID:       n.ID,
			IsMember: n.Member,
		})
	}

	for _, e := range d.Edges {
		kind, err := depgraph.ParseDependencyKind(e.Kind)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d->%d", e.From, e.To)
		}
		to := pos[e.To]
		from := &g.Packages[pos[e.From]]
		from.Dependencies = append(from.Dependencies, depgraph.Dependency{
			Index:    &to,
			Name:     g.Packages[to].Name,
			Source:   g.Packages[to].Source,
			Req:      e.Req,
			Kind:     kind,
			Optional: e.Optional,
		})
	}
	return g, excluded, nil
}

func (d *Document) validate() error {
	seen := make(map[int]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if seen[n.Index] {
			return fmt.Errorf("node %d: duplicate index", n.Index)
		}
		seen[n.Index] = true
	}
	for _, e := range d.Edges {
		if !seen[e.From] || !seen[e.To] {
			return fmt.Errorf("edge %d->%d: unknown node", e.From, e.To)
		}
	}
	return nil
}
