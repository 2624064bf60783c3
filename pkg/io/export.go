package io

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cargo-dep/pkg/depgraph"
)

// Document is the exported form of a marked graph.
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is one exported package.
type Node struct {
	Index   int    `json:"index" yaml:"index"`
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Member  bool   `json:"member,omitempty" yaml:"member,omitempty"`
	// Excluded marks the target of a pruned edge. It is only set when
	// pruned edges are exported.
	Excluded bool `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

// Edge is one exported dependency.
type Edge struct {
	From     int    `json:"from" yaml:"from"`
	To       int    `json:"to" yaml:"to"`
	Kind     string `json:"kind" yaml:"kind"`
	Req      string `json:"req,omitempty" yaml:"req,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Options configures export.
type Options struct {
	// PrunedEdges keeps edges from an exported package into an excluded
	// one. Their targets are exported with Excluded set, so every edge
	// still names a node.
	PrunedEdges bool
}

// NewDocument collects the packages of g that are included and not in
// ignore, and the edges between them.
func NewDocument(g *depgraph.Graph, ignore depgraph.IndexSet, opts Options) Document {
	visible := func(i int) bool {
		return g.Packages[i].Include && !ignore.Has(i)
	}
	pruned := func(d depgraph.Dependency) bool {
		return opts.PrunedEdges && ignore.Has(*d.Index)
	}

	targets := depgraph.IndexSet{}
	for i := range g.Packages {
		if !visible(i) {
			continue
		}
		for _, d := range g.Packages[i].Dependencies {
			if d.Index != nil && pruned(d) {
				targets.Add(*d.Index)
			}
		}
	}

	doc := Document{Nodes: []Node{}, Edges: []Edge{}}
	for i := range g.Packages {
		if !visible(i) && !targets.Has(i) {
			continue
		}
		p := &g.Packages[i]
		doc.Nodes = append(doc.Nodes, Node{
			Index:    i,
			ID:       p.ID,
			Name:     p.Name,
			Version:  p.Version.String(),
			Source:   p.Source,
			Member:   p.IsMember,
			Excluded: !visible(i),
		})
	}
	for i := range g.Packages {
		if !visible(i) {
			continue
		}
		for _, d := range g.Packages[i].Dependencies {
			if d.Index == nil || !(visible(*d.Index) || pruned(d)) {
				continue
			}
			doc.Edges = append(doc.Edges, Edge{
				From:     i,
				To:       *d.Index,
				Kind:     d.Kind.String(),
				Req:      d.Req,
				Optional: d.Optional,
			})
		}
	}
	return doc
}

// WriteJSON encodes the included graph as indented JSON and writes it to w.
func WriteJSON(g *depgraph.Graph, ignore depgraph.IndexSet, opts Options, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g, ignore, opts)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes the included graph as YAML and writes it to w.
func WriteYAML(g *depgraph.Graph, ignore depgraph.IndexSet, opts Options, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(g, ignore, opts)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}
