// Package pkg provides the libraries behind cargo-dep.
//
// # Overview
//
// cargo-dep turns the resolved dependency graph of a cargo workspace into a
// Graphviz digraph. The pkg directory is organized into these areas:
//
//  1. [metadata] - Obtaining and decoding `cargo metadata` output
//  2. [depgraph] - The index-addressed graph, edge resolution, selection and marking
//  3. [render/nodelink] - DOT output and Graphviz rasterization
//  4. [io] - JSON and YAML export of the marked graph, and import for re-rendering
//  5. [pipeline] - Orchestration (load → build → resolve → select → mark → render)
//  6. [cache], [manifest], [config], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
// The data flow of one run:
//
//	cargo metadata / saved JSON
//	         ↓
//	    [metadata] package (decode packages, members, resolve nodes)
//	         ↓
//	    [depgraph] package (Build, Resolve, Select, Mark)
//	         ↓
//	    [render/nodelink] or [io] package
//	         ↓
//	    DOT/SVG/PNG/JSON/YAML output
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/cargo-dep/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    ManifestPath: "Cargo.toml",
//	    Excludes:     []string{"serde"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
//
// Or drive the graph directly:
//
//	md, _ := metadata.Load(ctx, &metadata.File{Path: "metadata.json"})
//	members, _ := md.Members()
//	g, _ := depgraph.Build(md.Packages, members)
//	_ = g.Resolve(md.Resolve.Nodes)
//	sel, _ := depgraph.Select(g, depgraph.Filter{Excludes: []string{"serde"}})
//	g.Mark(sel.Roots, sel.Ignored)
//	fmt.Print(nodelink.ToDOT(g, sel.Ignored, nodelink.Options{}))
//
// [metadata]: github.com/matzehuels/cargo-dep/pkg/metadata
// [depgraph]: github.com/matzehuels/cargo-dep/pkg/depgraph
// [render/nodelink]: github.com/matzehuels/cargo-dep/pkg/render/nodelink
// [io]: github.com/matzehuels/cargo-dep/pkg/io
// [pipeline]: github.com/matzehuels/cargo-dep/pkg/pipeline
// [cache]: github.com/matzehuels/cargo-dep/pkg/cache
// [manifest]: github.com/matzehuels/cargo-dep/pkg/manifest
// [config]: github.com/matzehuels/cargo-dep/pkg/config
// [errors]: github.com/matzehuels/cargo-dep/pkg/errors
// [observability]: github.com/matzehuels/cargo-dep/pkg/observability
package pkg
