// Package io exports the included part of a dependency graph as structured
// data for tools that do not read DOT.
//
// # Format
//
// JSON and YAML share one document shape:
//
//	{
//	  "nodes": [
//	    {"index": 0, "id": "app 0.1.0 (path+file:///w/app)", "name": "app", "version": "0.1.0", "member": true},
//	    {"index": 2, "id": "log 0.4.21 (registry+...)", "name": "log", "version": "0.4.21", "source": "registry+..."}
//	  ],
//	  "edges": [
//	    {"from": 0, "to": 2, "kind": "normal", "req": "^0.4"}
//	  ]
//	}
//
// Node indices are the package indices of the graph, so they match the
// "N<index>" names of the DOT output. Nodes are listed in index order and
// edges in declaration order of their source package.
//
// Only packages that are included and not ignored appear, and only edges
// between two such packages. With [Options.PrunedEdges], edges into excluded
// packages are kept and their targets appear with "excluded": true. Edge
// kinds are always exported.
//
// # Import
//
// [Import] reads a document back and [Document.Graph] rebuilds the graph
// from it, so an exported graph can be filtered and rendered again without
// cargo.
package io
