// Package metadata loads the package graph reported by `cargo metadata`.
//
// # Overview
//
// cargo-dep does not resolve versions itself. It asks cargo for the already
// resolved workspace and works on two independent lists from the result:
//
//   - [Metadata.Packages]: one record per (name, version, source) with its
//     declared dependencies
//   - [Resolve.Nodes]: one entry per package id listing the ids of the
//     packages its dependencies resolved to
//
// plus the workspace member ids, which decide what is first-party.
//
// # Providers
//
// A [Provider] returns the raw JSON document:
//
//   - [Cargo] runs `cargo metadata --format-version 1`
//   - [File] reads a saved document (or stdin)
//   - [Cached] wraps another provider with a [cache.Cache]
//
// [Load] fetches and decodes in one step:
//
//	md, err := metadata.Load(ctx, &metadata.Cargo{ManifestPath: "Cargo.toml"})
//
// # Package ids
//
// Cargo has used two id formats. Older releases print "name version (source)";
// newer ones print package id specs such as
// "registry+https://github.com/rust-lang/crates.io-index#serde@1.0.197".
// [ParseID] and [DescriptorName] accept both.
//
// [cache.Cache]: github.com/matzehuels/cargo-dep/pkg/cache.Cache
package metadata
