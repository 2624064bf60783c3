// Package pipeline runs the cargo-dep graph pipeline.
//
// # Architecture
//
// A run has six stages, each fatal on error:
//
//  1. Load: fetch and decode `cargo metadata` (from cargo, a file, or the cache)
//  2. Build: turn package records into an index-addressed graph
//  3. Resolve: point every resolved dependency at its target index
//  4. Select: map --package and --exclude names to index sets
//  5. Mark: flag every package reachable from the roots
//  6. Render: write the included subgraph as DOT, SVG, PNG, JSON or YAML
//
// A run from an exported graph file loads the document and rebuilds the
// graph from it; its edges are already resolved, so stage 3 is skipped.
//
// Output is returned only after every stage succeeded, so a failing run
// never leaves a partial graph behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Excludes: []string{"serde"},
//	    Format:   pipeline.FormatDOT,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-dep/pkg/config"
	"github.com/matzehuels/cargo-dep/pkg/depgraph"
	"github.com/matzehuels/cargo-dep/pkg/errors"
	"github.com/matzehuels/cargo-dep/pkg/metadata"
	"github.com/matzehuels/cargo-dep/pkg/observability"
)

// Format constants for output formats.
const (
	FormatDOT  = config.FormatDOT
	FormatSVG  = config.FormatSVG
	FormatPNG  = config.FormatPNG
	FormatJSON = config.FormatJSON
	FormatYAML = config.FormatYAML
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatYAML: true,
}

// Options configures one pipeline run.
type Options struct {
	// Source options. At most one of ManifestPath, MetadataFile and
	// GraphFile is set; with none, Cargo.toml is searched upward from Dir.
	// GraphFile names a document written by the json or yaml format.
	ManifestPath string
	MetadataFile string
	GraphFile    string
	Dir          string
	Cargo        string

	// Selection options
	Packages []string
	Excludes []string

	// Render options
	Format      string
	PrunedEdges bool
	EdgeKinds   bool

	// Cache options. A zero CacheTTL keeps entries until the cache is cleared.
	CacheTTL time.Duration
	Refresh  bool

	// Runtime options
	Provider metadata.Provider // overrides the source options when set
	Stdin    io.Reader         // read when MetadataFile or GraphFile is "-"
	Logger   *log.Logger

	validated bool
}

// FromConfig converts merged configuration into pipeline options.
func FromConfig(cfg *config.Config) Options {
	return Options{
		ManifestPath: cfg.ManifestPath,
		MetadataFile: cfg.MetadataFile,
		GraphFile:    cfg.GraphFile,
		Cargo:        cfg.Cargo,
		Packages:     cfg.Packages,
		Excludes:     cfg.Excludes,
		Format:       cfg.Format,
		PrunedEdges:  cfg.PrunedEdges,
		EdgeKinds:    cfg.EdgeKinds,
		CacheTTL:     cfg.CacheTTL,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the marked graph. Include is set on every reachable package.
	Graph *depgraph.Graph

	// Selection holds the root and ignore sets derived from the filters.
	Selection depgraph.Selection

	// Included is the set returned by the marker.
	Included depgraph.IndexSet

	// Output is the rendered graph in the requested format.
	Output []byte

	// Source names the metadata provider that served the run.
	Source string

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Packages int
	Edges    int
	Included int
	Timings  map[observability.Stage]time.Duration
}

// Total returns the summed duration of all stages.
func (s Stats) Total() time.Duration {
	var d time.Duration
	for _, t := range s.Timings {
		d += t
	}
	return d
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png, json, yaml)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = FormatDOT
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.ManifestPath != "" && o.MetadataFile != "" {
		return errors.New(errors.ErrCodeInvalidInput, "manifest path and metadata file are mutually exclusive")
	}
	if o.GraphFile != "" && (o.ManifestPath != "" || o.MetadataFile != "") {
		return errors.New(errors.ErrCodeInvalidInput, "graph file cannot be combined with a manifest path or metadata file")
	}
	if err := errors.ValidateManifestPath(o.ManifestPath); err != nil {
		return err
	}
	if o.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache TTL must not be negative")
	}
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Cargo == "" {
		o.Cargo = metadata.DefaultCargo
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Filter returns the selection filter of the options.
func (o *Options) Filter() depgraph.Filter {
	return depgraph.Filter{Packages: o.Packages, Excludes: o.Excludes}
}
