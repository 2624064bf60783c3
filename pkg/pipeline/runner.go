package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-dep/pkg/cache"
	"github.com/matzehuels/cargo-dep/pkg/depgraph"
	"github.com/matzehuels/cargo-dep/pkg/errors"
	graphio "github.com/matzehuels/cargo-dep/pkg/io"
	"github.com/matzehuels/cargo-dep/pkg/manifest"
	"github.com/matzehuels/cargo-dep/pkg/metadata"
	"github.com/matzehuels/cargo-dep/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs every stage and returns the rendered graph.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{
		Stats: Stats{Timings: make(map[observability.Stage]time.Duration)},
	}

	// Stages 1-3
	var (
		g        *depgraph.Graph
		excluded depgraph.IndexSet
		err      error
	)
	if opts.GraphFile != "" {
		g, excluded, err = r.importGraph(ctx, result, opts)
	} else {
		g, err = r.buildGraph(ctx, result, opts)
	}
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.Packages = g.Len()
	result.Stats.Edges = g.EdgeCount()
	logger.Debug("resolved graph",
		"packages", result.Stats.Packages,
		"edges", result.Stats.Edges)

	// Stage 4: Select. Packages a graph file marks excluded stay ignored.
	err = r.stage(ctx, result, observability.StageSelect, func() error {
		if result.Selection, err = depgraph.Select(g, opts.Filter()); err != nil {
			return err
		}
		for i := range excluded {
			result.Selection.Ignored.Add(i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("selected packages",
		"roots", result.Selection.Roots.Len(),
		"ignored", result.Selection.Ignored.Len())

	// Stage 5: Mark
	_ = r.stage(ctx, result, observability.StageMark, func() error {
		result.Included = g.Mark(result.Selection.Roots, result.Selection.Ignored)
		return nil
	})
	result.Stats.Included = result.Included.Len()

	// Stage 6: Render
	err = r.stage(ctx, result, observability.StageRender, func() error {
		result.Output, err = Render(ctx, g, result.Selection.Ignored, opts)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("rendered graph",
		"format", opts.Format,
		"included", result.Stats.Included,
		"bytes", len(result.Output),
		"duration", result.Stats.Total())

	return result, nil
}

// buildGraph runs the load, build and resolve stages on cargo metadata.
func (r *Runner) buildGraph(ctx context.Context, result *Result, opts Options) (*depgraph.Graph, error) {
	var md *metadata.Metadata
	var members []metadata.Member
	err := r.stage(ctx, result, observability.StageLoad, func() error {
		p, err := r.Provider(opts)
		if err != nil {
			return err
		}
		result.Source = p.Name()
		if md, err = metadata.Load(ctx, p); err != nil {
			return err
		}
		members, err = md.Members()
		return err
	})
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("loaded metadata",
		"source", result.Source,
		"packages", len(md.Packages),
		"members", len(members))

	var g *depgraph.Graph
	err = r.stage(ctx, result, observability.StageBuild, func() error {
		g, err = depgraph.Build(md.Packages, members)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = r.stage(ctx, result, observability.StageResolve, func() error {
		return g.Resolve(md.Resolve.Nodes)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// importGraph runs the load and build stages on an exported graph
// document. The returned set holds packages the document marks excluded.
func (r *Runner) importGraph(ctx context.Context, result *Result, opts Options) (*depgraph.Graph, depgraph.IndexSet, error) {
	var doc *graphio.Document
	err := r.stage(ctx, result, observability.StageLoad, func() error {
		var err error
		result.Source = "graph-file"
		if opts.GraphFile == "-" {
			if opts.Stdin == nil {
				return errors.New(errors.ErrCodeInvalidInput, "graph file is stdin but no input is attached")
			}
			if doc, err = graphio.ReadJSON(opts.Stdin); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read graph from stdin")
			}
			return nil
		}
		doc, err = graphio.Import(opts.GraphFile)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	opts.Logger.Debug("loaded graph document",
		"path", opts.GraphFile,
		"nodes", len(doc.Nodes),
		"edges", len(doc.Edges))

	var (
		g        *depgraph.Graph
		excluded depgraph.IndexSet
	)
	err = r.stage(ctx, result, observability.StageBuild, func() error {
		var err error
		g, excluded, err = doc.Graph()
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return g, excluded, nil
}

// Provider picks the metadata source for opts.
//
// A metadata file is read as is. Otherwise cargo is run for the manifest
// given in opts or found above opts.Dir, and its output is cached under the
// manifest's fingerprint.
func (r *Runner) Provider(opts Options) (metadata.Provider, error) {
	if opts.Provider != nil {
		return opts.Provider, nil
	}
	if opts.MetadataFile != "" {
		return &metadata.File{Path: opts.MetadataFile, Stdin: opts.Stdin}, nil
	}

	path := opts.ManifestPath
	if path == "" {
		found, err := manifest.Locate(opts.Dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	r.logger(opts).Debug("using manifest", "path", m.Path, "name", m.Name(), "virtual", m.IsVirtual())

	cargo := &metadata.Cargo{Binary: opts.Cargo, ManifestPath: path}
	fingerprint, err := manifest.Fingerprint(path)
	if err != nil {
		return nil, err
	}
	return &metadata.Cached{
		Inner:   cargo,
		Cache:   r.Cache,
		Key:     cache.MetadataKey(fingerprint, append([]string{cargo.Binary}, cargo.Args()...)...),
		TTL:     opts.CacheTTL,
		Refresh: opts.Refresh,
	}, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// stage runs fn as one named stage, recording its duration and reporting it
// to the observability hooks.
func (r *Runner) stage(ctx context.Context, result *Result, stage observability.Stage, fn func() error) error {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage)
	start := time.Now()
	err := fn()
	d := time.Since(start)
	result.Stats.Timings[stage] = d
	hooks.OnStageComplete(ctx, stage, d, err)
	return err
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
