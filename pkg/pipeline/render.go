package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/cargo-dep/pkg/depgraph"
	"github.com/matzehuels/cargo-dep/pkg/errors"
	graphio "github.com/matzehuels/cargo-dep/pkg/io"
	"github.com/matzehuels/cargo-dep/pkg/render/nodelink"
)

// Render writes the included part of a marked graph in opts.Format.
// Structured formats always carry edge kinds, so EdgeKinds only affects
// the drawn formats.
func Render(ctx context.Context, g *depgraph.Graph, ignore depgraph.IndexSet, opts Options) ([]byte, error) {
	nlOpts := nodelink.Options{PrunedEdges: opts.PrunedEdges, Kinds: opts.EdgeKinds}
	ioOpts := graphio.Options{PrunedEdges: opts.PrunedEdges}

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatDOT, "":
		data = []byte(nodelink.ToDOT(g, ignore, nlOpts))
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(g, ignore, nlOpts))
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, nodelink.ToDOT(g, ignore, nlOpts))
	case FormatJSON:
		var buf bytes.Buffer
		err = graphio.WriteJSON(g, ignore, ioOpts, &buf)
		data = buf.Bytes()
	case FormatYAML:
		var buf bytes.Buffer
		err = graphio.WriteYAML(g, ignore, ioOpts, &buf)
		data = buf.Bytes()
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", opts.Format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	return data, nil
}
