package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cargo-dep/pkg/depgraph"
)

// ClusterLabel is the label of the subgraph holding workspace members.
const ClusterLabel = "Workspace Members"

// Options configures node-link diagram rendering.
type Options struct {
	// PrunedEdges keeps edges whose target was excluded. Graphviz then draws
	// the target as a bare, unlabeled node.
	PrunedEdges bool

	// Kinds styles dev-dependency edges dashed and build-dependency edges
	// dotted. Normal edges are unchanged.
	Kinds bool
}

// ToDOT converts the included part of g to Graphviz DOT.
//
// Workspace members are drawn inside a cluster, other packages outside it,
// followed by one edge per resolved dependency of every drawn package.
// Node names are "N<index>" so packages sharing a name stay distinct. Nodes
// are emitted in index order and edges in declaration order, so the output
// depends only on the graph state.
func ToDOT(g *depgraph.Graph, ignore depgraph.IndexSet, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  subgraph cluster0 {\n")
	fmt.Fprintf(&buf, "  label = %q;\n", ClusterLabel)
	for i := range g.Packages {
		if p := &g.Packages[i]; p.IsMember && drawn(p, i, ignore) {
			fmt.Fprintf(&buf, "    N%d [label=%q];\n", i, p.Label())
		}
	}
	buf.WriteString("  }\n")

	for i := range g.Packages {
		if p := &g.Packages[i]; !p.IsMember && drawn(p, i, ignore) {
			fmt.Fprintf(&buf, "  N%d [label=%q];\n", i, p.Label())
		}
	}

	for i := range g.Packages {
		p := &g.Packages[i]
		if !drawn(p, i, ignore) {
			continue
		}
		for _, d := range p.Dependencies {
			if d.Index == nil {
				continue
			}
			if ignore.Has(*d.Index) && !opts.PrunedEdges {
				continue
			}
			fmt.Fprintf(&buf, "  N%d -> N%d%s;\n", i, *d.Index, fmtEdgeAttrs(d, opts))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// WriteDOT writes ToDOT's output to w.
func WriteDOT(w io.Writer, g *depgraph.Graph, ignore depgraph.IndexSet, opts Options) error {
	_, err := io.WriteString(w, ToDOT(g, ignore, opts))
	return err
}

func drawn(p *depgraph.Package, i int, ignore depgraph.IndexSet) bool {
	return p.Include && !ignore.Has(i)
}

func fmtEdgeAttrs(d depgraph.Dependency, opts Options) string {
	if !opts.Kinds {
		return ""
	}
	switch d.Kind {
	case depgraph.KindDevelopment:
		return " [style=dashed]"
	case depgraph.KindBuild:
		return " [style=dotted]"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized <svg> tag with one sized in
// user units so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
