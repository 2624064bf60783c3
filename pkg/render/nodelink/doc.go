// Package nodelink renders the selected dependency graph as a node-link
// diagram.
//
// # DOT Format
//
// [ToDOT] produces Graphviz DOT source with three regions, in order:
//
//	digraph dependencies {
//	  subgraph cluster0 {
//	  label = "Workspace Members";
//	    N0 [label="app 0.1.0"];
//	  }
//	  N2 [label="serde 1.0.197"];
//	  N0 -> N2;
//	}
//
// Only packages with Include set are drawn. Edges leave every drawn package;
// edges into excluded packages are dropped unless [Options.PrunedEdges] is set.
//
// # Images
//
// [RenderSVG] and [RenderPNG] lay the DOT out in-process with
// [github.com/goccy/go-graphviz], so no Graphviz installation is needed:
//
//	dot := nodelink.ToDOT(g, ignored, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
package nodelink
