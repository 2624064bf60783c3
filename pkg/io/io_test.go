package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/cargo-dep/pkg/depgraph"
	"github.com/matzehuels/cargo-dep/pkg/errors"
	"github.com/matzehuels/cargo-dep/pkg/metadata"
)

func testGraph(t *testing.T, excludes ...string) (*depgraph.Graph, depgraph.IndexSet) {
	t.Helper()
	g, err := depgraph.Build(
		[]metadata.Package{
			{Name: "app", Version: "0.1.0", ID: "app", Dependencies: []metadata.Dependency{
				{Name: "log", Req: "^0.4"},
				{Name: "cc", Kind: "build", Req: "^1"},
			}},
			{Name: "log", Version: "0.4.21", ID: "log", Source: "registry+https://github.com/rust-lang/crates.io-index",
				Dependencies: []metadata.Dependency{{Name: "serde", Optional: true}}},
			{Name: "cc", Version: "1.0.90", ID: "cc"},
			{Name: "serde", Version: "1.0.197", ID: "serde"},
		},
		[]metadata.Member{{Name: "app", Version: semver.MustParse("0.1.0")}},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Resolve([]metadata.Node{
		{ID: "app", Dependencies: []string{"log", "cc"}},
		{ID: "log", Dependencies: []string{"serde"}},
	}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	sel, err := depgraph.Select(g, depgraph.Filter{Excludes: excludes})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	g.Mark(sel.Roots, sel.Ignored)
	return g, sel.Ignored
}

func TestNewDocument(t *testing.T) {
	g, ignored := testGraph(t)
	doc := NewDocument(g, ignored, Options{})

	if len(doc.Nodes) != 4 {
		t.Fatalf("nodes = %d, want 4", len(doc.Nodes))
	}
	if !doc.Nodes[0].Member || doc.Nodes[1].Member {
		t.Errorf("member flags = %v, %v", doc.Nodes[0].Member, doc.Nodes[1].Member)
	}
	if doc.Nodes[1].Version != "0.4.21" {
		t.Errorf("version = %q, want 0.4.21", doc.Nodes[1].Version)
	}

	want := []Edge{
		{From: 0, To: 1, Kind: "normal", Req: "^0.4"},
		{From: 0, To: 2, Kind: "build", Req: "^1"},
		{From: 1, To: 3, Kind: "normal", Optional: true},
	}
	if len(doc.Edges) != len(want) {
		t.Fatalf("edges = %+v, want %+v", doc.Edges, want)
	}
	for i := range want {
		if doc.Edges[i] != want[i] {
			t.Errorf("edge %d = %+v, want %+v", i, doc.Edges[i], want[i])
		}
	}
}

func TestNewDocument_Excluded(t *testing.T) {
	g, ignored := testGraph(t, "log")
	doc := NewDocument(g, ignored, Options{})

	for _, n := range doc.Nodes {
		if n.Name == "log" || n.Name == "serde" {
			t.Errorf("unexpected node %s", n.Name)
		}
	}
	for _, e := range doc.Edges {
		if e.To == 1 {
			t.Errorf("edge into excluded package: %+v", e)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	g, ignored := testGraph(t)

	var buf bytes.Buffer
	if err := WriteJSON(g, ignored, Options{}, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "build"`) {
		t.Errorf("missing build edge:\n%s", buf.String())
	}

	doc, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(doc.Nodes) != 4 || len(doc.Edges) != 3 {
		t.Errorf("got %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	g, ignored := testGraph(t)

	var buf bytes.Buffer
	if err := WriteYAML(g, ignored, Options{}, &buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.Contains(buf.String(), "member: true") {
		t.Errorf("missing member flag:\n%s", buf.String())
	}

	doc, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	if doc.Nodes[0].Name != "app" || doc.Edges[2].Optional != true {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestNewDocument_PrunedEdges(t *testing.T) {
	g, ignored := testGraph(t, "log")

	plain := NewDocument(g, ignored, Options{})
	if len(plain.Nodes) != 2 || len(plain.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges, want 2, 1", len(plain.Nodes), len(plain.Edges))
	}

	doc := NewDocument(g, ignored, Options{PrunedEdges: true})
	if len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
		t.Fatalf("got %d nodes, %d edges, want 3, 2", len(doc.Nodes), len(doc.Edges))
	}
	if doc.Nodes[1].Name != "log" || !doc.Nodes[1].Excluded {
		t.Errorf("pruned target = %+v, want excluded log", doc.Nodes[1])
	}
	if doc.Nodes[0].Excluded || doc.Nodes[2].Excluded {
		t.Error("only the pruned target should be excluded")
	}
	if err := doc.validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func writeDoc(t *testing.T, name string, write func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImport(t *testing.T) {
	g, ignored := testGraph(t)
	for _, name := range []string{"deps.json", "deps.yaml", "deps.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeDoc(t, name, func(b *bytes.Buffer) error {
				if filepath.Ext(name) == ".json" {
					return WriteJSON(g, ignored, Options{}, b)
				}
				return WriteYAML(g, ignored, Options{}, b)
			})
			doc, err := Import(path)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if len(doc.Nodes) != 4 || len(doc.Edges) != 3 {
				t.Errorf("got %d nodes, %d edges", len(doc.Nodes), len(doc.Edges))
			}
		})
	}

	if _, err := Import(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	bad := writeDoc(t, "bad.json", func(b *bytes.Buffer) error {
		_, err := b.WriteString(`{"nodes": [`)
		return err
	})
	if _, err := Import(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Import(bad) error = %v, want INVALID_INPUT", err)
	}
}

func TestDocumentGraph(t *testing.T) {
	g, ignored := testGraph(t, "log")
	doc := NewDocument(g, ignored, Options{PrunedEdges: true})

	rebuilt, excluded, err := doc.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if rebuilt.Len() != 3 {
		t.Fatalf("packages = %d, want 3", rebuilt.Len())
	}
	if got := excluded.Sorted(); len(got) != 1 || rebuilt.Packages[got[0]].Name != "log" {
		t.Errorf("excluded = %v, want log", got)
	}

	app := rebuilt.Packages[0]
	if !app.IsMember || app.Include {
		t.Errorf("app = %+v, want an unmarked member", app)
	}
	if len(app.Dependencies) != 2 {
		t.Fatalf("app deps = %d, want 2", len(app.Dependencies))
	}
	cc := app.Dependencies[1]
	if cc.Index == nil || rebuilt.Packages[*cc.Index].Name != "cc" || cc.Kind != depgraph.KindBuild {
		t.Errorf("cc edge = %+v", cc)
	}

	included := rebuilt.Mark(rebuilt.Roots(nil), excluded)
	if got := included.Sorted(); len(got) != 2 {
		t.Errorf("included = %v, want app and cc", got)
	}
}

func TestDocumentGraph_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		code errors.Code
	}{
		{"version", Document{Nodes: []Node{{Index: 0, Name: "a", Version: "1.0"}}}, errors.ErrCodeInvalidVersion},
		{"kind", Document{
			Nodes: []Node{{Index: 0, Name: "a", Version: "1.0.0"}},
			Edges: []Edge{{From: 0, To: 0, Kind: "weird"}},
		}, errors.ErrCodeInvalidInput},
		{"dangling", Document{
			Nodes: []Node{{Index: 0, Name: "a", Version: "1.0.0"}},
			Edges: []Edge{{From: 0, To: 3, Kind: "normal"}},
		}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := tt.doc.Graph(); !errors.Is(err, tt.code) {
				t.Errorf("Graph() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"nodes": [`},
		{"duplicate index", `{"nodes": [{"index": 1}, {"index": 1}], "edges": []}`},
		{"dangling edge", `{"nodes": [{"index": 0}], "edges": [{"from": 0, "to": 5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
