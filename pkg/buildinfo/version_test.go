package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "dev", "none", "unknown"
	fillFrom(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})
	if Version != "v0.3.1" || Commit != "abc123" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("got %s %s %s", Version, Commit, Date)
	}
}

func TestFillFromKeepsLdflags(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "v1.0.0", "deadbeef", "unknown"
	fillFrom(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	})
	if Version != "v1.0.0" || Commit != "deadbeef" {
		t.Errorf("ldflags values were overwritten: %s %s", Version, Commit)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
