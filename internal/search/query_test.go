package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"inkpad/internal/workspace"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input string
		want  []Directive
	}{
		{"foo", []Directive{{Type: DirTitle, Value: "foo"}}},
		{"contents:hello", []Directive{{Type: DirContents, Value: "hello"}}},
		{"folder:archive/", []Directive{{Type: DirFolder, Value: "archive"}}},
		{"tag:#work", []Directive{{Type: DirTag, Value: "work"}}},
		{
			"plan contents:\"q3 goals\"",
			[]Directive{
				{Type: DirTitle, Value: "plan"},
				{Type: DirContents, Value: "q3 goals"},
			},
		},
		{"", nil},
	}

	for _, tc := range testCases {
		q := Parse(tc.input)
		if len(q.Directives) != len(tc.want) {
			t.Errorf("Parse(%q): expected %d directives, got %d", tc.input, len(tc.want), len(q.Directives))
			continue
		}
		for i, d := range q.Directives {
			if d != tc.want[i] {
				t.Errorf("Parse(%q)[%d]: expected %+v, got %+v", tc.input, i, tc.want[i], d)
			}
		}
	}
}

func TestMatcherTitle(t *testing.T) {
	testCases := []struct {
		query   string
		relPath string
		want    bool
	}{
		{"meet", "notes/meeting.md", true},
		{"meet*", "notes/meeting.md", true},
		{"*ing", "notes/meeting.md", true},
		{"budget", "notes/meeting.md", false},
		{"folder:notes meet", "notes/meeting.md", true},
		{"folder:archive meet", "notes/meeting.md", false},
		{"folder:notes", "notes/deep/file.md", true},
	}

	for _, tc := range testCases {
		m := NewMatcher(Parse(tc.query))
		if got := m.Match(tc.relPath, ""); got != tc.want {
			t.Errorf("query %q against %q: expected %v, got %v", tc.query, tc.relPath, tc.want, got)
		}
	}
}

func TestMatcherContents(t *testing.T) {
	m := NewMatcher(Parse("contents:needle tag:work"))
	m.SetContentFunc(func(absPath string) (string, error) {
		if absPath == "has" {
			return "a Needle in here #work", nil
		}
		return "nothing", nil
	})

	if !m.Match("a.md", "has") {
		t.Error("expected content and tag match")
	}
	if m.Match("b.md", "miss") {
		t.Error("expected no match")
	}
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	for rel, content := range map[string]string{
		"alpha.md":        "first note",
		"notes/beta.md":   "the needle is here",
		"notes/gamma.txt": "nothing",
	} {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	snap, err := workspace.IndexLocation(root)
	if err != nil {
		t.Fatal(err)
	}

	roots := map[int64]string{1: root}
	snaps := map[int64]*workspace.Snapshot{1: snap}

	results, err := Run(context.Background(), Parse("contents:needle"), roots, snaps)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].RelPath != "notes/beta.md" {
		t.Errorf("unexpected results %+v", results)
	}

	results, err = Run(context.Background(), Parse(""), roots, snaps)
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Errorf("empty query must return nothing, got %+v", results)
	}
}
