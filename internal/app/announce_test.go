package app

import (
	"testing"

	"inkpad/internal/dnd"
)

func TestDescribeSource(t *testing.T) {
	tests := []struct {
		name string
		data dnd.SourceData
		want string
	}{
		{"document with title", dnd.SourceData{Kind: dnd.SourceDocument, RelPath: "a/ideas.md", Title: "ideas"}, "ideas"},
		{"document without title", dnd.SourceData{Kind: dnd.SourceDocument, RelPath: "a/ideas.md"}, "ideas.md"},
		{"folder", dnd.SourceData{Kind: dnd.SourceFolder, RelPath: "projects/inbox"}, "folder inbox"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeSource(tt.data); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDescribeDestination(t *testing.T) {
	tests := []struct {
		name string
		dest dnd.Destination
		want string
	}{
		{"location root", dnd.Destination{LocationID: 1}, "location root"},
		{"folder", dnd.Destination{Kind: dnd.TargetFolder, FolderPath: "a/b"}, "folder b"},
		{"document no edge", dnd.Destination{Kind: dnd.TargetDocument, RelPath: "x/note.md"}, "note.md"},
		{"document top edge", dnd.Destination{Kind: dnd.TargetDocument, RelPath: "x/note.md", Edge: dnd.EdgeTop}, "position above note.md"},
		{"document bottom edge", dnd.Destination{Kind: dnd.TargetDocument, RelPath: "x/note.md", Edge: dnd.EdgeBottom}, "position below note.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeDestination(tt.dest); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
