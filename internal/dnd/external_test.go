package dnd

import (
	"testing"

	"gioui.org/f32"
)

func TestHandleExternalDrag_DropResolves(t *testing.T) {
	c, els := sidebarFixture()

	r := c.HandleExternalDrag(ExternalDragEvent{
		Kind:     ExternalDrop,
		Paths:    []string{"/tmp/import.md"},
		Position: f32.Pt(100, 60),
	})
	if r == nil {
		t.Fatal("expected a destination")
	}
	if r.Element != els["folder"] {
		t.Errorf("expected the folder row, got %+v", r.Destination)
	}
}

func TestHandleExternalDrag_DropUsesCachedPosition(t *testing.T) {
	c, _ := sidebarFixture()

	// Over events seed the cache; a drop with no position falls back to it.
	if r := c.HandleExternalDrag(ExternalDragEvent{Kind: ExternalOver, Position: f32.Pt(100, 90)}); r != nil {
		t.Fatalf("over must not resolve, got %+v", r)
	}
	r := c.HandleExternalDrag(ExternalDragEvent{Kind: ExternalDrop})
	if r == nil {
		t.Fatal("expected the cached position to resolve")
	}
	if r.Destination.Kind != TargetDocument {
		t.Errorf("expected the document row, got %+v", r.Destination)
	}
}

func TestHandleExternalDrag_CancelClearsCache(t *testing.T) {
	c, _ := sidebarFixture()

	c.HandleExternalDrag(ExternalDragEvent{Kind: ExternalOver, Position: f32.Pt(100, 90)})
	c.HandleExternalDrag(ExternalDragEvent{Kind: ExternalCancel})
	if r := c.HandleExternalDrag(ExternalDragEvent{Kind: ExternalDrop}); r != nil {
		t.Errorf("expected nil after cancel, got %+v", r)
	}
}
