package dnd

import (
	"image"
	"testing"
)

func TestElementFromPoint(t *testing.T) {
	tree := NewTree()
	outer := tree.Root().NewChild(tree)
	outer.Bounds = image.Rect(0, 0, 100, 100)
	inner := outer.NewChild(tree)
	inner.Bounds = image.Rect(10, 10, 50, 50)

	if got := tree.ElementFromPoint(20, 20); got != inner {
		t.Errorf("expected inner element, got %+v", got)
	}
	if got := tree.ElementFromPoint(80, 80); got != outer {
		t.Errorf("expected outer element, got %+v", got)
	}
	if got := tree.ElementFromPoint(200, 200); got != nil {
		t.Errorf("expected nil outside all bounds, got %+v", got)
	}
}

func TestElementFromPointLaterSiblingWins(t *testing.T) {
	tree := NewTree()
	first := tree.Root().NewChild(tree)
	first.Bounds = image.Rect(0, 0, 100, 30)
	second := tree.Root().NewChild(tree)
	second.Bounds = image.Rect(0, 0, 100, 30)

	if got := tree.ElementFromPoint(50, 15); got != second {
		t.Errorf("expected later sibling, got first=%v", got == first)
	}
}

func TestElementFromPointEdgeExclusive(t *testing.T) {
	tree := NewTree()
	el := tree.Root().NewChild(tree)
	el.Bounds = image.Rect(0, 0, 100, 28)

	if got := tree.ElementFromPoint(0, 0); got != el {
		t.Errorf("min corner should hit")
	}
	if got := tree.ElementFromPoint(100, 28); got != nil {
		t.Errorf("max corner should miss, got %+v", got)
	}
}

func TestRemoveDetaches(t *testing.T) {
	tree := NewTree()
	el := tree.Root().NewChild(tree)
	el.Bounds = image.Rect(0, 0, 10, 10)

	el.Remove()
	if got := tree.ElementFromPoint(5, 5); got != nil {
		t.Errorf("removed element still hit-testable: %+v", got)
	}
	// Removing twice is a no-op.
	el.Remove()
	if el.Parent() != nil {
		t.Errorf("expected nil parent after remove")
	}
}

func TestElementByID(t *testing.T) {
	tree := NewTree()
	a := tree.Root().NewChild(tree)
	a.ID = "a"
	b := a.NewChild(tree)
	b.ID = "b"

	if got := tree.ElementByID("b"); got != b {
		t.Errorf("expected b, got %+v", got)
	}
	if got := tree.ElementByID("missing"); got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestContains(t *testing.T) {
	tree := NewTree()
	a := tree.Root().NewChild(tree)
	b := a.NewChild(tree)
	c := tree.Root().NewChild(tree)

	if !a.Contains(a) {
		t.Errorf("element should contain itself")
	}
	if !a.Contains(b) {
		t.Errorf("parent should contain child")
	}
	if a.Contains(c) {
		t.Errorf("sibling should not be contained")
	}
}

func TestAttrs(t *testing.T) {
	tree := NewTree()
	el := tree.Root().NewChild(tree)

	el.SetAttr(AttrLocationID, "3")
	if v, ok := el.Attr(AttrLocationID); !ok || v != "3" {
		t.Errorf("expected 3, got %q ok=%v", v, ok)
	}
	el.DelAttr(AttrLocationID)
	if el.HasAttr(AttrLocationID) {
		t.Errorf("attribute should be gone after DelAttr")
	}
}
