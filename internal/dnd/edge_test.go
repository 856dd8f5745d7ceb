package dnd

import (
	"image"
	"testing"
)

func edgeTestElement(t *Tree) *Element {
	e := t.Root().NewChild(t)
	e.Bounds = image.Rect(0, 100, 200, 140)
	return e
}

func TestAttachClosestEdge(t *testing.T) {
	tree := NewTree()
	el := edgeTestElement(tree)
	both := []Edge{EdgeTop, EdgeBottom}

	testCases := []struct {
		name     string
		y        float32
		allowed  []Edge
		expected Edge
	}{
		{"above midpoint", 105, both, EdgeTop},
		{"at midpoint counts as top", 120, both, EdgeTop},
		{"below midpoint", 135, both, EdgeBottom},
		{"top not in allowed set", 105, []Edge{EdgeBottom}, EdgeNone},
		{"bottom not in allowed set", 135, []Edge{EdgeTop}, EdgeNone},
		{"empty allowed set", 105, nil, EdgeNone},
	}

	for _, tc := range testCases {
		d := AttachClosestEdge(Destination{LocationID: 1}, AttachClosestEdgeArgs{
			Input:        Input{X: 50, Y: tc.y},
			Element:      el,
			AllowedEdges: tc.allowed,
		})
		if d.Edge != tc.expected {
			t.Errorf("%s: expected edge %v, got %v", tc.name, tc.expected, d.Edge)
		}
		if d.LocationID != 1 {
			t.Errorf("%s: payload fields must pass through", tc.name)
		}
	}
}

// With no allowed edges, attach must be a no-op observable through extract.
func TestAttachClosestEdge_NoAllowedEdgesIsNoop(t *testing.T) {
	tree := NewTree()
	el := edgeTestElement(tree)

	d := Destination{LocationID: 3, FolderPath: "notes", Kind: TargetFolder}
	out := AttachClosestEdge(d, AttachClosestEdgeArgs{
		Input:   Input{X: 10, Y: 105},
		Element: el,
	})
	if ExtractClosestEdge(out) != ExtractClosestEdge(d) {
		t.Errorf("expected extract to be unchanged, got %v", ExtractClosestEdge(out))
	}
	if out != d {
		t.Errorf("expected payload unchanged, got %+v", out)
	}
}

func TestExtractClosestEdge_Malformed(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected Edge
	}{
		{"nil", nil, EdgeNone},
		{"string", "top", EdgeNone},
		{"int", 42, EdgeNone},
		{"nil destination pointer", (*Destination)(nil), EdgeNone},
		{"destination value", Destination{Edge: EdgeBottom}, EdgeBottom},
		{"destination pointer", &Destination{Edge: EdgeTop}, EdgeTop},
		{"bare edge", EdgeBottom, EdgeBottom},
	}

	for _, tc := range testCases {
		if got := ExtractClosestEdge(tc.value); got != tc.expected {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}
