// Package dnd implements the drag-and-drop coordination engine used by the
// workspace sidebar. It layers a session/observer protocol on top of raw
// drag events: a single process-wide drag session, monitor notifications on
// drop-target transitions, geometric destination resolution with priority
// and area tie-breaks, pointer coordinate normalization, and assistive
// technology announcements.
//
// Gio has no retained element tree, so the engine owns one: row widgets
// publish their screen bounds and data attributes into a Tree each frame,
// and hit-testing runs against that tree instead of the scene graph.
package dnd

import "image"

// Well-known attribute keys written by sidebar row widgets. They mirror the
// attribute contract the rows expose to the engine; the engine only reads.
const (
	AttrLocationID       = "data-location-id"
	AttrDocumentPath     = "data-document-path"
	AttrFolderPath       = "data-folder-path"
	AttrDropFolderRow    = "data-drop-folder-row"
	AttrDropDocumentRow  = "data-drop-document-row"
	AttrDropLocationRoot = "data-drop-location-root"
)

// Element is one node in the hit-test tree. Elements are created by the
// widgets that own them and stay alive across frames; only the bounds are
// expected to change frame to frame.
type Element struct {
	ID     string
	Bounds image.Rectangle
	Text   string

	attrs    map[string]string
	parent   *Element
	children []*Element
	order    int
}

// Tree is the hit-test tree. A single Tree is shared by all registrations
// belonging to one window.
type Tree struct {
	root      *Element
	nextOrder int
}

// NewTree returns an empty tree with a root element spanning no area.
func NewTree() *Tree {
	t := &Tree{}
	t.root = &Element{order: 0}
	t.nextOrder = 1
	return t
}

// Root returns the tree's root element.
func (t *Tree) Root() *Element { return t.root }

// NewChild creates an element attached under e. Children keep the order in
// which they were created; that order is the traversal order used for
// hit-test tie-breaking.
func (e *Element) NewChild(t *Tree) *Element {
	c := &Element{parent: e, order: t.nextOrder}
	t.nextOrder++
	e.children = append(e.children, c)
	return c
}

// Remove detaches e from its parent. Removing an already detached element is
// a no-op.
func (e *Element) Remove() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// SetAttr sets a data attribute on the element.
func (e *Element) SetAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
}

// DelAttr removes a data attribute.
func (e *Element) DelAttr(key string) {
	delete(e.attrs, key)
}

// Attr returns the value of a data attribute and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// HasAttr reports whether the attribute is present, regardless of value.
func (e *Element) HasAttr(key string) bool {
	_, ok := e.attrs[key]
	return ok
}

// Parent returns the element's parent, or nil for the root and for detached
// elements.
func (e *Element) Parent() *Element { return e.parent }

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// containsPoint reports whether the viewport point lies inside the
// element's bounds. The right and bottom edges are exclusive, matching
// image.Rectangle semantics.
func (e *Element) containsPoint(x, y float32) bool {
	return x >= float32(e.Bounds.Min.X) && x < float32(e.Bounds.Max.X) &&
		y >= float32(e.Bounds.Min.Y) && y < float32(e.Bounds.Max.Y)
}

// area returns the element's bounds area in square pixels.
func (e *Element) area() int {
	return e.Bounds.Dx() * e.Bounds.Dy()
}

// Walk visits every element in document (creation) order, depth first. The
// visit stops early if fn returns false.
func (t *Tree) Walk(fn func(*Element) bool) {
	walk(t.root, fn)
}

func walk(e *Element, fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// ElementByID returns the first element with the given id in document
// order, or nil.
func (t *Tree) ElementByID(id string) *Element {
	var found *Element
	t.Walk(func(e *Element) bool {
		if e.ID == id && e != t.root {
			found = e
			return false
		}
		return true
	})
	return found
}

// ElementFromPoint returns the deepest element whose bounds contain the
// point. Among overlapping siblings the later sibling wins, matching paint
// order. Returns nil when no element contains the point.
func (t *Tree) ElementFromPoint(x, y float32) *Element {
	return fromPoint(t.root, x, y)
}

func fromPoint(e *Element, x, y float32) *Element {
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := fromPoint(e.children[i], x, y); hit != nil {
			return hit
		}
	}
	if e.parent == nil {
		// The root carries no geometry of its own.
		return nil
	}
	if e.containsPoint(x, y) {
		return e
	}
	return nil
}
