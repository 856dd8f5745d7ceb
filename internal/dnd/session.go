package dnd

import (
	"image"

	"gioui.org/f32"
)

// SourceKind identifies what kind of entity a drag carries.
type SourceKind int

const (
	SourceDocument SourceKind = iota
	SourceFolder
	SourceTab
)

// SourceData identifies the entity being dragged.
type SourceData struct {
	Kind       SourceKind
	LocationID int64
	RelPath    string
	Title      string
}

// DragSource pairs the dragged data with the element that initiated the
// drag. It is created when the drag starts and is immutable for the
// session's lifetime.
type DragSource struct {
	Data    SourceData
	Element *Element
}

// DropTarget is one candidate destination currently under the pointer.
type DropTarget struct {
	Element *Element
	Data    Destination
}

// DragLocation is an immutable snapshot of where the drag currently is.
// Successive locations are compared by derived key, not by reference.
type DragLocation struct {
	DropTargets []DropTarget
	Input       Input
}

func (l DragLocation) key() string {
	k := ""
	for _, t := range l.DropTargets {
		k += t.Data.key() + ";"
	}
	return k
}

// ActiveDrag is the session: the one drag gesture currently in flight.
// At most one exists per Coordinator.
type ActiveDrag struct {
	Source   DragSource
	Current  DragLocation
	Previous DragLocation

	onDrop func(DropEvent)
}

// StartEvent is delivered to the source and to accepting monitors when a
// session opens.
type StartEvent struct {
	Source   DragSource
	Location DragLocation
}

// TargetChangeEvent is delivered to monitors when the session's resolved
// location changes by derived key.
type TargetChangeEvent struct {
	Source   DragSource
	Location DragLocation
	Previous DragLocation
}

// DropEvent is delivered exactly once per session, at finalization.
type DropEvent struct {
	Source   DragSource
	Location DragLocation
	Previous DragLocation
}

// Options configures a Coordinator.
type Options struct {
	// Tree is the hit-test tree rows publish into. Required.
	Tree *Tree
	// Viewport returns the current viewport bounds in pixels, used by the
	// coordinate normalizer. Required.
	Viewport func() image.Rectangle
	// Scale returns the device pixel ratio candidates are divided by. See
	// normalize.go for why this is configurable. Nil means 1.
	Scale func() float32
}

// Coordinator owns all engine state for one window: the singleton drag
// session, the registration tables, the monitor set, and the normalizer's
// last-known-point cache. All methods must be called from the event loop;
// the coordinator does no locking of its own.
type Coordinator struct {
	tree     *Tree
	viewport func() image.Rectangle
	scale    func() float32

	lastPoint *f32.Point

	session     *ActiveDrag
	draggables  map[*Element]*draggableReg
	dropTargets map[*Element]*dropTargetReg
	monitors    []*monitorReg
	nextMonitor int
}

// New creates a Coordinator over the given tree and viewport.
func New(opts Options) *Coordinator {
	return &Coordinator{
		tree:        opts.Tree,
		viewport:    opts.Viewport,
		scale:       opts.Scale,
		draggables:  make(map[*Element]*draggableReg),
		dropTargets: make(map[*Element]*dropTargetReg),
	}
}

// Session returns the active drag, or nil when no drag is in flight.
func (c *Coordinator) Session() *ActiveDrag { return c.session }

// Tree returns the coordinator's hit-test tree.
func (c *Coordinator) Tree() *Tree { return c.tree }

// Dispatch routes one platform drag event to the registration that owns the
// event's element. Events for unregistered elements are ignored.
func (c *Coordinator) Dispatch(ev *Event) {
	switch ev.Kind {
	case EventDragStart:
		c.dragStart(ev)
	case EventDragEnd:
		c.dragEnd(ev)
	case EventDragEnter:
		c.dragOver(ev, false)
	case EventDragOver:
		c.dragOver(ev, true)
	case EventDragLeave:
		c.dragLeave(ev)
	case EventDrop:
		c.drop(ev)
	}
}

func (c *Coordinator) normalizeInput(ev *Event) Input {
	p := c.Normalize(ev.X, ev.Y)
	return Input{ClientX: ev.X, ClientY: ev.Y, X: p.X, Y: p.Y, Alt: ev.Alt}
}

func (c *Coordinator) dragStart(ev *Event) {
	reg, ok := c.draggables[ev.Element]
	if !ok || c.session != nil {
		return
	}
	data := reg.getInitialData()
	if data == nil {
		// Nothing draggable on this element right now.
		return
	}
	loc := DragLocation{Input: c.normalizeInput(ev)}
	c.session = &ActiveDrag{
		Source:   DragSource{Data: *data, Element: ev.Element},
		Current:  loc,
		Previous: loc,
		onDrop:   reg.onDrop,
	}
	if ev.Transfer != nil {
		ev.Transfer.SetData(DragMarker, "")
		ev.Transfer.DropEffect = EffectMove
	}
	start := StartEvent{Source: c.session.Source, Location: loc}
	if reg.onDragStart != nil {
		reg.onDragStart(start)
	}
	for _, m := range c.monitorsFor(c.session.Source) {
		if m.onDragStart != nil {
			m.onDragStart(start)
		}
	}
}

func (c *Coordinator) dragEnd(ev *Event) {
	if c.session == nil || c.session.Source.Element != ev.Element {
		return
	}
	// Finalize with whatever location was last resolved; cancel and
	// drop-on-nothing share this path.
	c.finalize(c.session.Current)
}

func (c *Coordinator) dragOver(ev *Event, setEffect bool) {
	if c.session == nil {
		return
	}
	loc := c.resolveTargetLocation(ev)
	if len(loc.DropTargets) > 0 {
		if setEffect && ev.Transfer != nil {
			ev.Transfer.DropEffect = EffectMove
		}
		ev.Accept()
	}
	c.updateLocation(loc)
}

func (c *Coordinator) dragLeave(ev *Event) {
	if c.session == nil {
		return
	}
	if ev.Related != nil && ev.Element != nil && ev.Element.Contains(ev.Related) {
		// Still inside this target's subtree.
		return
	}
	c.updateLocation(DragLocation{Input: c.normalizeInput(ev)})
}

func (c *Coordinator) drop(ev *Event) {
	if c.session == nil {
		return
	}
	loc := c.resolveTargetLocation(ev)
	if len(loc.DropTargets) > 0 {
		ev.Accept()
	}
	c.finalize(loc)
}

// resolveTargetLocation recomputes the candidate location for an event on a
// registered drop target. A false CanDrop, a nil payload, or a payload of
// kind TargetNone all collapse to an empty location, which suppresses the
// platform's drop-accept affordance.
func (c *Coordinator) resolveTargetLocation(ev *Event) DragLocation {
	in := c.normalizeInput(ev)
	empty := DragLocation{Input: in}
	reg, ok := c.dropTargets[ev.Element]
	if !ok {
		return empty
	}
	if reg.canDrop != nil && !reg.canDrop(c.session.Source) {
		return empty
	}
	var data *Destination
	if reg.getData != nil {
		data = reg.getData(DropTargetArgs{
			Source:  c.session.Source,
			Element: ev.Element,
			Input:   in,
		})
	}
	if data == nil || data.Kind == TargetNone {
		return empty
	}
	return DragLocation{
		DropTargets: []DropTarget{{Element: ev.Element, Data: *data}},
		Input:       in,
	}
}

// updateLocation installs a freshly resolved location on the session. The
// comparison is by derived key: pointer movement within the same logical
// target refreshes the input snapshot without notifying monitors.
func (c *Coordinator) updateLocation(loc DragLocation) {
	s := c.session
	if loc.key() == s.Current.key() {
		s.Current = loc
		return
	}
	s.Previous = s.Current
	s.Current = loc
	change := TargetChangeEvent{Source: s.Source, Location: s.Current, Previous: s.Previous}
	for _, m := range c.monitorsFor(s.Source) {
		if m.onDropTargetChange != nil {
			m.onDropTargetChange(change)
		}
	}
}

// finalize ends the session with its final location. All monitor OnDrop
// callbacks run before the source's own OnDrop, then the session and the
// last-known-point cache are cleared.
func (c *Coordinator) finalize(final DragLocation) {
	s := c.session
	prev := s.Previous
	if final.key() != s.Current.key() {
		prev = s.Current
	}
	s.Current = final
	drop := DropEvent{Source: s.Source, Location: final, Previous: prev}
	for _, m := range c.monitorsFor(s.Source) {
		if m.onDrop != nil {
			m.onDrop(drop)
		}
	}
	if s.onDrop != nil {
		s.onDrop(drop)
	}
	c.session = nil
	c.lastPoint = nil
}

// clearSessionFor drops the session without notifications when the
// registration owning its source element goes away.
func (c *Coordinator) clearSessionFor(el *Element) {
	if c.session != nil && c.session.Source.Element == el {
		c.session = nil
		c.lastPoint = nil
	}
}
