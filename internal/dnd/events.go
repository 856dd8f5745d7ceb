package dnd

import "gioui.org/f32"

// EventKind identifies the platform drag events the engine consumes.
type EventKind int

const (
	EventDragStart EventKind = iota
	EventDragEnd
	EventDragEnter
	EventDragOver
	EventDragLeave
	EventDrop
)

// Effect is the drop-effect indicator shown to the user while dragging.
type Effect int

const (
	EffectNone Effect = iota
	EffectMove
)

// DragMarker is the reserved transfer key the engine writes on drag start
// so it can tell its own in-app drags apart from arbitrary external drags.
const DragMarker = "application/x-inkpad-drag"

// Transfer models the native drag data transfer attached to a gesture:
// typed data entries plus the drop-effect indicator.
type Transfer struct {
	DropEffect Effect

	data map[string]string
}

// SetData records a typed entry on the transfer.
func (t *Transfer) SetData(kind, value string) {
	if t.data == nil {
		t.data = make(map[string]string)
	}
	t.data[kind] = value
}

// HasData reports whether the transfer carries an entry of the given kind.
func (t *Transfer) HasData(kind string) bool {
	_, ok := t.data[kind]
	return ok
}

// Event is one platform drag event routed through the Coordinator. X and Y
// are raw coordinates as reported by the platform; the engine normalizes
// them before any comparison.
type Event struct {
	Kind    EventKind
	Element *Element
	// Related is the element the pointer moved to, set on drag-leave.
	Related  *Element
	X, Y     float32
	Alt      bool
	Transfer *Transfer

	accepted bool
}

// Accept suppresses the event's default handling, permitting a drop. The
// engine accepts an event only when a non-empty location was resolved.
func (e *Event) Accept() { e.accepted = true }

// Accepted reports whether the event was accepted.
func (e *Event) Accepted() bool { return e.accepted }

// Input is a normalized pointer snapshot stored on drag locations. ClientX
// and ClientY preserve the raw event coordinates; X and Y are normalized
// into the viewport coordinate space.
type Input struct {
	ClientX float32
	ClientY float32
	X       float32
	Y       float32
	Alt     bool
}

// Point returns the normalized position.
func (in Input) Point() f32.Point { return f32.Pt(in.X, in.Y) }

// ExternalDragKind discriminates window-level external drag events.
type ExternalDragKind int

const (
	ExternalEnter ExternalDragKind = iota
	ExternalOver
	ExternalDrop
	ExternalCancel
)

// ExternalDragEvent is one event from the window-level stream carrying an
// OS file drag. Consumers resolve Position through
// ResolveDestinationFromPointer; element-level drop-target wiring is not
// involved.
type ExternalDragEvent struct {
	Kind     ExternalDragKind
	Paths    []string
	Position f32.Point
}
