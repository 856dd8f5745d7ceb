package ui

import (
	"image"
	"io"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// DragItem handles both click and drag gestures on one sidebar row. It
// combines gesture.Click for selection and gesture.Drag for drag
// operations with a drag shadow.
//
// gesture.Drag has a built-in movement threshold before it activates, so
// a press-release without movement reports a click and never a drag.
type DragItem struct {
	// Type is the MIME type announced for drag-and-drop transfers.
	Type string

	click gesture.Click
	drag  gesture.Drag

	clickPos f32.Point // position where the press happened
	dragPos  f32.Point // current drag offset from clickPos

	pid    pointer.ID
	active bool // movement threshold exceeded
}

// DragPhase describes one step of a drag gesture.
type DragPhase int

const (
	DragStarted DragPhase = iota
	DragMoved
	DragDropped
	DragCanceled
)

// DragEvent is one drag gesture step. Pos is relative to the row's
// origin.
type DragEvent struct {
	Phase DragPhase
	Pos   f32.Point
	Alt   bool
}

// ClickEvent is a completed click with modifier information.
type ClickEvent struct {
	Position  image.Point
	Modifiers key.Modifiers
	NumClicks int
}

// Dragging reports whether a drag is in progress.
func (d *DragItem) Dragging() bool {
	return d.drag.Dragging() && d.active
}

// Hovered reports whether a pointer is inside the row.
func (d *DragItem) Hovered() bool {
	return d.click.Hovered()
}

// Update drains transfer data requests. Call before Layout; when a
// request came in, answer it with Offer.
func (d *DragItem) Update(gtx layout.Context) (mime string, requested bool) {
	for {
		ev, ok := gtx.Event(transfer.SourceFilter{Target: d, Type: d.Type})
		if !ok {
			break
		}
		if e, ok := ev.(transfer.RequestEvent); ok {
			return e.Type, true
		}
	}
	return "", false
}

// Offer provides data for a drag-and-drop transfer.
func (d *DragItem) Offer(gtx layout.Context, mime string, data io.ReadCloser) {
	gtx.Execute(transfer.OfferCmd{Tag: d, Type: mime, Data: data})
}

// Layout renders the row, processes gestures, and reports what happened
// this frame. The shadow widget, when non-nil, is drawn at the drag
// offset while a drag is active.
func (d *DragItem) Layout(gtx layout.Context, w, shadow layout.Widget) (layout.Dimensions, []DragEvent, *ClickEvent) {
	if !gtx.Enabled() {
		return w(gtx), nil, nil
	}

	var drags []DragEvent
	var clicked *ClickEvent

	// Events are delivered against the previous frame's hit area, so
	// process before layout.
	for {
		e, ok := d.click.Update(gtx.Source)
		if !ok {
			break
		}
		switch e.Kind {
		case gesture.KindClick:
			if !d.active {
				clicked = &ClickEvent{
					Position:  e.Position,
					Modifiers: e.Modifiers,
					NumClicks: e.NumClicks,
				}
			}
		case gesture.KindCancel:
			d.active = false
		}
	}

	for {
		e, ok := d.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		alt := e.Modifiers.Contain(key.ModAlt)
		switch e.Kind {
		case pointer.Press:
			d.clickPos = e.Position
			d.dragPos = f32.Point{}
			d.pid = e.PointerID
			d.active = false
		case pointer.Drag:
			if e.PointerID != d.pid {
				break
			}
			if !d.active {
				d.active = true
				drags = append(drags, DragEvent{Phase: DragStarted, Pos: d.clickPos, Alt: alt})
			}
			d.dragPos = e.Position.Sub(d.clickPos)
			drags = append(drags, DragEvent{Phase: DragMoved, Pos: e.Position, Alt: alt})
		case pointer.Release:
			if d.active {
				drags = append(drags, DragEvent{Phase: DragDropped, Pos: e.Position, Alt: alt})
			}
			d.active = false
		case pointer.Cancel:
			if d.active {
				drags = append(drags, DragEvent{Phase: DragCanceled, Pos: e.Position, Alt: alt})
			}
			d.active = false
		}
	}

	dims := w(gtx)

	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
	d.click.Add(gtx.Ops)
	d.drag.Add(gtx.Ops)
	event.Op(gtx.Ops, d)

	if shadow != nil && d.Dragging() {
		rec := op.Record(gtx.Ops)
		op.Offset(d.dragPos.Round()).Add(gtx.Ops)
		shadow(gtx)
		op.Defer(gtx.Ops, rec.Stop())
	}

	return dims, drags, clicked
}
