package dnd

import "gioui.org/f32"

// HandleExternalDrag consumes one event from the window-level stream
// carrying an OS file drag. Enter and over refresh the normalizer's
// pointer cache so a drop whose position the platform omits can still
// resolve; cancel clears the cache. Drop events resolve through
// ResolveDestinationFromPointer; the result is nil when nothing under
// the pointer qualifies, and nil for every non-drop event.
func (c *Coordinator) HandleExternalDrag(ev ExternalDragEvent) *Resolved {
	switch ev.Kind {
	case ExternalEnter, ExternalOver:
		c.Normalize(ev.Position.X, ev.Position.Y)
	case ExternalDrop:
		var p f32.Point
		switch {
		case ev.Position != (f32.Point{}):
			p = c.Normalize(ev.Position.X, ev.Position.Y)
		case c.lastPoint != nil:
			p = *c.lastPoint
		default:
			return nil
		}
		c.lastPoint = nil
		return c.ResolveDestinationFromPointer(p.X, p.Y)
	case ExternalCancel:
		c.lastPoint = nil
	}
	return nil
}
