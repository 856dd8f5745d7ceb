package dnd

import "gioui.org/f32"

// Coordinate normalization.
//
// Depending on the embedding context and zoom level, drag events may report
// coordinates that are either raw or already divided by the device pixel
// ratio, and nothing on the event says which. Normalize is a compatibility
// shim, not ground truth: it computes both candidates, keeps whichever one
// lands inside the viewport, and prefers the raw reading when both do. The
// scale factor is injected through Options so hosts that know their
// reporting behavior can pin it to 1 and make the shim inert.

func (c *Coordinator) scaleFactor() float32 {
	if c.scale == nil {
		return 1
	}
	if s := c.scale(); s > 0 {
		return s
	}
	return 1
}

// Normalize maps raw event coordinates into the viewport coordinate space.
// When neither candidate is plausible it falls back to the last known valid
// point, or clamps the raw reading into the viewport. The chosen point
// becomes the fallback for subsequent calls; the cache is reset when the
// session ends.
func (c *Coordinator) Normalize(rawX, rawY float32) f32.Point {
	vp := c.viewport()
	vmin := f32.Pt(float32(vp.Min.X), float32(vp.Min.Y))
	vmax := f32.Pt(float32(vp.Max.X), float32(vp.Max.Y))
	within := func(p f32.Point) bool {
		return p.X >= vmin.X && p.X < vmax.X && p.Y >= vmin.Y && p.Y < vmax.Y
	}

	direct := f32.Pt(rawX, rawY)
	s := c.scaleFactor()
	scaled := f32.Pt(rawX/s, rawY/s)

	var pick f32.Point
	switch {
	case within(direct):
		// When both candidates are plausible the raw reading wins.
		pick = direct
	case within(scaled):
		pick = scaled
	default:
		if c.lastPoint != nil {
			return *c.lastPoint
		}
		pick = clampPoint(direct, vmin, vmax)
	}
	p := pick
	c.lastPoint = &p
	return pick
}

func clampPoint(p, min, max f32.Point) f32.Point {
	if p.X < min.X {
		p.X = min.X
	}
	if p.X > max.X {
		p.X = max.X
	}
	if p.Y < min.Y {
		p.Y = min.Y
	}
	if p.Y > max.Y {
		p.Y = max.Y
	}
	return p
}
