package ui

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"golang.org/x/image/draw"

	"inkpad/internal/debug"
)

// maxImageWidth caps decoded preview images; anything wider gets
// downscaled before upload so a photo dropped into a note doesn't pin a
// full-resolution texture.
const maxImageWidth = 1024

type imageEntry struct {
	op   paint.ImageOp
	size image.Point
	err  error
}

type imageCache struct {
	mu      sync.Mutex
	entries map[string]*imageEntry
}

func newImageCache() *imageCache {
	return &imageCache{entries: make(map[string]*imageEntry)}
}

// Invalidate drops a cached image, e.g. after the file changed on disk.
func (c *imageCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

func (c *imageCache) get(path string) *imageEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[path]; ok {
		return e
	}
	e := &imageEntry{}
	c.entries[path] = e

	f, err := os.Open(path)
	if err != nil {
		e.err = err
		return e
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		e.err = err
		return e
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxImageWidth {
		h := bounds.Dy() * maxImageWidth / bounds.Dx()
		scaled := image.NewRGBA(image.Rect(0, 0, maxImageWidth, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
		bounds = scaled.Bounds()
		debug.Log(debug.UI, "downscaled %s to %dx%d", path, bounds.Dx(), bounds.Dy())
	}

	e.op = paint.NewImageOp(img)
	e.size = bounds.Size()
	return e
}

// layoutImage renders an image block, resolving relative sources against
// the document's folder. Remote and undecodable images fall back to the
// alt text.
func (r *Renderer) layoutImage(gtx layout.Context, docDir string, block Block) layout.Dimensions {
	src := block.ImageSrc
	alt := ""
	if len(block.Spans) > 0 {
		alt = block.Spans[0].Text
	}
	if strings.Contains(src, "://") {
		lbl := material.Body2(r.Theme, alt)
		lbl.Color = colGray
		return lbl.Layout(gtx)
	}
	if !filepath.IsAbs(src) {
		src = filepath.Join(docDir, filepath.FromSlash(src))
	}

	entry := r.images.get(src)
	if entry.err != nil {
		lbl := material.Body2(r.Theme, alt)
		lbl.Color = colGray
		return lbl.Layout(gtx)
	}

	return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		size := entry.size
		if size.X > gtx.Constraints.Max.X {
			size = image.Pt(gtx.Constraints.Max.X, size.Y*gtx.Constraints.Max.X/size.X)
		}
		// Scale at draw time to the laid-out size.
		defer op.Affine(scaleTransform(entry.size, size)).Push(gtx.Ops).Pop()
		entry.op.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		return layout.Dimensions{Size: size}
	})
}

func scaleTransform(from, to image.Point) f32.Affine2D {
	if from.X == 0 || from.Y == 0 {
		return f32.Affine2D{}
	}
	sx := float32(to.X) / float32(from.X)
	sy := float32(to.Y) / float32(from.Y)
	return f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(sx, sy))
}
