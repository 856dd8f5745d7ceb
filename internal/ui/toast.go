package ui

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastKind indicates the severity of a toast message
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

const toastDuration = 3 * time.Second

type toast struct {
	message   string
	kind      ToastKind
	expiresAt time.Time
}

// toasts is a small FIFO of pending notifications; the head is shown
// until it expires, then the next takes over.
type toasts struct {
	mu    sync.Mutex
	queue []toast
}

func (t *toasts) push(message string, kind ToastKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, toast{message: message, kind: kind})
}

// current returns the visible toast, dropping expired ones. The expiry
// clock starts when a toast reaches the head of the queue.
func (t *toasts) current() (toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	for len(t.queue) > 0 {
		head := &t.queue[0]
		if head.expiresAt.IsZero() {
			head.expiresAt = now.Add(toastDuration)
		}
		if now.Before(head.expiresAt) {
			return *head, true
		}
		t.queue = t.queue[1:]
	}
	return toast{}, false
}

// ShowToast enqueues a toast notification that auto-dismisses.
func (r *Renderer) ShowToast(message string, kind ToastKind) {
	r.toasts.push(message, kind)
}

// ShowError enqueues an error toast.
func (r *Renderer) ShowError(message string) {
	r.toasts.push(message, ToastError)
}

// ShowSuccess enqueues a success toast.
func (r *Renderer) ShowSuccess(message string) {
	r.toasts.push(message, ToastSuccess)
}

// layoutToast renders the current toast at the bottom of the window.
func (r *Renderer) layoutToast(gtx layout.Context) layout.Dimensions {
	t, ok := r.toasts.current()
	if !ok {
		return layout.Dimensions{}
	}

	// Redraw when this toast expires so the next can appear.
	gtx.Execute(op.InvalidateCmd{At: t.expiresAt})

	var bg, fg color.NRGBA
	switch t.kind {
	case ToastError:
		bg = color.NRGBA{R: 200, G: 50, B: 50, A: 240}
		fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	case ToastSuccess:
		bg = color.NRGBA{R: 50, G: 160, B: 80, A: 240}
		fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	default:
		bg = color.NRGBA{R: 60, G: 60, B: 60, A: 240}
		fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Bottom: unit.Dp(20), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(500)))

				macro := op.Record(gtx.Ops)
				textDims := layout.Inset{
					Top: unit.Dp(12), Bottom: unit.Dp(12),
					Left: unit.Dp(16), Right: unit.Dp(16),
				}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					label := material.Body1(r.Theme, t.message)
					label.Color = fg
					return label.Layout(gtx)
				})
				call := macro.Stop()

				rr := gtx.Dp(unit.Dp(8))
				rect := image.Rect(0, 0, textDims.Size.X, textDims.Size.Y)
				paint.FillShape(gtx.Ops, bg, clip.RRect{
					Rect: rect,
					NE:   rr, NW: rr, SE: rr, SW: rr,
				}.Op(gtx.Ops))
				call.Add(gtx.Ops)

				return textDims
			})
		})
	})
}
