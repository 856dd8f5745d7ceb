// Package ui renders the window and translates Gio events into UIEvents
// for the orchestrator and into drag engine events for the coordinator.
package ui

import (
	"image"
	"image/color"
	"io"
	"net/url"
	"strconv"
	"strings"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"inkpad/internal/debug"
	"inkpad/internal/dnd"
)

// uriListMIME is what OS file managers offer for dragged files.
const uriListMIME = "text/uri-list"

// Renderer draws the whole window. It owns widget state; application
// state lives in State and is owned by the orchestrator.
type Renderer struct {
	Theme        *material.Theme
	SidebarWidth unit.Dp
	ShowPreview  bool

	sidebar *Sidebar
	coord   *dnd.Coordinator

	editor      widget.Editor
	searchInput widget.Editor

	saveBtn     widget.Clickable
	exportBtn   widget.Clickable
	snapshotBtn widget.Clickable
	newDocBtn   widget.Clickable
	deleteBtn   widget.Clickable
	copyPathBtn widget.Clickable
	themeBtn    widget.Clickable

	resultList layout.List

	previewBlocks []Block
	previewSrc    string
	previewList   layout.List
	images        *imageCache

	toasts toasts
	dirty  bool

	// last pointer position in window coordinates, for resolving where
	// an external OS drop landed.
	lastPointer f32.Point
}

// NewRenderer creates a renderer wired to the drag coordinator.
func NewRenderer(th *material.Theme, coord *dnd.Coordinator) *Renderer {
	r := &Renderer{
		Theme:        th,
		SidebarWidth: unit.Dp(220),
		ShowPreview:  true,
		sidebar:      NewSidebar(coord),
		coord:        coord,
		images:       newImageCache(),
	}
	r.editor.SingleLine = false
	r.searchInput.SingleLine = true
	r.searchInput.Submit = true
	r.resultList.Axis = layout.Vertical
	r.previewList.Axis = layout.Vertical
	return r
}

// SetModel feeds the sidebar a fresh location tree.
func (r *Renderer) SetModel(locations []LocationModel) {
	r.sidebar.SetModel(locations)
}

// SetDocument replaces the editor contents; opening a document resets
// the dirty flag.
func (r *Renderer) SetDocument(content string) {
	r.editor.SetText(content)
	r.dirty = false
}

// Content returns the current editor text.
func (r *Renderer) Content() string {
	return r.editor.Text()
}

// TakeDirty reports and clears whether the editor changed since the last
// save or open.
func (r *Renderer) TakeDirty() bool {
	d := r.dirty
	r.dirty = false
	return d
}

// Layout draws one frame and returns at most one UIEvent.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	ev := UIEvent{Action: ActionNone}

	if imp := r.handleExternalDrop(gtx); imp != nil {
		ev = UIEvent{Action: ActionImportFiles, Import: imp}
	}

	paint.FillShape(gtx.Ops, colWhite, clip.Rect{Max: gtx.Constraints.Max}.Op())

	for {
		e, ok := r.editor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := e.(widget.ChangeEvent); ok {
			r.dirty = true
		}
	}
	for {
		e, ok := r.searchInput.Update(gtx)
		if !ok {
			break
		}
		if _, ok := e.(widget.SubmitEvent); ok {
			q := strings.TrimSpace(r.searchInput.Text())
			if q == "" {
				ev = UIEvent{Action: ActionClearSearch}
			} else {
				ev = UIEvent{Action: ActionSearch, Query: q}
			}
		}
	}

	if btnEv := r.handleButtons(gtx, state); btnEv.Action != ActionNone {
		ev = btnEv
	}

	topBarH := gtx.Dp(unit.Dp(40))
	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.Y = topBarH
			gtx.Constraints.Max.Y = topBarH
			return r.layoutTopBar(gtx, state)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					w := gtx.Dp(r.SidebarWidth)
					gtx.Constraints.Min.X = w
					gtx.Constraints.Max.X = w
					origin := image.Pt(0, topBarH)
					dims, sbEv := r.sidebar.Layout(gtx, r.Theme, origin)
					if sbEv.Action != ActionNone {
						ev = sbEv
					}
					return dims
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					w := gtx.Dp(unit.Dp(1))
					paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: image.Pt(w, gtx.Constraints.Max.Y)}.Op())
					return layout.Dimensions{Size: image.Pt(w, gtx.Constraints.Max.Y)}
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					if state.Searching {
						dims, resEv := r.layoutSearchResults(gtx, state)
						if resEv.Action != ActionNone {
							ev = resEv
						}
						return dims
					}
					return r.layoutMainPane(gtx, state)
				}),
			)
		}),
	)

	if state.StatusLine != "" {
		r.layoutStatusLine(gtx, state.StatusLine)
	}
	r.layoutToast(gtx)
	r.trackPointer(gtx)

	return ev
}

// trackPointer keeps the last window-space pointer position, which is
// the only position available when an external drop's data arrives.
func (r *Renderer) trackPointer(gtx layout.Context) {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, r)
	for {
		e, ok := gtx.Event(pointer.Filter{Target: r, Kinds: pointer.Move | pointer.Drag | pointer.Enter})
		if !ok {
			break
		}
		if pe, ok := e.(pointer.Event); ok {
			r.lastPointer = pe.Position
		}
	}
}

// handleExternalDrop drains OS file drops offered to the window and
// resolves them to a destination through the drag engine.
func (r *Renderer) handleExternalDrop(gtx layout.Context) *ImportRequest {
	for {
		e, ok := gtx.Event(transfer.TargetFilter{Target: r, Type: uriListMIME})
		if !ok {
			return nil
		}
		de, ok := e.(transfer.DataEvent)
		if !ok {
			continue
		}
		data := de.Open()
		raw, err := io.ReadAll(data)
		data.Close()
		if err != nil {
			debug.Log(debug.DND, "external drop read error: %v", err)
			continue
		}
		paths := parseURIList(string(raw))
		if len(paths) == 0 {
			continue
		}
		resolved := r.coord.HandleExternalDrag(dnd.ExternalDragEvent{
			Kind:     dnd.ExternalDrop,
			Paths:    paths,
			Position: r.lastPointer,
		})
		if resolved == nil {
			debug.Log(debug.DND, "external drop at %v resolved nowhere", r.lastPointer)
			continue
		}
		return &ImportRequest{Paths: paths, Destination: resolved.Destination}
	}
}

func parseURIList(raw string) []string {
	var paths []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "file://")
		line = strings.TrimPrefix(line, "localhost")
		if decoded, err := url.PathUnescape(line); err == nil {
			line = decoded
		}
		paths = append(paths, line)
	}
	return paths
}

func (r *Renderer) handleButtons(gtx layout.Context, state *State) UIEvent {
	switch {
	case r.saveBtn.Clicked(gtx):
		return UIEvent{Action: ActionSaveDocument}
	case r.exportBtn.Clicked(gtx):
		return UIEvent{Action: ActionExportDocument, LocationID: state.OpenLocationID, Path: state.OpenRelPath}
	case r.snapshotBtn.Clicked(gtx):
		return UIEvent{Action: ActionTakeSnapshot, LocationID: state.OpenLocationID}
	case r.newDocBtn.Clicked(gtx):
		return UIEvent{Action: ActionCreateDocument}
	case r.deleteBtn.Clicked(gtx):
		return UIEvent{Action: ActionDeleteEntry, LocationID: state.OpenLocationID, Path: state.OpenRelPath}
	case r.copyPathBtn.Clicked(gtx):
		return UIEvent{Action: ActionCopyPath, LocationID: state.OpenLocationID, Path: state.OpenRelPath}
	case r.themeBtn.Clicked(gtx):
		return UIEvent{Action: ActionToggleTheme}
	}
	return UIEvent{Action: ActionNone}
}

func (r *Renderer) layoutTopBar(gtx layout.Context, state *State) layout.Dimensions {
	paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: gtx.Constraints.Max}.Op())
	return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(320)))
				ed := material.Editor(r.Theme, &r.searchInput, "Search notes…")
				return widget.Border{Color: colLightGray, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						return layout.UniformInset(unit.Dp(4)).Layout(gtx, ed.Layout)
					})
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
					toolButton(r.Theme, &r.newDocBtn, "New"),
					toolButton(r.Theme, &r.saveBtn, saveLabel(state)),
					toolButton(r.Theme, &r.exportBtn, "Export"),
					toolButton(r.Theme, &r.snapshotBtn, "Snapshot"),
					toolButton(r.Theme, &r.deleteBtn, "Delete"),
					toolButton(r.Theme, &r.copyPathBtn, "Copy Path"),
					toolButton(r.Theme, &r.themeBtn, "Theme"),
				)
			}),
		)
	})
}

func saveLabel(state *State) string {
	if state.Dirty {
		return "Save •"
	}
	return "Save"
}

func toolButton(th *material.Theme, btn *widget.Clickable, label string) layout.FlexChild {
	return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			b := material.Button(th, btn, label)
			b.TextSize = unit.Sp(12)
			b.Inset = layout.UniformInset(unit.Dp(6))
			return b.Layout(gtx)
		})
	})
}

func (r *Renderer) layoutMainPane(gtx layout.Context, state *State) layout.Dimensions {
	if state.OpenRelPath == "" {
		return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body1(r.Theme, "Select a note")
			lbl.Color = colGray
			return lbl.Layout(gtx)
		})
	}

	editorPane := func(gtx layout.Context) layout.Dimensions {
		return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(r.Theme, &r.editor, "")
			ed.Font.Typeface = "monospace"
			return ed.Layout(gtx)
		})
	}

	if !r.ShowPreview {
		return editorPane(gtx)
	}

	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Flexed(1, editorPane),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			w := gtx.Dp(unit.Dp(1))
			paint.FillShape(gtx.Ops, colLightGray, clip.Rect{Max: image.Pt(w, gtx.Constraints.Max.Y)}.Op())
			return layout.Dimensions{Size: image.Pt(w, gtx.Constraints.Max.Y)}
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return r.layoutPreview(gtx, state)
		}),
	)
}

func (r *Renderer) layoutPreview(gtx layout.Context, state *State) layout.Dimensions {
	content := r.editor.Text()
	if content != r.previewSrc {
		r.previewSrc = content
		r.previewBlocks = ParsePreview(content)
	}
	docDir := state.OpenDocDir
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.previewList.Layout(gtx, len(r.previewBlocks), func(gtx layout.Context, i int) layout.Dimensions {
			return r.layoutBlock(gtx, docDir, r.previewBlocks[i])
		})
	})
}

func (r *Renderer) layoutSearchResults(gtx layout.Context, state *State) (layout.Dimensions, UIEvent) {
	ev := UIEvent{Action: ActionNone}
	dims := layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, resultHeader(state))
				lbl.Color = colGray
				return lbl.Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return r.resultList.Layout(gtx, len(state.SearchResults), func(gtx layout.Context, i int) layout.Dimensions {
					res := &state.SearchResults[i]
					if res.click.Clicked(gtx) {
						ev = UIEvent{Action: ActionOpenDocument, LocationID: res.LocationID, Path: res.RelPath}
					}
					return res.click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body1(r.Theme, res.Title+"  ("+res.RelPath+")")
							lbl.Color = colText
							return lbl.Layout(gtx)
						})
					})
				})
			}),
		)
	})
	return dims, ev
}

func resultHeader(state *State) string {
	n := len(state.SearchResults)
	if n == 1 {
		return "1 result for " + state.SearchQuery
	}
	return strconv.Itoa(n) + " results for " + state.SearchQuery
}

func (r *Renderer) layoutStatusLine(gtx layout.Context, msg string) {
	layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		paint.FillShape(gtx.Ops, colDanger, clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(22)))}.Op())
		return layout.Inset{Left: unit.Dp(8), Top: unit.Dp(2)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, msg)
			lbl.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			return lbl.Layout(gtx)
		})
	})
}
