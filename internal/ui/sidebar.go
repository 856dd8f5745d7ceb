package ui

import (
	"image"
	"io"
	"path"
	"strconv"
	"strings"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"inkpad/internal/debug"
	"inkpad/internal/dnd"
)

type rowKind int

const (
	rowLocation rowKind = iota
	rowFolder
	rowDocument
)

// sidebarRowHeight is fixed for every row. Bounds published into the
// hit-test tree are derived from it, so variable-height rows would break
// destination resolution.
const sidebarRowHeight = unit.Dp(28)

type sidebarRow struct {
	kind       rowKind
	locationID int64
	relPath    string
	title      string
	depth      int
	pinned     bool
	missing    bool

	elem       *dnd.Element
	drag       DragItem
	pinBtn     widget.Clickable
	unregister []func()
}

func (r *sidebarRow) key() string {
	switch r.kind {
	case rowLocation:
		return "loc:" + strconv.FormatInt(r.locationID, 10)
	case rowFolder:
		return "folder:" + strconv.FormatInt(r.locationID, 10) + ":" + r.relPath
	default:
		return "doc:" + strconv.FormatInt(r.locationID, 10) + ":" + r.relPath
	}
}

// Sidebar renders the location tree and owns the drag engine wiring for
// its rows: every row publishes an element into the coordinator's tree,
// documents and folders register as drag sources, and rows register as
// drop targets.
type Sidebar struct {
	coord *dnd.Coordinator

	list    layout.List
	rows    []*sidebarRow
	byKey   map[string]*sidebarRow
	targets map[*dnd.Element]*sidebarRow

	hoverTarget *dnd.Element
	transfer    *dnd.Transfer
	pendingMove *MoveRequest

	origin image.Point // viewport position of the first row, set each frame
}

// NewSidebar creates a sidebar publishing into the coordinator's tree.
func NewSidebar(coord *dnd.Coordinator) *Sidebar {
	s := &Sidebar{
		coord:   coord,
		byKey:   make(map[string]*sidebarRow),
		targets: make(map[*dnd.Element]*sidebarRow),
	}
	s.list.Axis = layout.Vertical
	return s
}

// SetModel rebuilds the row list from the locations. Rows that survive
// keep their elements and registrations so an active drag session is not
// torn down by a refresh.
func (s *Sidebar) SetModel(locations []LocationModel) {
	seen := make(map[string]bool)
	var rows []*sidebarRow

	add := func(proto sidebarRow) {
		key := proto.key()
		seen[key] = true
		if row, ok := s.byKey[key]; ok {
			row.title = proto.title
			row.depth = proto.depth
			row.pinned = proto.pinned
			row.missing = proto.missing
			rows = append(rows, row)
			return
		}
		row := &sidebarRow{}
		*row = proto
		s.createRow(row)
		s.byKey[key] = row
		rows = append(rows, row)
	}

	for _, loc := range locations {
		add(sidebarRow{kind: rowLocation, locationID: loc.ID, title: loc.Name, missing: loc.Missing})
		for _, f := range loc.Folders {
			add(sidebarRow{kind: rowFolder, locationID: f.LocationID, relPath: f.RelPath, title: f.Name, depth: f.Depth + 1})
		}
		for _, d := range loc.Docs {
			depth := 1
			if dir := path.Dir(d.RelPath); dir != "." {
				depth = strings.Count(d.RelPath, "/") + 1
			}
			add(sidebarRow{kind: rowDocument, locationID: d.LocationID, relPath: d.RelPath, title: d.Title, depth: depth, pinned: d.Pinned})
		}
	}

	for key, row := range s.byKey {
		if seen[key] {
			continue
		}
		for _, unreg := range row.unregister {
			unreg()
		}
		delete(s.targets, row.elem)
		row.elem.Remove()
		delete(s.byKey, key)
	}
	s.rows = rows
}

// createRow attaches a tree element with the row's attribute contract and
// registers the drag source and drop target wiring.
func (s *Sidebar) createRow(row *sidebarRow) {
	tree := s.coord.Tree()
	elem := tree.Root().NewChild(tree)
	elem.ID = row.key()
	elem.Text = row.title
	elem.SetAttr(dnd.AttrLocationID, strconv.FormatInt(row.locationID, 10))
	row.elem = elem
	row.drag.Type = dnd.DragMarker

	switch row.kind {
	case rowLocation:
		elem.SetAttr(dnd.AttrDropLocationRoot, "")
		row.unregister = append(row.unregister, s.coord.DropTargetForElements(dnd.DropTargetConfig{
			Element: elem,
			CanDrop: func(src dnd.DragSource) bool {
				return s.canDropInFolder(src, row.locationID, "")
			},
			GetData: func(args dnd.DropTargetArgs) *dnd.Destination {
				return &dnd.Destination{LocationID: row.locationID}
			},
		}))

	case rowFolder:
		elem.SetAttr(dnd.AttrFolderPath, row.relPath)
		elem.SetAttr(dnd.AttrDropFolderRow, "")
		row.unregister = append(row.unregister,
			s.coord.Draggable(dnd.DraggableConfig{
				Element:        elem,
				GetInitialData: s.sourceDataFn(row, dnd.SourceFolder),
				OnDrop:         s.completeMove,
			}),
			s.coord.DropTargetForElements(dnd.DropTargetConfig{
				Element: elem,
				CanDrop: func(src dnd.DragSource) bool {
					return s.canDropInFolder(src, row.locationID, row.relPath)
				},
				GetData: func(args dnd.DropTargetArgs) *dnd.Destination {
					d := dnd.Destination{
						LocationID: row.locationID,
						FolderPath: row.relPath,
						Kind:       dnd.TargetFolder,
					}
					return &d
				},
			}),
		)

	case rowDocument:
		elem.SetAttr(dnd.AttrDocumentPath, row.relPath)
		elem.SetAttr(dnd.AttrDropDocumentRow, "")
		row.unregister = append(row.unregister,
			s.coord.Draggable(dnd.DraggableConfig{
				Element:        elem,
				GetInitialData: s.sourceDataFn(row, dnd.SourceDocument),
				OnDrop:         s.completeMove,
			}),
			s.coord.DropTargetForElements(dnd.DropTargetConfig{
				Element: elem,
				CanDrop: func(src dnd.DragSource) bool {
					// Dropping on a document row means into its parent folder.
					return s.canDropInFolder(src, row.locationID, parentOf(row.relPath))
				},
				GetData: func(args dnd.DropTargetArgs) *dnd.Destination {
					d := dnd.Destination{
						LocationID: row.locationID,
						RelPath:    row.relPath,
						FolderPath: parentOf(row.relPath),
						Kind:       dnd.TargetDocument,
					}
					d = dnd.AttachClosestEdge(d, dnd.AttachClosestEdgeArgs{
						Input:        args.Input,
						Element:      args.Element,
						AllowedEdges: []dnd.Edge{dnd.EdgeTop, dnd.EdgeBottom},
					})
					return &d
				},
			}),
		)
	}

	s.targets[elem] = row
}

func parentOf(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." {
		return ""
	}
	return dir
}

func (s *Sidebar) sourceDataFn(row *sidebarRow, kind dnd.SourceKind) func() *dnd.SourceData {
	return func() *dnd.SourceData {
		if row.missing {
			return nil
		}
		return &dnd.SourceData{
			Kind:       kind,
			LocationID: row.locationID,
			RelPath:    row.relPath,
			Title:      row.title,
		}
	}
}

func (s *Sidebar) canDropInFolder(src dnd.DragSource, locationID int64, folder string) bool {
	switch src.Data.Kind {
	case dnd.SourceDocument:
		return dnd.CanDropDocumentIntoFolder(src.Data, locationID, folder)
	case dnd.SourceFolder:
		return dnd.CanDropFolderIntoFolder(src.Data, locationID, folder)
	}
	return false
}

// completeMove records the finished drag for the next Layout to return
// as a UIEvent. It runs as the source's OnDrop, after monitors.
func (s *Sidebar) completeMove(drop dnd.DropEvent) {
	if len(drop.Location.DropTargets) == 0 {
		return
	}
	s.pendingMove = &MoveRequest{
		Source:      drop.Source.Data,
		Destination: drop.Location.DropTargets[0].Data,
	}
}

// targetAt finds the nearest registered drop target at a viewport point.
func (s *Sidebar) targetAt(x, y float32) (*dnd.Element, *dnd.Element) {
	hit := s.coord.Tree().ElementFromPoint(x, y)
	for e := hit; e != nil; e = e.Parent() {
		if _, ok := s.targets[e]; ok {
			return e, hit
		}
	}
	return nil, hit
}

// dispatchDrag translates one row gesture step into engine events.
func (s *Sidebar) dispatchDrag(row *sidebarRow, ev DragEvent) {
	abs := f32.Pt(
		float32(row.elem.Bounds.Min.X)+ev.Pos.X,
		float32(row.elem.Bounds.Min.Y)+ev.Pos.Y,
	)

	switch ev.Phase {
	case DragStarted:
		s.transfer = &dnd.Transfer{}
		s.hoverTarget = nil
		s.coord.Dispatch(&dnd.Event{
			Kind: dnd.EventDragStart, Element: row.elem,
			X: abs.X, Y: abs.Y, Alt: ev.Alt, Transfer: s.transfer,
		})
		debug.Log(debug.DND_EVENT, "drag start on %s", row.elem.ID)

	case DragMoved:
		if s.coord.Session() == nil {
			return
		}
		target, hit := s.targetAt(abs.X, abs.Y)
		if target != s.hoverTarget {
			if s.hoverTarget != nil {
				s.coord.Dispatch(&dnd.Event{
					Kind: dnd.EventDragLeave, Element: s.hoverTarget, Related: hit,
					X: abs.X, Y: abs.Y, Alt: ev.Alt, Transfer: s.transfer,
				})
			}
			if target != nil {
				s.coord.Dispatch(&dnd.Event{
					Kind: dnd.EventDragEnter, Element: target,
					X: abs.X, Y: abs.Y, Alt: ev.Alt, Transfer: s.transfer,
				})
			}
			s.hoverTarget = target
		}
		s.coord.Dispatch(&dnd.Event{
			Kind: dnd.EventDragOver, Element: target,
			X: abs.X, Y: abs.Y, Alt: ev.Alt, Transfer: s.transfer,
		})

	case DragDropped:
		if s.coord.Session() == nil {
			return
		}
		target, _ := s.targetAt(abs.X, abs.Y)
		if target != nil {
			s.coord.Dispatch(&dnd.Event{
				Kind: dnd.EventDrop, Element: target,
				X: abs.X, Y: abs.Y, Alt: ev.Alt, Transfer: s.transfer,
			})
		} else {
			s.coord.Dispatch(&dnd.Event{
				Kind: dnd.EventDragEnd, Element: row.elem,
				X: abs.X, Y: abs.Y, Alt: ev.Alt, Transfer: s.transfer,
			})
		}
		s.hoverTarget = nil
		s.transfer = nil

	case DragCanceled:
		s.coord.Dispatch(&dnd.Event{
			Kind: dnd.EventDragEnd, Element: row.elem,
			X: abs.X, Y: abs.Y, Alt: ev.Alt, Transfer: s.transfer,
		})
		s.hoverTarget = nil
		s.transfer = nil
	}
}

// Layout renders the sidebar rows. origin is the viewport position of
// the sidebar's content area, needed to publish absolute row bounds.
func (s *Sidebar) Layout(gtx layout.Context, th *material.Theme, origin image.Point) (layout.Dimensions, UIEvent) {
	s.origin = origin
	event := UIEvent{Action: ActionNone}

	paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: gtx.Constraints.Max}.Op())

	rowH := gtx.Dp(sidebarRowHeight)
	dims := s.list.Layout(gtx, len(s.rows), func(gtx layout.Context, i int) layout.Dimensions {
		gtx.Constraints.Min.Y = rowH
		gtx.Constraints.Max.Y = rowH
		if ev := s.layoutRow(gtx, th, s.rows[i]); ev.Action != ActionNone {
			event = ev
		}
		return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, rowH)}
	})

	s.syncBounds(gtx.Constraints.Max.X, rowH)
	s.drawDropIndicator(gtx)

	if s.pendingMove != nil {
		event = UIEvent{Action: ActionMoveEntry, Move: s.pendingMove}
		s.pendingMove = nil
	}
	return dims, event
}

// syncBounds publishes absolute bounds for every row into the hit-test
// tree. Rows have fixed height, so position follows from index and the
// list scroll offset.
func (s *Sidebar) syncBounds(width, rowH int) {
	first := s.list.Position.First
	offset := s.list.Position.Offset
	for i, row := range s.rows {
		y := s.origin.Y + (i-first)*rowH - offset
		row.elem.Bounds = image.Rect(s.origin.X, y, s.origin.X+width, y+rowH)
	}
}

func (s *Sidebar) layoutRow(gtx layout.Context, th *material.Theme, row *sidebarRow) UIEvent {
	event := UIEvent{Action: ActionNone}

	// Answer pending transfer data requests with the dragged rel_path.
	if mime, ok := row.drag.Update(gtx); ok {
		row.drag.Offer(gtx, mime, io.NopCloser(strings.NewReader(row.relPath)))
	}

	content := func(gtx layout.Context) layout.Dimensions {
		if s.rowSelected(row) {
			paint.FillShape(gtx.Ops, colSelected, clip.Rect{Max: gtx.Constraints.Max}.Op())
		}
		inset := layout.Inset{
			Left:  unit.Dp(8 + 12*row.depth),
			Right: unit.Dp(4),
		}
		return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body2(th, row.title)
					lbl.MaxLines = 1
					switch {
					case row.missing:
						lbl.Color = colDanger
					case row.kind == rowLocation:
						lbl.Font.Weight = font.Bold
						lbl.Color = colText
					case row.kind == rowFolder:
						lbl.Color = colGray
					default:
						lbl.Color = colText
					}
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if row.kind != rowDocument {
						return layout.Dimensions{}
					}
					if row.pinBtn.Clicked(gtx) {
						event = UIEvent{Action: ActionTogglePin, LocationID: row.locationID, Path: row.relPath}
					}
					return row.pinBtn.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Caption(th, "●")
						if row.pinned {
							lbl.Color = colPinned
						} else {
							lbl.Color = colLightGray
						}
						return lbl.Layout(gtx)
					})
				}),
			)
		})
	}

	shadow := func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(th, row.title)
		lbl.Color = colAccent
		return lbl.Layout(gtx)
	}

	_, drags, clicked := row.drag.Layout(gtx, content, shadow)
	for _, ev := range drags {
		s.dispatchDrag(row, ev)
	}
	if clicked != nil && event.Action == ActionNone {
		if row.kind == rowDocument {
			event = UIEvent{Action: ActionOpenDocument, LocationID: row.locationID, Path: row.relPath}
		}
	}
	return event
}

func (s *Sidebar) rowSelected(row *sidebarRow) bool {
	sess := s.coord.Session()
	if sess == nil || len(sess.Current.DropTargets) == 0 {
		return false
	}
	return sess.Current.DropTargets[0].Element == row.elem
}

// drawDropIndicator paints the active session's resolved target: a tint
// over the row, plus an edge line when the destination carries one.
func (s *Sidebar) drawDropIndicator(gtx layout.Context) {
	sess := s.coord.Session()
	if sess == nil || len(sess.Current.DropTargets) == 0 {
		return
	}
	t := sess.Current.DropTargets[0]
	r := t.Element.Bounds.Sub(s.origin)
	paint.FillShape(gtx.Ops, colDropTarget, clip.Rect(r).Op())

	switch dnd.ExtractClosestEdge(t.Data) {
	case dnd.EdgeTop:
		paint.FillShape(gtx.Ops, colDropEdge, clip.Rect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+2)).Op())
	case dnd.EdgeBottom:
		paint.FillShape(gtx.Ops, colDropEdge, clip.Rect(image.Rect(r.Min.X, r.Max.Y-2, r.Max.X, r.Max.Y)).Op())
	}
}
