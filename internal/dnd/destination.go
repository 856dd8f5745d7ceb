package dnd

import (
	"sort"
	"strconv"
	"strings"
)

// TargetKind discriminates what a resolved destination points at. The zero
// value is TargetLocation: destinations that don't say otherwise are plain
// location drops.
type TargetKind int

const (
	TargetLocation TargetKind = iota
	TargetDocument
	TargetFolder
	// TargetNone marks a payload as not droppable; the engine collapses it
	// to an empty location.
	TargetNone
)

func (k TargetKind) String() string {
	switch k {
	case TargetDocument:
		return "document"
	case TargetFolder:
		return "folder"
	case TargetNone:
		return "none"
	default:
		return "location"
	}
}

// Destination is the semantic payload identifying a logical drop
// destination, independent of which element carries it.
type Destination struct {
	LocationID int64
	RelPath    string
	FolderPath string
	Kind       TargetKind
	Edge       Edge
}

// key derives the identity used for location comparison. Two destinations
// built from equal data compare equal even when they come from different
// instances.
func (d Destination) key() string {
	return strconv.FormatInt(d.LocationID, 10) + "|" + d.Kind.String() +
		"|" + d.FolderPath + "|" + d.RelPath + "|" + d.Edge.String()
}

// Resolved pairs a destination with the element it was resolved from.
type Resolved struct {
	Destination Destination
	Element     *Element
}

// Vertical reach of the nearest-row fallback, in pixels.
const nearRowThreshold = 64

// parseDestination reads the destination attributes off an element.
// Elements whose attributes don't parse yield ok=false and are skipped by
// the resolver, never surfaced as errors.
func parseDestination(e *Element) (Destination, bool) {
	raw, ok := e.Attr(AttrLocationID)
	if !ok {
		return Destination{}, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return Destination{}, false
	}
	d := Destination{LocationID: id}
	if p, ok := e.Attr(AttrDocumentPath); ok && p != "" {
		d.RelPath = p
		d.Kind = TargetDocument
	} else if p, ok := e.Attr(AttrFolderPath); ok && p != "" {
		d.FolderPath = p
		d.Kind = TargetFolder
	}
	return d, true
}

// dropPriority ranks destination specificity: document rows beat folder
// rows beat bare location roots.
func dropPriority(e *Element) int {
	switch {
	case e.HasAttr(AttrDropDocumentRow):
		return 3
	case e.HasAttr(AttrDropFolderRow):
		return 2
	case e.HasAttr(AttrDropLocationRoot):
		return 1
	}
	return 0
}

// ResolveDestinationFromPointer finds the logical destination under a
// viewport point. It is used by drop-target wiring and directly by
// consumers resolving external (file-system) drags.
//
// Resolution order: nearest ancestor of the element under the point that
// carries a location id; otherwise an exhaustive scan of all drop-eligible
// elements ranked by priority, then smaller area, then document order;
// otherwise the nearest row by vertical distance within a 64px band,
// downgraded to a bare location. Returns nil when nothing qualifies.
func (c *Coordinator) ResolveDestinationFromPointer(x, y float32) *Resolved {
	if hit := c.tree.ElementFromPoint(x, y); hit != nil {
		for e := hit; e != nil && e.Parent() != nil; e = e.Parent() {
			if !e.HasAttr(AttrLocationID) {
				continue
			}
			if d, ok := parseDestination(e); ok {
				return &Resolved{Destination: d, Element: e}
			}
			break
		}
	}

	type candidate struct {
		el    *Element
		dest  Destination
		prio  int
		area  int
		order int
	}
	var under []candidate
	var banded []candidate
	c.tree.Walk(func(e *Element) bool {
		prio := dropPriority(e)
		if prio == 0 {
			return true
		}
		d, ok := parseDestination(e)
		if !ok {
			return true
		}
		cand := candidate{el: e, dest: d, prio: prio, area: e.area(), order: e.order}
		if e.containsPoint(x, y) {
			under = append(under, cand)
		} else if x >= float32(e.Bounds.Min.X) && x < float32(e.Bounds.Max.X) {
			banded = append(banded, cand)
		}
		return true
	})

	if len(under) > 0 {
		sort.Slice(under, func(i, j int) bool {
			a, b := under[i], under[j]
			if a.prio != b.prio {
				return a.prio > b.prio
			}
			if a.area != b.area {
				return a.area < b.area
			}
			return a.order < b.order
		})
		best := under[0]
		return &Resolved{Destination: best.dest, Element: best.el}
	}

	// Nearest row by vertical distance, restricted to rows whose horizontal
	// span contains the pointer. Specificity is discarded: the fallback only
	// ever lands on the row's location.
	var best *candidate
	var bestDist float32
	for i := range banded {
		cand := banded[i]
		var dist float32
		switch {
		case y < float32(cand.el.Bounds.Min.Y):
			dist = float32(cand.el.Bounds.Min.Y) - y
		case y >= float32(cand.el.Bounds.Max.Y):
			dist = y - float32(cand.el.Bounds.Max.Y)
		}
		if best == nil || dist < bestDist {
			best = &banded[i]
			bestDist = dist
		}
	}
	if best == nil || bestDist >= nearRowThreshold {
		return nil
	}
	return &Resolved{
		Destination: Destination{LocationID: best.dest.LocationID},
		Element:     best.el,
	}
}
