package dnd

// Edge says which half of a row the pointer is over, for insert-before vs
// insert-after reordering. EdgeNone means reordering does not apply.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return ""
	}
}

// AttachClosestEdgeArgs carries the inputs for AttachClosestEdge.
type AttachClosestEdgeArgs struct {
	Input        Input
	Element      *Element
	AllowedEdges []Edge
}

// AttachClosestEdge annotates data with the edge of the element the pointer
// is closest to: at or above the vertical midpoint is EdgeTop, below is
// EdgeBottom. The edge is attached only if it is a member of AllowedEdges;
// with no allowed edges the data passes through untouched, which is how
// non-reorderable targets are wired.
func AttachClosestEdge(data Destination, args AttachClosestEdgeArgs) Destination {
	if len(args.AllowedEdges) == 0 || args.Element == nil {
		return data
	}
	mid := float32(args.Element.Bounds.Min.Y+args.Element.Bounds.Max.Y) / 2
	edge := EdgeBottom
	if args.Input.Y <= mid {
		edge = EdgeTop
	}
	for _, allowed := range args.AllowedEdges {
		if allowed == edge {
			data.Edge = edge
			return data
		}
	}
	return data
}

// ExtractClosestEdge reads the edge annotation back out of a payload. It is
// total: non-conforming payloads yield EdgeNone, never a panic.
func ExtractClosestEdge(value any) Edge {
	switch v := value.(type) {
	case Destination:
		return v.Edge
	case *Destination:
		if v == nil {
			return EdgeNone
		}
		return v.Edge
	case Edge:
		return v
	default:
		return EdgeNone
	}
}
