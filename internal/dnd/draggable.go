package dnd

// DraggableConfig wires an element as a drag source.
type DraggableConfig struct {
	Element *Element
	// GetInitialData produces the payload when a drag starts. Returning nil
	// means the element has nothing draggable right now and no session
	// opens.
	GetInitialData func() *SourceData
	OnDragStart    func(StartEvent)
	// OnDrop runs at finalization, after every monitor's OnDrop.
	OnDrop func(DropEvent)
}

type draggableReg struct {
	element        *Element
	getInitialData func() *SourceData
	onDragStart    func(StartEvent)
	onDrop         func(DropEvent)
}

// Draggable registers an element as a drag source and returns its
// unregister function. Unregistering while the element owns the active
// session's source clears the session; unregistering twice is a no-op.
func (c *Coordinator) Draggable(cfg DraggableConfig) func() {
	reg := &draggableReg{
		element:        cfg.Element,
		getInitialData: cfg.GetInitialData,
		onDragStart:    cfg.OnDragStart,
		onDrop:         cfg.OnDrop,
	}
	c.draggables[cfg.Element] = reg
	return func() {
		if c.draggables[cfg.Element] != reg {
			return
		}
		delete(c.draggables, cfg.Element)
		c.clearSessionFor(cfg.Element)
	}
}

// DropTargetArgs are handed to a drop target's GetData callback.
type DropTargetArgs struct {
	Source  DragSource
	Element *Element
	Input   Input
}

// DropTargetConfig wires an element as a candidate destination.
type DropTargetConfig struct {
	Element *Element
	// CanDrop gates whether the active session's source may legally drop
	// here. Nil means always.
	CanDrop func(DragSource) bool
	// GetData resolves what destination a drop here would mean. Returning
	// nil, or a destination of kind TargetNone, marks the element as not
	// droppable for this source.
	GetData func(DropTargetArgs) *Destination
}

type dropTargetReg struct {
	element *Element
	canDrop func(DragSource) bool
	getData func(DropTargetArgs) *Destination
}

// DropTargetForElements registers an element as a candidate destination and
// returns its unregister function.
func (c *Coordinator) DropTargetForElements(cfg DropTargetConfig) func() {
	reg := &dropTargetReg{
		element: cfg.Element,
		canDrop: cfg.CanDrop,
		getData: cfg.GetData,
	}
	c.dropTargets[cfg.Element] = reg
	return func() {
		if c.dropTargets[cfg.Element] != reg {
			return
		}
		delete(c.dropTargets, cfg.Element)
		c.clearSessionFor(cfg.Element)
	}
}
