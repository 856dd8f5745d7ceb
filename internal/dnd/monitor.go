package dnd

// MonitorConfig subscribes to drag lifecycle notifications independent of
// which elements are involved.
type MonitorConfig struct {
	// CanMonitor filters which sources this monitor hears about. Nil means
	// all.
	CanMonitor  func(DragSource) bool
	OnDragStart func(StartEvent)
	// OnDropTargetChange fires only when the derived-key comparison detects
	// an actual change between the session's current and previous location.
	OnDropTargetChange func(TargetChangeEvent)
	// OnDrop fires exactly once per session, at finalization, before the
	// source's own OnDrop callback.
	OnDrop func(DropEvent)
}

type monitorReg struct {
	id                 int
	canMonitor         func(DragSource) bool
	onDragStart        func(StartEvent)
	onDropTargetChange func(TargetChangeEvent)
	onDrop             func(DropEvent)
}

// MonitorForElements registers a monitor and returns its unregister
// function. Monitors are notified in registration order.
func (c *Coordinator) MonitorForElements(cfg MonitorConfig) func() {
	reg := &monitorReg{
		id:                 c.nextMonitor,
		canMonitor:         cfg.CanMonitor,
		onDragStart:        cfg.OnDragStart,
		onDropTargetChange: cfg.OnDropTargetChange,
		onDrop:             cfg.OnDrop,
	}
	c.nextMonitor++
	c.monitors = append(c.monitors, reg)
	return func() {
		for i, m := range c.monitors {
			if m == reg {
				c.monitors = append(c.monitors[:i], c.monitors[i+1:]...)
				return
			}
		}
	}
}

// monitorsFor returns the monitors whose predicate accepts the source, in
// registration order.
func (c *Coordinator) monitorsFor(src DragSource) []*monitorReg {
	out := make([]*monitorReg, 0, len(c.monitors))
	for _, m := range c.monitors {
		if m.canMonitor == nil || m.canMonitor(src) {
			out = append(out, m)
		}
	}
	return out
}
