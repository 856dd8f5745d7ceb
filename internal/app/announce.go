package app

import (
	"path"

	"inkpad/internal/dnd"
)

// Drag lifecycle announcements for assistive technology. These run as a
// drag engine monitor so they fire for every drag regardless of which
// rows are involved.

func (o *Orchestrator) announceDragStart(ev dnd.StartEvent) {
	o.announcer.Announce("Picked up " + describeSource(ev.Source.Data))
}

func (o *Orchestrator) announceTargetChange(ev dnd.TargetChangeEvent) {
	if len(ev.Location.DropTargets) == 0 {
		o.announcer.Announce("Not over a drop target")
		return
	}
	o.announcer.Announce("Over " + describeDestination(ev.Location.DropTargets[0].Data))
}

func (o *Orchestrator) announceDrop(ev dnd.DropEvent) {
	if len(ev.Location.DropTargets) == 0 {
		o.announcer.Announce("Drag cancelled")
		return
	}
	o.announcer.Announce("Moved " + describeSource(ev.Source.Data) +
		" to " + describeDestination(ev.Location.DropTargets[0].Data))
}

func describeSource(d dnd.SourceData) string {
	switch d.Kind {
	case dnd.SourceFolder:
		return "folder " + path.Base(d.RelPath)
	default:
		if d.Title != "" {
			return d.Title
		}
		return path.Base(d.RelPath)
	}
}

func describeDestination(d dnd.Destination) string {
	switch d.Kind {
	case dnd.TargetFolder:
		return "folder " + path.Base(d.FolderPath)
	case dnd.TargetDocument:
		doc := path.Base(d.RelPath)
		switch d.Edge {
		case dnd.EdgeTop:
			return "position above " + doc
		case dnd.EdgeBottom:
			return "position below " + doc
		}
		return doc
	default:
		return "location root"
	}
}
