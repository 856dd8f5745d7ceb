package ui

import (
	"gioui.org/widget"

	"inkpad/internal/dnd"
)

type UIAction int

const (
	ActionNone UIAction = iota
	ActionOpenDocument
	ActionSaveDocument
	ActionCreateDocument
	ActionDeleteEntry
	ActionMoveEntry // resolved by the drag engine; Move carries the details
	ActionImportFiles
	ActionTogglePin
	ActionSearch
	ActionClearSearch
	ActionExportDocument
	ActionTakeSnapshot
	ActionCopyPath
	ActionToggleTheme
)

// MoveRequest is the outcome of a completed drag: what to move and where.
type MoveRequest struct {
	Source      dnd.SourceData
	Destination dnd.Destination
}

// ImportRequest is an external OS file drag resolved to a destination.
type ImportRequest struct {
	Paths       []string
	Destination dnd.Destination
}

// UIEvent is what one frame of layout asks the orchestrator to do.
type UIEvent struct {
	Action     UIAction
	LocationID int64
	Path       string // rel_path of the entry acted on
	Query      string
	Move       *MoveRequest
	Import     *ImportRequest
}

// DocItem is a document row in the sidebar model.
type DocItem struct {
	LocationID int64
	RelPath    string
	Title      string
	Pinned     bool
}

// FolderItem is a folder row in the sidebar model.
type FolderItem struct {
	LocationID int64
	RelPath    string
	Name       string
	Depth      int
}

// LocationModel is everything the sidebar shows for one location.
type LocationModel struct {
	ID      int64
	Name    string
	Root    string
	Folders []FolderItem
	Docs    []DocItem
	Missing bool // root no longer exists on disk
}

// SearchResultItem is one row of the search results pane.
type SearchResultItem struct {
	LocationID int64
	RelPath    string
	Title      string
	click      widget.Clickable
}

// State is the renderer's view of the application, owned by the
// orchestrator and mutated only on the event loop.
type State struct {
	Locations []LocationModel

	// Open document, if any. OpenDocDir is the absolute directory of the
	// open document, used to resolve relative image links in the preview.
	OpenLocationID int64
	OpenRelPath    string
	OpenDocDir     string
	Dirty          bool

	SearchQuery   string
	SearchResults []SearchResultItem
	Searching     bool

	StatusLine string // config parse errors and similar banners
	DarkMode   bool
}
