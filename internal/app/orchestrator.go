// Package app owns the event loop: it connects the store, the workspace
// index, the filesystem watcher, the drag engine, and the renderer.
package app

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	gioapp "gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/atotto/clipboard"

	"inkpad/internal/config"
	"inkpad/internal/debug"
	"inkpad/internal/dnd"
	"inkpad/internal/export"
	"inkpad/internal/search"
	"inkpad/internal/snapshot"
	"inkpad/internal/store"
	"inkpad/internal/trash"
	"inkpad/internal/ui"
	"inkpad/internal/workspace"
)

type searchOutcome struct {
	query   string
	results []search.Result
	err     error
}

// Orchestrator wires everything together. All state mutation happens on
// the frame loop: worker goroutines post closures through post, and the
// frame loop drains them before layout. The coordinator's registrations
// and the hit-test tree are only ever touched from that loop.
type Orchestrator struct {
	window *gioapp.Window
	store  *store.DB
	config *config.Manager
	ui     *ui.Renderer
	state  ui.State

	coord     *dnd.Coordinator
	announcer *dnd.Announcer
	watcher   *workspace.LocationWatcher

	locations []store.Location
	snapshots map[int64]*workspace.Snapshot
	pinned    map[int64][]string

	winSize  image.Point
	winScale float32

	searchCh     chan searchOutcome
	searchCancel context.CancelFunc

	pendingMu sync.Mutex
	pending   []func()

	dirty        bool
	saveAt       time.Time
	stopDrag     func()
	restoredLast bool
}

// lastOpenKey is the settings row remembering the document open when the
// app was last used, as "locationID|relPath".
const lastOpenKey = "last_open"

func NewOrchestrator(cfg *config.Manager) *Orchestrator {
	tree := dnd.NewTree()
	o := &Orchestrator{
		window:    new(gioapp.Window),
		store:     store.NewDB(),
		config:    cfg,
		snapshots: make(map[int64]*workspace.Snapshot),
		pinned:    make(map[int64][]string),
		searchCh:  make(chan searchOutcome, 1),
		winScale:  1,
	}
	o.window.Option(gioapp.Title("Inkpad"), gioapp.Size(unit.Dp(1100), unit.Dp(720)))
	o.coord = dnd.New(dnd.Options{
		Tree:     tree,
		Viewport: func() image.Rectangle { return image.Rectangle{Max: o.winSize} },
		Scale:    func() float32 { return cfg.PointerScale(o.winScale) },
	})
	o.announcer = dnd.NewAnnouncer(tree)
	o.ui = ui.NewRenderer(newTheme(cfg.IsDarkMode()), o.coord)
	o.ui.SidebarWidth = unit.Dp(cfg.Get().UI.SidebarWidth)
	o.ui.ShowPreview = cfg.Get().Editor.ShowPreview
	o.stopDrag = o.coord.MonitorForElements(dnd.MonitorConfig{
		OnDragStart:        o.announceDragStart,
		OnDropTargetChange: o.announceTargetChange,
		OnDrop:             o.announceDrop,
	})
	return o
}

func (o *Orchestrator) Run() error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	if err := o.store.Open(filepath.Join(configDir, "inkpad", "inkpad.db")); err != nil {
		log.Printf("Failed to open DB: %v", err)
		return err
	}
	defer o.store.Close()

	if err := o.config.Load(); err != nil {
		log.Printf("Config load failed: %v", err)
	}
	if err := o.config.ParseError(); err != nil {
		o.state.StatusLine = "Config error, using defaults: " + err.Error()
	}
	o.state.DarkMode = o.config.IsDarkMode()
	ui.ApplyDarkMode(o.state.DarkMode)

	if watcher, err := workspace.NewLocationWatcher(0); err != nil {
		log.Printf("Watcher unavailable: %v", err)
	} else {
		o.watcher = watcher
		defer watcher.Close()
	}

	go o.store.Start()
	go o.processEvents()
	defer o.announcer.Cleanup()
	defer o.stopDrag()

	o.store.RequestChan <- store.Request{Op: store.FetchLocations}
	o.store.RequestChan <- store.Request{Op: store.FetchPinned}
	o.store.RequestChan <- store.Request{Op: store.FetchSettings}

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case gioapp.DestroyEvent:
			o.saveIfDirty()
			return e.Err
		case gioapp.FrameEvent:
			o.winSize = e.Size
			o.winScale = e.Metric.PxPerDp
			gtx := gioapp.NewContext(&ops, e)

			o.drainPending()
			evt := o.ui.Layout(gtx, &o.state)
			o.handleUIEvent(evt)
			o.tickAutosave(gtx)

			e.Frame(gtx.Ops)
		}
	}
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	if evt.Action != ui.ActionNone {
		debug.Log(debug.APP, "UI event: %d path=%s loc=%d", evt.Action, evt.Path, evt.LocationID)
	}
	switch evt.Action {
	case ui.ActionOpenDocument:
		o.openDocument(evt.LocationID, evt.Path)
	case ui.ActionSaveDocument:
		o.saveIfDirty()
	case ui.ActionCreateDocument:
		o.createDocument()
	case ui.ActionDeleteEntry:
		o.deleteEntry(evt.LocationID, evt.Path)
	case ui.ActionMoveEntry:
		if evt.Move != nil {
			o.performMove(*evt.Move)
		}
	case ui.ActionImportFiles:
		if evt.Import != nil {
			o.performImport(*evt.Import)
		}
	case ui.ActionTogglePin:
		o.togglePin(evt.LocationID, evt.Path)
	case ui.ActionSearch:
		o.startSearch(evt.Query)
	case ui.ActionClearSearch:
		o.clearSearch()
	case ui.ActionExportDocument:
		o.exportDocument(evt.LocationID, evt.Path)
	case ui.ActionTakeSnapshot:
		o.takeSnapshot(evt.LocationID)
	case ui.ActionCopyPath:
		o.copyPath(evt.LocationID, evt.Path)
	case ui.ActionToggleTheme:
		o.toggleTheme()
	}
}

func (o *Orchestrator) rootOf(locationID int64) (string, bool) {
	for _, l := range o.locations {
		if l.ID == locationID {
			return l.RootPath, true
		}
	}
	return "", false
}

func (o *Orchestrator) openDocument(locationID int64, relPath string) {
	o.saveIfDirty()
	root, ok := o.rootOf(locationID)
	if !ok {
		return
	}
	abs := workspace.AbsPath(root, relPath)
	content, err := os.ReadFile(abs)
	if err != nil {
		o.ui.ShowError("Cannot open " + relPath)
		log.Printf("Open error: %v", err)
		return
	}
	o.ui.SetDocument(string(content))
	o.state.OpenLocationID = locationID
	o.state.OpenRelPath = relPath
	o.state.OpenDocDir = filepath.Dir(abs)
	o.state.Dirty = false
	o.state.Searching = false
	o.store.RequestChan <- store.Request{
		Op:    store.SaveSetting,
		Key:   lastOpenKey,
		Value: fmt.Sprintf("%d|%s", locationID, relPath),
	}
	o.window.Invalidate()
}

func (o *Orchestrator) saveIfDirty() {
	if !o.dirty || o.state.OpenRelPath == "" {
		o.dirty = false
		return
	}
	root, ok := o.rootOf(o.state.OpenLocationID)
	if !ok {
		return
	}
	abs := workspace.AbsPath(root, o.state.OpenRelPath)
	if err := os.WriteFile(abs, []byte(o.ui.Content()), 0o644); err != nil {
		o.ui.ShowError("Save failed: " + err.Error())
		return
	}
	o.dirty = false
	o.state.Dirty = false
	debug.Log(debug.APP, "saved %s", o.state.OpenRelPath)
}

// tickAutosave starts the autosave clock when the editor reports a
// change and fires the save once the configured delay has passed.
func (o *Orchestrator) tickAutosave(gtx layout.Context) {
	if o.ui.TakeDirty() {
		o.dirty = true
		o.state.Dirty = true
		delay := time.Duration(o.config.Get().Editor.AutoSaveMs) * time.Millisecond
		if delay <= 0 {
			delay = 2 * time.Second
		}
		o.saveAt = time.Now().Add(delay)
	}
	if !o.dirty {
		return
	}
	if time.Now().After(o.saveAt) {
		o.saveIfDirty()
	} else {
		gtx.Execute(op.InvalidateCmd{At: o.saveAt})
	}
}

func (o *Orchestrator) createDocument() {
	if len(o.locations) == 0 {
		o.ui.ShowError("Add a location first: inkpad locations add <path>")
		return
	}
	loc := o.locations[0]
	name := "untitled.md"
	for i := 2; ; i++ {
		if _, err := os.Stat(workspace.AbsPath(loc.RootPath, name)); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("untitled-%d.md", i)
	}
	abs := workspace.AbsPath(loc.RootPath, name)
	if err := os.WriteFile(abs, []byte("# "+strings.TrimSuffix(name, ".md")+"\n"), 0o644); err != nil {
		o.ui.ShowError("Create failed: " + err.Error())
		return
	}
	o.reindex(loc.ID)
	o.openDocument(loc.ID, name)
}

func (o *Orchestrator) deleteEntry(locationID int64, relPath string) {
	if relPath == "" {
		return
	}
	root, ok := o.rootOf(locationID)
	if !ok {
		return
	}
	abs := workspace.AbsPath(root, relPath)
	if trash.IsAvailable() {
		if err := trash.MoveToTrash(abs); err != nil {
			o.ui.ShowError("Delete failed: " + err.Error())
			return
		}
		o.ui.ShowToast("Moved to "+trash.DisplayName(), ui.ToastInfo)
	} else {
		if err := workspace.DeleteEntry(root, relPath); err != nil {
			o.ui.ShowError("Delete failed: " + err.Error())
			return
		}
	}
	if o.state.OpenRelPath == relPath && o.state.OpenLocationID == locationID {
		o.state.OpenRelPath = ""
		o.state.OpenDocDir = ""
		o.ui.SetDocument("")
		o.dirty = false
	}
	o.reindex(locationID)
}

// performMove applies a finished drag: move the file or folder, keep
// pins pointing at the document, and follow the open document.
func (o *Orchestrator) performMove(move ui.MoveRequest) {
	srcRoot, ok := o.rootOf(move.Source.LocationID)
	if !ok {
		return
	}
	dstRoot, ok := o.rootOf(move.Destination.LocationID)
	if !ok {
		return
	}
	dstFolder := move.Destination.FolderPath

	var newRel string
	var err error
	switch move.Source.Kind {
	case dnd.SourceDocument:
		newRel, err = workspace.MoveDocument(srcRoot, move.Source.RelPath, dstRoot, dstFolder)
	case dnd.SourceFolder:
		newRel, err = workspace.MoveFolder(srcRoot, move.Source.RelPath, dstRoot, dstFolder)
	default:
		return
	}
	if err != nil {
		o.ui.ShowError(err.Error())
		return
	}

	if move.Source.Kind == dnd.SourceDocument {
		if err := o.store.MovePinnedSync(move.Source.LocationID, move.Source.RelPath,
			move.Destination.LocationID, newRel); err != nil {
			log.Printf("Store Error: %v", err)
		}
		o.store.RequestChan <- store.Request{Op: store.FetchPinned}
	}

	if o.state.OpenLocationID == move.Source.LocationID && o.state.OpenRelPath == move.Source.RelPath {
		o.state.OpenLocationID = move.Destination.LocationID
		o.state.OpenRelPath = newRel
		o.state.OpenDocDir = filepath.Dir(workspace.AbsPath(dstRoot, newRel))
	}

	o.reindex(move.Source.LocationID)
	if move.Destination.LocationID != move.Source.LocationID {
		o.reindex(move.Destination.LocationID)
	}
	o.ui.ShowSuccess("Moved " + move.Source.Title)
}

func (o *Orchestrator) togglePin(locationID int64, relPath string) {
	reqOp := store.PinDocument
	for _, rel := range o.pinned[locationID] {
		if rel == relPath {
			reqOp = store.UnpinDocument
			break
		}
	}
	o.store.RequestChan <- store.Request{Op: reqOp, LocationID: locationID, Path: relPath}
}

func (o *Orchestrator) startSearch(query string) {
	if o.searchCancel != nil {
		o.searchCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	o.searchCancel = cancel

	roots := make(map[int64]string, len(o.locations))
	for _, l := range o.locations {
		roots[l.ID] = l.RootPath
	}
	snaps := make(map[int64]*workspace.Snapshot, len(o.snapshots))
	for id, s := range o.snapshots {
		snaps[id] = s
	}
	q := search.Parse(query)

	o.state.SearchQuery = query
	o.state.Searching = true
	go func() {
		results, err := search.Run(ctx, q, roots, snaps)
		select {
		case o.searchCh <- searchOutcome{query: query, results: results, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (o *Orchestrator) clearSearch() {
	if o.searchCancel != nil {
		o.searchCancel()
		o.searchCancel = nil
	}
	o.state.Searching = false
	o.state.SearchResults = nil
	o.window.Invalidate()
}

func (o *Orchestrator) exportDocument(locationID int64, relPath string) {
	if relPath == "" {
		o.ui.ShowError("No document open")
		return
	}
	o.saveIfDirty()
	root, ok := o.rootOf(locationID)
	if !ok {
		return
	}
	doc := workspace.Document{LocationID: locationID, RelPath: relPath}
	out, err := export.File(workspace.AbsPath(root, relPath), "", export.Options{
		Title:        doc.Title(),
		KeepMetadata: o.config.Get().Export.KeepMetadata,
	})
	if err != nil {
		o.ui.ShowError("Export failed: " + err.Error())
		return
	}
	o.ui.ShowSuccess("Exported to " + out)
}

func (o *Orchestrator) takeSnapshot(locationID int64) {
	root, ok := o.rootOf(locationID)
	if !ok {
		if len(o.locations) == 0 {
			return
		}
		root = o.locations[0].RootPath
	}
	o.saveIfDirty()
	repo, err := snapshot.Open(root)
	if err != nil {
		o.ui.ShowError(err.Error())
		return
	}
	hash, err := repo.Take("manual snapshot")
	if err == snapshot.ErrNoChanges {
		o.ui.ShowToast("No changes since last snapshot", ui.ToastInfo)
		return
	}
	if err != nil {
		o.ui.ShowError(err.Error())
		return
	}
	o.ui.ShowSuccess("Snapshot " + hash[:8])
}

func (o *Orchestrator) copyPath(locationID int64, relPath string) {
	root, ok := o.rootOf(locationID)
	if !ok || relPath == "" {
		return
	}
	if err := clipboard.WriteAll(workspace.AbsPath(root, relPath)); err != nil {
		o.ui.ShowError("Clipboard unavailable")
		return
	}
	o.ui.ShowToast("Path copied", ui.ToastInfo)
}

func (o *Orchestrator) toggleTheme() {
	theme := "dark"
	if o.config.IsDarkMode() {
		theme = "light"
	}
	o.config.SetTheme(theme)
	o.state.DarkMode = theme == "dark"
	ui.ApplyDarkMode(o.state.DarkMode)
	applyThemePalette(o.ui.Theme, o.state.DarkMode)
	o.window.Invalidate()
}

// post queues fn for the frame loop and wakes the window. It is the only
// way worker goroutines reach the orchestrator's state.
func (o *Orchestrator) post(fn func()) {
	o.pendingMu.Lock()
	o.pending = append(o.pending, fn)
	o.pendingMu.Unlock()
	o.window.Invalidate()
}

// drainPending runs posted closures in arrival order. Frame loop only.
func (o *Orchestrator) drainPending() {
	o.pendingMu.Lock()
	fns := o.pending
	o.pending = nil
	o.pendingMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// processEvents forwards worker responses onto the frame loop. It never
// touches orchestrator state itself: a watcher reindex rebuilding the
// sidebar mid-drag would race the coordinator otherwise.
func (o *Orchestrator) processEvents() {
	var watchCh <-chan int64
	if o.watcher != nil {
		watchCh = o.watcher.Notify()
	}
	for {
		select {
		case resp := <-o.store.ResponseChan:
			o.post(func() { o.handleStoreResponse(resp) })
		case locID := <-watchCh:
			debug.Log(debug.WATCH, "reindexing location %d", locID)
			o.post(func() { o.reindex(locID) })
		case outcome := <-o.searchCh:
			o.post(func() { o.handleSearchOutcome(outcome) })
		}
	}
}

func (o *Orchestrator) handleStoreResponse(resp store.Response) {
	if resp.Err != nil {
		log.Printf("Store Error: %v", resp.Err)
		return
	}
	switch resp.Op {
	case store.FetchLocations:
		o.locations = resp.Locations
		for _, l := range o.locations {
			o.reindexQuiet(l.ID)
			if o.watcher != nil {
				if err := o.watcher.Watch(l.ID, l.RootPath); err != nil {
					debug.Log(debug.WATCH, "cannot watch %s: %v", l.RootPath, err)
				}
			}
		}
	case store.FetchPinned:
		o.pinned = resp.Pinned
	case store.FetchSettings:
		o.restoreLastOpen(resp.Settings)
	}
	o.rebuildModel()
	o.window.Invalidate()
}

// restoreLastOpen reopens the document from the previous run, once, and
// only when the user has not already opened something.
func (o *Orchestrator) restoreLastOpen(settings map[string]string) {
	if o.restoredLast || o.state.OpenRelPath != "" {
		o.restoredLast = true
		return
	}
	o.restoredLast = true
	raw := settings[lastOpenKey]
	i := strings.IndexByte(raw, '|')
	if i <= 0 {
		return
	}
	id, err := strconv.ParseInt(raw[:i], 10, 64)
	if err != nil {
		return
	}
	relPath := raw[i+1:]
	root, ok := o.rootOf(id)
	if !ok {
		return
	}
	if _, err := os.Stat(workspace.AbsPath(root, relPath)); err != nil {
		return
	}
	o.openDocument(id, relPath)
}

func (o *Orchestrator) handleSearchOutcome(outcome searchOutcome) {
	if outcome.query != o.state.SearchQuery {
		return // stale
	}
	if outcome.err != nil && outcome.err != context.Canceled {
		log.Printf("Search error: %v", outcome.err)
	}
	items := make([]ui.SearchResultItem, len(outcome.results))
	for i, r := range outcome.results {
		items[i] = ui.SearchResultItem{
			LocationID: r.LocationID,
			RelPath:    r.RelPath,
			Title:      workspace.Document{RelPath: r.RelPath}.Title(),
		}
	}
	o.state.SearchResults = items
	o.window.Invalidate()
}

// reindex refreshes one location's snapshot and pushes the new model to
// the sidebar.
func (o *Orchestrator) reindex(locationID int64) {
	o.reindexQuiet(locationID)
	o.rebuildModel()
	o.window.Invalidate()
}

func (o *Orchestrator) reindexQuiet(locationID int64) {
	root, ok := o.rootOf(locationID)
	if !ok {
		return
	}
	snap, err := workspace.IndexLocation(root)
	if err != nil {
		debug.Log(debug.APP, "index %s failed: %v", root, err)
		delete(o.snapshots, locationID)
		return
	}
	o.snapshots[locationID] = snap
}

func (o *Orchestrator) rebuildModel() {
	models := make([]ui.LocationModel, 0, len(o.locations))
	for _, l := range o.locations {
		m := ui.LocationModel{ID: l.ID, Name: l.Name, Root: l.RootPath}
		if _, err := os.Stat(l.RootPath); err != nil {
			m.Missing = true
			models = append(models, m)
			continue
		}
		snap := o.snapshots[l.ID]
		if snap == nil {
			models = append(models, m)
			continue
		}
		pinnedSet := make(map[string]bool)
		for _, rel := range o.pinned[l.ID] {
			pinnedSet[rel] = true
		}
		for _, f := range snap.Folders {
			m.Folders = append(m.Folders, ui.FolderItem{
				LocationID: l.ID,
				RelPath:    f,
				Name:       path.Base(f),
				Depth:      strings.Count(f, "/"),
			})
		}
		for _, d := range snap.Documents {
			m.Docs = append(m.Docs, ui.DocItem{
				LocationID: l.ID,
				RelPath:    d,
				Title:      workspace.Document{RelPath: d}.Title(),
				Pinned:     pinnedSet[d],
			})
		}
		models = append(models, m)
	}
	o.state.Locations = models
	o.ui.SetModel(models)
}

// Main starts the window loop. It never returns.
func Main(cfg *config.Manager) {
	go func() {
		o := NewOrchestrator(cfg)
		if err := o.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	gioapp.Main()
}
