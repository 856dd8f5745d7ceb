// Package store persists workspace state: locations, settings, and pinned
// documents. A single worker goroutine owns the connection; the UI talks to
// it over request/response channels.
package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type EventType int

const (
	FetchLocations EventType = iota
	AddLocation
	RemoveLocation
	FetchSettings
	SaveSetting
	FetchPinned
	PinDocument
	UnpinDocument
)

// Location is a user-added root folder treated as a workspace namespace.
// The numeric id is what the drag-and-drop destination attributes carry.
type Location struct {
	ID       int64
	Name     string
	RootPath string
}

type Request struct {
	Op         EventType
	LocationID int64
	Name       string
	Path       string
	Key, Value string
}

type Response struct {
	Op        EventType
	Locations []Location
	Pinned    map[int64][]string
	Settings  map[string]string
	Err       error
}

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

func (d *DB) Open(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA synchronous=NORMAL;", "PRAGMA foreign_keys=ON;"} {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			root_path TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		CREATE TABLE IF NOT EXISTS pinned (
			location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
			rel_path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (location_id, rel_path)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}

	d.conn = db
	return nil
}

// Start runs the worker loop. Call in a goroutine; closing RequestChan
// stops it.
func (d *DB) Start() {
	for req := range d.RequestChan {
		switch req.Op {
		case FetchLocations:
			d.fetchLocations()
		case AddLocation:
			d.addLocation(req.Name, req.Path)
		case RemoveLocation:
			d.removeLocation(req.LocationID)
		case FetchSettings:
			d.fetchSettings()
		case SaveSetting:
			d.saveSetting(req.Key, req.Value)
		case FetchPinned:
			d.fetchPinned()
		case PinDocument:
			d.execAndFetchPinned("INSERT OR IGNORE INTO pinned (location_id, rel_path) VALUES (?, ?)", req.LocationID, req.Path)
		case UnpinDocument:
			d.execAndFetchPinned("DELETE FROM pinned WHERE location_id = ? AND rel_path = ?", req.LocationID, req.Path)
		}
	}
}

// AddLocationSync inserts a location and returns its descriptor. Used by
// the CLI subcommands, which have no event loop to receive responses on.
func (d *DB) AddLocationSync(name, rootPath string) (Location, error) {
	res, err := d.conn.Exec("INSERT INTO locations (name, root_path) VALUES (?, ?)", name, rootPath)
	if err != nil {
		return Location{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Location{}, err
	}
	return Location{ID: id, Name: name, RootPath: rootPath}, nil
}

// ListLocationsSync returns all locations in creation order.
func (d *DB) ListLocationsSync() ([]Location, error) {
	rows, err := d.conn.Query("SELECT id, name, root_path FROM locations ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locs []Location
	for rows.Next() {
		var l Location
		if rows.Scan(&l.ID, &l.Name, &l.RootPath) == nil {
			locs = append(locs, l)
		}
	}
	return locs, rows.Err()
}

// RemoveLocationSync deletes a location, reporting whether a row existed.
func (d *DB) RemoveLocationSync(id int64) (bool, error) {
	res, err := d.conn.Exec("DELETE FROM locations WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MovePinnedSync rewrites a pinned entry after a document move so pins
// follow their document.
func (d *DB) MovePinnedSync(locationID int64, oldRel string, newLocationID int64, newRel string) error {
	_, err := d.conn.Exec(
		"UPDATE OR REPLACE pinned SET location_id = ?, rel_path = ? WHERE location_id = ? AND rel_path = ?",
		newLocationID, newRel, locationID, oldRel)
	return err
}

// ValidateLocationsSync returns the locations whose root path no longer
// exists on disk.
func (d *DB) ValidateLocationsSync() ([]Location, error) {
	locs, err := d.ListLocationsSync()
	if err != nil {
		return nil, err
	}
	var missing []Location
	for _, l := range locs {
		if _, err := os.Stat(l.RootPath); err != nil {
			missing = append(missing, l)
		}
	}
	return missing, nil
}

func (d *DB) fetchLocations() {
	locs, err := d.ListLocationsSync()
	if err != nil {
		d.ResponseChan <- Response{Op: FetchLocations, Err: err}
		return
	}
	d.ResponseChan <- Response{Op: FetchLocations, Locations: locs}
}

func (d *DB) addLocation(name, rootPath string) {
	if _, err := d.AddLocationSync(name, rootPath); err != nil {
		log.Printf("Store Error: %v", err)
	}
	d.fetchLocations()
}

func (d *DB) removeLocation(id int64) {
	if _, err := d.RemoveLocationSync(id); err != nil {
		log.Printf("Store Error: %v", err)
	}
	d.fetchLocations()
}

func (d *DB) fetchSettings() {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		d.ResponseChan <- Response{Op: FetchSettings, Err: err}
		return
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if rows.Scan(&k, &v) == nil {
			settings[k] = v
		}
	}
	d.ResponseChan <- Response{Op: FetchSettings, Settings: settings}
}

func (d *DB) saveSetting(key, value string) {
	if _, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
		log.Printf("Store Error: %v", err)
	}
	d.fetchSettings()
}

func (d *DB) fetchPinned() {
	rows, err := d.conn.Query("SELECT location_id, rel_path FROM pinned ORDER BY created_at ASC")
	if err != nil {
		d.ResponseChan <- Response{Op: FetchPinned, Err: err}
		return
	}
	defer rows.Close()

	pinned := make(map[int64][]string)
	for rows.Next() {
		var id int64
		var rel string
		if rows.Scan(&id, &rel) == nil {
			pinned[id] = append(pinned[id], rel)
		}
	}
	d.ResponseChan <- Response{Op: FetchPinned, Pinned: pinned}
}

func (d *DB) execAndFetchPinned(query string, id int64, rel string) {
	if _, err := d.conn.Exec(query, id, rel); err != nil {
		log.Printf("Store Error: %v", err)
	}
	d.fetchPinned()
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
