package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d := NewDB()
	if err := d.Open(filepath.Join(t.TempDir(), "inkpad.db")); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func TestLocationsRoundTrip(t *testing.T) {
	d := openTestDB(t)
	dir := t.TempDir()

	loc, err := d.AddLocationSync("Notes", dir)
	if err != nil {
		t.Fatalf("AddLocationSync failed: %v", err)
	}
	if loc.ID == 0 {
		t.Error("expected a nonzero location id")
	}

	locs, err := d.ListLocationsSync()
	if err != nil {
		t.Fatalf("ListLocationsSync failed: %v", err)
	}
	if len(locs) != 1 || locs[0].Name != "Notes" || locs[0].RootPath != dir {
		t.Errorf("unexpected locations %+v", locs)
	}

	// Duplicate root paths are rejected by the unique constraint.
	if _, err := d.AddLocationSync("Again", dir); err == nil {
		t.Error("expected duplicate root path to fail")
	}

	removed, err := d.RemoveLocationSync(loc.ID)
	if err != nil || !removed {
		t.Fatalf("RemoveLocationSync: removed=%v err=%v", removed, err)
	}
	removed, err = d.RemoveLocationSync(loc.ID)
	if err != nil || removed {
		t.Errorf("removing a missing location must report false, got %v", removed)
	}
}

func TestValidateLocations(t *testing.T) {
	d := openTestDB(t)

	good := t.TempDir()
	if _, err := d.AddLocationSync("Good", good); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddLocationSync("Gone", filepath.Join(good, "does-not-exist")); err != nil {
		t.Fatal(err)
	}

	missing, err := d.ValidateLocationsSync()
	if err != nil {
		t.Fatalf("ValidateLocationsSync failed: %v", err)
	}
	if len(missing) != 1 || missing[0].Name != "Gone" {
		t.Errorf("expected only the missing location, got %+v", missing)
	}
}

func TestWorkerLoop(t *testing.T) {
	d := openTestDB(t)
	go d.Start()
	defer close(d.RequestChan)

	d.RequestChan <- Request{Op: AddLocation, Name: "Notes", Path: t.TempDir()}
	resp := <-d.ResponseChan
	if resp.Err != nil {
		t.Fatalf("AddLocation: %v", resp.Err)
	}
	if len(resp.Locations) != 1 {
		t.Fatalf("expected one location, got %+v", resp.Locations)
	}
	locID := resp.Locations[0].ID

	d.RequestChan <- Request{Op: SaveSetting, Key: "sidebar_width", Value: "240"}
	resp = <-d.ResponseChan
	if resp.Settings["sidebar_width"] != "240" {
		t.Errorf("expected setting round trip, got %+v", resp.Settings)
	}

	d.RequestChan <- Request{Op: PinDocument, LocationID: locID, Path: "notes/a.md"}
	resp = <-d.ResponseChan
	if got := resp.Pinned[locID]; len(got) != 1 || got[0] != "notes/a.md" {
		t.Errorf("expected pinned document, got %+v", resp.Pinned)
	}

	d.RequestChan <- Request{Op: UnpinDocument, LocationID: locID, Path: "notes/a.md"}
	resp = <-d.ResponseChan
	if len(resp.Pinned[locID]) != 0 {
		t.Errorf("expected pin removed, got %+v", resp.Pinned)
	}
}

func TestMovePinned(t *testing.T) {
	d := openTestDB(t)

	loc, err := d.AddLocationSync("Notes", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.conn.Exec("INSERT INTO pinned (location_id, rel_path) VALUES (?, ?)", loc.ID, "a.md"); err != nil {
		t.Fatal(err)
	}

	if err := d.MovePinnedSync(loc.ID, "a.md", loc.ID, "archive/a.md"); err != nil {
		t.Fatalf("MovePinnedSync failed: %v", err)
	}

	var rel string
	if err := d.conn.QueryRow("SELECT rel_path FROM pinned WHERE location_id = ?", loc.ID).Scan(&rel); err != nil {
		t.Fatal(err)
	}
	if rel != "archive/a.md" {
		t.Errorf("expected pin to follow the document, got %q", rel)
	}
}
