package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTakeAndHistory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "first")

	repo, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	hash, err := repo.Take("add a.md")
	if err != nil {
		t.Fatalf("Take failed: %v", err)
	}
	if hash == "" {
		t.Error("expected a commit hash")
	}

	// A clean tree must not produce an empty snapshot.
	if _, err := repo.Take("nothing"); !errors.Is(err, ErrNoChanges) {
		t.Errorf("expected ErrNoChanges, got %v", err)
	}

	writeFile(t, filepath.Join(dir, "a.md"), "second")
	if _, err := repo.Take("edit a.md"); err != nil {
		t.Fatalf("second Take failed: %v", err)
	}

	entries, err := repo.History(0)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "edit a.md" {
		t.Errorf("expected newest first, got %q", entries[0].Message)
	}

	limited, err := repo.History(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d entries", len(limited))
	}
}

func TestOpenReusesRepo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "x")

	repo, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Take("init"); err != nil {
		t.Fatal(err)
	}

	again, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	entries, err := again.History(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected existing history to survive reopen, got %d", len(entries))
	}
}

func TestHistoryEmptyRepo(t *testing.T) {
	repo, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	entries, err := repo.History(0)
	if err != nil {
		t.Fatal(err)
	}
	if entries != nil {
		t.Errorf("expected no entries, got %v", entries)
	}
}
