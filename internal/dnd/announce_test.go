package dnd

import (
	"testing"
	"time"
)

func TestAnnounce_BlankInputIsNoop(t *testing.T) {
	tree := NewTree()
	a := NewAnnouncer(tree)
	defer a.Cleanup()

	a.Announce("")
	a.Announce("   ")
	a.Announce("\t\n")

	if tree.ElementByID(LiveRegionID) != nil {
		t.Error("blank announcements must not create the live region")
	}
	if a.Message() != "" {
		t.Errorf("expected empty message, got %q", a.Message())
	}
}

func TestAnnounce_SetsTextAfterDelay(t *testing.T) {
	tree := NewTree()
	a := NewAnnouncer(tree)
	defer a.Cleanup()

	a.Announce("Moved a.md to archive")

	region := tree.ElementByID(LiveRegionID)
	if region == nil {
		t.Fatal("expected the live region to exist")
	}
	if v, _ := region.Attr("role"); v != "status" {
		t.Errorf("expected role=status, got %q", v)
	}
	if v, _ := region.Attr("aria-live"); v != "polite" {
		t.Errorf("expected aria-live=polite, got %q", v)
	}
	if v, _ := region.Attr("aria-atomic"); v != "true" {
		t.Errorf("expected aria-atomic=true, got %q", v)
	}

	// Cleared synchronously, set after the debounce delay.
	if a.Message() != "" {
		t.Errorf("expected text cleared synchronously, got %q", a.Message())
	}
	deadline := time.Now().Add(time.Second)
	for a.Message() == "" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if a.Message() != "Moved a.md to archive" {
		t.Errorf("expected message set after delay, got %q", a.Message())
	}
}

func TestAnnounce_DebounceCancelsPrior(t *testing.T) {
	tree := NewTree()
	a := NewAnnouncer(tree)
	defer a.Cleanup()

	a.Announce("first")
	a.Announce("second")

	deadline := time.Now().Add(time.Second)
	for a.Message() == "" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if a.Message() != "second" {
		t.Errorf("expected the later announcement to win, got %q", a.Message())
	}

	// The region is memoized: still exactly one child carries the id.
	count := 0
	tree.Walk(func(e *Element) bool {
		if e.ID == LiveRegionID {
			count++
		}
		return true
	})
	if count != 1 {
		t.Errorf("expected one live region, got %d", count)
	}
}

func TestAnnounce_CleanupIsIdempotent(t *testing.T) {
	tree := NewTree()
	a := NewAnnouncer(tree)

	a.Announce("going away")
	a.Cleanup()
	if tree.ElementByID(LiveRegionID) != nil {
		t.Error("cleanup must remove the live region")
	}
	a.Cleanup()

	// Announcing again recreates the region.
	a.Announce("back")
	if tree.ElementByID(LiveRegionID) == nil {
		t.Error("announce after cleanup must recreate the region")
	}
	a.Cleanup()
}
