package workspace

import (
	"strings"
	"testing"
	"time"
)

func TestQuickNotePath(t *testing.T) {
	at := time.Date(2026, 8, 30, 14, 5, 9, 120_000_000, time.UTC)

	rel := QuickNotePath("inbox", at)
	if rel != "inbox/2026/2026-08-30_14-05-09.120.md" {
		t.Errorf("unexpected path %q", rel)
	}

	// Different capture times never collide.
	other := QuickNotePath("inbox", at.Add(time.Millisecond))
	if other == rel {
		t.Errorf("expected distinct paths, both %q", rel)
	}

	parts := strings.Split(rel, "/")
	if len(parts) != 3 || parts[0] != "inbox" || len(parts[1]) != 4 || !strings.HasSuffix(parts[2], ".md") {
		t.Errorf("expected inbox/<year>/<name>.md, got %q", rel)
	}
}
