package dnd

import (
	"strings"
	"sync"
	"time"
)

// LiveRegionID is the fixed id of the shared live-region element.
const LiveRegionID = "inkpad-dnd-live-region"

// announceDelay is how long cleared text stays empty before the new message
// is set. Assistive technology skips repeated identical announcements; the
// clear-then-set cycle forces a re-read.
const announceDelay = 10 * time.Millisecond

// Announcer speaks short status strings to assistive technology through a
// single shared live-region element.
type Announcer struct {
	tree *Tree

	mu     sync.Mutex
	region *Element
	timer  *time.Timer
}

// NewAnnouncer returns an announcer over the given tree. The live region is
// created lazily on first announce.
func NewAnnouncer(tree *Tree) *Announcer {
	return &Announcer{tree: tree}
}

// Announce queues a message for assistive technology. Blank or
// whitespace-only messages are dropped. Text is cleared synchronously and
// re-set after a short delay on a debounced timer; a pending announcement
// is cancelled by the next one.
func (a *Announcer) Announce(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	region := a.ensureRegion()
	region.Text = ""
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(announceDelay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.region != nil {
			a.region.Text = message
		}
	})
}

// Message returns the live region's current text, or "" when the region
// does not exist.
func (a *Announcer) Message() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.region == nil {
		return ""
	}
	return a.region.Text
}

// ensureRegion finds or creates the live-region element, memoized by id so
// repeated calls reuse the same node. Caller holds a.mu.
func (a *Announcer) ensureRegion() *Element {
	if a.region != nil {
		return a.region
	}
	if existing := a.tree.ElementByID(LiveRegionID); existing != nil {
		a.region = existing
		return existing
	}
	region := a.tree.Root().NewChild(a.tree)
	region.ID = LiveRegionID
	region.SetAttr("role", "status")
	region.SetAttr("aria-live", "polite")
	region.SetAttr("aria-atomic", "true")
	a.region = region
	return region
}

// Cleanup removes the live region and cancels any pending announcement.
// Callers are responsible for invoking it on shutdown; it is idempotent.
func (a *Announcer) Cleanup() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.region != nil {
		a.region.Remove()
		a.region = nil
	}
}
