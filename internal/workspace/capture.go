package workspace

import (
	"path"
	"time"
)

// QuickNotePath builds the rel_path for a captured quick note: the inbox
// folder, a year subfolder, and a timestamped markdown file name.
// Millisecond precision keeps rapid captures from colliding.
func QuickNotePath(inboxDir string, now time.Time) string {
	return path.Join(inboxDir, now.Format("2006"), now.Format("2006-01-02_15-04-05.000")+".md")
}
