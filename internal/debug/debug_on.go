//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP    Category = "APP"    // Application orchestration, state
	STORE  Category = "STORE"  // Database operations, settings, locations
	UI     Category = "UI"     // UI events, layout, rendering
	DND    Category = "DND"    // Drag-and-drop sessions and resolution
	WATCH  Category = "WATCH"  // Filesystem watching and reindexing
	EXPORT Category = "EXPORT" // Markdown export pipeline

	// Detailed subcategories (use sparingly - can be verbose)
	DND_EVENT Category = "DND_EVENT" // Individual drag event dispatch
	UI_LAYOUT Category = "UI_LAYOUT" // Layout calculations (extremely verbose)
)

var (
	// enabledCategories controls which categories are active
	// By default, all main categories are enabled
	enabledCategories = map[Category]bool{
		APP:    true,
		STORE:  true,
		UI:     true,
		DND:    true,
		WATCH:  true,
		EXPORT: true,
		// Verbose categories disabled by default
		DND_EVENT: false,
		UI_LAYOUT: false,
	}
	categoryMu sync.RWMutex

	// Output destination
	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// Check environment variable for category overrides
	// Format: INKPAD_DEBUG=APP,DND or INKPAD_DEBUG=all or INKPAD_DEBUG=none
	if env := os.Getenv("INKPAD_DEBUG"); env != "" {
		categoryMu.Lock()
		defer categoryMu.Unlock()

		env = strings.ToUpper(env)
		switch env {
		case "ALL":
			for cat := range enabledCategories {
				enabledCategories[cat] = true
			}
		case "NONE":
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
		default:
			// Disable all first, then enable specified
			for cat := range enabledCategories {
				enabledCategories[cat] = false
			}
			for _, cat := range strings.Split(env, ",") {
				cat = strings.TrimSpace(cat)
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}

// DisableAll disables all debug categories
func DisableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = false
	}
	categoryMu.Unlock()
}
