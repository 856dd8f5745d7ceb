// Package trash moves documents to the system trash instead of
// permanently deleting them. Platforms without a usable trash fall back
// to permanent deletion at the call site.
package trash

// MoveToTrash moves a file or directory to the system trash.
func MoveToTrash(path string) error {
	return moveToTrash(path)
}

// IsAvailable returns true if trash functionality is available on this
// platform.
func IsAvailable() bool {
	return isAvailable()
}

// DisplayName returns the platform-appropriate name for the trash.
func DisplayName() string {
	return displayName()
}
