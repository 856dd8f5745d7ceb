//go:build windows

package trash

import "fmt"

// The Recycle Bin needs the shell API; documents live in user folders
// where permanent deletion is acceptable, so Windows reports the trash
// as unavailable and callers fall back to os.Remove.

func isAvailable() bool { return false }

func moveToTrash(path string) error {
	return fmt.Errorf("trash: not supported on this platform")
}

func displayName() string {
	return "Recycle Bin"
}
