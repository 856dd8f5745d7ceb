//go:build linux

package trash

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Linux follows the freedesktop.org trash layout under
// ~/.local/share/Trash: trashed files under files/, one .trashinfo
// metadata file per entry under info/.

func trashRoot() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "Trash")
}

func isAvailable() bool {
	root := trashRoot()
	if root == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Join(root, "files"), 0o700); err != nil {
		return false
	}
	return os.MkdirAll(filepath.Join(root, "info"), 0o700) == nil
}

func moveToTrash(path string) error {
	root := trashRoot()
	filesDir := filepath.Join(root, "files")
	infoDir := filepath.Join(root, "info")
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return fmt.Errorf("trash: %w", err)
	}
	if err := os.MkdirAll(infoDir, 0o700); err != nil {
		return fmt.Errorf("trash: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	baseName := filepath.Base(abs)
	destName := baseName
	destPath := filepath.Join(filesDir, destName)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(destPath); os.IsNotExist(err) {
			break
		}
		ext := filepath.Ext(baseName)
		name := strings.TrimSuffix(baseName, ext)
		destName = fmt.Sprintf("%s.%d%s", name, counter, ext)
		destPath = filepath.Join(filesDir, destName)
	}

	infoContent := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		url.PathEscape(abs),
		time.Now().Format("2006-01-02T15:04:05"))
	infoPath := filepath.Join(infoDir, destName+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(infoContent), 0o600); err != nil {
		return fmt.Errorf("trash: %w", err)
	}

	if err := os.Rename(abs, destPath); err != nil {
		os.Remove(infoPath)
		return fmt.Errorf("trash: %w", err)
	}
	return nil
}

func displayName() string {
	return "Trash"
}
