// Package workspace models locations and the documents and folders under
// them, and performs the filesystem side of moves the sidebar initiates.
// Paths inside a location are rel_paths: slash-separated, relative to the
// location root, "" meaning the root itself.
package workspace

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Document is one markdown file under a location root.
type Document struct {
	LocationID int64
	RelPath    string
}

// Title returns the document's display name: the base name without the
// markdown extension.
func (d Document) Title() string {
	base := path.Base(d.RelPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// ParentFolder returns the rel_path of the folder containing the document,
// "" for documents at the location root.
func (d Document) ParentFolder() string {
	dir := path.Dir(d.RelPath)
	if dir == "." {
		return ""
	}
	return dir
}

// AbsPath joins a location root with a rel_path using the platform
// separator.
func AbsPath(root, rel string) string {
	if rel == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}

// relJoin joins rel_path components, keeping the slash-separated form.
func relJoin(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

// MoveDocument moves a document into a folder, possibly in a different
// location root. The destination keeps the document's base name. Returns
// the document's new rel_path. Refuses to overwrite an existing file.
func MoveDocument(srcRoot, relPath, dstRoot, dstFolder string) (string, error) {
	src := AbsPath(srcRoot, relPath)
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("move document: %w", err)
	}

	newRel := relJoin(dstFolder, path.Base(relPath))
	dst := AbsPath(dstRoot, newRel)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("move document: %s already exists", newRel)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("move document: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("move document: %w", err)
	}
	return newRel, nil
}

// MoveFolder moves a folder (and everything under it) into another folder,
// possibly in a different location root. Returns the folder's new
// rel_path. Refuses to overwrite and refuses to move a folder into itself
// or a descendant of itself within the same root.
func MoveFolder(srcRoot, relPath, dstRoot, dstFolder string) (string, error) {
	if srcRoot == dstRoot {
		if relPath == dstFolder || strings.HasPrefix(dstFolder, relPath+"/") {
			return "", fmt.Errorf("move folder: %s into %s would nest a folder inside itself", relPath, dstFolder)
		}
	}

	src := AbsPath(srcRoot, relPath)
	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("move folder: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("move folder: %s is not a folder", relPath)
	}

	newRel := relJoin(dstFolder, path.Base(relPath))
	dst := AbsPath(dstRoot, newRel)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("move folder: %s already exists", newRel)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("move folder: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("move folder: %w", err)
	}
	return newRel, nil
}

// RenameEntry renames a document or folder in place within its location.
func RenameEntry(root, relPath, newName string) (string, error) {
	if newName == "" || strings.ContainsAny(newName, "/\\") {
		return "", fmt.Errorf("rename: invalid name %q", newName)
	}
	newRel := relJoin(path.Dir(relPath), newName)
	if dir := path.Dir(relPath); dir == "." {
		newRel = newName
	}
	src := AbsPath(root, relPath)
	dst := AbsPath(root, newRel)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("rename: %s already exists", newRel)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	return newRel, nil
}

// DeleteEntry removes a document or folder (recursively) from a location.
func DeleteEntry(root, relPath string) error {
	target := AbsPath(root, relPath)
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if info.IsDir() {
		return os.RemoveAll(target)
	}
	return os.Remove(target)
}
