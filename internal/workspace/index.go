package workspace

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// Snapshot is the indexed contents of one location: folder rel_paths and
// document rel_paths, both sorted.
type Snapshot struct {
	Folders   []string
	Documents []string
}

// markdown extensions recognized as documents.
var docExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// IsDocumentPath reports whether a path names an indexable document.
func IsDocumentPath(p string) bool {
	return docExtensions[strings.ToLower(filepath.Ext(p))]
}

// IndexLocation walks a location root and returns its snapshot. Hidden
// entries (dot-prefixed) are skipped. Walk errors on individual entries
// are skipped too; an unreadable subtree should not take down the index.
func IndexLocation(root string) (*Snapshot, error) {
	var mu sync.Mutex
	snap := &Snapshot{}

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == root {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		mu.Lock()
		defer mu.Unlock()
		if d.IsDir() {
			snap.Folders = append(snap.Folders, rel)
		} else if IsDocumentPath(p) {
			snap.Documents = append(snap.Documents, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(snap.Folders)
	sort.Strings(snap.Documents)
	return snap, nil
}

// DocumentsIn returns the snapshot's documents whose parent folder is
// exactly the given folder rel_path.
func (s *Snapshot) DocumentsIn(folder string) []string {
	var out []string
	for _, d := range s.Documents {
		if (Document{RelPath: d}).ParentFolder() == folder {
			out = append(out, d)
		}
	}
	return out
}

// FoldersIn returns the snapshot's folders directly under the given folder
// rel_path.
func (s *Snapshot) FoldersIn(folder string) []string {
	var out []string
	for _, f := range s.Folders {
		dir := ""
		if i := strings.LastIndex(f, "/"); i >= 0 {
			dir = f[:i]
		}
		if dir == folder {
			out = append(out, f)
		}
	}
	return out
}
