package dnd

import (
	"path"
	"strings"
)

// Drop-validation policy: pure predicates gating whether a geometrically
// resolved destination is semantically legal. The engine resolves where the
// pointer is; these decide whether the move makes sense.

// parentFolder returns the folder containing a rel_path, "" for entries at
// the location root.
func parentFolder(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// CanDropDocumentIntoFolder reports whether a dragged document may drop
// into the given folder. Cross-location moves are always allowed; within a
// location, dropping a document into the folder it already lives in is a
// no-op and rejected. Moving up to an ancestor folder is allowed.
func CanDropDocumentIntoFolder(payload SourceData, targetLocationID int64, targetFolder string) bool {
	if payload.Kind != SourceDocument {
		return false
	}
	if payload.LocationID != targetLocationID {
		return true
	}
	return parentFolder(payload.RelPath) != targetFolder
}

// CanDropFolderIntoFolder reports whether a dragged folder may drop into
// the given folder. Dropping a folder onto itself or into any of its own
// descendants is rejected; those checks only apply within the folder's own
// location, since rel_paths in different locations are unrelated.
func CanDropFolderIntoFolder(payload SourceData, targetLocationID int64, targetFolder string) bool {
	if payload.Kind != SourceFolder {
		return false
	}
	if payload.LocationID == targetLocationID {
		if payload.RelPath == targetFolder {
			return false
		}
		if strings.HasPrefix(targetFolder, payload.RelPath+"/") {
			return false
		}
	}
	return true
}
