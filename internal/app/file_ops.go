package app

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charlievieth/fastwalk"

	"inkpad/internal/debug"
	"inkpad/internal/ui"
	"inkpad/internal/workspace"
)

// performImport copies files dropped from the OS into the resolved
// destination folder. Directories are copied recursively; non-document
// files inside them come along so image links keep working.
func (o *Orchestrator) performImport(imp ui.ImportRequest) {
	root, ok := o.rootOf(imp.Destination.LocationID)
	if !ok {
		return
	}
	destDir := workspace.AbsPath(root, imp.Destination.FolderPath)

	imported := 0
	for _, src := range imp.Paths {
		info, err := os.Stat(src)
		if err != nil {
			debug.Log(debug.APP, "import skip %s: %v", src, err)
			continue
		}
		dst := filepath.Join(destDir, filepath.Base(src))
		if sameFile(src, dst) {
			continue
		}
		if info.IsDir() {
			err = copyTree(src, dst)
		} else {
			err = copyFile(src, dst)
		}
		if err != nil {
			o.ui.ShowError("Import failed: " + err.Error())
			return
		}
		imported++
	}
	if imported == 0 {
		return
	}
	o.reindex(imp.Destination.LocationID)
	o.ui.ShowSuccess(fmt.Sprintf("Imported %d item(s)", imported))
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}

func copyFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%s already exists", filepath.Base(dst))
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// copyTree copies a directory recursively, skipping hidden entries the
// same way the index does.
func copyTree(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%s already exists", filepath.Base(dst))
	}
	conf := fastwalk.Config{Follow: false}
	return fastwalk.Walk(&conf, src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != src && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}
