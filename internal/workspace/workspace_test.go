package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("# note\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDocumentHelpers(t *testing.T) {
	testCases := []struct {
		rel    string
		title  string
		parent string
	}{
		{"notes/a.md", "a", "notes"},
		{"a.md", "a", ""},
		{"archive/2026/plan.markdown", "plan", "archive/2026"},
	}
	for _, tc := range testCases {
		d := Document{RelPath: tc.rel}
		if d.Title() != tc.title {
			t.Errorf("Title(%q): expected %q, got %q", tc.rel, tc.title, d.Title())
		}
		if d.ParentFolder() != tc.parent {
			t.Errorf("ParentFolder(%q): expected %q, got %q", tc.rel, tc.parent, d.ParentFolder())
		}
	}
}

func TestMoveDocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	if err := os.MkdirAll(filepath.Join(root, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	newRel, err := MoveDocument(root, "a.md", root, "archive")
	if err != nil {
		t.Fatalf("MoveDocument failed: %v", err)
	}
	if newRel != "archive/a.md" {
		t.Errorf("expected archive/a.md, got %q", newRel)
	}
	if _, err := os.Stat(filepath.Join(root, "archive", "a.md")); err != nil {
		t.Error("expected document at destination")
	}
	if _, err := os.Stat(filepath.Join(root, "a.md")); !os.IsNotExist(err) {
		t.Error("expected source to be gone")
	}

	// Moving onto an existing file is refused.
	writeFile(t, root, "a.md")
	if _, err := MoveDocument(root, "a.md", root, "archive"); err == nil {
		t.Error("expected collision to be refused")
	}
}

func TestMoveDocument_CrossLocation(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, src, "notes/a.md")

	newRel, err := MoveDocument(src, "notes/a.md", dst, "")
	if err != nil {
		t.Fatalf("MoveDocument failed: %v", err)
	}
	if newRel != "a.md" {
		t.Errorf("expected a.md at destination root, got %q", newRel)
	}
	if _, err := os.Stat(filepath.Join(dst, "a.md")); err != nil {
		t.Error("expected document in destination location")
	}
}

func TestMoveFolder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "samples/inner/a.md")
	if err := os.MkdirAll(filepath.Join(root, "archive"), 0o755); err != nil {
		t.Fatal(err)
	}

	newRel, err := MoveFolder(root, "samples", root, "archive")
	if err != nil {
		t.Fatalf("MoveFolder failed: %v", err)
	}
	if newRel != "archive/samples" {
		t.Errorf("expected archive/samples, got %q", newRel)
	}
	if _, err := os.Stat(filepath.Join(root, "archive", "samples", "inner", "a.md")); err != nil {
		t.Error("expected nested contents to move")
	}
}

func TestMoveFolder_RejectsDescendant(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "samples/inner/a.md")

	if _, err := MoveFolder(root, "samples", root, "samples/inner"); err == nil {
		t.Error("expected descendant move to be refused")
	}
	if _, err := MoveFolder(root, "samples", root, "samples"); err == nil {
		t.Error("expected self move to be refused")
	}
}

func TestRenameEntry(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes/a.md")

	newRel, err := RenameEntry(root, "notes/a.md", "b.md")
	if err != nil {
		t.Fatalf("RenameEntry failed: %v", err)
	}
	if newRel != "notes/b.md" {
		t.Errorf("expected notes/b.md, got %q", newRel)
	}

	if _, err := RenameEntry(root, "notes/b.md", "bad/name"); err == nil {
		t.Error("expected separator in name to be refused")
	}
}

func TestDeleteEntry(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes/a.md")

	if err := DeleteEntry(root, "notes/a.md"); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if err := DeleteEntry(root, "notes"); err != nil {
		t.Fatalf("DeleteEntry on folder failed: %v", err)
	}
	if err := DeleteEntry(root, "notes"); err == nil {
		t.Error("expected delete of missing entry to fail")
	}
}

func TestIndexLocation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md")
	writeFile(t, root, "notes/b.md")
	writeFile(t, root, "notes/deep/c.markdown")
	writeFile(t, root, "notes/image.png")
	writeFile(t, root, ".hidden/d.md")
	writeFile(t, root, ".dotfile.md")

	snap, err := IndexLocation(root)
	if err != nil {
		t.Fatalf("IndexLocation failed: %v", err)
	}

	wantDocs := []string{"a.md", "notes/b.md", "notes/deep/c.markdown"}
	if len(snap.Documents) != len(wantDocs) {
		t.Fatalf("expected documents %v, got %v", wantDocs, snap.Documents)
	}
	for i, d := range wantDocs {
		if snap.Documents[i] != d {
			t.Fatalf("expected documents %v, got %v", wantDocs, snap.Documents)
		}
	}

	wantFolders := []string{"notes", "notes/deep"}
	if len(snap.Folders) != len(wantFolders) {
		t.Fatalf("expected folders %v, got %v", wantFolders, snap.Folders)
	}

	if docs := snap.DocumentsIn("notes"); len(docs) != 1 || docs[0] != "notes/b.md" {
		t.Errorf("DocumentsIn(notes): got %v", docs)
	}
	if folders := snap.FoldersIn(""); len(folders) != 1 || folders[0] != "notes" {
		t.Errorf("FoldersIn(root): got %v", folders)
	}
	if folders := snap.FoldersIn("notes"); len(folders) != 1 || folders[0] != "notes/deep" {
		t.Errorf("FoldersIn(notes): got %v", folders)
	}
}
