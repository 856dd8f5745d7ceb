package ui

import "testing"

func TestParsePreview(t *testing.T) {
	content := "# Title\n\nSome **bold** and *italic* text.\n\n- one\n- two\n\n```go\nfmt.Println()\n```\n\n> quoted\n\n---\n\n![alt text](images/pic.png)\n"

	blocks := ParsePreview(content)

	wantKinds := []BlockKind{
		BlockHeading, BlockParagraph, BlockList, BlockList,
		BlockCode, BlockQuote, BlockRule, BlockImage,
	}
	if len(blocks) != len(wantKinds) {
		t.Fatalf("expected %d blocks, got %d: %+v", len(wantKinds), len(blocks), blocks)
	}
	for i, k := range wantKinds {
		if blocks[i].Kind != k {
			t.Errorf("block %d: expected kind %d, got %d", i, k, blocks[i].Kind)
		}
	}

	if blocks[0].Level != 1 {
		t.Errorf("heading level: expected 1, got %d", blocks[0].Level)
	}
	if blocks[4].Language != "go" {
		t.Errorf("code language: expected go, got %q", blocks[4].Language)
	}
	if len(blocks[4].Spans) != 1 || blocks[4].Spans[0].Text != "fmt.Println()\n" {
		t.Errorf("code body: expected raw fence lines, got %+v", blocks[4].Spans)
	}
	if blocks[7].ImageSrc != "images/pic.png" {
		t.Errorf("image src: expected images/pic.png, got %q", blocks[7].ImageSrc)
	}
}

func TestParsePreviewEmphasis(t *testing.T) {
	blocks := ParsePreview("**bold** then *italic*\n")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	var sawBold, sawItalic bool
	for _, s := range blocks[0].Spans {
		if s.Bold {
			sawBold = true
		}
		if s.Italic {
			sawItalic = true
		}
	}
	if !sawBold || !sawItalic {
		t.Errorf("expected bold and italic spans, got %+v", blocks[0].Spans)
	}
}

func TestParseURIList(t *testing.T) {
	raw := "file:///home/u/notes/a.md\r\n# comment\nfile:///home/u/b.md\n\n"
	paths := parseURIList(raw)
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %v", paths)
	}
	if paths[0] != "/home/u/notes/a.md" || paths[1] != "/home/u/b.md" {
		t.Errorf("unexpected paths %v", paths)
	}
}

func TestParseURIListEscapes(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"file:///home/u/my%20note.md", "/home/u/my note.md"},
		{"file://localhost/home/u/a.md", "/home/u/a.md"},
		{"file:///tmp/caf%C3%A9.md", "/tmp/café.md"},
	}
	for _, c := range cases {
		paths := parseURIList(c.raw)
		if len(paths) != 1 || paths[0] != c.want {
			t.Errorf("parseURIList(%q): expected %q, got %v", c.raw, c.want, paths)
		}
	}
}
