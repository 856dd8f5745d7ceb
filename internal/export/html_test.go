package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplitFrontMatter(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		wantTitle string
		wantBody  string
	}{
		{
			name:      "with front matter",
			content:   "+++\ntitle = \"Hello\"\n+++\n\n# Heading\n",
			wantTitle: "Hello",
			wantBody:  "# Heading\n",
		},
		{
			name:      "no front matter",
			content:   "# Heading\n",
			wantTitle: "",
			wantBody:  "# Heading\n",
		},
		{
			name:      "unterminated fence keeps content",
			content:   "+++\ntitle = \"Hello\"\n# Heading\n",
			wantTitle: "",
			wantBody:  "+++\ntitle = \"Hello\"\n# Heading\n",
		},
		{
			name:      "malformed toml keeps content",
			content:   "+++\ntitle = not quoted\n+++\n# Heading\n",
			wantTitle: "",
			wantBody:  "+++\ntitle = not quoted\n+++\n# Heading\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fm, body := SplitFrontMatter(tc.content)
			if fm.Title != tc.wantTitle {
				t.Errorf("title: expected %q, got %q", tc.wantTitle, fm.Title)
			}
			if body != tc.wantBody {
				t.Errorf("body: expected %q, got %q", tc.wantBody, body)
			}
		})
	}
}

func TestHTML(t *testing.T) {
	content := "+++\ntitle = \"Notes\"\ndate = \"2026-01-15\"\ntags = [\"a\", \"b\"]\n+++\n\n# Heading\n\nSome **bold** text.\n"

	out, err := HTML(content, Options{KeepMetadata: true})
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	for _, want := range []string{
		"<title>Notes</title>",
		`<meta name="date" content="2026-01-15">`,
		`<meta name="keywords" content="a,b">`,
		"<h1",
		"<strong>bold</strong>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "+++") {
		t.Error("front matter fence leaked into output")
	}
}

func TestHTMLTitleOverride(t *testing.T) {
	out, err := HTML("+++\ntitle = \"From Meta\"\n+++\nbody\n", Options{Title: "Override"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<title>Override</title>") {
		t.Error("expected the explicit title to win")
	}
	if strings.Contains(out, "From Meta") {
		t.Error("front matter title should not appear")
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(src, []byte("# Doc\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dst, err := File(src, "", Options{})
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if dst != filepath.Join(dir, "doc.html") {
		t.Errorf("unexpected destination %s", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<h1") {
		t.Error("rendered file missing heading")
	}
}
