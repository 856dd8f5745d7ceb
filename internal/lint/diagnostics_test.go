package lint

import "testing"

func findCode(diags []Diagnostic, code string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func TestCheckCleanDocument(t *testing.T) {
	diags := Check("# Title\n\nSome text with a [link](https://example.com).\n")
	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %+v", diags)
	}
}

func TestCheckEmptyLinkURL(t *testing.T) {
	diags := findCode(Check("See [the docs]().\n"), "empty-link-url")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	if diags[0].Severity != SeverityWarning {
		t.Errorf("expected a warning, got %v", diags[0].Severity)
	}
	if diags[0].Source != "[the docs]" {
		t.Errorf("unexpected source %q", diags[0].Source)
	}
}

func TestCheckJavascriptLink(t *testing.T) {
	diags := findCode(Check("Click [here](javascript:alert(1)).\n"), "javascript-link")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", diags)
	}
	if diags[0].Severity != SeverityError {
		t.Errorf("expected an error, got %v", diags[0].Severity)
	}
}

func TestCheckDuplicateHeadingIDs(t *testing.T) {
	content := "# Setup\n\ntext\n\n## Usage\n\nmore\n\n# Setup\n\nagain\n"
	diags := findCode(Check(content), "dup-heading-id")
	if len(diags) != 2 {
		t.Fatalf("expected one diagnostic per duplicate, got %+v", diags)
	}
	if diags[0].Line != 1 || diags[1].Line != 9 {
		t.Errorf("expected lines 1 and 9, got %d and %d", diags[0].Line, diags[1].Line)
	}
	if diags[0].Source != "# Setup" {
		t.Errorf("unexpected source %q", diags[0].Source)
	}
}

func TestCheckDistinctHeadingsPass(t *testing.T) {
	content := "# Setup\n\n## Setup Notes\n"
	if diags := findCode(Check(content), "dup-heading-id"); len(diags) != 0 {
		t.Errorf("distinct anchors must not be flagged, got %+v", diags)
	}
}

func TestCheckMixedLineEndings(t *testing.T) {
	if diags := findCode(Check("one\r\ntwo\nthree\n"), "mixed-line-endings"); len(diags) != 1 {
		t.Errorf("expected the mixed endings warning, got %+v", diags)
	}
	if diags := findCode(Check("one\r\ntwo\r\n"), "mixed-line-endings"); len(diags) != 0 {
		t.Errorf("uniform CRLF must pass, got %+v", diags)
	}
	if diags := findCode(Check("one\ntwo\n"), "mixed-line-endings"); len(diags) != 0 {
		t.Errorf("uniform LF must pass, got %+v", diags)
	}
}

func TestAnchorFor(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Setup", "setup"},
		{"Setup Notes", "setup-notes"},
		{"A -- B", "a-b"},
		{"  spaced  ", "spaced"},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := anchorFor(c.in); got != c.want {
			t.Errorf("anchorFor(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}
