package lint

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	}
	return "unknown"
}

// Diagnostic is one structural finding. Line is 1-indexed, 0 when the
// finding has no single position. Source is the text that triggered it.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Line     int
	Source   string
}

var lintMD = goldmark.New()

// Check runs the structural checks: empty or javascript: link URLs,
// duplicate heading anchors, mixed line endings.
func Check(content string) []Diagnostic {
	var diags []Diagnostic
	source := []byte(content)
	root := lintMD.Parser().Parse(text.NewReader(source))

	type headingRef struct {
		line int
		raw  string
	}
	anchors := make(map[string][]headingRef)
	var anchorOrder []string

	ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			txt := nodeText(n, source)
			anchor := anchorFor(txt)
			if anchor == "" {
				break
			}
			if _, seen := anchors[anchor]; !seen {
				anchorOrder = append(anchorOrder, anchor)
			}
			anchors[anchor] = append(anchors[anchor], headingRef{
				line: lineOf(source, n),
				raw:  strings.Repeat("#", n.Level) + " " + txt,
			})
		case *ast.Link:
			dest := string(n.Destination)
			switch {
			case dest == "":
				diags = append(diags, Diagnostic{
					Severity: SeverityWarning,
					Code:     "empty-link-url",
					Message:  "link has an empty URL",
					Source:   "[" + nodeText(n, source) + "]",
				})
			case strings.HasPrefix(strings.ToLower(dest), "javascript:"):
				diags = append(diags, Diagnostic{
					Severity: SeverityError,
					Code:     "javascript-link",
					Message:  "JavaScript URL: " + dest,
					Source:   dest,
				})
			}
		}
		return ast.WalkContinue, nil
	})

	for _, anchor := range anchorOrder {
		refs := anchors[anchor]
		if len(refs) < 2 {
			continue
		}
		for _, ref := range refs {
			diags = append(diags, Diagnostic{
				Severity: SeverityWarning,
				Code:     "dup-heading-id",
				Message:  "duplicate heading ID: " + anchor,
				Line:     ref.line,
				Source:   ref.raw,
			})
		}
	}

	if mixedLineEndings(content) {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Code:     "mixed-line-endings",
			Message:  "document mixes CRLF and LF line endings",
		})
	}
	return diags
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := node.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// anchorFor slugifies heading text the way auto heading IDs do:
// lowercase, runs of non-alphanumerics become one hyphen.
func anchorFor(txt string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(txt) {
		if isWordRune(r) {
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		} else {
			hyphen = true
		}
	}
	return b.String()
}

func lineOf(source []byte, n *ast.Heading) int {
	if n.Lines().Len() == 0 {
		return 0
	}
	seg := n.Lines().At(0)
	return 1 + bytes.Count(source[:seg.Start], []byte("\n"))
}

func mixedLineEndings(content string) bool {
	hasCRLF := strings.Contains(content, "\r\n")
	hasLF := strings.Contains(strings.ReplaceAll(content, "\r\n", ""), "\n")
	return hasCRLF && hasLF
}
