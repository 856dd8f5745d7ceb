// Package search finds documents across locations by title and content.
package search

import (
	"os"
	"path"
	"strings"
)

// DirectiveType classifies a query directive.
type DirectiveType int

const (
	DirTitle DirectiveType = iota
	DirContents
	DirFolder
	DirTag
)

// Directive represents a single search directive.
type Directive struct {
	Type  DirectiveType
	Value string
}

// Query holds parsed search directives.
type Query struct {
	Directives []Directive
	Raw        string
}

// Parse parses a search string into directives.
// Examples:
//   - "foo" -> title:foo
//   - "contents:hello" -> search document bodies for "hello"
//   - "folder:archive" -> restrict to documents under archive/
//   - "tag:work" -> documents carrying #work
func Parse(input string) *Query {
	q := &Query{Raw: input}
	input = strings.TrimSpace(input)
	if input == "" {
		return q
	}

	for _, part := range splitRespectingQuotes(input) {
		q.Directives = append(q.Directives, parseDirective(part))
	}
	return q
}

func splitRespectingQuotes(s string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case (r == '"' || r == '\'') && !inQuotes:
			inQuotes = true
			quoteChar = r
		case r == quoteChar && inQuotes:
			inQuotes = false
			quoteChar = 0
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func parseDirective(s string) Directive {
	if idx := strings.Index(s, ":"); idx > 0 {
		directive := strings.ToLower(s[:idx])
		value := strings.Trim(s[idx+1:], "\"'")

		switch directive {
		case "title", "name", "file":
			return Directive{Type: DirTitle, Value: value}
		case "contents", "content", "text", "body":
			return Directive{Type: DirContents, Value: value}
		case "folder", "in":
			return Directive{Type: DirFolder, Value: strings.Trim(value, "/")}
		case "tag":
			return Directive{Type: DirTag, Value: strings.TrimPrefix(value, "#")}
		}
	}

	// Bare terms match the title.
	return Directive{Type: DirTitle, Value: s}
}

// HasContentSearch returns true if the query reads document bodies.
func (q *Query) HasContentSearch() bool {
	for _, d := range q.Directives {
		if d.Type == DirContents || d.Type == DirTag {
			return true
		}
	}
	return false
}

// IsEmpty returns true if the query has no directives.
func (q *Query) IsEmpty() bool {
	return len(q.Directives) == 0
}

// Matcher evaluates documents against a query.
type Matcher struct {
	query       *Query
	contentFunc func(absPath string) (string, error)
}

// NewMatcher creates a Matcher for the given query.
func NewMatcher(q *Query) *Matcher {
	return &Matcher{
		query: q,
		contentFunc: func(absPath string) (string, error) {
			data, err := os.ReadFile(absPath)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
	}
}

// SetContentFunc overrides the content reader, e.g. to serve from an
// editor buffer instead of disk.
func (m *Matcher) SetContentFunc(f func(absPath string) (string, error)) {
	m.contentFunc = f
}

// Match checks a document against all directives (implicit AND).
// relPath is the slash-separated path within the location; absPath is
// only read when a directive needs the body.
func (m *Matcher) Match(relPath, absPath string) bool {
	if len(m.query.Directives) == 0 {
		return true
	}
	for _, d := range m.query.Directives {
		if !m.matchDirective(d, relPath, absPath) {
			return false
		}
	}
	return true
}

func (m *Matcher) matchDirective(d Directive, relPath, absPath string) bool {
	switch d.Type {
	case DirTitle:
		title := strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
		return matchGlob(strings.ToLower(title), strings.ToLower(d.Value))

	case DirFolder:
		folder := path.Dir(relPath)
		if folder == "." {
			folder = ""
		}
		want := strings.ToLower(d.Value)
		folder = strings.ToLower(folder)
		return folder == want || strings.HasPrefix(folder, want+"/")

	case DirContents:
		content, err := m.contentFunc(absPath)
		if err != nil {
			return false
		}
		return strings.Contains(strings.ToLower(content), strings.ToLower(d.Value))

	case DirTag:
		content, err := m.contentFunc(absPath)
		if err != nil {
			return false
		}
		return strings.Contains(strings.ToLower(content), "#"+strings.ToLower(d.Value))
	}
	return true
}

// matchGlob does simple glob matching with * wildcards. Patterns without
// wildcards fall back to substring match.
func matchGlob(name, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return strings.Contains(name, pattern)
	}

	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return name == pattern
	}
	if parts[0] != "" && !strings.HasPrefix(name, parts[0]) {
		return false
	}
	last := parts[len(parts)-1]
	if last != "" && !strings.HasSuffix(name, last) {
		return false
	}

	pos := len(parts[0])
	for _, part := range parts[1 : len(parts)-1] {
		if part == "" {
			continue
		}
		idx := strings.Index(name[pos:], part)
		if idx < 0 {
			return false
		}
		pos += idx + len(part)
	}
	return true
}
