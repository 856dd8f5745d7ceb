// Package lint runs writing-assist checks over markdown documents: a
// style scan flagging filler, redundancy, and cliche phrases, and a few
// structural checks (broken links, duplicate heading anchors).
package lint

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Category int

const (
	Filler Category = iota
	Redundancy
	Cliche
)

func (c Category) String() string {
	switch c {
	case Filler:
		return "filler"
	case Redundancy:
		return "redundancy"
	case Cliche:
		return "cliche"
	}
	return "unknown"
}

// Pattern is one phrase the style scan looks for. Replacement, when set,
// is a suggested rewrite.
type Pattern struct {
	Text        string
	Category    Category
	Replacement string
}

// Match is one occurrence of a pattern. Start and End are byte offsets
// into the scanned text.
type Match struct {
	Start       int
	End         int
	Category    Category
	Replacement string
}

// Scanner matches a fixed pattern set against document text,
// case-insensitively and on word boundaries.
type Scanner struct {
	patterns []Pattern
}

func NewScanner(patterns []Pattern) *Scanner {
	kept := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		p.Text = strings.ToLower(strings.TrimSpace(p.Text))
		if p.Text == "" {
			continue
		}
		kept = append(kept, p)
	}
	return &Scanner{patterns: kept}
}

type matchKey struct {
	start, end  int
	category    Category
	replacement string
}

// Scan reports every pattern occurrence in text, overlapping matches
// included, sorted by position. Identical matches from duplicate
// patterns collapse to one.
func (s *Scanner) Scan(text string) []Match {
	if text == "" || len(s.patterns) == 0 {
		return nil
	}
	var matches []Match
	seen := make(map[matchKey]bool)
	for _, p := range s.patterns {
		for from := 0; ; {
			i := indexFold(text, p.Text, from)
			if i < 0 {
				break
			}
			end := i + len(p.Text)
			from = i + 1
			if !wordBoundary(text, i, end) {
				continue
			}
			key := matchKey{i, end, p.Category, p.Replacement}
			if seen[key] {
				continue
			}
			seen[key] = true
			matches = append(matches, Match{Start: i, End: end, Category: p.Category, Replacement: p.Replacement})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Category < b.Category
	})
	return matches
}

// indexFold finds sub in s at or after from, folding ASCII case. sub is
// already lowercased. Matching byte-wise keeps offsets exact in the
// original text.
func indexFold(s, sub string, from int) int {
	for i := from; i+len(sub) <= len(s); i++ {
		if equalFoldASCII(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(s, lower string) bool {
	for i := 0; i < len(lower); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c |= 0x20
		}
		if c != lower[i] {
			return false
		}
	}
	return true
}

func wordBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// BuiltinPatterns is the default dictionary.
func BuiltinPatterns() []Pattern {
	return []Pattern{
		{Text: "basically", Category: Filler},
		{Text: "actually", Category: Filler},
		{Text: "literally", Category: Filler},
		{Text: "really", Category: Filler},
		{Text: "very", Category: Filler},
		{Text: "quite", Category: Filler},
		{Text: "just", Category: Filler},

		{Text: "in order to", Category: Redundancy, Replacement: "to"},
		{Text: "at this point in time", Category: Redundancy, Replacement: "now"},
		{Text: "absolutely essential", Category: Redundancy, Replacement: "essential"},
		{Text: "advance planning", Category: Redundancy, Replacement: "planning"},
		{Text: "end result", Category: Redundancy, Replacement: "result"},
		{Text: "each and every", Category: Redundancy, Replacement: "every"},

		{Text: "at the end of the day", Category: Cliche},
		{Text: "low-hanging fruit", Category: Cliche},
		{Text: "think outside the box", Category: Cliche},
		{Text: "beat around the bush", Category: Cliche},
		{Text: "moving forward", Category: Cliche},
	}
}
