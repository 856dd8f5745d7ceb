package lint

import "testing"

func patternsOf(texts ...string) []Pattern {
	ps := make([]Pattern, len(texts))
	for i, t := range texts {
		ps[i] = Pattern{Text: t, Category: Filler}
	}
	return ps
}

func TestScanSingleWordPatterns(t *testing.T) {
	s := NewScanner(patternsOf("basically", "actually"))
	matches := s.Scan("This is basically just a test actually")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %+v", matches)
	}
	if matches[0].Start != 8 || matches[0].End != 17 {
		t.Errorf("first match: expected 8..17, got %d..%d", matches[0].Start, matches[0].End)
	}
	if matches[1].Start != 30 || matches[1].End != 38 {
		t.Errorf("second match: expected 30..38, got %d..%d", matches[1].Start, matches[1].End)
	}
}

func TestScanMultiWordPatterns(t *testing.T) {
	s := NewScanner([]Pattern{
		{Text: "in order to", Category: Redundancy, Replacement: "to"},
		{Text: "at this point in time", Category: Redundancy, Replacement: "now"},
	})
	matches := s.Scan("We need to act in order to succeed. At this point in time, we are ready.")
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %+v", matches)
	}
	if matches[0].Start != 15 || matches[0].Replacement != "to" {
		t.Errorf("unexpected first match %+v", matches[0])
	}
	if matches[1].Start != 36 || matches[1].Replacement != "now" {
		t.Errorf("unexpected second match %+v", matches[1])
	}
}

func TestScanRespectsWordBoundaries(t *testing.T) {
	s := NewScanner(patternsOf("just"))
	matches := s.Scan("This is just a test. Justice is important. Adjusting takes time.")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %+v", matches)
	}
	if matches[0].Start != 8 || matches[0].End != 12 {
		t.Errorf("expected 8..12, got %d..%d", matches[0].Start, matches[0].End)
	}
}

func TestScanIsCaseInsensitive(t *testing.T) {
	s := NewScanner(patternsOf("basically"))
	if matches := s.Scan("This is BASICALLY a test. Basically speaking."); len(matches) != 2 {
		t.Errorf("expected 2 matches, got %+v", matches)
	}
}

func TestScanOverlappingPatterns(t *testing.T) {
	s := NewScanner([]Pattern{
		{Text: "at the", Category: Filler},
		{Text: "at the end of the day", Category: Cliche},
	})
	matches := s.Scan("At the end of the day, we won.")
	if len(matches) != 2 {
		t.Fatalf("expected both overlapping matches, got %+v", matches)
	}
	if matches[0].Start != 0 || matches[1].Start != 0 {
		t.Errorf("expected both at offset 0, got %+v", matches)
	}
}

func TestScanDeduplicatesIdenticalPatterns(t *testing.T) {
	s := NewScanner(patternsOf("actually", "actually"))
	matches := s.Scan("actually")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %+v", matches)
	}
	if matches[0].Start != 0 || matches[0].End != 8 {
		t.Errorf("expected 0..8, got %d..%d", matches[0].Start, matches[0].End)
	}
}

func TestScanEmptyInputs(t *testing.T) {
	if matches := NewScanner(nil).Scan("some text"); matches != nil {
		t.Errorf("no patterns: expected nil, got %+v", matches)
	}
	if matches := NewScanner(patternsOf("just")).Scan(""); matches != nil {
		t.Errorf("empty text: expected nil, got %+v", matches)
	}
	if matches := NewScanner(patternsOf("  ", "")).Scan("anything"); matches != nil {
		t.Errorf("blank patterns: expected nil, got %+v", matches)
	}
}

func TestBuiltinPatternsCoverAllCategories(t *testing.T) {
	s := NewScanner(BuiltinPatterns())
	matches := s.Scan("Basically we act in order to ship, and we may beat around the bush.")
	var saw [3]bool
	for _, m := range matches {
		saw[m.Category] = true
	}
	if !saw[Filler] || !saw[Redundancy] || !saw[Cliche] {
		t.Errorf("expected a match per category, got %+v", matches)
	}
}
