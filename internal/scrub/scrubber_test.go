package scrub

import (
	"sort"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	s := New()
	if s.PatternCount() != len(builtinPatterns) {
		t.Errorf("PatternCount = %d, want %d", s.PatternCount(), len(builtinPatterns))
	}
}

func TestAddPattern(t *testing.T) {
	tests := []struct {
		name        string
		patName     string
		expr        string
		replacement string
		wantAdded   bool
	}{
		{"valid", "x", "FOO", "[FOO]", true},
		{"empty name", "", "FOO", "[FOO]", false},
		{"invalid regex", "bad", "(", "[BAD]", false},
		{"empty replacement deletes match", "y", "FOO", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			res := s.AddPattern(tt.patName, tt.expr, tt.replacement)
			if res.Added != tt.wantAdded {
				t.Errorf("Added = %v, want %v (err: %v)", res.Added, tt.wantAdded, res.Err)
			}
			if !tt.wantAdded && res.Err == nil {
				t.Error("failed add did not report an error")
			}
		})
	}
}

func TestAddRemoveCustomPattern(t *testing.T) {
	s := New()

	res := s.AddPattern("x", "FOO", "[FOO]")
	if !res.Added {
		t.Fatalf("AddPattern failed: %v", res.Err)
	}
	if got := s.Scrub("FOO bar"); got != "[FOO] bar" {
		t.Errorf("Scrub with custom pattern = %q, want %q", got, "[FOO] bar")
	}

	if !s.RemovePattern("x") {
		t.Fatal("RemovePattern(x) = false")
	}
	if got := s.Scrub("FOO bar"); got != "FOO bar" {
		t.Errorf("Scrub after removal = %q, want input unchanged", got)
	}
	if s.RemovePattern("x") {
		t.Error("RemovePattern(x) succeeded twice")
	}
}

func TestAddPatternEmptyReplacementDeletesMatch(t *testing.T) {
	s := New()
	res := s.AddPattern("strip_tag", `internal-[a-z]+ `, "")
	if !res.Added {
		t.Fatalf("AddPattern failed: %v", res.Err)
	}
	if got := s.Scrub("ping internal-alpha done"); got != "ping done" {
		t.Errorf("Scrub = %q, want %q", got, "ping done")
	}
}

func TestAddPatternReplacesSameName(t *testing.T) {
	s := New()

	s.AddPattern("x", "FOO", "[ONE]")
	s.AddPattern("x", "FOO", "[TWO]")

	if s.PatternCount() != len(builtinPatterns)+1 {
		t.Errorf("PatternCount = %d, want %d", s.PatternCount(), len(builtinPatterns)+1)
	}
	if got := s.Scrub("FOO"); got != "[TWO]" {
		t.Errorf("Scrub = %q, want [TWO]", got)
	}
}

func TestAddPatternShadowsBuiltin(t *testing.T) {
	s := New()

	res := s.AddPattern("email_address",
		`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, "[CONTACT]",
		WithCategory(CategoryPersonal), WithPriority(56), WithHints("@"))
	if !res.Added {
		t.Fatalf("AddPattern failed: %v", res.Err)
	}
	if got := s.Scrub("user@example.com"); got != "[CONTACT]" {
		t.Errorf("shadowed pattern not applied: %q", got)
	}

	s.ResetPatterns()
	if got := s.Scrub("user@example.com"); got != "[EMAIL]" {
		t.Errorf("ResetPatterns did not restore builtin: %q", got)
	}
}

func TestResetPatternsRestoresBuiltins(t *testing.T) {
	s := New()

	s.AddPattern("a", "AAA", "[A]")
	s.AddPattern("b", "BBB", "[B]")
	s.RemovePattern("email_address")
	s.RemovePattern("private_key")

	s.ResetPatterns()

	if s.PatternCount() != len(builtinPatterns) {
		t.Errorf("PatternCount = %d, want %d", s.PatternCount(), len(builtinPatterns))
	}
	got := s.ListPatterns()
	want := New().ListPatterns()
	if len(got) != len(want) {
		t.Fatalf("pattern lists differ in length: %d vs %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("pattern %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestListPatternsSorted(t *testing.T) {
	s := New()
	s.AddPattern("low", "AAA", "[A]", WithPriority(1))
	s.AddPattern("high", "BBB", "[B]", WithPriority(200))
	s.RemovePattern("uuid")
	s.AddPattern("mid", "CCC", "[C]", WithPriority(33))

	list := s.ListPatterns()
	if !sort.SliceIsSorted(list, func(i, j int) bool { return list[i].Priority < list[j].Priority }) {
		t.Errorf("ListPatterns not sorted by priority: %+v", list)
	}
	if list[0].Name != "private_key" || list[0].Priority != 0 {
		t.Errorf("first pattern = %+v, want private_key at priority 0", list[0])
	}
}

func TestPriorityTieBreaksByRegistrationOrder(t *testing.T) {
	s := New()
	s.AddPattern("first", "XYZZY", "[FIRST]", WithPriority(90))
	s.AddPattern("second", "XYZZY", "[SECOND]", WithPriority(90))

	if got := s.Scrub("XYZZY"); got != "[FIRST]" {
		t.Errorf("Scrub = %q, want earlier registration to win", got)
	}
}

func TestCaseInsensitiveCustomPattern(t *testing.T) {
	s := New()
	res := s.AddPattern("badge", `(?i)badge-[a-z]{4,}`, "[BADGE]",
		WithHints("BADGE-"), CaseInsensitive())
	if !res.Added {
		t.Fatalf("AddPattern failed: %v", res.Err)
	}
	// The hint was given uppercase; for a case-insensitive pattern it must
	// still route through the lowercase copy of the text.
	if got := s.Scrub("issued Badge-alpha today"); !strings.Contains(got, "[BADGE]") {
		t.Errorf("case-insensitive hint not normalized: %q", got)
	}
}

func TestBuiltinPatternsReturnsCopy(t *testing.T) {
	a := BuiltinPatterns()
	a[0].Name = "mutated"
	if builtinPatterns[0].Name == "mutated" {
		t.Error("BuiltinPatterns exposed internal table")
	}
}

func TestDefaultScrubberIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default returned different instances")
	}
}
