// Package homoglyph detects visually-confusable characters from non-Latin
// scripts substituted into Latin-looking text, e.g. Cyrillic "а" standing in
// for Latin "a" in a phishing domain. It complements the scrub engine: where
// scrub removes data that must not leak, homoglyph flags identifiers that
// must not be trusted.
package homoglyph

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Script labels for confusable characters and mixed-script analysis.
const (
	ScriptLatin     = "latin"
	ScriptCyrillic  = "cyrillic"
	ScriptGreek     = "greek"
	ScriptArmenian  = "armenian"
	ScriptFullwidth = "fullwidth"
)

// confusable maps a non-Latin rune to the Latin text it imitates.
type confusable struct {
	latin  string
	script string
}

// confusables is the homoglyph table. It is intentionally conservative:
// only characters that render near-identically to Latin glyphs in common
// fonts are listed, so a finding is always worth flagging.
var confusables = map[rune]confusable{
	// Cyrillic lowercase
	'а': {"a", ScriptCyrillic},
	'е': {"e", ScriptCyrillic},
	'о': {"o", ScriptCyrillic},
	'р': {"p", ScriptCyrillic},
	'с': {"c", ScriptCyrillic},
	'у': {"y", ScriptCyrillic},
	'х': {"x", ScriptCyrillic},
	'і': {"i", ScriptCyrillic},
	'ј': {"j", ScriptCyrillic},
	'ѕ': {"s", ScriptCyrillic},
	'ԁ': {"d", ScriptCyrillic},
	'ԛ': {"q", ScriptCyrillic},
	'ԝ': {"w", ScriptCyrillic},
	// Cyrillic uppercase
	'А': {"A", ScriptCyrillic},
	'В': {"B", ScriptCyrillic},
	'Е': {"E", ScriptCyrillic},
	'К': {"K", ScriptCyrillic},
	'М': {"M", ScriptCyrillic},
	'Н': {"H", ScriptCyrillic},
	'О': {"O", ScriptCyrillic},
	'Р': {"P", ScriptCyrillic},
	'С': {"C", ScriptCyrillic},
	'Т': {"T", ScriptCyrillic},
	'Х': {"X", ScriptCyrillic},
	'І': {"I", ScriptCyrillic},
	'Ѕ': {"S", ScriptCyrillic},
	'Ј': {"J", ScriptCyrillic},
	// Greek
	'ο': {"o", ScriptGreek},
	'ν': {"v", ScriptGreek},
	'Α': {"A", ScriptGreek},
	'Β': {"B", ScriptGreek},
	'Ε': {"E", ScriptGreek},
	'Ζ': {"Z", ScriptGreek},
	'Η': {"H", ScriptGreek},
	'Ι': {"I", ScriptGreek},
	'Κ': {"K", ScriptGreek},
	'Μ': {"M", ScriptGreek},
	'Ν': {"N", ScriptGreek},
	'Ο': {"O", ScriptGreek},
	'Ρ': {"P", ScriptGreek},
	'Τ': {"T", ScriptGreek},
	'Υ': {"Y", ScriptGreek},
	'Χ': {"X", ScriptGreek},
	// Armenian
	'օ': {"o", ScriptArmenian},
	'ս': {"u", ScriptArmenian},
	'հ': {"h", ScriptArmenian},
}

func init() {
	// Fullwidth forms map mechanically onto ASCII.
	for r := rune('Ａ'); r <= 'Ｚ'; r++ {
		confusables[r] = confusable{string('A' + (r - 'Ａ')), ScriptFullwidth}
	}
	for r := rune('ａ'); r <= 'ｚ'; r++ {
		confusables[r] = confusable{string('a' + (r - 'ａ')), ScriptFullwidth}
	}
	for r := rune('０'); r <= '９'; r++ {
		confusables[r] = confusable{string('0' + (r - '０')), ScriptFullwidth}
	}
}

// Finding is one confusable character located in a text.
type Finding struct {
	// Index is the rune offset of the character, not the byte offset.
	Index     int    `json:"index"`
	Char      string `json:"char"`
	Latin     string `json:"latin"`
	Script    string `json:"script"`
	CodePoint string `json:"code_point"`
}

// Mapping is one entry of the confusable table.
type Mapping struct {
	Char      string `json:"char"`
	Latin     string `json:"latin"`
	Script    string `json:"script"`
	CodePoint string `json:"code_point"`
}

// MixedScriptResult reports whether a text mixes letters from multiple
// scripts, which is the usual signature of a disguised identifier.
type MixedScriptResult struct {
	Mixed    bool      `json:"mixed"`
	Scripts  []string  `json:"scripts"`
	Findings []Finding `json:"findings"`
}

func codePoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// Detect returns every confusable character in text, in order of appearance.
func Detect(text string) []Finding {
	var findings []Finding
	for i, r := range []rune(text) {
		if c, ok := confusables[r]; ok {
			findings = append(findings, Finding{
				Index:     i,
				Char:      string(r),
				Latin:     c.latin,
				Script:    c.script,
				CodePoint: codePoint(r),
			})
		}
	}
	return findings
}

// CheckMixedScript reports the set of scripts whose letters occur in text.
// A text is mixed when letters from more than one script are present;
// all-Cyrillic prose is not mixed and not suspicious.
func CheckMixedScript(text string) MixedScriptResult {
	seen := map[string]bool{}
	for _, r := range text {
		switch {
		case r < 128 && unicode.IsLetter(r):
			seen[ScriptLatin] = true
		case unicode.Is(unicode.Cyrillic, r):
			seen[ScriptCyrillic] = true
		case unicode.Is(unicode.Greek, r):
			seen[ScriptGreek] = true
		case unicode.Is(unicode.Armenian, r):
			seen[ScriptArmenian] = true
		case (r >= 'Ａ' && r <= 'Ｚ') || (r >= 'ａ' && r <= 'ｚ'):
			seen[ScriptFullwidth] = true
		}
	}

	scripts := make([]string, 0, len(seen))
	for s := range seen {
		scripts = append(scripts, s)
	}
	sort.Strings(scripts)

	return MixedScriptResult{
		Mixed:    len(scripts) > 1,
		Scripts:  scripts,
		Findings: Detect(text),
	}
}

// Normalize rewrites every confusable character to its Latin equivalent.
// Text with no confusables is returned unchanged.
func Normalize(text string) string {
	var b strings.Builder
	changed := false
	for _, r := range text {
		if c, ok := confusables[r]; ok {
			b.WriteString(c.latin)
			changed = true
			continue
		}
		b.WriteRune(r)
	}
	if !changed {
		return text
	}
	return b.String()
}

// Map returns the full confusable table, sorted by code point.
func Map() []Mapping {
	out := make([]Mapping, 0, len(confusables))
	for r, c := range confusables {
		out = append(out, Mapping{
			Char:      string(r),
			Latin:     c.latin,
			Script:    c.script,
			CodePoint: codePoint(r),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodePoint < out[j].CodePoint })
	return out
}
