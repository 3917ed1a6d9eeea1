package homoglyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	// "pаypal.com" with a Cyrillic а at rune index 1.
	findings := Detect("pаypal.com")
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, 1, f.Index)
	assert.Equal(t, "а", f.Char)
	assert.Equal(t, "a", f.Latin)
	assert.Equal(t, ScriptCyrillic, f.Script)
	assert.Equal(t, "U+0430", f.CodePoint)
}

func TestDetectCleanText(t *testing.T) {
	assert.Empty(t, Detect("paypal.com"))
	assert.Empty(t, Detect(""))
}

func TestDetectMultiple(t *testing.T) {
	// Cyrillic о and Greek ο in one string.
	findings := Detect("gоοgle")
	require.Len(t, findings, 2)
	assert.Equal(t, ScriptCyrillic, findings[0].Script)
	assert.Equal(t, ScriptGreek, findings[1].Script)
}

func TestDetectFullwidth(t *testing.T) {
	findings := Detect("ａdmin")
	require.Len(t, findings, 1)
	assert.Equal(t, "a", findings[0].Latin)
	assert.Equal(t, ScriptFullwidth, findings[0].Script)
}

func TestCheckMixedScript(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMixed   bool
		wantScripts []string
	}{
		{"pure latin", "example.com", false, []string{ScriptLatin}},
		{"pure cyrillic", "привет", false, []string{ScriptCyrillic}},
		{"latin with cyrillic a", "pаypal", true, []string{ScriptCyrillic, ScriptLatin}},
		{"latin with greek", "αlpha", true, []string{ScriptGreek, ScriptLatin}},
		{"empty", "", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckMixedScript(tt.input)
			assert.Equal(t, tt.wantMixed, got.Mixed)
			assert.Equal(t, tt.wantScripts, got.Scripts)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "paypal.com", Normalize("pаypаl.com"))
	assert.Equal(t, "admin", Normalize("ａdmin"))

	// Clean text comes back unchanged (same string, no rebuild).
	clean := "nothing to see"
	assert.Equal(t, clean, Normalize(clean))
}

func TestMap(t *testing.T) {
	m := Map()
	require.NotEmpty(t, m)

	// Sorted by code point and internally consistent.
	for i := 1; i < len(m); i++ {
		assert.LessOrEqual(t, m[i-1].CodePoint, m[i].CodePoint)
	}
	for _, entry := range m {
		assert.NotEmpty(t, entry.Char)
		assert.NotEmpty(t, entry.Latin)
		assert.NotEmpty(t, entry.Script)
		assert.Regexp(t, `^U\+[0-9A-F]{4}$`, entry.CodePoint)
	}
}
