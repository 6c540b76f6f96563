package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// charWrapper measures one unit per rune so widths are easy to reason about.
var charWrapper = Wrapper{Measure: func(s string) float64 { return float64(len([]rune(s))) }}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		expected []string
	}{
		{"empty", "", 10, []string{""}},
		{"whitespace only", " \t\n ", 10, []string{""}},
		{"fits", "hello world", 11, []string{"hello world"}},
		{"breaks greedily", "the quick brown fox jumps", 10, []string{"the quick", "brown fox", "jumps"}},
		{"collapses whitespace", "a   b\tc\nd", 3, []string{"a b", "c d"}},
		{"long word alone", "a supercalifragilistic b", 5, []string{"a", "supercalifragilistic", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, charWrapper.Wrap(tt.text, tt.maxWidth))
		})
	}
}

func TestWrapReport_Overflow(t *testing.T) {
	lines, overflow := charWrapper.WrapReport("ok enormousword ok", 6)
	assert.Equal(t, []string{"ok", "enormousword", "ok"}, lines)
	assert.Equal(t, []int{1}, overflow)
}

func TestWrap_NeverExceedsWidth(t *testing.T) {
	text := strings.Repeat("Scope three value chain emissions dominate the footprint. ", 20)
	w := NewWrapper(10)

	for _, maxWidth := range []float64{40, 60, 90, 170} {
		for _, line := range w.Wrap(text, maxWidth) {
			assert.LessOrEqual(t, w.Measure(line), maxWidth, "line %q", line)
		}
	}
}

func TestWrap_PreservesWords(t *testing.T) {
	text := "Cloud infrastructure remains the largest source of digital emissions"
	lines := NewWrapper(10).Wrap(text, 50)
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}

func TestEstimateWidth(t *testing.T) {
	// 10 runes at 10pt with half-em advance is 50pt.
	assert.InDelta(t, 50*25.4/72, EstimateWidth("abcdefghij", 10), 1e-9)
	assert.InDelta(t, EstimateWidth("ab", 10), EstimateWidth("é•", 10), 1e-9)
}
