package layout

import "strings"

// Wrapper performs greedy word wrapping against a width measure.
type Wrapper struct {
	// Measure returns the rendered width of a line.
	Measure func(line string) float64
}

// NewWrapper returns a Wrapper that measures with EstimateWidth at the given font size.
func NewWrapper(fontSize float64) Wrapper {
	return Wrapper{Measure: func(s string) float64 { return EstimateWidth(s, fontSize) }}
}

// Wrap splits text into lines no wider than maxWidth. Words are separated by
// any whitespace and joined by a single space. Empty input yields one empty line.
// A word that is wider than maxWidth on its own is placed alone and overflows.
func (w Wrapper) Wrap(text string, maxWidth float64) []string {
	lines, _ := w.WrapReport(text, maxWidth)
	return lines
}

// WrapReport is Wrap that also returns the indexes of lines wider than maxWidth.
func (w Wrapper) WrapReport(text string, maxWidth float64) (lines []string, overflow []int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}, nil
	}

	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if w.Measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	lines = append(lines, current)

	for i, l := range lines {
		if w.Measure(l) > maxWidth {
			overflow = append(overflow, i)
		}
	}
	return lines, overflow
}
