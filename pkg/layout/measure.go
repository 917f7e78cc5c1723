package layout

import "strings"

// MonospaceMeasurer measures text as if every rune had the same advance.
// It is used when a Context carries no measurer and in tests.
type MonospaceMeasurer struct {
	CharWidth float64
	Height    float64
}

var defaultMeasurer TextMeasurer = MonospaceMeasurer{CharWidth: 7, Height: 13}

// Measure returns the extent of a single line.
func (m MonospaceMeasurer) Measure(s string) (float64, float64) {
	return float64(len([]rune(s))) * m.CharWidth, m.Height
}

// LineHeight returns the line height.
func (m MonospaceMeasurer) LineHeight() float64 { return m.Height }

// Wrap breaks s into lines no wider than width. Explicit newlines always
// break; a word wider than width gets a line of its own.
func (m MonospaceMeasurer) Wrap(s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if w, _ := m.Measure(candidate); w > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
