package lyrics

import (
	"fmt"
	"math"
	"strings"
)

// NoLyrics is shown in place of empty static lyrics.
const NoLyrics = "No Lyrics Available"

// FormatTag renders seconds as a zero-padded "mm:ss" tag body. Fractions
// are truncated and negative values clamp to zero.
func FormatTag(sec float64) string {
	s := wholeSeconds(sec)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// FormatClock renders seconds as "m:ss" for transport displays.
func FormatClock(sec float64) string {
	s := wholeSeconds(sec)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func wholeSeconds(sec float64) int {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 {
		return 0
	}
	return int(math.Floor(sec))
}

// StripTimes removes the leading tag (and the blanks after it) from every
// tagged line. The result is trimmed.
func StripTimes(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if _, rest, ok := parseTag(l); ok {
			lines[i] = strings.TrimLeft(rest, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// NormalizeTimed returns the trimmed, non-blank lines of text when at least
// one of them is tagged, and "" otherwise.
func NormalizeTimed(text string) string {
	lines := PlainLines(text)
	for _, l := range lines {
		if _, _, ok := parseTag(l); ok {
			return strings.Join(lines, "\n")
		}
	}
	return ""
}

// PlainLines splits text into trimmed, non-blank lines.
func PlainLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// StaticLine is one display line of static lyrics.
type StaticLine struct {
	Text string
	// Section marks a standalone "[...]" line such as "[Chorus]". Text holds
	// the label without its brackets.
	Section bool
}

// Classify splits static lyrics into display lines. Blank lines are
// skipped.
func Classify(text string) []StaticLine {
	var out []StaticLine
	for _, l := range PlainLines(text) {
		if len(l) >= 2 && l[0] == '[' && l[len(l)-1] == ']' {
			out = append(out, StaticLine{Text: l[1 : len(l)-1], Section: true})
			continue
		}
		out = append(out, StaticLine{Text: l})
	}
	return out
}
