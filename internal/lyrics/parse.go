package lyrics

import (
	"sort"
	"strconv"
	"strings"
)

// Parse converts raw lyrics text into a Model.
//
// A line is tagged when, after optional leading blanks, it starts with
// "[m:s]" where m and s are runs of decimal digits. Minutes may exceed 59
// and seconds are not range checked. The remainder of a tagged line,
// trimmed, becomes the entry text. Untagged lines are dropped once any
// line is tagged. With no tagged line at all the input is returned
// unchanged as Static.
func Parse(raw string) Model {
	var lines []Line
	for _, l := range strings.Split(raw, "\n") {
		sec, rest, ok := parseTag(l)
		if !ok {
			continue
		}
		lines = append(lines, Line{Time: sec, Text: strings.TrimSpace(rest)})
	}

	if len(lines) == 0 {
		return Static{Text: raw}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Time < lines[j].Time
	})
	return Karaoke{Lines: lines}
}

// parseTag consumes a leading "[digits:digits]" tag and returns its value in
// seconds along with the text that follows the closing bracket.
func parseTag(line string) (seconds float64, rest string, ok bool) {
	s := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(s, "[") {
		return 0, "", false
	}
	s = s[1:]

	minutes, s, ok := consumeDigits(s)
	if !ok || !strings.HasPrefix(s, ":") {
		return 0, "", false
	}
	s = s[1:]

	secs, s, ok := consumeDigits(s)
	if !ok || !strings.HasPrefix(s, "]") {
		return 0, "", false
	}

	return float64(minutes*60 + secs), s[1:], true
}

// consumeDigits reads one or more leading ASCII digits.
func consumeDigits(s string) (n int, rest string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false
	}
	return n, s[i:], true
}
