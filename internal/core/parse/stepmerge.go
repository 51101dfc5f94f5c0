package parse

import (
	"regexp"
	"strings"
)

var (
	numberMarkerRE = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	bulletMarkerRE = regexp.MustCompile(`^\s*[-*•]\s*`)
)

// parseStepLine strips a leading bullet or number marker and reports whether
// the line carried a number marker.
func parseStepLine(raw string) (text string, numbered bool) {
	if numberMarkerRE.MatchString(raw) {
		return strings.TrimSpace(numberMarkerRE.ReplaceAllString(raw, "")), true
	}
	return strings.TrimSpace(bulletMarkerRE.ReplaceAllString(raw, "")), false
}

func endsTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// MergeStepLines reassembles OCR line-wrapped text into logical steps. A new
// step starts on a number marker, on an empty accumulator, or after
// sentence-terminal punctuation; inside a numbered step a period only splits
// when the following raw line starts the next numbered item, so wrapped
// multi-sentence steps stay together.
func MergeStepLines(rawLines []string) []string {
	merged := make([]string, 0, len(rawLines))
	current := ""
	inNumbered := false

	for i, raw := range rawLines {
		text, numbered := parseStepLine(raw)
		if text == "" {
			continue
		}

		startNew := current == "" || numbered
		if !startNew && endsTerminal(current) {
			nextNumbered := i+1 < len(rawLines) && numberMarkerRE.MatchString(rawLines[i+1])
			if !inNumbered || nextNumbered {
				startNew = true
			}
		}

		if startNew {
			if current != "" {
				merged = append(merged, current)
			}
			current = text
			inNumbered = numbered
		} else {
			current += " " + text
		}
	}

	if current != "" {
		merged = append(merged, current)
	}
	return merged
}
