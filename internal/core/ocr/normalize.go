package ocr

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
	reBoxNoise   = regexp.MustCompile(`(?m)^\s*[_\-=]{3,}\s*$`)
	rePunctOnly  = regexp.MustCompile(`^[\p{P}\p{S}\s]+$`)
)

// Normalize collapses noisy whitespace and drops common OCR artifacts from a
// transcript. Conservative: line breaks survive, more than one consecutive
// blank line is collapsed into a single one.
func Normalize(s string) string {
	if s == "" {
		return s
	}

	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reBoxNoise.ReplaceAllString(s, "")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " ")
		// Scan-border garbage: lines that are nothing but punctuation,
		// except for bare list markers the parser still needs.
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && trimmed != "-" && trimmed != "*" && trimmed != "•" && rePunctOnly.MatchString(trimmed) {
			continue
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
