package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// fractionRE matches a simple fraction ("1/2", "1 / 2") with an optional
// leading whole number ("1 1/2").
var fractionRE = regexp.MustCompile(`(?:(\d+)\s+)?(\d+)\s*/\s*(\d+)`)

// NormalizeFractions rewrites fraction and mixed-number tokens as decimals
// rounded to two places, with trailing zeros stripped ("1/2" -> "0.5",
// "1 1/2" -> "1.5"). Results within rounding tolerance of an integer are
// rendered without a decimal point ("999/1000" -> "1"). Zero denominators
// are left untouched. The surrounding text is preserved verbatim.
func NormalizeFractions(text string) string {
	return fractionRE.ReplaceAllStringFunc(text, func(match string) string {
		m := fractionRE.FindStringSubmatch(match)
		numerator, _ := strconv.Atoi(m[2])
		denominator, _ := strconv.Atoi(m[3])
		if denominator == 0 {
			return match
		}

		value := float64(numerator) / float64(denominator)
		if m[1] != "" {
			whole, _ := strconv.Atoi(m[1])
			value += float64(whole)
		}

		rounded := math.Round(value*100) / 100
		if math.Abs(rounded-math.Round(rounded)) < 1e-9 {
			return strconv.Itoa(int(math.Round(rounded)))
		}

		s := strconv.FormatFloat(rounded, 'f', 2, 64)
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
		return s
	})
}
