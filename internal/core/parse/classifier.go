package parse

import (
	"regexp"
	"strings"
	"unicode"

	"recipe-parser/internal/pkg/common"
)

// ClassKind is the outcome category of a single-line classification.
type ClassKind string

const (
	KindIngredient ClassKind = "ingredient"
	KindStep       ClassKind = "step"
	KindUnknown    ClassKind = "unknown"
)

// Classification is the transient per-line result of the classifier.
type Classification struct {
	Kind       ClassKind `json:"kind"`
	Confidence int       `json:"confidence"`
}

// ClassifiedText groups the lines of a text by classification outcome.
// Only lines reaching the acceptance confidence are routed into the
// ingredient and step buckets.
type ClassifiedText struct {
	Ingredients  []string `json:"ingredients"`
	Steps        []string `json:"steps"`
	Unclassified []string `json:"unclassified"`
}

// Additive heuristic weights. Scores below decisionThreshold yield an
// unknown classification with confidence 0.
const (
	scoreQuantity       = 40
	scoreUnit           = 30
	scoreIngredientNoun = 20
	scoreActionVerb     = 35
	scoreImperative     = 30
	scoreStepContext    = 25
	scoreShortLine      = 10
	scoreLongLine       = 15

	decisionThreshold = 30

	// AcceptConfidence is the minimum confidence at which a classified
	// line is accepted into its bucket by ClassifyText.
	AcceptConfidence = 50
)

// quantityPattern matches a leading amount: integer, decimal, fraction or
// mixed number.
var quantityPattern = regexp.MustCompile(`^\s*\d+([.,]\d+)?(\s+\d+\s*/\s*\d+|\s*/\s*\d+)?`)

// ClassifyLine scores a single line as ingredient vs. preparation step.
// It is pure and deterministic for a given (line, lang) pair.
func ClassifyLine(line string, lang common.Language) Classification {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Classification{Kind: KindUnknown, Confidence: 0}
	}

	words := letterWords(trimmed)
	wordCount := len(strings.Fields(trimmed))

	ingredientScore := 0
	stepScore := 0

	if quantityPattern.MatchString(trimmed) {
		ingredientScore += scoreQuantity
	}
	if containsAny(words, lexiconFor(unitWords, lang)) {
		ingredientScore += scoreUnit
	}
	if containsAny(words, lexiconFor(ingredientNouns, lang)) {
		ingredientScore += scoreIngredientNoun
	}

	if containsAny(words, lexiconFor(cookingVerbs, lang)) {
		stepScore += scoreActionVerb
	}
	if matchesAny(trimmed, patternsFor(lang)) {
		stepScore += scoreImperative
	}
	if containsAny(words, lexiconFor(stepContextWords, lang)) {
		stepScore += scoreStepContext
	}

	if wordCount <= 5 {
		ingredientScore += scoreShortLine
	}
	if wordCount > 8 {
		stepScore += scoreLongLine
	}

	max := ingredientScore
	if stepScore > max {
		max = stepScore
	}
	if max < decisionThreshold {
		return Classification{Kind: KindUnknown, Confidence: 0}
	}

	switch {
	case ingredientScore > stepScore:
		return Classification{Kind: KindIngredient, Confidence: cap100(ingredientScore)}
	case stepScore > ingredientScore:
		return Classification{Kind: KindStep, Confidence: cap100(stepScore)}
	default:
		// Exact tie with both at or above the threshold.
		return Classification{Kind: KindUnknown, Confidence: cap100(ingredientScore)}
	}
}

// ClassifyText classifies each line and groups the results. Lines are
// accepted into their bucket only at AcceptConfidence or higher.
func ClassifyText(lines []string, lang common.Language) *ClassifiedText {
	result := &ClassifiedText{
		Ingredients:  []string{},
		Steps:        []string{},
		Unclassified: []string{},
	}
	for _, line := range lines {
		c := ClassifyLine(line, lang)
		switch {
		case c.Kind == KindIngredient && c.Confidence >= AcceptConfidence:
			result.Ingredients = append(result.Ingredients, line)
		case c.Kind == KindStep && c.Confidence >= AcceptConfidence:
			result.Steps = append(result.Steps, line)
		default:
			result.Unclassified = append(result.Unclassified, line)
		}
	}
	return result
}

// AutoClassifyText splits a raw text blob into trimmed non-empty lines and
// classifies them.
func AutoClassifyText(text string, lang common.Language) *ClassifiedText {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return ClassifyText(lines, lang)
}

// letterWords extracts the lowercase letter runs of a line. Digits are
// dropped so that "200g" still yields the unit word "g".
func letterWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

func containsAny(words []string, set map[string]bool) bool {
	for _, w := range words {
		if set[w] {
			return true
		}
	}
	return false
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func cap100(n int) int {
	if n > 100 {
		return 100
	}
	return n
}
