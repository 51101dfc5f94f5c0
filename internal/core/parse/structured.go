package parse

import (
	"strings"

	"recipe-parser/internal/pkg/common"

	"go.uber.org/zap"
)

// Placeholder titles used when no title line could be found.
var titlePlaceholders = map[common.Language]string{
	common.LanguageGerman:  "Unbenanntes Rezept",
	common.LanguageEnglish: "Untitled Recipe",
}

// TitlePlaceholder returns the localized fallback title.
func TitlePlaceholder(lang common.Language) string {
	if p, ok := titlePlaceholders[lang]; ok {
		return p
	}
	return titlePlaceholders[common.DefaultLanguage]
}

// IsTitlePlaceholder reports whether a title is one of the parser fallbacks.
func IsTitlePlaceholder(title string) bool {
	for _, p := range titlePlaceholders {
		if title == p {
			return true
		}
	}
	return false
}

// parseOutcome carries the draft plus which explicit sections were seen, so
// the classification fallback knows what is missing.
type parseOutcome struct {
	draft                 *common.RecipeDraft
	sawIngredientsSection bool
	sawStepsSection       bool
	nonTitleLines         []string
}

// ParseStructuredText turns a full OCR text blob into a RecipeDraft using
// section headers, property lines and list structure.
func ParseStructuredText(text string, lang common.Language) (*common.RecipeDraft, error) {
	outcome, err := parseStructured(text, lang)
	if err != nil {
		return nil, err
	}
	return outcome.draft, nil
}

func parseStructured(text string, lang common.Language) (*parseOutcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.NewValidationError("kein Text zum Parsen vorhanden / no text to parse")
	}

	lines := splitLines(text)
	outcome := &parseOutcome{draft: common.NewRecipeDraft()}
	draft := outcome.draft

	section := SectionNone
	titleFound := false
	var stepBuffer []string

	flushSteps := func() {
		if len(stepBuffer) == 0 {
			return
		}
		for _, step := range MergeStepLines(stepBuffer) {
			draft.Steps = append(draft.Steps, common.ListItem{
				Kind: common.ItemStep,
				Text: NormalizeFractions(step),
			})
		}
		stepBuffer = nil
	}

	for _, line := range lines {
		// Title: the first line that is neither a section header nor a
		// property line nor a list item.
		if !titleFound && DetectSection(line) == SectionNone && !IsPropertyLine(line) && !IsListItem(line) {
			draft.Title = line
			titleFound = true
			continue
		}

		if s := DetectSection(line); s != SectionNone {
			if section == SectionSteps {
				flushSteps()
			}
			section = s
			switch s {
			case SectionIngredients:
				outcome.sawIngredientsSection = true
			case SectionSteps:
				outcome.sawStepsSection = true
			}
			continue
		}

		outcome.nonTitleLines = append(outcome.nonTitleLines, line)

		if key, value, ok := SplitProperty(line); ok {
			if ApplyProperty(draft, key, value) {
				continue
			}
		}

		// The servings sentence form is recognized independent of the
		// section state. Standalone occurrences are consumed; inside a
		// section the line still counts as content.
		if ApplyServingsSentence(draft, line) && section == SectionNone {
			continue
		}

		switch section {
		case SectionIngredients:
			draft.Ingredients = append(draft.Ingredients, common.ListItem{
				Kind: common.ItemIngredient,
				Text: NormalizeFractions(StripListMarker(line)),
			})
		case SectionSteps:
			// Steps are buffered raw so the merger can use the original
			// numbering and line breaks.
			stepBuffer = append(stepBuffer, line)
		}
	}

	flushSteps()

	if !titleFound {
		draft.Title = TitlePlaceholder(lang)
	}

	return outcome, nil
}

// ParseWithClassificationFallback parses structured text and, when no
// explicit ingredient or step section was found, re-derives the missing list
// by running the line classifier over all non-title lines. This lets
// photographs without headers still yield a usable split.
func ParseWithClassificationFallback(text string, lang common.Language) (*common.RecipeDraft, error) {
	outcome, err := parseStructured(text, lang)
	if err != nil {
		return nil, err
	}
	draft := outcome.draft

	if !outcome.sawIngredientsSection || !outcome.sawStepsSection {
		classified := ClassifyText(outcome.nonTitleLines, lang)

		if !outcome.sawIngredientsSection && len(classified.Ingredients) > 0 {
			draft.Ingredients = draft.Ingredients[:0]
			for _, line := range classified.Ingredients {
				draft.Ingredients = append(draft.Ingredients, common.ListItem{
					Kind: common.ItemIngredient,
					Text: NormalizeFractions(StripListMarker(line)),
				})
			}
			common.LogDebug("ingredients derived via classifier fallback",
				zap.Int("count", len(classified.Ingredients)),
			)
		}

		if !outcome.sawStepsSection && len(classified.Steps) > 0 {
			draft.Steps = draft.Steps[:0]
			for _, step := range MergeStepLines(classified.Steps) {
				draft.Steps = append(draft.Steps, common.ListItem{
					Kind: common.ItemStep,
					Text: NormalizeFractions(step),
				})
			}
			common.LogDebug("steps derived via classifier fallback",
				zap.Int("count", len(classified.Steps)),
			)
		}
	}

	return draft, nil
}

// ParseSmart composes the classification-fallback parse with validation and
// returns both the draft and its quality report.
func ParseSmart(text string, lang common.Language) (*common.RecipeDraft, *common.ValidationReport, error) {
	draft, err := ParseWithClassificationFallback(text, lang)
	if err != nil {
		return nil, nil, err
	}
	report, err := Validate(draft)
	if err != nil {
		return nil, nil, err
	}
	return draft, report, nil
}

// splitLines trims, drops empty lines and drops lines that are only a bullet
// marker left behind by OCR.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" || l == "-" || l == "*" || l == "•" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
