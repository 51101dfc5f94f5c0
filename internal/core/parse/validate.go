package parse

import (
	"fmt"
	"math"
	"strings"

	"recipe-parser/internal/pkg/common"
)

// Field weights of the overall quality score. They sum to 100.
var scoreWeights = map[string]int{
	"title":       20,
	"cuisine":     10,
	"servings":    10,
	"cookingTime": 10,
	"ingredients": 25,
	"steps":       25,
}

// DefaultMinScore is the acceptance threshold used by IsAcceptable callers
// that have no opinion of their own.
const DefaultMinScore = 40

// Validate inspects a parsed draft and produces a confidence report with
// human-readable warnings and suggestions. It is stateless and recomputed on
// demand.
//
// Detection of servings and cooking time is reconstructed by comparing
// against the parser defaults, so a genuine 4-serving recipe is
// indistinguishable from an undetected one. That matches the behavior of the
// producing parsers and is kept deliberately.
func Validate(draft *common.RecipeDraft) (*common.ValidationReport, error) {
	if draft == nil {
		return nil, common.NewValidationError("kein Rezept zum Prüfen vorhanden / no recipe to validate")
	}

	report := &common.ValidationReport{
		Detected:    make(map[string]bool),
		Confidence:  make(map[string]int),
		Warnings:    []string{},
		Suggestions: []string{},
	}

	// Title.
	title := strings.TrimSpace(draft.Title)
	if title != "" && !IsTitlePlaceholder(title) {
		report.Detected["title"] = true
		report.Confidence["title"] = cap100(50 + len([]rune(title))*2)
	} else {
		report.Detected["title"] = false
		report.Confidence["title"] = 0
		report.Warnings = append(report.Warnings, "Kein Rezepttitel erkannt")
		report.Suggestions = append(report.Suggestions, "Titel manuell ergänzen")
	}

	// Cuisine.
	cuisineDetected := false
	for _, c := range draft.Cuisines {
		if strings.TrimSpace(c) != "" {
			cuisineDetected = true
			break
		}
	}
	report.Detected["cuisine"] = cuisineDetected
	if cuisineDetected {
		report.Confidence["cuisine"] = 90
	} else {
		report.Confidence["cuisine"] = 0
		report.Suggestions = append(report.Suggestions, "Kulinarik/Kategorie ergänzen")
	}

	// Servings: detected means "differs from the parser default".
	if draft.Servings != common.DefaultServings {
		report.Detected["servings"] = true
		if draft.Servings >= 1 && draft.Servings <= 50 {
			report.Confidence["servings"] = 95
		} else {
			report.Confidence["servings"] = 60
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Ungewöhnliche Portionsangabe: %d", draft.Servings))
		}
	} else {
		report.Detected["servings"] = false
		report.Confidence["servings"] = 0
	}

	// Cooking time: same reconstruct-from-default pattern.
	if draft.CookingTimeMinutes != common.DefaultCookingTimeMinutes {
		report.Detected["cookingTime"] = true
		if draft.CookingTimeMinutes >= 1 && draft.CookingTimeMinutes <= 600 {
			report.Confidence["cookingTime"] = 95
		} else {
			report.Confidence["cookingTime"] = 60
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Ungewöhnliche Zubereitungszeit: %d Minuten", draft.CookingTimeMinutes))
		}
	} else {
		report.Detected["cookingTime"] = false
		report.Confidence["cookingTime"] = 0
	}

	// Ingredients.
	ingredientCount := len(draft.Ingredients)
	report.Detected["ingredients"] = ingredientCount > 0
	switch {
	case ingredientCount == 0:
		report.Confidence["ingredients"] = 0
		report.Warnings = append(report.Warnings, "Keine Zutaten erkannt")
		report.Suggestions = append(report.Suggestions, "Zutatenliste manuell erfassen")
	case ingredientCount == 1:
		report.Confidence["ingredients"] = 50
		report.Warnings = append(report.Warnings, "Nur eine Zutat erkannt")
	case ingredientCount <= 30:
		report.Confidence["ingredients"] = cap100(70 + ingredientCount*2)
	default:
		report.Confidence["ingredients"] = 70
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Sehr viele Zutaten erkannt (%d), möglicherweise Duplikate", ingredientCount))
	}

	// Steps.
	stepCount := len(draft.Steps)
	report.Detected["steps"] = stepCount > 0
	switch {
	case stepCount == 0:
		report.Confidence["steps"] = 0
		report.Warnings = append(report.Warnings, "Keine Zubereitungsschritte erkannt")
		report.Suggestions = append(report.Suggestions, "Zubereitungsschritte manuell erfassen")
	case stepCount <= 20:
		report.Confidence["steps"] = cap100(70 + stepCount*3)
	default:
		report.Confidence["steps"] = 70
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Sehr viele Schritte erkannt (%d)", stepCount))
	}

	// Weighted overall score.
	total := 0.0
	weightSum := 0
	for field, weight := range scoreWeights {
		weightSum += weight
		if report.Detected[field] {
			total += float64(weight) * float64(report.Confidence[field]) / 100.0
		}
	}
	report.Score = int(math.Round(total / float64(weightSum) * 100.0))

	report.IsValid = ingredientCount > 0 && stepCount > 0

	switch {
	case report.Score < 50:
		report.Suggestions = append([]string{
			"Niedrige Erkennungsqualität, bitte Foto erneut aufnehmen",
		}, report.Suggestions...)
	case report.Score < 70:
		report.Suggestions = append([]string{
			"Mittlere Erkennungsqualität, bitte Felder prüfen",
		}, report.Suggestions...)
	}

	return report, nil
}

// IsAcceptable reports whether the draft behind the report is good enough to
// import: ingredients and steps detected and the score at minScore or above.
func IsAcceptable(report *common.ValidationReport, minScore int) bool {
	if report == nil {
		return false
	}
	return report.Detected["ingredients"] && report.Detected["steps"] && report.Score >= minScore
}

// GetValidationSummary renders a bilingual human-readable block: a quality
// band plus one check line per field. Presentation only.
func GetValidationSummary(report *common.ValidationReport, lang common.Language) string {
	if report == nil {
		return ""
	}

	type label struct{ de, en string }
	bands := []struct {
		min   int
		label label
	}{
		{80, label{"Ausgezeichnet", "Excellent"}},
		{60, label{"Gut", "Good"}},
		{40, label{"Mäßig", "Fair"}},
		{0, label{"Niedrig", "Poor"}},
	}
	fieldLabels := []struct {
		key   string
		label label
	}{
		{"title", label{"Titel", "Title"}},
		{"cuisine", label{"Kulinarik", "Cuisine"}},
		{"servings", label{"Portionen", "Servings"}},
		{"cookingTime", label{"Zubereitungszeit", "Cooking time"}},
		{"ingredients", label{"Zutaten", "Ingredients"}},
		{"steps", label{"Schritte", "Steps"}},
	}

	pick := func(l label) string {
		if lang == common.LanguageEnglish {
			return l.en
		}
		return l.de
	}

	var sb strings.Builder
	for _, band := range bands {
		if report.Score >= band.min {
			if lang == common.LanguageEnglish {
				fmt.Fprintf(&sb, "Quality: %s (%d/100)\n", pick(band.label), report.Score)
			} else {
				fmt.Fprintf(&sb, "Qualität: %s (%d/100)\n", pick(band.label), report.Score)
			}
			break
		}
	}
	for _, f := range fieldLabels {
		mark := "✗"
		if report.Detected[f.key] {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%s %s (%d%%)\n", mark, pick(f.label), report.Confidence[f.key])
	}
	return sb.String()
}
