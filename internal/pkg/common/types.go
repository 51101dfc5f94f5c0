package common

import "strings"

// Language selects the heuristic vocabulary used by the parsing core.
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"

	// DefaultLanguage is assumed when a request carries no language tag.
	DefaultLanguage = LanguageGerman
)

// NormalizeLanguage maps an arbitrary tag onto a supported Language.
func NormalizeLanguage(tag string) Language {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "en", "en-us", "en-gb":
		return LanguageEnglish
	default:
		return DefaultLanguage
	}
}

// ListItemKind distinguishes entries inside the ingredient and step lists.
type ListItemKind string

const (
	ItemHeading    ListItemKind = "heading"
	ItemIngredient ListItemKind = "ingredient"
	ItemStep       ListItemKind = "step"
)

// ListItem is one entry of a RecipeDraft list. Order is significant: a
// heading applies to all following items until the next heading.
type ListItem struct {
	Kind ListItemKind `json:"kind"`
	Text string       `json:"text"`
}

// Parser fallback values for scalar fields the source text does not carry.
// The validator compares against these to reconstruct whether a field was
// detected.
const (
	DefaultServings           = 4
	DefaultCookingTimeMinutes = 30
	DefaultDifficulty         = 3
)

// RecipeDraft is the universal output record of every parser in this module.
// A draft is immutable once returned; callers that need edits work on copies.
type RecipeDraft struct {
	ID                 string     `json:"id,omitempty"`
	Title              string     `json:"title"`
	Servings           int        `json:"servings"`
	ServingUnit        string     `json:"serving_unit,omitempty"`
	CookingTimeMinutes int        `json:"cooking_time_minutes"`
	Difficulty         int        `json:"difficulty"`
	Cuisines           []string   `json:"cuisines"`
	Category           string     `json:"category,omitempty"`
	Ingredients        []ListItem `json:"ingredients"`
	Steps              []ListItem `json:"steps"`
	Notes              string     `json:"notes,omitempty"`
	ImageRef           string     `json:"image_ref,omitempty"`
	Author             string     `json:"author,omitempty"`
	CreatedAtRaw       string     `json:"created_at_raw,omitempty"`
	IsPrivate          bool       `json:"is_private"`
}

// NewRecipeDraft returns a draft carrying the parser fallback values.
func NewRecipeDraft() *RecipeDraft {
	return &RecipeDraft{
		Servings:           DefaultServings,
		CookingTimeMinutes: DefaultCookingTimeMinutes,
		Difficulty:         DefaultDifficulty,
		Cuisines:           []string{},
		Ingredients:        []ListItem{},
		Steps:              []ListItem{},
	}
}

// HasCuisine reports whether the draft already carries the cuisine,
// compared case-insensitively.
func (d *RecipeDraft) HasCuisine(name string) bool {
	for _, c := range d.Cuisines {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// IngredientTexts returns the plain texts of all non-heading ingredients.
func (d *RecipeDraft) IngredientTexts() []string {
	return itemTexts(d.Ingredients)
}

// StepTexts returns the plain texts of all non-heading steps.
func (d *RecipeDraft) StepTexts() []string {
	return itemTexts(d.Steps)
}

func itemTexts(items []ListItem) []string {
	texts := make([]string, 0, len(items))
	for _, it := range items {
		if it.Kind == ItemHeading {
			continue
		}
		texts = append(texts, it.Text)
	}
	return texts
}

// ValidationReport is the quality assessment of a RecipeDraft. It is derived
// on demand and never persisted alongside the draft.
type ValidationReport struct {
	IsValid     bool            `json:"is_valid"`
	Detected    map[string]bool `json:"detected"`
	Confidence  map[string]int  `json:"confidence"`
	Warnings    []string        `json:"warnings"`
	Suggestions []string        `json:"suggestions"`
	Score       int             `json:"score"`
}

// ClampDifficulty forces a difficulty value into the valid 1..5 range.
// Out-of-range inputs are clamped, not rejected.
func ClampDifficulty(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
