package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-parser/internal/pkg/common"
)

func TestDetectSection(t *testing.T) {
	tests := []struct {
		line string
		want Section
	}{
		{"Zutaten", SectionIngredients},
		{"ZUTATEN", SectionIngredients},
		{"## Zutaten:", SectionIngredients},
		{"Zutaten für den Teig", SectionIngredients},
		{"Ingredients", SectionIngredients},
		{"Zubereitung", SectionSteps},
		{"Zubereitung:", SectionSteps},
		{"**Anleitung**", SectionSteps},
		{"Instructions", SectionSteps},
		{"Steps", SectionSteps},
		{"Spaghetti Carbonara", SectionNone},
		{"Zutatenliste", SectionNone},
		{"", SectionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectSection(tt.line), "line %q", tt.line)
	}
}

func TestPropertyLines(t *testing.T) {
	assert.True(t, IsPropertyLine("Portionen: 4"))
	assert.True(t, IsPropertyLine("  Cooking time: 45 min  "))
	assert.False(t, IsPropertyLine("Kein Doppelpunkt"))
	assert.False(t, IsPropertyLine("Zeit:"))

	key, value, ok := SplitProperty("Portionen: 4")
	assert.True(t, ok)
	assert.Equal(t, "Portionen", key)
	assert.Equal(t, "4", value)

	_, _, ok = SplitProperty("nur text")
	assert.False(t, ok)
}

func TestListMarkers(t *testing.T) {
	assert.True(t, IsListItem("- 200 g Mehl"))
	assert.True(t, IsListItem("* 2 Eier"))
	assert.True(t, IsListItem("1. Kochen"))
	assert.True(t, IsListItem("2) Rühren"))
	assert.False(t, IsListItem("200 g Mehl"))

	assert.Equal(t, "200 g Mehl", StripListMarker("- 200 g Mehl"))
	assert.Equal(t, "Rühren", StripListMarker("2) Rühren"))
	assert.Equal(t, "200 g Mehl", StripListMarker("200 g Mehl"))
}

func TestApplyProperty(t *testing.T) {
	draft := common.NewRecipeDraft()

	assert.True(t, ApplyProperty(draft, "Portionen", "6"))
	assert.Equal(t, 6, draft.Servings)

	assert.True(t, ApplyProperty(draft, "Zubereitungszeit", "45 Minuten"))
	assert.Equal(t, 45, draft.CookingTimeMinutes)

	assert.True(t, ApplyProperty(draft, "Schwierigkeit", "7"))
	assert.Equal(t, 5, draft.Difficulty)

	assert.True(t, ApplyProperty(draft, "Kulinarik", "Italienisch, Mediterran"))
	assert.Equal(t, []string{"Italienisch", "Mediterran"}, draft.Cuisines)

	// Duplicate cuisines are not appended twice.
	assert.True(t, ApplyProperty(draft, "Cuisine", "italienisch"))
	assert.Equal(t, []string{"Italienisch", "Mediterran"}, draft.Cuisines)

	assert.True(t, ApplyProperty(draft, "Kategorie", "Hauptspeise"))
	assert.Equal(t, "Hauptspeise", draft.Category)

	assert.True(t, ApplyProperty(draft, "Bild", "https://example.com/bild.jpg"))
	assert.Equal(t, "https://example.com/bild.jpg", draft.ImageRef)

	assert.True(t, ApplyProperty(draft, "Notiz", "Schmeckt auch kalt"))
	assert.Equal(t, "Schmeckt auch kalt", draft.Notes)

	assert.False(t, ApplyProperty(draft, "Unbekannt", "wert"))
	assert.False(t, ApplyProperty(draft, "", "wert"))
	assert.False(t, ApplyProperty(draft, "Portionen", ""))
}

func TestApplyPropertyRejectsNonNumericValues(t *testing.T) {
	// "Zubereitung: Nudeln kochen" is a section header misread as a
	// property; without a number it must not count as applied.
	draft := common.NewRecipeDraft()
	assert.False(t, ApplyProperty(draft, "Zubereitung", "Nudeln kochen und abgießen"))
	assert.Equal(t, common.DefaultCookingTimeMinutes, draft.CookingTimeMinutes)

	assert.False(t, ApplyProperty(draft, "Portionen", "viele"))
	assert.Equal(t, common.DefaultServings, draft.Servings)
}

func TestApplyPropertyDietaryTags(t *testing.T) {
	draft := common.NewRecipeDraft()
	assert.True(t, ApplyProperty(draft, "Tags", "vegetarisch, glutenfrei"))
	assert.Equal(t, []string{"Vegetarisch", "Glutenfrei"}, draft.Cuisines)

	// Re-applying the same tags stays de-duplicated.
	ApplyDietaryTags(draft, "Vegetarisch und vegan")
	assert.Equal(t, []string{"Vegetarisch", "Glutenfrei", "Vegan"}, draft.Cuisines)
}

func TestApplyServingsSentence(t *testing.T) {
	draft := common.NewRecipeDraft()
	assert.True(t, ApplyServingsSentence(draft, "Für 6 Personen"))
	assert.Equal(t, 6, draft.Servings)

	assert.True(t, ApplyServingsSentence(draft, "Enough for 2 servings"))
	assert.Equal(t, 2, draft.Servings)

	assert.False(t, ApplyServingsSentence(draft, "Keine Angabe"))
	assert.Equal(t, 2, draft.Servings)
}

func TestExtractNumber(t *testing.T) {
	n, ok := ExtractNumber("ca. 45 Minuten", 0, 0)
	assert.True(t, ok)
	assert.Equal(t, 45, n)

	n, ok = ExtractNumber("0", 1, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = ExtractNumber("120", 0, 60)
	assert.True(t, ok)
	assert.Equal(t, 60, n)

	_, ok = ExtractNumber("keine Zahl", 0, 0)
	assert.False(t, ok)
}

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitCommaList(" a , , b "))
	assert.Empty(t, SplitCommaList("  "))
}
