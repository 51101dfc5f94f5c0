package tabular

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-parser/internal/pkg/common"
)

const csvHeader = "Name;Erstellt von;Kulinarik;Speisenkategorie;Portionen;Zubereitung;Schwierigkeit;Zutat 1;Zutat 2;Zutat 3;Zubereitungsschritt 1;Zubereitungsschritt 2"

const carbonaraRow = "Spaghetti Carbonara;Max;Italienisch;Hauptspeise;2 Personen;25 Minuten;2;200 g Spaghetti;100 g Speck;2 Eier;1. Nudeln kochen.;2. Speck anbraten."

func TestParseRecipeCSVSingleRow(t *testing.T) {
	content := csvHeader + "\n" + carbonaraRow

	result, err := ParseRecipeCSV(context.Background(), content, "fallback-autor", nil)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)
	assert.Empty(t, result.Warnings)

	draft := result.Recipes[0]
	assert.NotEmpty(t, draft.ID)
	assert.True(t, draft.IsPrivate)
	assert.Equal(t, "Spaghetti Carbonara", draft.Title)
	assert.Equal(t, "Max", draft.Author)
	assert.Equal(t, []string{"Italienisch"}, draft.Cuisines)
	assert.Equal(t, "Hauptspeise", draft.Category)
	assert.Equal(t, 2, draft.Servings)
	assert.Equal(t, "person", draft.ServingUnit)
	assert.Equal(t, 25, draft.CookingTimeMinutes)
	assert.Equal(t, 2, draft.Difficulty)

	assert.Equal(t, []string{"200 g Spaghetti", "100 g Speck", "2 Eier"}, draft.IngredientTexts())
	assert.Equal(t, []string{"Nudeln kochen.", "Speck anbraten."}, draft.StepTexts())
}

func TestParseRecipeCSVAuthorFallback(t *testing.T) {
	row := strings.Replace(carbonaraRow, ";Max;", ";;", 1)
	result, err := ParseRecipeCSV(context.Background(), csvHeader+"\n"+row, "Erika", nil)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Erika", result.Recipes[0].Author)
}

func TestParseRecipeCSVPartialFailure(t *testing.T) {
	badRow := strings.Replace(carbonaraRow, "Spaghetti Carbonara;", ";", 1)
	secondRow := strings.Replace(carbonaraRow, "Spaghetti Carbonara", "Lasagne", 1)
	content := csvHeader + "\n" + carbonaraRow + "\n" + badRow + "\n" + secondRow

	result, err := ParseRecipeCSV(context.Background(), content, "", nil)
	require.NoError(t, err)

	require.Len(t, result.Recipes, 2)
	assert.Equal(t, "Spaghetti Carbonara", result.Recipes[0].Title)
	assert.Equal(t, "Lasagne", result.Recipes[1].Title)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Zeile 3: Rezeptname fehlt", result.Warnings[0])
}

func TestParseRecipeCSVAllRowsFail(t *testing.T) {
	badRow := strings.Replace(carbonaraRow, "Spaghetti Carbonara;", ";", 1)
	_, err := ParseRecipeCSV(context.Background(), csvHeader+"\n"+badRow, "", nil)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
	assert.Contains(t, err.Error(), "kein Rezept konnte importiert werden")
	assert.Contains(t, err.Error(), "Rezeptname fehlt")
}

func TestParseRecipeCSVMissingLists(t *testing.T) {
	header := "Name;Zutat 1;Zubereitungsschritt 1"

	_, err := ParseRecipeCSV(context.Background(), header+"\nKuchen;;Backen.", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Zeile 2: Keine Zutaten gefunden")

	_, err = ParseRecipeCSV(context.Background(), header+"\nKuchen;500 g Mehl;", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Zeile 2: Keine Zubereitungsschritte gefunden")
}

func TestParseRecipeCSVTooShort(t *testing.T) {
	_, err := ParseRecipeCSV(context.Background(), csvHeader, "", nil)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))

	_, err = ParseRecipeCSV(context.Background(), "", "", nil)
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestParseRecipeCSVStripsBOM(t *testing.T) {
	content := "\ufeff" + csvHeader + "\n" + carbonaraRow
	result, err := ParseRecipeCSV(context.Background(), content, "", nil)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Spaghetti Carbonara", result.Recipes[0].Title)
}

func TestParseRecipeCSVCommaDelimitedWithQuotes(t *testing.T) {
	content := "Name,Portionen,Zutat 1,Zubereitungsschritt 1\n" +
		`"Lasagne, klassisch",4,"500 g Hackfleisch","Hackfleisch anbraten."`

	result, err := ParseRecipeCSV(context.Background(), content, "", nil)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)

	draft := result.Recipes[0]
	assert.Equal(t, "Lasagne, klassisch", draft.Title)
	assert.Equal(t, []string{"500 g Hackfleisch"}, draft.IngredientTexts())
}

func TestParseRecipeCSVListHeadings(t *testing.T) {
	header := "Name;Zutat 1;Zutat 2;Zubereitungsschritt 1"
	row := "Pizza;### Für den Teig;500 g Mehl;Teig kneten."

	result, err := ParseRecipeCSV(context.Background(), header+"\n"+row, "", nil)
	require.NoError(t, err)
	require.Len(t, result.Recipes, 1)

	items := result.Recipes[0].Ingredients
	require.Len(t, items, 2)
	assert.Equal(t, common.ItemHeading, items[0].Kind)
	assert.Equal(t, "Für den Teig", items[0].Text)
	assert.Equal(t, common.ItemIngredient, items[1].Kind)

	// Non-heading texts only.
	assert.Equal(t, []string{"500 g Mehl"}, result.Recipes[0].IngredientTexts())
}

func TestParseRecipeCSVCategoryImageLookup(t *testing.T) {
	content := csvHeader + "\n" + carbonaraRow

	lookup := func(ctx context.Context, categories []string) (string, error) {
		assert.Equal(t, []string{"Hauptspeise"}, categories)
		return "https://example.com/hauptspeise.jpg", nil
	}
	result, err := ParseRecipeCSV(context.Background(), content, "", lookup)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/hauptspeise.jpg", result.Recipes[0].ImageRef)

	// Lookup failures must not fail the import.
	failing := func(ctx context.Context, categories []string) (string, error) {
		return "", errors.New("datastore unavailable")
	}
	result, err = ParseRecipeCSV(context.Background(), content, "", failing)
	require.NoError(t, err)
	assert.Empty(t, result.Recipes[0].ImageRef)
}

func TestStepItemNumbering(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1. Kochen", "Kochen"},
		{"2) Rühren", "Rühren"},
		{"3: Abschmecken", "Abschmecken"},
		{"4 - Servieren", "Servieren"},
		{"3-4 Minuten kochen lassen", "3-4 Minuten kochen lassen"},
		{"Ohne Nummer", "Ohne Nummer"},
	}
	for _, tt := range tests {
		item := stepItem(tt.in)
		assert.Equal(t, common.ItemStep, item.Kind)
		assert.Equal(t, tt.want, item.Text, "input %q", tt.in)
	}
}

func TestIngredientItemKeepsLeadingNumbers(t *testing.T) {
	item := ingredientItem("1. Mai-Rhabarber, geschält")
	assert.Equal(t, common.ItemIngredient, item.Kind)
	assert.Equal(t, "1. Mai-Rhabarber, geschält", item.Text)
}

func TestParseServings(t *testing.T) {
	tests := []struct {
		in    string
		count int
		unit  string
	}{
		{"2 Personen", 2, "person"},
		{"12 Stück", 12, "piece"},
		{"4", 4, "portion"},
		{"6 Portionen", 6, "portion"},
		{"ca. 8 Portionen", 8, "portion"},
		{"", 4, "portion"},
	}
	for _, tt := range tests {
		count, unit := parseServings(tt.in)
		assert.Equal(t, tt.count, count, "input %q", tt.in)
		assert.Equal(t, tt.unit, unit, "input %q", tt.in)
	}
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("a;b;c"))
	assert.Equal(t, ',', DetectDelimiter("a,b,c"))
	assert.Equal(t, ',', DetectDelimiter("a,b;c"))
	assert.Equal(t, ',', DetectDelimiter(`"a;b",c`))
	assert.Equal(t, ',', DetectDelimiter("keine Trennzeichen"))
}

func TestSplitDelimited(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitDelimited("a;b;c", ';'))
	assert.Equal(t, []string{"a", "b;c", "d"}, SplitDelimited(`a;"b;c";d`, ';'))
	assert.Equal(t, []string{`sagt "Hallo"`, "x"}, SplitDelimited(`"sagt ""Hallo""";x`, ';'))
	assert.Equal(t, []string{"", ""}, SplitDelimited(";", ';'))
	assert.Equal(t, []string{"nur ein Feld"}, SplitDelimited("nur ein Feld", ';'))
}
