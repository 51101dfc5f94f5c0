package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	var v struct {
		Title    string `json:"title"`
		Servings int    `json:"servings"`
	}
	require.NoError(t, ParseJSON(`{"title":"Carbonara","servings":2}`, &v))
	assert.Equal(t, "Carbonara", v.Title)
	assert.Equal(t, 2, v.Servings)

	assert.Error(t, ParseJSON(`{"title":`, &v))
	assert.Error(t, ParseJSON(`{"title":"a"} trailing`, &v))
}

func TestParseJSONStrict(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}
	require.NoError(t, ParseJSONStrict(`{"title":"ok"}`, &v))
	assert.Error(t, ParseJSONStrict(`{"title":"ok","extra":1}`, &v))
}

func TestQuoteJSONKeys(t *testing.T) {
	assert.Equal(t, `{"title": "a", "servings": 2}`, QuoteJSONKeys(`{title: "a", servings: 2}`))

	// Already-quoted keys stay untouched.
	quoted := `{"title": "a"}`
	assert.Equal(t, quoted, QuoteJSONKeys(quoted))
}

func TestExtractJSONObject(t *testing.T) {
	raw := "Hier ist das Rezept:\n```json\n{\"title\": \"Suppe\"}\n```\nViel Spaß!"
	assert.Equal(t, `{"title": "Suppe"}`, ExtractJSONObject(raw))

	// No braces at all: input passes through trimmed.
	assert.Equal(t, "kein json", ExtractJSONObject("  kein json  "))
}

func TestToJSON(t *testing.T) {
	s, err := ToJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, s)
}
