package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWhitespace(t *testing.T) {
	in := "Spaghetti\tCarbonara\r\nZutaten:\r\n\r\n\r\n\r\n- 200  g   Spaghetti"
	want := "Spaghetti Carbonara\nZutaten:\n\n- 200 g Spaghetti"
	assert.Equal(t, want, Normalize(in))
}

func TestNormalizeDropsScanNoise(t *testing.T) {
	in := "Rezept\n-----\n===\n___\n!!! ???\n- 1 Ei"
	assert.Equal(t, "Rezept\n\n- 1 Ei", Normalize(in))
}

func TestNormalizeKeepsBareListMarkers(t *testing.T) {
	in := "Zutaten:\n-\n- 1 Ei"
	assert.Equal(t, "Zutaten:\n-\n- 1 Ei", Normalize(in))
}

func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   \n\t\n  "))
}

func TestRecognizerFunc(t *testing.T) {
	rec := RecognizerFunc(func(ctx context.Context, imageData string) (*Result, error) {
		return &Result{Text: "200 g Mehl", Confidence: 92}, nil
	})

	res, err := rec.Recognize(context.Background(), "data")
	require.NoError(t, err)
	assert.Equal(t, "200 g Mehl", res.Text)
	assert.Equal(t, 92.0, res.Confidence)
}
