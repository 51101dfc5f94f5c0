package parse

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Parser: config.ParserConfig{DefaultLanguage: "de", MaxTextLength: 50000},
	}
	h := NewHandler(cfg)

	r := gin.New()
	r.POST("/parse/text", h.HandleParseText)
	r.POST("/parse/smart", h.HandleParseSmart)
	r.POST("/parse/classify", h.HandleClassify)
	r.POST("/parse/validate", h.HandleValidate)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const recipeText = "Spaghetti Carbonara\nZutaten:\n- 200 g Spaghetti\n- 2 Eier\nZubereitung:\n1. Nudeln kochen.\n2. Eier unterheben."

func TestHandleParseText(t *testing.T) {
	r := testRouter(t)

	body, err := json.Marshal(gin.H{"text": recipeText})
	require.NoError(t, err)
	w := postJSON(r, "/parse/text", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipe *common.RecipeDraft `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Spaghetti Carbonara", resp.Recipe.Title)
	assert.Len(t, resp.Recipe.Ingredients, 2)
	assert.Len(t, resp.Recipe.Steps, 2)
}

func TestHandleParseTextMissingBody(t *testing.T) {
	r := testRouter(t)

	w := postJSON(r, "/parse/text", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/parse/text", `kein json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleParseTextEmptyTextIsBadRequest(t *testing.T) {
	r := testRouter(t)
	w := postJSON(r, "/parse/text", `{"text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeInvalidRequest)
}

func TestHandleParseTextTooLong(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Parser: config.ParserConfig{DefaultLanguage: "de", MaxTextLength: 10},
	}
	h := NewHandler(cfg)
	r := gin.New()
	r.POST("/parse/text", h.HandleParseText)

	w := postJSON(r, "/parse/text", `{"text": "dieser Text ist deutlich zu lang"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text too long")
}

func TestHandleParseSmart(t *testing.T) {
	r := testRouter(t)

	body, err := json.Marshal(gin.H{"text": recipeText})
	require.NoError(t, err)
	w := postJSON(r, "/parse/smart", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp SmartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Recipe)
	require.NotNil(t, resp.Validation)
	assert.True(t, resp.Validation.IsValid)
	assert.Contains(t, resp.Summary, "Qualität")
}

func TestHandleClassifyLines(t *testing.T) {
	r := testRouter(t)

	w := postJSON(r, "/parse/classify", `{"lines": ["200 g Mehl", "Alles gut verrühren."]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Classifications []struct {
			Kind       string `json:"kind"`
			Confidence int    `json:"confidence"`
		} `json:"classifications"`
		Grouped struct {
			Ingredients []string `json:"ingredients"`
			Steps       []string `json:"steps"`
		} `json:"grouped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Classifications, 2)
	assert.Equal(t, "ingredient", resp.Classifications[0].Kind)
	assert.Equal(t, "step", resp.Classifications[1].Kind)
	assert.Equal(t, []string{"200 g Mehl"}, resp.Grouped.Ingredients)
	assert.Equal(t, []string{"Alles gut verrühren."}, resp.Grouped.Steps)
}

func TestHandleClassifyRequiresInput(t *testing.T) {
	r := testRouter(t)
	w := postJSON(r, "/parse/classify", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleValidate(t *testing.T) {
	r := testRouter(t)

	body := `{"recipe": {"title": "Carbonara", "servings": 2, "cooking_time_minutes": 25, "difficulty": 2,
		"cuisines": ["Italienisch"],
		"ingredients": [{"kind": "ingredient", "text": "200 g Spaghetti"}, {"kind": "ingredient", "text": "2 Eier"}],
		"steps": [{"kind": "step", "text": "Kochen."}]}}`
	w := postJSON(r, "/parse/validate", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Validation *common.ValidationReport `json:"validation"`
		Summary    string                   `json:"summary"`
		Acceptable bool                     `json:"acceptable"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Validation)
	assert.True(t, resp.Validation.IsValid)
	assert.True(t, resp.Acceptable)
	assert.NotEmpty(t, resp.Summary)
}

func TestHandleValidateMissingRecipe(t *testing.T) {
	r := testRouter(t)
	w := postJSON(r, "/parse/validate", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
