package parse

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-parser/internal/core/tabular"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"
)

func importRouter(t *testing.T, images tabular.CategoryImageFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Parser: config.ParserConfig{DefaultLanguage: "de", MaxTextLength: 50000},
	}
	h := NewHandler(cfg)

	r := gin.New()
	r.POST("/import/csv", h.HandleImportCSV(images))
	r.POST("/import/notion", h.HandleImportNotion)
	return r
}

const importCSV = "Name;Portionen;Zutat 1;Zubereitungsschritt 1\n" +
	"Carbonara;2 Personen;200 g Spaghetti;Nudeln kochen.\n" +
	";4;1 Ei;Kochen."

func TestHandleImportCSV(t *testing.T) {
	r := importRouter(t, nil)

	body, err := json.Marshal(gin.H{"content": importCSV, "author": "Erika"})
	require.NoError(t, err)
	w := postJSON(r, "/import/csv", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	var result tabular.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Recipes, 1)
	assert.Equal(t, "Carbonara", result.Recipes[0].Title)
	assert.Equal(t, "Erika", result.Recipes[0].Author)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Rezeptname fehlt")
}

func TestHandleImportCSVAllRowsFail(t *testing.T) {
	r := importRouter(t, nil)

	body, err := json.Marshal(gin.H{"content": "Name;Zutat 1;Zubereitungsschritt 1\n;1 Ei;Kochen."})
	require.NoError(t, err)
	w := postJSON(r, "/import/csv", string(body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "kein Rezept konnte importiert werden")
	assert.Contains(t, w.Body.String(), common.ErrCodeInvalidRequest)
}

func TestHandleImportCSVMissingContent(t *testing.T) {
	r := importRouter(t, nil)
	w := postJSON(r, "/import/csv", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleImportNotion(t *testing.T) {
	r := importRouter(t, nil)

	md := "# Bananenbrot\n\n## Zutaten\n- 3 Bananen\n\n## Zubereitung\n1. Zerdrücken."
	body, err := json.Marshal(gin.H{"content": md})
	require.NoError(t, err)
	w := postJSON(r, "/import/notion", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Recipe *common.RecipeDraft `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Bananenbrot", resp.Recipe.Title)
	assert.Equal(t, []string{"3 Bananen"}, resp.Recipe.IngredientTexts())
	assert.Equal(t, []string{"Zerdrücken."}, resp.Recipe.StepTexts())
}

func TestHandleImportNotionEmptyContent(t *testing.T) {
	r := importRouter(t, nil)
	w := postJSON(r, "/import/notion", `{"content": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeInvalidRequest)
}
