package parse

import (
	"net/http"

	"recipe-parser/internal/core/tabular"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CSVImportRequest is the body of /import/csv.
type CSVImportRequest struct {
	Content string `json:"content" binding:"required"`
	Author  string `json:"author,omitempty"`
}

// NotionImportRequest is the body of /import/notion.
type NotionImportRequest struct {
	Content string `json:"content" binding:"required"`
}

// HandleImportCSV imports a bulk CSV export. Failed rows become warnings;
// the request only fails when no row survives.
func (h *Handler) HandleImportCSV(images tabular.CategoryImageFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CSVImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
			return
		}

		result, err := tabular.ParseRecipeCSV(c.Request.Context(), req.Content, req.Author, images)
		if err != nil {
			respondParseError(c, err)
			return
		}

		common.LogInfo("CSV import completed",
			zap.Int("imported", len(result.Recipes)),
			zap.Int("skipped", len(result.Warnings)),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusOK, result)
	}
}

// HandleImportNotion imports a single Notion document, Markdown or CSV.
func (h *Handler) HandleImportNotion(c *gin.Context) {
	var req NotionImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}

	draft, err := tabular.ParseNotionDocument(req.Content)
	if err != nil {
		respondParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": draft})
}
