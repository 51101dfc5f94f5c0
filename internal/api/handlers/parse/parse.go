// Package parse exposes the text-parsing core over JSON endpoints.
package parse

import (
	"net/http"

	coreparse "recipe-parser/internal/core/parse"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the parse and validation endpoints.
type Handler struct {
	cfg *config.Config
}

// NewHandler creates the parse handler.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// TextRequest is the body of /parse/text and /parse/smart.
type TextRequest struct {
	Text string `json:"text" binding:"required"`
	Lang string `json:"lang,omitempty"`
}

// ClassifyRequest is the body of /parse/classify.
type ClassifyRequest struct {
	Lines []string `json:"lines,omitempty"`
	Text  string   `json:"text,omitempty"`
	Lang  string   `json:"lang,omitempty"`
}

// ValidateRequest is the body of /parse/validate.
type ValidateRequest struct {
	Recipe *common.RecipeDraft `json:"recipe" binding:"required"`
	Lang   string              `json:"lang,omitempty"`
}

// SmartResponse pairs a parsed draft with its quality report.
type SmartResponse struct {
	Recipe     *common.RecipeDraft      `json:"recipe"`
	Validation *common.ValidationReport `json:"validation"`
	Summary    string                   `json:"summary,omitempty"`
}

func (h *Handler) language(tag string) common.Language {
	if tag == "" {
		tag = h.cfg.Parser.DefaultLanguage
	}
	return common.NormalizeLanguage(tag)
}

func (h *Handler) checkTextLength(c *gin.Context, text string) bool {
	if len(text) > h.cfg.Parser.MaxTextLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "text too long",
			"code":  common.ErrCodeInvalidRequest,
			"max":   h.cfg.Parser.MaxTextLength,
		})
		return false
	}
	return true
}

// HandleParseText runs the structured parse with classification fallback.
func (h *Handler) HandleParseText(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}
	if !h.checkTextLength(c, req.Text) {
		return
	}

	draft, err := coreparse.ParseWithClassificationFallback(req.Text, h.language(req.Lang))
	if err != nil {
		respondParseError(c, err)
		return
	}

	common.LogInfo("text parsed",
		zap.Int("ingredients", len(draft.Ingredients)),
		zap.Int("steps", len(draft.Steps)),
		zap.String("request_id", c.GetHeader("X-Request-ID")),
	)
	c.JSON(http.StatusOK, gin.H{"recipe": draft})
}

// HandleParseSmart runs the fallback parse plus validation.
func (h *Handler) HandleParseSmart(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}
	if !h.checkTextLength(c, req.Text) {
		return
	}

	lang := h.language(req.Lang)
	draft, report, err := coreparse.ParseSmart(req.Text, lang)
	if err != nil {
		respondParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, SmartResponse{
		Recipe:     draft,
		Validation: report,
		Summary:    coreparse.GetValidationSummary(report, lang),
	})
}

// HandleClassify classifies lines individually and grouped.
func (h *Handler) HandleClassify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}
	if len(req.Lines) == 0 && req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lines or text is required", "code": common.ErrCodeInvalidRequest})
		return
	}

	lang := h.language(req.Lang)

	var grouped *coreparse.ClassifiedText
	lines := req.Lines
	if len(lines) > 0 {
		grouped = coreparse.ClassifyText(lines, lang)
	} else {
		grouped = coreparse.AutoClassifyText(req.Text, lang)
	}

	classifications := make([]coreparse.Classification, 0, len(lines))
	for _, line := range lines {
		classifications = append(classifications, coreparse.ClassifyLine(line, lang))
	}

	c.JSON(http.StatusOK, gin.H{
		"classifications": classifications,
		"grouped":         grouped,
	})
}

// HandleValidate validates a caller-supplied draft.
func (h *Handler) HandleValidate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}

	report, err := coreparse.Validate(req.Recipe)
	if err != nil {
		respondParseError(c, err)
		return
	}

	lang := h.language(req.Lang)
	c.JSON(http.StatusOK, gin.H{
		"validation": report,
		"summary":    coreparse.GetValidationSummary(report, lang),
		"acceptable": coreparse.IsAcceptable(report, coreparse.DefaultMinScore),
	})
}

// respondParseError maps core errors onto HTTP statuses: validation errors
// are the caller's fault, everything else is ours.
func respondParseError(c *gin.Context, err error) {
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}
	common.LogError("parse failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": common.ErrCodeInternalError})
}
