package parse

import (
	"net/http"

	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/core/image"
	"recipe-parser/internal/core/ocr"
	coreparse "recipe-parser/internal/core/parse"
	"recipe-parser/internal/core/vision"
	"recipe-parser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CaptureHandler serves the photo-capture endpoints. Both paths go through
// the image service first; results are cached by image hash.
type CaptureHandler struct {
	recognizer   ocr.Recognizer
	visionClient *vision.Client
	imageService *image.Service
	cacheManager *cache.Manager
}

// NewCaptureHandler creates the capture handler.
func NewCaptureHandler(recognizer ocr.Recognizer, visionClient *vision.Client, imageService *image.Service, cacheManager *cache.Manager) *CaptureHandler {
	return &CaptureHandler{
		recognizer:   recognizer,
		visionClient: visionClient,
		imageService: imageService,
		cacheManager: cacheManager,
	}
}

// CaptureRequest is the body of the capture endpoints.
type CaptureRequest struct {
	Image string `json:"image" binding:"required"`
	Lang  string `json:"lang,omitempty"`
}

// CaptureResponse is the OCR capture result.
type CaptureResponse struct {
	Recipe        *common.RecipeDraft      `json:"recipe"`
	Validation    *common.ValidationReport `json:"validation"`
	Text          string                   `json:"text"`
	OCRConfidence float64                  `json:"ocr_confidence"`
}

// HandleCaptureOCR transcribes the photo, normalizes the transcript and runs
// the smart parse over it.
func (h *CaptureHandler) HandleCaptureOCR(c *gin.Context) {
	var req CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}
	lang := common.NormalizeLanguage(req.Lang)

	processed, err := h.imageService.Process(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidImageData})
		return
	}

	ctx := c.Request.Context()
	key := cache.Key("ocr", processed)

	text := ""
	confidence := 0.0
	if cached, ok := h.cacheManager.Get(ctx, key); ok {
		var res ocr.Result
		if err := common.ParseJSON(cached, &res); err == nil {
			text = res.Text
			confidence = res.Confidence
		}
	}

	if text == "" {
		result, err := h.recognizer.Recognize(ctx, processed)
		if err != nil {
			common.LogError("OCR recognition failed",
				zap.Error(err),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "code": "OCR_SERVICE_ERROR"})
			return
		}
		text = ocr.Normalize(result.Text)
		confidence = result.Confidence

		if encoded, err := common.ToJSON(ocr.Result{Text: text, Confidence: confidence}); err == nil {
			h.cacheManager.Set(ctx, key, encoded)
		}
	}

	draft, report, err := coreparse.ParseSmart(text, lang)
	if err != nil {
		respondParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, CaptureResponse{
		Recipe:        draft,
		Validation:    report,
		Text:          text,
		OCRConfidence: confidence,
	})
}

// HandleCaptureVision asks the vision model for a structured recipe
// directly, bypassing the text core.
func (h *CaptureHandler) HandleCaptureVision(c *gin.Context) {
	var req CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}
	lang := common.NormalizeLanguage(req.Lang)

	if !h.visionClient.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "vision extraction is not configured", "code": "VISION_SERVICE_ERROR"})
		return
	}

	processed, err := h.imageService.Process(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidImageData})
		return
	}

	ctx := c.Request.Context()
	key := cache.Key("vision:"+string(lang), processed)

	if cached, ok := h.cacheManager.Get(ctx, key); ok {
		var draft common.RecipeDraft
		if err := common.ParseJSON(cached, &draft); err == nil {
			h.respondVision(c, &draft)
			return
		}
	}

	draft, err := h.visionClient.ExtractRecipe(ctx, processed, lang)
	if err != nil {
		common.LogError("vision extraction failed",
			zap.Error(err),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "code": "VISION_SERVICE_ERROR"})
		return
	}

	if encoded, err := common.ToJSON(draft); err == nil {
		h.cacheManager.Set(ctx, key, encoded)
	}

	h.respondVision(c, draft)
}

func (h *CaptureHandler) respondVision(c *gin.Context, draft *common.RecipeDraft) {
	report, err := coreparse.Validate(draft)
	if err != nil {
		respondParseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipe":     draft,
		"validation": report,
	})
}
