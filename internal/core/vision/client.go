// Package vision calls a vision-language model for the two capture paths:
// plain transcription (backing the OCR collaborator interface) and direct
// recipe extraction, which returns an already-structured draft and bypasses
// the text-parsing core entirely.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-parser/internal/core/ocr"
	"recipe-parser/internal/infrastructure/config"
	"recipe-parser/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient creates the vision client from configuration.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Vision.BaseURL).
		SetTimeout(cfg.Vision.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Vision.APIKey)).
		SetHeader("X-Title", "Recipe Parser")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Enabled reports whether the collaborator is configured.
func (c *Client) Enabled() bool {
	return c.config.Vision.Enabled
}

const transcribePrompt = `Transcribe all text visible in this image exactly as written, preserving line breaks. Return only the raw text, no commentary. On the last line, append "CONFIDENCE: N" where N is 0-100, your estimate of transcription accuracy.`

// Transcribe asks the model for a verbatim transcript of the image. It
// satisfies the ocr.Recognizer contract.
func (c *Client) Transcribe(ctx context.Context, imageData string) (*ocr.Result, error) {
	content, err := c.complete(ctx, transcribePrompt, imageData)
	if err != nil {
		return nil, err
	}

	text := content
	confidence := 80.0
	if idx := strings.LastIndex(content, "CONFIDENCE:"); idx >= 0 {
		var n float64
		if _, scanErr := fmt.Sscanf(content[idx:], "CONFIDENCE: %f", &n); scanErr == nil && n >= 0 && n <= 100 {
			confidence = n
		}
		text = strings.TrimSpace(content[:idx])
	}

	return &ocr.Result{Text: text, Confidence: confidence}, nil
}

// Recognizer adapts the client to the ocr.Recognizer interface.
func (c *Client) Recognizer() ocr.Recognizer {
	return ocr.RecognizerFunc(c.Transcribe)
}

// wireRecipe is the JSON shape the extraction prompt requests.
type wireRecipe struct {
	Title              string   `json:"title"`
	Servings           int      `json:"servings"`
	CookingTimeMinutes int      `json:"cooking_time_minutes"`
	Difficulty         int      `json:"difficulty"`
	Cuisines           []string `json:"cuisines"`
	Category           string   `json:"category"`
	Ingredients        []string `json:"ingredients"`
	Steps              []string `json:"steps"`
	Notes              string   `json:"notes"`
}

func extractPrompt(lang common.Language) string {
	language := "German"
	if lang == common.LanguageEnglish {
		language = "English"
	}
	return fmt.Sprintf(`Extract the recipe from this image. Answer in %s. Return only a compact JSON object with exactly these fields: {"title":string,"servings":int,"cooking_time_minutes":int,"difficulty":int (1-5),"cuisines":[string],"category":string,"ingredients":[string],"steps":[string],"notes":string}. Use empty values for anything not visible. All keys must be double-quoted. No markdown fences, no commentary.`, language)
}

// ExtractRecipe asks the model directly for a structured recipe.
func (c *Client) ExtractRecipe(ctx context.Context, imageData string, lang common.Language) (*common.RecipeDraft, error) {
	content, err := c.complete(ctx, extractPrompt(lang), imageData)
	if err != nil {
		return nil, err
	}

	payload := common.QuoteJSONKeys(common.ExtractJSONObject(content))

	var wire wireRecipe
	if err := common.ParseJSON(payload, &wire); err != nil {
		common.LogDebug("vision extraction payload not parseable",
			zap.Int("length", len(payload)),
		)
		return nil, fmt.Errorf("failed to parse vision response: %w", err)
	}

	draft := common.NewRecipeDraft()
	if strings.TrimSpace(wire.Title) != "" {
		draft.Title = strings.TrimSpace(wire.Title)
	}
	if wire.Servings > 0 {
		draft.Servings = wire.Servings
	}
	if wire.CookingTimeMinutes > 0 {
		draft.CookingTimeMinutes = wire.CookingTimeMinutes
	}
	if wire.Difficulty != 0 {
		draft.Difficulty = common.ClampDifficulty(wire.Difficulty)
	}
	for _, cu := range wire.Cuisines {
		if cu = strings.TrimSpace(cu); cu != "" && !draft.HasCuisine(cu) {
			draft.Cuisines = append(draft.Cuisines, cu)
		}
	}
	draft.Category = strings.TrimSpace(wire.Category)
	draft.Notes = strings.TrimSpace(wire.Notes)
	for _, ing := range wire.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			draft.Ingredients = append(draft.Ingredients, common.ListItem{Kind: common.ItemIngredient, Text: ing})
		}
	}
	for _, step := range wire.Steps {
		if step = strings.TrimSpace(step); step != "" {
			draft.Steps = append(draft.Steps, common.ListItem{Kind: common.ItemStep, Text: step})
		}
	}

	return draft, nil
}

// complete performs one chat-completions call with an optional image part.
func (c *Client) complete(ctx context.Context, prompt, imageData string) (string, error) {
	if !c.config.Vision.Enabled {
		return "", common.ErrVisionService
	}

	msgContent := []map[string]interface{}{
		{"type": "text", "text": prompt},
	}
	if imageData != "" {
		url := imageData
		if !strings.HasPrefix(imageData, "data:image/") {
			url = "data:image/jpeg;base64," + imageData
		}
		msgContent = append(msgContent, map[string]interface{}{
			"type":      "image_url",
			"image_url": map[string]string{"url": url},
		})
	}

	req := map[string]interface{}{
		"model": c.config.Vision.Model,
		"messages": []map[string]interface{}{
			{"role": "user", "content": msgContent},
		},
		"max_tokens": c.config.Vision.MaxTokens,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	common.LogVisionCall(time.Since(start), err, requestIDFromContext(ctx))

	if err != nil {
		return "", fmt.Errorf("failed to send vision request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("vision API returned status %d", resp.StatusCode())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse vision response: %w", err)
	}
	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty vision response")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

type contextKey string

// RequestIDKey carries the request id through context for log correlation.
const RequestIDKey contextKey = "request_id"

func requestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}
