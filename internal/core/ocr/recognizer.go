// Package ocr defines the OCR collaborator boundary and the cleanup applied
// to raw transcripts before parsing. The OCR engine itself lives outside
// this module; it is always injected, never ambient state.
package ocr

import "context"

// Result is a raw transcript plus the engine's own confidence estimate,
// scaled 0..100.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recognizer transcribes an image into raw text. Image data is a data URI or
// base64 payload as accepted by the image service.
type Recognizer interface {
	Recognize(ctx context.Context, imageData string) (*Result, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, imageData string) (*Result, error)

func (f RecognizerFunc) Recognize(ctx context.Context, imageData string) (*Result, error) {
	return f(ctx, imageData)
}
