// Package image validates and re-encodes the photos handed to the capture
// endpoints before they reach the OCR or vision collaborators.
package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Service decodes, validates and normalizes incoming image data.
type Service struct {
	maxSizeBytes int64
	httpClient   *http.Client
}

// NewService creates the image service with a size limit in bytes.
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

var supportedFormats = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Process accepts a URL, a data URI or bare base64, validates size and
// format, and returns the image re-encoded as a JPEG data URI.
func (s *Service) Process(imageData string) (string, error) {
	raw, err := s.fetch(imageData)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if !supportedFormats[format] {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return "data:image/jpeg;base64," + encoded, nil
}

// Validate checks that the image decodes and stays within limits without
// re-encoding it.
func (s *Service) Validate(imageData string) error {
	raw, err := s.fetch(imageData)
	if err != nil {
		return err
	}

	_, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if !supportedFormats[format] {
		return fmt.Errorf("unsupported image format: %s", format)
	}
	return nil
}

// fetch resolves the raw bytes behind a URL, data URI or base64 payload and
// enforces the size limit.
func (s *Service) fetch(imageData string) ([]byte, error) {
	if imageData == "" {
		return nil, fmt.Errorf("image data is empty")
	}

	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		resp, err := s.httpClient.Get(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to download image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
		}

		raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSizeBytes+1))
		if err != nil {
			return nil, fmt.Errorf("failed to read image data: %w", err)
		}
		if int64(len(raw)) > s.maxSizeBytes {
			return nil, fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
		}
		return raw, nil
	}

	payload := imageData
	if strings.HasPrefix(imageData, "data:image/") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		payload = parts[1]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	if int64(len(raw)) > s.maxSizeBytes {
		return nil, fmt.Errorf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes)
	}
	return raw, nil
}
