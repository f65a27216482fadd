package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kimi/legalease/backend/config"
)

// TextExtractor converts raw file bytes plus a declared content type into
// plain text, or fails with an ExtractionError
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, contentType string) (string, error)
}

// TikaExtractor extracts text through an Apache Tika server
type TikaExtractor struct {
	config     *config.TikaConfig
	httpClient *http.Client
}

func NewTikaExtractor(cfg *config.TikaConfig) *TikaExtractor {
	return &TikaExtractor{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Extract sends the file to Tika's /tika endpoint and returns the plain text
func (s *TikaExtractor) Extract(ctx context.Context, data []byte, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.config.ServerURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "text/plain")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &ExtractionError{Message: fmt.Sprintf("extraction request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ExtractionError{Message: fmt.Sprintf("failed to read extraction response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ExtractionError{Message: fmt.Sprintf("tika server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	return strings.TrimSpace(string(body)), nil
}
