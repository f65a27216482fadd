package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kimi/legalease/backend/config"
)

// Gateway performs a single synchronous call to the external AI endpoint
type Gateway interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// GeminiService calls the Gemini generateContent endpoint. One request per
// invocation, no retry, no streaming.
type GeminiService struct {
	config     *config.GeminiConfig
	httpClient *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewGeminiService(cfg *config.GeminiConfig) *GeminiService {
	return &GeminiService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Invoke sends the prompt as the sole content part with a fixed
// low-temperature, bounded-output generation config and returns the model's
// raw reply text
func (s *GeminiService) Invoke(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.1,
			MaxOutputTokens: 2048,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GatewayError{Message: "failed to marshal request", Cause: err}
	}

	endpoint := s.config.APIURL + "?key=" + url.QueryEscape(s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &GatewayError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &GatewayError{Message: "failed to call Gemini API", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GatewayError{Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &GatewayError{Message: fmt.Sprintf("Gemini API returned status %d", resp.StatusCode), Cause: fmt.Errorf("%s", body)}
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &GatewayError{Message: "failed to parse response", Cause: err}
	}

	// Unwrap the first candidate's first content part
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", &GatewayError{Message: "invalid response format from Gemini API"}
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
