package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

const (
	// DefaultInferenceURL is where a locally run model server listens.
	DefaultInferenceURL = "http://localhost:8080"
	// DefaultInferenceTimeout bounds a single generation call. Beam search
	// over long inputs can take tens of seconds on CPU.
	DefaultInferenceTimeout = 60 * time.Second
)

// InferenceClient implements Translator against the model inference
// server's HTTP API.
type InferenceClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// generateRequest is the inference server's generation payload. The target
// locale tag is used by the server as the forced first decoder token.
type generateRequest struct {
	Text          string  `json:"text"`
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	MaxNewTokens  int     `json:"max_new_tokens"`
	NumBeams      int     `json:"num_beams"`
	LengthPenalty float64 `json:"length_penalty"`
}

// generateResponse is the inference server's generation result.
type generateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// NewInferenceClient creates a client for the model inference server.
func NewInferenceClient(baseURL, apiKey string, timeout time.Duration) *InferenceClient {
	if baseURL == "" {
		baseURL = DefaultInferenceURL
	}
	if timeout <= 0 {
		timeout = DefaultInferenceTimeout
	}

	return &InferenceClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate sends one generation request to the inference server.
func (c *InferenceClient) Generate(ctx context.Context, genReq GenerationRequest) (string, error) {
	payload := generateRequest{
		Text:          genReq.Text,
		Source:        genReq.SourceTag,
		Target:        genReq.TargetTag,
		MaxNewTokens:  genReq.Params.MaxNewTokens,
		NumBeams:      genReq.Params.NumBeams,
		LengthPenalty: genReq.Params.LengthPenalty,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	url := c.BaseURL + "/generate"
	logger.Base().Debug("Calling inference server",
		zap.String("url", url),
		zap.String("source", genReq.SourceTag),
		zap.String("target", genReq.TargetTag),
		zap.Int("text_length", len(genReq.Text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	startTime := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)
	logger.Base().Debug("Inference server response",
		zap.Int("status_code", resp.StatusCode),
		zap.Int64("duration_ms", duration.Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("inference server error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %v", err)
	}

	return genResp.TranslatedText, nil
}

// CheckHealth verifies the inference server is up.
func (c *InferenceClient) CheckHealth(ctx context.Context) error {
	url := c.BaseURL + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %v", err)
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
