package prompting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// CompletionsConfig configures a CompletionsBackend.
type CompletionsConfig struct {
	// BaseURL is the full completions endpoint URL, e.g.
	// "https://api.openai.com/v1/completions".
	BaseURL string

	// APIKey is sent as a bearer credential. Empty omits the header.
	APIKey string

	// Model is the model identifier sent with every request.
	// Default: DefaultCompletionsModel
	Model string

	// MaxTokens is the generation length used when a request carries no
	// hint of its own. Default: DefaultCompletionsMaxTokens
	MaxTokens int

	// HTTPClient allows injecting a custom client. Default: a client with
	// DefaultCompletionsTimeout.
	HTTPClient *http.Client

	// Logger is optional. Default: no logging.
	Logger *zap.Logger
}

// CompletionsBackend posts prompts to an OpenAI-style completions
// endpoint over HTTPS with a bearer credential and extracts the first
// choice's text. It implements Backend and is safe for concurrent use.
type CompletionsBackend struct {
	config CompletionsConfig
	client *http.Client
	logger *zap.Logger
}

// completionsRequest is the wire form posted to the endpoint.
type completionsRequest struct {
	Prompt    string `json:"prompt"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

// completionsResponse is the subset of the endpoint's reply the backend reads.
type completionsResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// NewCompletionsBackend creates a backend from the given configuration.
func NewCompletionsBackend(config CompletionsConfig) (*CompletionsBackend, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf(ErrMsgCompletionsNoURL)
	}
	if config.Model == "" {
		config.Model = DefaultCompletionsModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultCompletionsMaxTokens
	}

	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultCompletionsTimeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CompletionsBackend{config: config, client: client, logger: logger}, nil
}

// Complete implements Backend. The response's choices[0].text is returned
// trimmed of surrounding whitespace; a reply without that path fails.
func (b *CompletionsBackend) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	maxTokens := b.config.MaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	payload, err := json.Marshal(completionsRequest{
		Prompt:    req.Prompt,
		Model:     b.config.Model,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf(ErrMsgCompletionsMarshal+": %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.config.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf(ErrMsgCompletionsBuildReq+": %w", err)
	}
	httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	if b.config.APIKey != "" {
		httpReq.Header.Set(HeaderAuthorization, BearerPrefix+b.config.APIKey)
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf(ErrMsgCompletionsRequest+": %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf(ErrMsgCompletionsReadBody+": %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b.logger.Debug("completions request rejected",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_length", len(body)))
		return "", fmt.Errorf(ErrMsgCompletionsStatus+": %d: %s", resp.StatusCode, string(body))
	}

	var decoded completionsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf(ErrMsgCompletionsUnmarshal+": %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf(ErrMsgCompletionsNoChoices + ": missing " + CompletionsChoicesFieldPath)
	}

	text := strings.TrimSpace(decoded.Choices[0].Text)
	b.logger.Debug("completions request succeeded", zap.Int("text_length", len(text)))
	return text, nil
}
