package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/moltbook/decomposer/internal/config"
	"github.com/moltbook/decomposer/internal/errors"
	"github.com/moltbook/decomposer/internal/plan"
)

// OpenAIProvider is the secondary assisted tier, backed by the OpenAI
// Chat Completions API.
type OpenAIProvider struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// OpenAI API request/response structures
type openaiRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Error   *openaiError   `json:"error,omitempty"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewOpenAIProvider creates the OpenAI tier from config. An empty API key
// is not an error; the provider simply reports unavailable.
func NewOpenAIProvider(cfg config.OpenAIConfig, timeout time.Duration) *OpenAIProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIProvider{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.Name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Method implements Provider.Method
func (p *OpenAIProvider) Method() plan.Method {
	return plan.MethodOpenAI
}

// Available implements Provider.Available
func (p *OpenAIProvider) Available() bool {
	return p.apiKey != ""
}

// Decompose implements Provider.Decompose
func (p *OpenAIProvider) Decompose(ctx context.Context, task string) (*plan.Plan, error) {
	if !p.Available() {
		return nil, errors.NewProviderError("no API key configured", errors.ErrProviderUnavailable).
			WithProvider(p.Name())
	}

	reqBody, err := json.Marshal(openaiRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []openaiMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(task)},
		},
	})
	if err != nil {
		return nil, errors.NewProviderError("marshal request", errors.ErrProviderCallFailed).
			WithProvider(p.Name())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.NewProviderError("create request", errors.ErrProviderCallFailed).
			WithProvider(p.Name())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, errors.NewProviderError(fmt.Sprintf("send request: %v", err), errors.ErrProviderCallFailed).
			WithProvider(p.Name())
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.NewProviderError("read response", errors.ErrProviderCallFailed).
			WithProvider(p.Name())
	}

	if httpResp.StatusCode != http.StatusOK {
		msg := "request failed"
		var errResp openaiResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != nil {
			msg = errResp.Error.Message
		}
		return nil, errors.NewProviderError(msg, errors.ErrProviderCallFailed).
			WithProvider(p.Name()).WithStatusCode(httpResp.StatusCode)
	}

	var resp openaiResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.NewProviderError("unmarshal response envelope", errors.ErrProviderUnparseable).
			WithProvider(p.Name())
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.NewProviderError("response has no choices", errors.ErrProviderUnparseable).
			WithProvider(p.Name())
	}

	return parsePlanResponse(p.Name(), p.Method(), task, resp.Choices[0].Message.Content)
}
