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

const anthropicVersion = "2023-06-01"

// AnthropicProvider is the primary assisted tier, backed by the Anthropic
// Messages API.
type AnthropicProvider struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// Anthropic API request/response structures
type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewAnthropicProvider creates the Anthropic tier from config. An empty
// API key is not an error; the provider simply reports unavailable.
func NewAnthropicProvider(cfg config.AnthropicConfig, timeout time.Duration) *AnthropicProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1"
	}

	return &AnthropicProvider{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.Name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Method implements Provider.Method
func (p *AnthropicProvider) Method() plan.Method {
	return plan.MethodLLM
}

// Available implements Provider.Available
func (p *AnthropicProvider) Available() bool {
	return p.apiKey != ""
}

// Decompose implements Provider.Decompose
func (p *AnthropicProvider) Decompose(ctx context.Context, task string) (*plan.Plan, error) {
	if !p.Available() {
		return nil, errors.NewProviderError("no API key configured", errors.ErrProviderUnavailable).
			WithProvider(p.Name())
	}

	reqBody, err := json.Marshal(anthropicRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildPrompt(task)},
		},
	})
	if err != nil {
		return nil, errors.NewProviderError("marshal request", errors.ErrProviderCallFailed).
			WithProvider(p.Name())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.NewProviderError("create request", errors.ErrProviderCallFailed).
			WithProvider(p.Name())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

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
		var errResp anthropicResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != nil {
			msg = errResp.Error.Message
		}
		return nil, errors.NewProviderError(msg, errors.ErrProviderCallFailed).
			WithProvider(p.Name()).WithStatusCode(httpResp.StatusCode)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, errors.NewProviderError("unmarshal response envelope", errors.ErrProviderUnparseable).
			WithProvider(p.Name())
	}

	var text string
	for _, c := range resp.Content {
		if c.Type == "text" {
			text = c.Text
			break
		}
	}
	if text == "" {
		return nil, errors.NewProviderError("response has no text content", errors.ErrProviderUnparseable).
			WithProvider(p.Name())
	}

	return parsePlanResponse(p.Name(), p.Method(), task, text)
}
