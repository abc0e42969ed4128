package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/moltbook/decomposer/internal/config"
	"github.com/moltbook/decomposer/internal/errors"
	"github.com/moltbook/decomposer/internal/plan"
)

func openaiTestServer(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewOpenAIProvider(config.OpenAIConfig{
		APIKey:    "test-key",
		Model:     "gpt-test",
		BaseURL:   server.URL,
		MaxTokens: 1024,
	}, 5*time.Second)
}

func openaiTextResponse(text string) string {
	resp := openaiResponse{
		Choices: []openaiChoice{{Message: openaiMessage{Role: "assistant", Content: text}}},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestOpenAIDecompose(t *testing.T) {
	p := openaiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}

		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("expected system+user messages, got %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "fetch prices") {
			t.Errorf("user message missing task text: %q", req.Messages[1].Content)
		}

		w.Write([]byte(openaiTextResponse(validPlanJSON)))
	})

	got, err := p.Decompose(context.Background(), "fetch prices and place orders")
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}

	if got.Method != plan.MethodOpenAI {
		t.Errorf("expected method %q, got %q", plan.MethodOpenAI, got.Method)
	}
	if got.SubtaskCount() != 3 {
		t.Errorf("expected 3 subtasks, got %d", got.SubtaskCount())
	}
}

func TestOpenAIDecomposeUnavailable(t *testing.T) {
	p := NewOpenAIProvider(config.OpenAIConfig{APIKey: ""}, time.Second)

	if p.Available() {
		t.Error("provider with no key should be unavailable")
	}

	_, err := p.Decompose(context.Background(), "anything")
	if !errors.Is(err, errors.ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestOpenAIDecomposeHTTPError(t *testing.T) {
	p := openaiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "Rate limited"}}`))
	})

	_, err := p.Decompose(context.Background(), "anything")
	if !errors.Is(err, errors.ErrProviderCallFailed) {
		t.Fatalf("expected ErrProviderCallFailed, got %v", err)
	}

	var provErr *errors.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatal("expected a ProviderError")
	}
	if provErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", provErr.StatusCode)
	}
}

func TestOpenAIDecomposeEmptyChoices(t *testing.T) {
	p := openaiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := p.Decompose(context.Background(), "anything")
	if !errors.Is(err, errors.ErrProviderUnparseable) {
		t.Errorf("expected ErrProviderUnparseable, got %v", err)
	}
}
