package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moltbook/decomposer/internal/config"
	"github.com/moltbook/decomposer/internal/errors"
	"github.com/moltbook/decomposer/internal/plan"
)

// validPlanJSON is a well-formed model payload shared across provider tests.
const validPlanJSON = `{
  "complexity": "medium",
  "subtasks": [
    {"id": "task_1", "description": "fetch current prices", "domain": "trading", "estimated_minutes": 5, "dependencies": [], "can_parallelize": true},
    {"id": "task_2", "description": "calculate trading signals", "domain": "data", "estimated_minutes": 10, "dependencies": ["task_1"], "can_parallelize": false},
    {"id": "task_3", "description": "place orders", "domain": "trading", "estimated_minutes": 5, "dependencies": ["task_2"], "can_parallelize": false}
  ],
  "critical_path": ["task_1", "task_2", "task_3"],
  "risks": ["market moves during execution"],
  "recommendation": "Execute sequentially - moderate complexity, maintain context"
}`

func anthropicTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *AnthropicProvider) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p := NewAnthropicProvider(config.AnthropicConfig{
		APIKey:    "test-key",
		Model:     "claude-test",
		BaseURL:   server.URL,
		MaxTokens: 1024,
	}, 5*time.Second)

	return server, p
}

func anthropicTextResponse(text string) string {
	resp := anthropicResponse{
		Content: []anthropicContent{{Type: "text", Text: text}},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestAnthropicDecompose(t *testing.T) {
	_, p := anthropicTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("unexpected api key header: %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != anthropicVersion {
			t.Errorf("unexpected version header: %s", r.Header.Get("anthropic-version"))
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "claude-test" {
			t.Errorf("unexpected model: %s", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.Write([]byte(anthropicTextResponse(validPlanJSON)))
	})

	task := "Build a trading bot that fetches prices and calculates signals then places orders"
	got, err := p.Decompose(context.Background(), task)
	if err != nil {
		t.Fatalf("Decompose failed: %v", err)
	}

	if got.Method != plan.MethodLLM {
		t.Errorf("expected method %q, got %q", plan.MethodLLM, got.Method)
	}
	if got.OriginalTask != task {
		t.Errorf("plan does not carry original task: %q", got.OriginalTask)
	}
	if got.SubtaskCount() != 3 {
		t.Errorf("expected 3 subtasks, got %d", got.SubtaskCount())
	}
	if got.ID == "" || got.CreatedAt.IsZero() {
		t.Error("plan missing locally stamped ID or timestamp")
	}
	if got.Complexity != plan.ComplexityMedium {
		t.Errorf("expected medium complexity, got %s", got.Complexity)
	}
}

func TestAnthropicDecomposeStripsFences(t *testing.T) {
	_, p := anthropicTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fenced := "Here is the plan:\n```json\n" + validPlanJSON + "\n```"
		w.Write([]byte(anthropicTextResponse(fenced)))
	})

	got, err := p.Decompose(context.Background(), "build a thing")
	if err != nil {
		t.Fatalf("Decompose failed on fenced response: %v", err)
	}
	if got.SubtaskCount() != 3 {
		t.Errorf("expected 3 subtasks, got %d", got.SubtaskCount())
	}
}

func TestAnthropicDecomposeUnavailable(t *testing.T) {
	p := NewAnthropicProvider(config.AnthropicConfig{APIKey: ""}, time.Second)

	if p.Available() {
		t.Error("provider with no key should be unavailable")
	}

	_, err := p.Decompose(context.Background(), "anything")
	if !errors.Is(err, errors.ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestAnthropicDecomposeHTTPError(t *testing.T) {
	_, p := anthropicTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": {"type": "overloaded_error", "message": "Overloaded"}}`))
	})

	_, err := p.Decompose(context.Background(), "anything")
	if !errors.Is(err, errors.ErrProviderCallFailed) {
		t.Fatalf("expected ErrProviderCallFailed, got %v", err)
	}

	var provErr *errors.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatal("expected a ProviderError")
	}
	if provErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", provErr.StatusCode)
	}
	if provErr.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic', got %q", provErr.Provider)
	}
}

func TestAnthropicDecomposeUnparseable(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"prose only", "I cannot decompose this task."},
		{"truncated JSON", `{"complexity": "medium", "subtasks": [{"id": "task_1"`},
		{"no subtasks array", `{"complexity": "medium", "recommendation": "do it"}`},
		{"missing recommendation", `{"complexity": "simple", "subtasks": [
			{"id": "task_1", "description": "first step", "domain": "coding", "estimated_minutes": 5, "dependencies": [], "can_parallelize": false}
		]}`},
		{"invalid dependency graph", `{"complexity": "simple", "subtasks": [
			{"id": "task_1", "description": "first step", "domain": "coding", "estimated_minutes": 5, "dependencies": ["task_9"], "can_parallelize": false}
		], "recommendation": "do it"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, p := anthropicTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(anthropicTextResponse(tc.text)))
			})

			_, err := p.Decompose(context.Background(), "anything")
			if !errors.Is(err, errors.ErrProviderUnparseable) {
				t.Errorf("expected ErrProviderUnparseable, got %v", err)
			}
		})
	}
}

func TestAnthropicDecomposeContextCanceled(t *testing.T) {
	_, p := anthropicTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(anthropicTextResponse(validPlanJSON)))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Decompose(ctx, "anything")
	if !errors.Is(err, errors.ErrProviderCallFailed) {
		t.Errorf("expected ErrProviderCallFailed on timeout, got %v", err)
	}
}
