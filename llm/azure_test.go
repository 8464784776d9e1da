package llm

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newAzureTestServer(t *testing.T, body string, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/openai/deployments/gpt-4o-mini/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("api-key") != "test-key" {
			t.Errorf("expected api-key header, got %q", r.Header.Get("api-key"))
		}
		if captured != nil {
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, captured)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestAzureCompleteText(t *testing.T) {
	var req map[string]any
	srv := newAzureTestServer(t, `{
		"id": "1",
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello there"}}]
	}`, &req)
	defer srv.Close()

	g := NewAzureGateway("test-key", srv.URL, "2024-07-01-preview")
	out, err := g.Complete(context.Background(), CompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{Role: RoleSystem, Content: "be brief"},
			{Role: RoleUser, Content: "hi"},
		},
		MaxTokens:   300,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if out.Content != "Hello there" {
		t.Errorf("Expected content 'Hello there', got %q", out.Content)
	}
	if out.HasToolCalls() {
		t.Error("Expected no tool calls")
	}

	if req["max_tokens"] != float64(300) {
		t.Errorf("Expected max_tokens 300, got %v", req["max_tokens"])
	}
	msgs, _ := req["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("Expected first role system, got %v", first["role"])
	}
	if _, ok := req["tools"]; ok {
		t.Error("Expected no tools in request")
	}
}

func TestAzureCompleteToolCall(t *testing.T) {
	var req map[string]any
	srv := newAzureTestServer(t, `{
		"id": "2",
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "",
			"tool_calls": [{"id": "call_1", "type": "function", "function": {
				"name": "create_support_ticket",
				"arguments": "{\"name\":\"Ann\",\"email\":\"ann@example.com\",\"issue_description\":\"cannot log in\"}"
			}}]}}]
	}`, &req)
	defer srv.Close()

	g := NewAzureGateway("test-key", srv.URL, "")
	out, err := g.Complete(context.Background(), CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "help"}},
		Tools: []Tool{{
			Name:        "create_support_ticket",
			Description: "Create a ticket",
			Parameters: []ToolParameter{
				{Name: "name", Description: "User name", Required: true},
				{Name: "email", Description: "User email", Required: true},
			},
		}},
	})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	if !out.HasToolCalls() {
		t.Fatal("Expected a tool call")
	}
	call := out.ToolCalls[0]
	if call.Name != "create_support_ticket" {
		t.Errorf("Expected tool create_support_ticket, got %s", call.Name)
	}
	if StringArg(call.Arguments, "email") != "ann@example.com" {
		t.Errorf("Expected email argument, got %v", call.Arguments["email"])
	}

	tools, _ := req["tools"].([]any)
	if len(tools) != 1 {
		t.Fatalf("Expected 1 tool in request, got %d", len(tools))
	}
}

func TestAzureCompleteNoChoices(t *testing.T) {
	srv := newAzureTestServer(t, `{"id": "3", "model": "gpt-4o-mini", "choices": []}`, nil)
	defer srv.Close()

	g := NewAzureGateway("test-key", srv.URL, "")
	_, err := g.Complete(context.Background(), CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err != ErrEmptyResponse {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestAzureCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"code": "401", "message": "Access denied"}}`))
	}))
	defer srv.Close()

	g := NewAzureGateway("test-key", srv.URL, "")
	_, err := g.Complete(context.Background(), CompletionRequest{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("Expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "azure chat completion") {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

func TestStringArg(t *testing.T) {
	args := map[string]any{"name": "Ann", "count": 3, "empty": nil}
	tests := []struct {
		key  string
		want string
	}{
		{"name", "Ann"},
		{"count", "3"},
		{"empty", ""},
		{"missing", ""},
	}
	for _, tt := range tests {
		if got := StringArg(args, tt.key); got != tt.want {
			t.Errorf("StringArg(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestAzureCompleteZeroTemperature(t *testing.T) {
	var req map[string]any
	srv := newAzureTestServer(t, `{
		"id": "1",
		"model": "gpt-4o-mini",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}}]
	}`, &req)
	defer srv.Close()

	g := NewAzureGateway("test-key", srv.URL, "2024-07-01-preview")
	_, err := g.Complete(context.Background(), CompletionRequest{
		Model:       "gpt-4o-mini",
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}

	temp, ok := req["temperature"].(float64)
	if !ok {
		t.Fatalf("Expected temperature in request body, got %v", req["temperature"])
	}
	if temp <= 0 || temp > 1e-6 {
		t.Errorf("Expected a near-zero temperature, got %v", temp)
	}
}

func TestOpenAITemperature(t *testing.T) {
	tests := []struct {
		in   float64
		want float32
	}{
		{0.3, 0.3},
		{1, 1},
		{0, math.SmallestNonzeroFloat32},
	}
	for _, tt := range tests {
		if got := openAITemperature(tt.in); got != tt.want {
			t.Errorf("openAITemperature(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
