package service

import (
	"context"
	"sync"
	"time"

	"guidedigest-backend/llm"
	"guidedigest-backend/models"
)

// mockGateway implements llm.Gateway for testing
type mockGateway struct {
	mu         sync.Mutex
	calls      []llm.CompletionRequest
	completeFn func(req llm.CompletionRequest) (*llm.Completion, error)
}

func (m *mockGateway) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.completeFn != nil {
		return m.completeFn(req)
	}
	return &llm.Completion{Content: "ok"}, nil
}

func (m *mockGateway) Provider() string { return "mock" }

func (m *mockGateway) Models() []models.ModelInfo { return models.AzureModels }

func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockGateway) lastCall() llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return llm.CompletionRequest{}
	}
	return m.calls[len(m.calls)-1]
}

// textReply returns a completeFn answering every call with content
func textReply(content string) func(llm.CompletionRequest) (*llm.Completion, error) {
	return func(llm.CompletionRequest) (*llm.Completion, error) {
		return &llm.Completion{Content: content}, nil
	}
}

// recordingSink implements ReasoningSink for testing
type recordingSink struct {
	reasoning []string
}

func (r *recordingSink) Reasoning(ctx context.Context, reasoning string) {
	r.reasoning = append(r.reasoning, reasoning)
}

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

func fixedClock() time.Time { return fixedNow }

// summarizedSession returns a session that already has a summary
func summarizedSession() models.Session {
	s := models.NewSession(fixedNow)
	s.Document = models.Document{Text: "Step 1: open settings. Step 2: press reset.", Source: models.SourcePaste}
	s.Summary = &models.Summary{Text: "- Reset lives in settings", Style: models.StyleConcise, Language: models.BaseLanguage}
	return s
}
