package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"guidedigest-backend/llm"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/repository"
	"guidedigest-backend/service"
	"guidedigest-backend/storage"

	"github.com/gin-gonic/gin"
)

// mockGateway implements llm.Gateway for testing
type mockGateway struct {
	mu         sync.Mutex
	calls      int
	completeFn func(req llm.CompletionRequest) (*llm.Completion, error)
}

func (m *mockGateway) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.completeFn != nil {
		return m.completeFn(req)
	}
	return &llm.Completion{Content: "- summary point"}, nil
}

func (m *mockGateway) Provider() string { return "mock" }

func (m *mockGateway) Models() []models.ModelInfo { return models.AzureModels }

func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type testServer struct {
	router  *gin.Engine
	repo    *repository.SessionRepository
	gateway *mockGateway
}

type testOptions struct {
	samplePath  string
	maxFileSize int64
	store       storage.Storage
}

func newTestServer(t *testing.T, gw *mockGateway, opts testOptions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.Nop()
	repo := repository.NewSessionRepository()
	summary := service.NewSummaryService(
		service.SummaryWithGateway(gw),
		service.SummaryWithLogger(log),
		service.SummaryWithDefaults("gpt-4o-mini", models.StyleConcise, models.BaseLanguage),
	)
	language := service.NewLanguageService(
		service.LanguageWithGateway(gw),
		service.LanguageWithModel("gpt-4o-mini"),
	)
	chat := service.NewChatService(
		service.ChatWithGateway(gw),
		service.ChatWithLanguageService(language),
		service.ChatWithModel("gpt-4o-mini"),
		service.ChatWithAutoLanguage(false),
	)
	var exportOpts []service.ExportServiceOption
	if opts.store != nil {
		exportOpts = append(exportOpts, service.ExportWithStorage(opts.store))
	}
	exports := service.NewExportService(exportOpts...)

	samplePath := opts.samplePath
	if samplePath == "" {
		samplePath = t.TempDir() + "/missing_sample.txt"
	}

	r := gin.New()
	RegisterRoutes(r, Handlers{
		Meta:    NewMetaHandler("mock", "gpt-4o-mini", "local", models.AzureModels),
		Session: NewSessionHandler(repo, chat, log),
		Summary: NewSummaryHandler(repo, summary, models.AzureModels, samplePath, opts.maxFileSize, log),
		Chat:    NewChatHandler(repo, chat, language, models.AzureModels, log),
		Export:  NewExportHandler(repo, exports, log),
	})
	return &testServer{router: r, repo: repo, gateway: gw}
}

// envelope mirrors the JSON response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	if payload == nil {
		return s.do(t, method, path, nil, "")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return s.do(t, method, path, bytes.NewReader(data), "application/json")
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return env
}

func (s *testServer) createSession(t *testing.T) string {
	t.Helper()
	w := s.doJSON(t, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: status %d", w.Code)
	}
	var view SessionView
	decode(t, w, &view)
	return view.ID.String()
}

// summarizedSessionID creates a session and summarizes a short guide
func (s *testServer) summarizedSessionID(t *testing.T) string {
	t.Helper()
	id := s.createSession(t)
	w := s.doJSON(t, http.MethodPost, "/api/sessions/"+id+"/summary", map[string]string{
		"text": "Step 1: open settings. Step 2: press reset.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("summarize: status %d body %s", w.Code, w.Body.String())
	}
	return id
}
