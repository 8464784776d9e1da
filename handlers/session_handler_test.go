package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})

	w := s.do(t, http.MethodGet, "/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})
	id := s.createSession(t)

	w := s.doJSON(t, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	var view SessionView
	decode(t, w, &view)
	if view.ID.String() != id {
		t.Errorf("Expected id %s, got %s", id, view.ID)
	}
	if view.Language != "English" {
		t.Errorf("Expected English, got %q", view.Language)
	}
	if view.Summary != nil {
		t.Error("Expected no summary on a new session")
	}

	w = s.doJSON(t, http.MethodDelete, "/api/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	w = s.doJSON(t, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", w.Code)
	}
	env := decode(t, w, nil)
	if env.Success || env.Error == nil || env.Error.Code != "SESSION_NOT_FOUND" {
		t.Errorf("unexpected envelope %+v", env)
	}
}

func TestSessionIDValidation(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"malformed id", "/api/sessions/not-a-uuid", http.StatusBadRequest, "INVALID_SESSION_ID"},
		{"unknown id", "/api/sessions/" + uuid.NewString(), http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"unknown tickets", "/api/sessions/" + uuid.NewString() + "/tickets", http.StatusNotFound, "SESSION_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.doJSON(t, http.MethodGet, tt.path, nil)
			if w.Code != tt.status {
				t.Fatalf("Expected %d, got %d", tt.status, w.Code)
			}
			env := decode(t, w, nil)
			if env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("Expected code %s, got %+v", tt.code, env.Error)
			}
		})
	}
}

func TestSuggestionsAndClearHistory(t *testing.T) {
	gw := &mockGateway{}
	s := newTestServer(t, gw, testOptions{})
	id := s.createSession(t)

	var got struct {
		Questions []string `json:"questions"`
	}
	decode(t, s.doJSON(t, http.MethodGet, "/api/sessions/"+id+"/suggestions", nil), &got)
	if len(got.Questions) != 0 {
		t.Errorf("Expected no suggestions before a summary, got %v", got.Questions)
	}

	id = s.summarizedSessionID(t)
	decode(t, s.doJSON(t, http.MethodGet, "/api/sessions/"+id+"/suggestions", nil), &got)
	if len(got.Questions) != 5 {
		t.Errorf("Expected 5 suggestions, got %d", len(got.Questions))
	}

	gw.completeFn = nil
	s.doJSON(t, http.MethodPost, "/api/sessions/"+id+"/questions", map[string]string{"question": "How do I reset?"})

	w := s.doJSON(t, http.MethodDelete, "/api/sessions/"+id+"/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	var view SessionView
	decode(t, w, &view)
	if len(view.ChatHistory) != 0 {
		t.Errorf("Expected empty history, got %d turns", len(view.ChatHistory))
	}
	if view.Summary == nil {
		t.Error("Expected the summary to survive clearing history")
	}
}
