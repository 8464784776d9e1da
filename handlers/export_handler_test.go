package handlers

import (
	"net/http"
	"strings"
	"testing"

	"guidedigest-backend/storage"
)

func TestDownloadSummary(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})
	id := s.summarizedSessionID(t)

	w := s.do(t, http.MethodGet, "/api/sessions/"+id+"/export/summary", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "- summary point" {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "user_guide_summary.txt") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}

	w = s.do(t, http.MethodGet, "/api/sessions/"+id+"/export/summary?format=docx", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("docx: expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "PK") {
		t.Error("Expected a zip container for docx")
	}

	w = s.do(t, http.MethodGet, "/api/sessions/"+id+"/export/summary?format=pdf", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("pdf: expected 400, got %d", w.Code)
	}
}

func TestDownloadNothingToExport(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})
	id := s.createSession(t)

	for _, path := range []string{"/export/summary", "/export/transcript"} {
		w := s.do(t, http.MethodGet, "/api/sessions/"+id+path, nil, "")
		if w.Code != http.StatusConflict {
			t.Errorf("%s: expected 409, got %d", path, w.Code)
		}
	}
}

func TestDownloadTranscript(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})
	id := s.summarizedSessionID(t)
	s.doJSON(t, http.MethodPost, "/api/sessions/"+id+"/questions", map[string]string{"question": "How do I reset?"})

	w := s.do(t, http.MethodGet, "/api/sessions/"+id+"/export/transcript", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "User Guide Q&A Session\n") {
		t.Errorf("unexpected transcript header %q", body)
	}
	if !strings.Contains(body, "Q1: How do I reset?") {
		t.Errorf("Expected the question in the transcript: %q", body)
	}
}

func TestArchiveExportWithoutStorage(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})
	id := s.summarizedSessionID(t)

	w := s.doJSON(t, http.MethodPost, "/api/sessions/"+id+"/exports", map[string]string{"kind": "summary"})
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}
}

func TestArchiveExportRoundTrip(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, &mockGateway{}, testOptions{store: store})
	id := s.summarizedSessionID(t)

	w := s.doJSON(t, http.MethodPost, "/api/sessions/"+id+"/exports", map[string]string{"kind": "summary", "format": "txt"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var archived struct {
		Path     string `json:"path"`
		Filename string `json:"filename"`
		Size     int    `json:"size"`
	}
	decode(t, w, &archived)
	if archived.Path == "" || archived.Size != len("- summary point") {
		t.Fatalf("unexpected archive result %+v", archived)
	}

	w = s.do(t, http.MethodGet, "/api/exports/"+archived.Path, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	if w.Body.String() != "- summary point" {
		t.Errorf("unexpected archived body %q", w.Body.String())
	}

	w = s.do(t, http.MethodDelete, "/api/exports/"+archived.Path, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	w = s.do(t, http.MethodGet, "/api/exports/"+archived.Path, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestArchiveExportUnknownKind(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, &mockGateway{}, testOptions{store: store})
	id := s.summarizedSessionID(t)

	w := s.doJSON(t, http.MethodPost, "/api/sessions/"+id+"/exports", map[string]string{"kind": "slides"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}
