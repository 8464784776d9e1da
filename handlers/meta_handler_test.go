package handlers

import (
	"net/http"
	"testing"
)

func TestListModels(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})

	var got struct {
		Provider string `json:"provider"`
		Default  string `json:"default"`
		Models   []struct {
			ID string `json:"id"`
		} `json:"models"`
	}
	w := s.do(t, http.MethodGet, "/api/models", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	decode(t, w, &got)
	if got.Default != "gpt-4o-mini" || len(got.Models) != 5 {
		t.Errorf("unexpected catalog %+v", got)
	}
}

func TestListLanguages(t *testing.T) {
	s := newTestServer(t, &mockGateway{}, testOptions{})

	var got struct {
		Languages []string `json:"languages"`
		Styles    []string `json:"styles"`
	}
	decode(t, s.do(t, http.MethodGet, "/api/languages", nil, ""), &got)
	if len(got.Languages) != 10 || got.Languages[0] != "English" {
		t.Errorf("unexpected languages %v", got.Languages)
	}
	if len(got.Styles) != 3 {
		t.Errorf("unexpected styles %v", got.Styles)
	}
}
