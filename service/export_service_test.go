package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"guidedigest-backend/models"
	"guidedigest-backend/storage"
)

func TestSummaryArtifact(t *testing.T) {
	svc := NewExportService()

	if _, err := svc.SummaryArtifact(models.NewSession(fixedNow), FormatText); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Expected ErrNothingToExport, got %v", err)
	}

	session := summarizedSession()
	a, err := svc.SummaryArtifact(session, FormatText)
	if err != nil {
		t.Fatalf("SummaryArtifact() failed: %v", err)
	}
	if a.Filename != "user_guide_summary.txt" || string(a.Data) != session.SummaryText() {
		t.Errorf("unexpected artifact %+v", a)
	}

	if _, err := svc.SummaryArtifact(session, "pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestTranscriptArtifact(t *testing.T) {
	svc := NewExportService()
	session := summarizedSession()

	if _, err := svc.TranscriptArtifact(session); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("Expected ErrNothingToExport, got %v", err)
	}

	session.ChatHistory = []models.ChatTurn{{Question: "q", Answer: "a"}}
	a, err := svc.TranscriptArtifact(session)
	if err != nil {
		t.Fatalf("TranscriptArtifact() failed: %v", err)
	}
	if !strings.Contains(string(a.Data), "Q1: q\nA1: a\n\n") {
		t.Errorf("unexpected transcript %q", a.Data)
	}
}

func TestArchive(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage() failed: %v", err)
	}
	svc := NewExportService(ExportWithStorage(store))
	ctx := context.Background()
	session := summarizedSession()

	res, err := svc.Archive(ctx, session, ArchiveRequest{Kind: ExportSummary, Format: FormatText})
	if err != nil {
		t.Fatalf("Archive() failed: %v", err)
	}

	rc, err := svc.Open(ctx, res.Path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != session.SummaryText() {
		t.Errorf("Expected archived summary, got %q", data)
	}

	if err := svc.Delete(ctx, res.Path); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if _, err := svc.Archive(ctx, session, ArchiveRequest{Kind: "video"}); !errors.Is(err, ErrUnsupportedExportKind) {
		t.Errorf("Expected ErrUnsupportedExportKind, got %v", err)
	}
}

func TestArchiveWithoutStorage(t *testing.T) {
	svc := NewExportService()
	if _, err := svc.Archive(context.Background(), summarizedSession(), ArchiveRequest{}); !errors.Is(err, ErrStorageNotConfigured) {
		t.Errorf("Expected ErrStorageNotConfigured, got %v", err)
	}
}
