package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"guidedigest-backend/export"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/storage"

	"github.com/google/uuid"
)

type ExportFormat string

const (
	FormatText ExportFormat = "txt"
	FormatDocx ExportFormat = "docx"
)

type ExportKind string

const (
	ExportSummary    ExportKind = "summary"
	ExportTranscript ExportKind = "transcript"
)

var (
	ErrNothingToExport       = errors.New("nothing to export")
	ErrUnsupportedFormat     = errors.New("unsupported export format")
	ErrStorageNotConfigured  = errors.New("export storage not configured")
	ErrUnsupportedExportKind = errors.New("unsupported export kind")
)

// Artifact is a rendered, downloadable file
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders session content and archives it
type ExportService struct {
	store storage.Storage
	log   logger.Logger
}

// ExportServiceOption is a functional option for ExportService
type ExportServiceOption func(*ExportService)

// ExportWithStorage sets the archive backend
func ExportWithStorage(store storage.Storage) ExportServiceOption {
	return func(s *ExportService) {
		s.store = store
	}
}

// ExportWithLogger sets the logger
func ExportWithLogger(l logger.Logger) ExportServiceOption {
	return func(s *ExportService) {
		s.log = l
	}
}

// NewExportService creates a new export service
func NewExportService(opts ...ExportServiceOption) *ExportService {
	s := &ExportService{log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummaryArtifact renders the session summary as text or docx
func (s *ExportService) SummaryArtifact(session models.Session, format ExportFormat) (*Artifact, error) {
	if !session.HasSummary() {
		return nil, fmt.Errorf("%w: no summary generated", ErrNothingToExport)
	}

	switch format {
	case FormatText, "":
		return &Artifact{
			Filename:    export.SummaryTextFilename,
			ContentType: storage.ContentType(export.SummaryTextFilename),
			Data:        export.SummaryText(session.SummaryText()),
		}, nil
	case FormatDocx:
		data, err := export.SummaryDocx("User Guide Summary", session.SummaryText())
		if err != nil {
			return nil, err
		}
		return &Artifact{
			Filename:    export.SummaryDocxFilename,
			ContentType: storage.ContentType(export.SummaryDocxFilename),
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// TranscriptArtifact renders the conversation. It requires at least one turn.
func (s *ExportService) TranscriptArtifact(session models.Session) (*Artifact, error) {
	if len(session.ChatHistory) == 0 {
		return nil, fmt.Errorf("%w: conversation is empty", ErrNothingToExport)
	}
	return &Artifact{
		Filename:    export.TranscriptFilename,
		ContentType: storage.ContentType(export.TranscriptFilename),
		Data:        []byte(export.Transcript(session.SummaryText(), session.ChatHistory)),
	}, nil
}

// ArchiveRequest represents a request to store a rendering
type ArchiveRequest struct {
	Kind   ExportKind
	Format ExportFormat // Optional, summary only
}

// ArchiveResult represents the stored rendering
type ArchiveResult struct {
	Path        string
	Filename    string
	ContentType string
	Size        int
}

// Archive renders and stores a session export
func (s *ExportService) Archive(ctx context.Context, session models.Session, req ArchiveRequest) (*ArchiveResult, error) {
	if s.store == nil {
		return nil, ErrStorageNotConfigured
	}

	var (
		artifact *Artifact
		err      error
	)
	switch req.Kind {
	case ExportSummary, "":
		artifact, err = s.SummaryArtifact(session, req.Format)
	case ExportTranscript:
		artifact, err = s.TranscriptArtifact(session)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExportKind, req.Kind)
	}
	if err != nil {
		return nil, err
	}

	path, err := s.store.Save(ctx, session.ID, artifact.Filename, bytes.NewReader(artifact.Data))
	if err != nil {
		s.log.Error(ctx, "session %s: archiving %s failed: %v", session.ID, artifact.Filename, err)
		return nil, err
	}
	s.log.Info(ctx, "session %s: archived %s to %s", session.ID, artifact.Filename, path)

	return &ArchiveResult{
		Path:        path,
		Filename:    artifact.Filename,
		ContentType: artifact.ContentType,
		Size:        len(artifact.Data),
	}, nil
}

// SaveText stores arbitrary text under ownerID, used for inbox summaries
func (s *ExportService) SaveText(ctx context.Context, ownerID uuid.UUID, filename, text string) (string, error) {
	if s.store == nil {
		return "", ErrStorageNotConfigured
	}
	return s.store.Save(ctx, ownerID, filename, bytes.NewReader([]byte(text)))
}

// Open streams an archived export
func (s *ExportService) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if s.store == nil {
		return nil, ErrStorageNotConfigured
	}
	return s.store.Open(ctx, path)
}

// Delete removes an archived export
func (s *ExportService) Delete(ctx context.Context, path string) error {
	if s.store == nil {
		return ErrStorageNotConfigured
	}
	return s.store.Delete(ctx, path)
}
