package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"guidedigest-backend/logger"
	"guidedigest-backend/repository"
	"guidedigest-backend/service"
	"guidedigest-backend/storage"

	"github.com/gin-gonic/gin"
)

// ExportHandler handles HTTP requests for downloads and archived exports
type ExportHandler struct {
	repo    *repository.SessionRepository
	exports *service.ExportService
	log     logger.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(repo *repository.SessionRepository, exports *service.ExportService, l logger.Logger) *ExportHandler {
	return &ExportHandler{
		repo:    repo,
		exports: exports,
		log:     l,
	}
}

// ArchiveExportRequest represents the request body for archiving an export
type ArchiveExportRequest struct {
	Kind   string `json:"kind"`
	Format string `json:"format"`
}

func respondExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNothingToExport):
		respondError(c, http.StatusConflict, "NOTHING_TO_EXPORT", err.Error())
	case errors.Is(err, service.ErrUnsupportedFormat), errors.Is(err, service.ErrUnsupportedExportKind):
		respondError(c, http.StatusBadRequest, "INVALID_EXPORT", err.Error())
	case errors.Is(err, service.ErrStorageNotConfigured):
		respondError(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "EXPORT_NOT_FOUND", "Export not found")
	case errors.Is(err, storage.ErrInvalidPath):
		respondError(c, http.StatusBadRequest, "INVALID_PATH", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error())
	}
}

func sendArtifact(c *gin.Context, a *service.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", a.Filename))
	c.Data(http.StatusOK, a.ContentType, a.Data)
}

// DownloadSummary handles GET /api/sessions/:id/export/summary?format=txt|docx
func (h *ExportHandler) DownloadSummary(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	artifact, err := h.exports.SummaryArtifact(session, service.ExportFormat(c.DefaultQuery("format", string(service.FormatText))))
	if err != nil {
		respondExportError(c, err)
		return
	}
	sendArtifact(c, artifact)
}

// DownloadTranscript handles GET /api/sessions/:id/export/transcript
func (h *ExportHandler) DownloadTranscript(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	artifact, err := h.exports.TranscriptArtifact(session)
	if err != nil {
		respondExportError(c, err)
		return
	}
	sendArtifact(c, artifact)
}

// ArchiveExport handles POST /api/sessions/:id/exports
func (h *ExportHandler) ArchiveExport(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req ArchiveExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	session, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	result, err := h.exports.Archive(c.Request.Context(), session, service.ArchiveRequest{
		Kind:   service.ExportKind(req.Kind),
		Format: service.ExportFormat(req.Format),
	})
	if err != nil {
		respondExportError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, gin.H{
		"path":         result.Path,
		"filename":     result.Filename,
		"content_type": result.ContentType,
		"size":         result.Size,
	})
}

func exportPath(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("path"), "/")
}

// GetExport handles GET /api/exports/*path
func (h *ExportHandler) GetExport(c *gin.Context) {
	p := exportPath(c)

	reader, err := h.exports.Open(c.Request.Context(), p)
	if err != nil {
		respondExportError(c, err)
		return
	}
	defer reader.Close()

	name := path.Base(p)
	contentType := storage.ContentType(name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", name))
	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}

// DeleteExport handles DELETE /api/exports/*path
func (h *ExportHandler) DeleteExport(c *gin.Context) {
	p := exportPath(c)

	if err := h.exports.Delete(c.Request.Context(), p); err != nil {
		respondExportError(c, err)
		return
	}
	h.log.Info(c.Request.Context(), "export %s deleted", p)

	respondOK(c, http.StatusOK, gin.H{"path": p})
}
