package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/repository"
	"guidedigest-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SummaryHandler handles HTTP requests that produce a summary
type SummaryHandler struct {
	repo        *repository.SessionRepository
	summary     *service.SummaryService
	catalog     []models.ModelInfo
	samplePath  string
	maxFileSize int64
	log         logger.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(repo *repository.SessionRepository, summary *service.SummaryService, catalog []models.ModelInfo, samplePath string, maxFileSize int64, l logger.Logger) *SummaryHandler {
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024 // 10MB
	}
	return &SummaryHandler{
		repo:        repo,
		summary:     summary,
		catalog:     catalog,
		samplePath:  samplePath,
		maxFileSize: maxFileSize,
		log:         l,
	}
}

// SummaryOptions are the generation controls shared by every summary endpoint
type SummaryOptions struct {
	Style       string   `json:"style" form:"style"`
	Language    string   `json:"language" form:"language"`
	Model       string   `json:"model" form:"model"`
	MaxTokens   int      `json:"max_tokens" form:"max_tokens"`
	Temperature *float64 `json:"temperature" form:"temperature"`
}

// SummarizeTextRequest represents the request body for summarizing pasted text
type SummarizeTextRequest struct {
	Text string `json:"text"`
	SummaryOptions
}

// SummaryResponse is the payload returned after summarizing
type SummaryResponse struct {
	Summary *models.Summary `json:"summary,omitempty"`
	Message string          `json:"message"`
	Session SessionView     `json:"session"`
}

var (
	allowedExtensions = map[string]bool{".txt": true, ".md": true}
)

// validate checks the enumerated controls, writing a 400 when one is unknown
func (h *SummaryHandler) validate(c *gin.Context, opts SummaryOptions) bool {
	if opts.Style != "" && !models.SummaryStyle(opts.Style).IsValid() {
		respondError(c, http.StatusBadRequest, "INVALID_STYLE",
			fmt.Sprintf("Unknown summary style %q", opts.Style))
		return false
	}
	if opts.Language != "" {
		if _, ok := models.LookupLanguage(opts.Language); !ok {
			respondError(c, http.StatusBadRequest, "INVALID_LANGUAGE",
				fmt.Sprintf("Unsupported language %q", opts.Language))
			return false
		}
	}
	if opts.Model != "" && len(h.catalog) > 0 {
		if _, ok := models.FindModel(h.catalog, opts.Model); !ok {
			respondError(c, http.StatusBadRequest, "INVALID_MODEL",
				fmt.Sprintf("Unknown model %q", opts.Model))
			return false
		}
	}
	return true
}

// run summarizes doc inside the session lock and writes the response
func (h *SummaryHandler) run(c *gin.Context, id uuid.UUID, doc models.Document, opts SummaryOptions) {
	ctx := c.Request.Context()
	req := service.SummarizeRequest{
		Document:    doc,
		Style:       models.SummaryStyle(opts.Style),
		Language:    opts.Language,
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	var result service.SummaryResult
	session, err := h.repo.Update(ctx, id, func(s models.Session) (models.Session, error) {
		updated, res := h.summary.Summarize(ctx, s, req)
		result = res
		return updated, nil
	})
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondOutcome(c, result.Outcome, SummaryResponse{
		Summary: result.Summary,
		Message: result.Outcome.Message,
		Session: newSessionView(session),
	})
}

// SummarizeText handles POST /api/sessions/:id/summary
func (h *SummaryHandler) SummarizeText(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req SummarizeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !h.validate(c, req.SummaryOptions) {
		return
	}

	h.run(c, id, models.Document{Text: req.Text, Source: models.SourcePaste}, req.SummaryOptions)
}

// SummarizeUpload handles POST /api/sessions/:id/summary/upload
func (h *SummaryHandler) SummarizeUpload(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var opts SummaryOptions
	if err := c.ShouldBind(&opts); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !h.validate(c, opts) {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}

	if fileHeader.Size > h.maxFileSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE",
			"Only .txt and .md files are supported")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_READ_ERROR", err.Error())
		return
	}
	if int64(len(data)) > h.maxFileSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}
	if !utf8.Valid(data) {
		respondError(c, http.StatusBadRequest, "INVALID_ENCODING", "File must be UTF-8 encoded text")
		return
	}

	h.log.Info(c.Request.Context(), "session %s: received upload %s (%d bytes)", id, fileHeader.Filename, len(data))
	h.run(c, id, models.Document{
		Text:     string(data),
		Source:   models.SourceUpload,
		Filename: filepath.Base(fileHeader.Filename),
	}, opts)
}

// SummarizeSample handles POST /api/sessions/:id/summary/sample
func (h *SummaryHandler) SummarizeSample(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	// An empty body is fine here, every control is optional.
	var opts SummaryOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}
	if !h.validate(c, opts) {
		return
	}

	data, err := os.ReadFile(h.samplePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			respondError(c, http.StatusNotFound, "SAMPLE_NOT_FOUND",
				fmt.Sprintf("%s Sample file not found. Please create %s", models.ErrorPrefix, h.samplePath))
			return
		}
		respondError(c, http.StatusInternalServerError, "SAMPLE_READ_ERROR",
			fmt.Sprintf("%s Error loading sample: %v", models.ErrorPrefix, err))
		return
	}

	h.run(c, id, models.Document{
		Text:     string(data),
		Source:   models.SourceSample,
		Filename: filepath.Base(h.samplePath),
	}, opts)
}
