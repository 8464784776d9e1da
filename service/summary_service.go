package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"guidedigest-backend/llm"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
)

var (
	ErrEmptyDocument = errors.New("no content to summarize")
	ErrEmptySummary  = errors.New("model returned an empty summary")
	ErrNoGateway     = errors.New("model gateway not set")
)

const emptyDocumentWarning = "No content to summarize. Please provide a user guide document."

// SummaryService turns documents into summaries
type SummaryService struct {
	gateway         llm.Gateway
	log             logger.Logger
	defaultModel    string
	defaultStyle    models.SummaryStyle
	defaultLanguage string
	maxTokens       int
	temperature     *float64
	now             func() time.Time
}

// SummaryServiceOption is a functional option for SummaryService
type SummaryServiceOption func(*SummaryService)

// SummaryWithGateway sets the model gateway
func SummaryWithGateway(g llm.Gateway) SummaryServiceOption {
	return func(s *SummaryService) {
		s.gateway = g
	}
}

// SummaryWithLogger sets the logger
func SummaryWithLogger(l logger.Logger) SummaryServiceOption {
	return func(s *SummaryService) {
		s.log = l
	}
}

// SummaryWithDefaults sets the model, style and language used when a request leaves them empty
func SummaryWithDefaults(model string, style models.SummaryStyle, language string) SummaryServiceOption {
	return func(s *SummaryService) {
		s.defaultModel = model
		s.defaultStyle = style
		s.defaultLanguage = language
	}
}

// SummaryWithBudget sets the token budget and temperature used when a
// request leaves them unset.
func SummaryWithBudget(maxTokens int, temperature float64) SummaryServiceOption {
	return func(s *SummaryService) {
		s.maxTokens = maxTokens
		s.temperature = &temperature
	}
}

// SummaryWithClock overrides time.Now
func SummaryWithClock(now func() time.Time) SummaryServiceOption {
	return func(s *SummaryService) {
		s.now = now
	}
}

// NewSummaryService creates a new summary service
func NewSummaryService(opts ...SummaryServiceOption) *SummaryService {
	s := &SummaryService{
		log:             logger.Nop(),
		defaultStyle:    models.StyleConcise,
		defaultLanguage: models.BaseLanguage,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummarizeRequest represents a request to summarize a document
type SummarizeRequest struct {
	Document    models.Document
	Style       models.SummaryStyle // Optional
	Language    string              // Optional
	Model       string              // Optional
	MaxTokens   int                 // Optional, clamped to [150, 1000]
	Temperature *float64            // Optional, clamped to [0, 1]
}

// SummaryResult represents the outcome of a summarize action
type SummaryResult struct {
	Outcome models.Outcome
	Summary *models.Summary
}

// Summarize generates a summary for the session. On success the session gets
// the new document and summary and its conversation starts over; on any
// failure the session is returned unchanged.
func (s *SummaryService) Summarize(ctx context.Context, session models.Session, req SummarizeRequest) (models.Session, SummaryResult) {
	summary, err := s.SummarizeText(ctx, req.Document.Text, req)
	if err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			return session, SummaryResult{Outcome: models.Warning(emptyDocumentWarning)}
		}
		s.log.Error(ctx, "summary generation failed for session %s: %v", session.ID, err)
		return session, SummaryResult{Outcome: models.Errorf("Error generating summary: %v", err)}
	}

	updated := session.Clone()
	updated.Document = req.Document
	updated.Summary = summary
	updated.Language = summary.Language
	updated.ChatHistory = []models.ChatTurn{}
	updated.PreviousQuestion = ""
	updated.UpdatedAt = summary.GeneratedAt

	s.log.Info(ctx, "session %s: summary generated (%d -> %d words, style=%s, language=%s)",
		session.ID, summary.Stats.InputWords, summary.Stats.OutputWords, summary.Style, summary.Language)

	return updated, SummaryResult{Outcome: models.OK(summary.Text), Summary: summary}
}

// SummarizeText summarizes text without touching any session.
func (s *SummaryService) SummarizeText(ctx context.Context, text string, req SummarizeRequest) (*models.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}
	if s.gateway == nil {
		return nil, ErrNoGateway
	}

	style := req.Style
	if style == "" {
		style = s.defaultStyle
	}
	if !style.IsValid() {
		style = models.StyleConcise
	}

	language := req.Language
	if language == "" {
		language = s.defaultLanguage
	}
	if _, ok := models.LookupLanguage(language); !ok {
		language = models.BaseLanguage
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.maxTokens
	}
	temperature := req.Temperature
	if temperature == nil {
		temperature = s.temperature
	}

	resp, err := s.gateway.Complete(ctx, llm.CompletionRequest{
		Model:       model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: BuildSummaryPrompt(text, style, language)}},
		MaxTokens:   ClampMaxTokens(maxTokens),
		Temperature: ClampTemperature(temperature),
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return nil, ErrEmptySummary
	}

	return &models.Summary{
		Text:        resp.Content,
		Style:       style,
		Language:    language,
		Model:       model,
		Stats:       models.ComputeSummaryStats(text, resp.Content),
		GeneratedAt: s.now(),
	}, nil
}
