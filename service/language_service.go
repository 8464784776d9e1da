package service

import (
	"context"
	"strings"

	"guidedigest-backend/llm"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
)

var languageSynonyms = map[string]string{
	"chinese":              "Chinese (Simplified)",
	"chinese (simplified)": "Chinese (Simplified)",
	"simplified chinese":   "Chinese (Simplified)",
	"mandarin":             "Chinese (Simplified)",
}

// LanguageService asks the model which language a text is written in.
type LanguageService struct {
	gateway llm.Gateway
	model   string
	log     logger.Logger
}

// LanguageServiceOption is a functional option for LanguageService
type LanguageServiceOption func(*LanguageService)

// LanguageWithGateway sets the model gateway
func LanguageWithGateway(g llm.Gateway) LanguageServiceOption {
	return func(s *LanguageService) {
		s.gateway = g
	}
}

// LanguageWithModel sets the default model used for detection
func LanguageWithModel(model string) LanguageServiceOption {
	return func(s *LanguageService) {
		s.model = model
	}
}

// LanguageWithLogger sets the logger
func LanguageWithLogger(l logger.Logger) LanguageServiceOption {
	return func(s *LanguageService) {
		s.log = l
	}
}

// NewLanguageService creates a new language service
func NewLanguageService(opts ...LanguageServiceOption) *LanguageService {
	s := &LanguageService{log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DetectLanguageRequest represents a language detection request
type DetectLanguageRequest struct {
	Text  string
	Model string // Optional, defaults to the service model
}

// Detect returns the supported language of text using the default model.
func (s *LanguageService) Detect(ctx context.Context, text string) string {
	return s.DetectLanguage(ctx, DetectLanguageRequest{Text: text})
}

// DetectLanguage returns the supported language of req.Text. Empty text,
// gateway failures and unsupported answers all yield the base language.
func (s *LanguageService) DetectLanguage(ctx context.Context, req DetectLanguageRequest) string {
	if strings.TrimSpace(req.Text) == "" {
		return models.BaseLanguage
	}
	if s.gateway == nil {
		s.log.Warn(ctx, "language detection skipped: no model gateway configured")
		return models.BaseLanguage
	}

	model := req.Model
	if model == "" {
		model = s.model
	}

	resp, err := s.gateway.Complete(ctx, llm.CompletionRequest{
		Model:       model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: BuildLanguageDetectionPrompt(req.Text)}},
		MaxTokens:   DetectionMaxTokens,
		Temperature: DetectionTemperature,
	})
	if err != nil {
		s.log.Warn(ctx, "Language detection error: %v", err)
		return models.BaseLanguage
	}

	lang := NormalizeLanguage(resp.Content)
	s.log.Debug(ctx, "detected language %q (model said %q)", lang, resp.Content)
	return lang
}

// NormalizeLanguage maps a free-form language label onto the supported set,
// defaulting to the base language.
func NormalizeLanguage(label string) string {
	l := strings.ToLower(strings.Trim(strings.TrimSpace(label), "\"'`.,;:!"))
	l = strings.TrimSpace(l)

	if canonical, ok := languageSynonyms[l]; ok {
		return canonical
	}
	for _, lang := range models.SupportedLanguages {
		if strings.ToLower(lang.Name) == l {
			return lang.Name
		}
	}
	return models.BaseLanguage
}
