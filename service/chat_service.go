package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"guidedigest-backend/config"
	"guidedigest-backend/llm"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
)

const (
	emptyQuestionWarning   = "Please ask a question about the user guide."
	missingSummaryWarning  = "No guide summary available. Please generate a summary first."
	incompleteTicketNotice = "To create a support ticket I need both your name and your email address. Please include them in your message."
)

// suggestedQuestions are offered while a conversation has not started yet.
var suggestedQuestions = []string{
	"What are the main features described in this guide?",
	"¿Cuáles son las características principales descritas en esta guía?",
	"Quelles sont les procédures étape par étape?",
	"Welche wichtigen Konfigurationsschritte gibt es?",
	"このガイドの主要な機能は何ですか？",
}

// ChatService answers questions about a session's guide
type ChatService struct {
	gateway      llm.Gateway
	language     *LanguageService
	detector     TicketDetector
	interpreter  *Interpreter
	log          logger.Logger
	defaultModel string
	autoLanguage bool
	maxTokens    int
	temperature  float64
	contextChars int
	now          func() time.Time
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithGateway sets the model gateway
func ChatWithGateway(g llm.Gateway) ChatServiceOption {
	return func(s *ChatService) {
		s.gateway = g
	}
}

// ChatWithLanguageService sets the language detector used in auto-language mode
func ChatWithLanguageService(ls *LanguageService) ChatServiceOption {
	return func(s *ChatService) {
		s.language = ls
	}
}

// ChatWithTicketDetector sets the support ticket mechanism
func ChatWithTicketDetector(d TicketDetector) ChatServiceOption {
	return func(s *ChatService) {
		s.detector = d
	}
}

// ChatWithInterpreter sets the reply interpreter
func ChatWithInterpreter(i *Interpreter) ChatServiceOption {
	return func(s *ChatService) {
		s.interpreter = i
	}
}

// ChatWithLogger sets the logger
func ChatWithLogger(l logger.Logger) ChatServiceOption {
	return func(s *ChatService) {
		s.log = l
	}
}

// ChatWithModel sets the default model
func ChatWithModel(model string) ChatServiceOption {
	return func(s *ChatService) {
		s.defaultModel = model
	}
}

// ChatWithAutoLanguage enables answering in the language the question is asked in
func ChatWithAutoLanguage(enabled bool) ChatServiceOption {
	return func(s *ChatService) {
		s.autoLanguage = enabled
	}
}

// ChatWithBudget sets the completion budget for answers
func ChatWithBudget(maxTokens int, temperature float64) ChatServiceOption {
	return func(s *ChatService) {
		s.maxTokens = maxTokens
		s.temperature = temperature
	}
}

// ChatWithDocumentContext sets how many document characters accompany a question
func ChatWithDocumentContext(chars int) ChatServiceOption {
	return func(s *ChatService) {
		s.contextChars = chars
	}
}

// ChatWithClock overrides time.Now
func ChatWithClock(now func() time.Time) ChatServiceOption {
	return func(s *ChatService) {
		s.now = now
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{
		detector:     LocalTicketDetector{},
		log:          logger.Nop(),
		maxTokens:    QAMaxTokens,
		temperature:  QATemperature,
		contextChars: DocumentContextLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.interpreter == nil {
		threshold := LocalConfidenceThreshold
		if s.detector.Mode() == config.SupportModeTool {
			threshold = ToolConfidenceThreshold
		}
		s.interpreter = NewInterpreter(threshold, NewLogReasoningSink(s.log))
	}
	if s.language == nil {
		s.language = NewLanguageService(
			LanguageWithGateway(s.gateway),
			LanguageWithModel(s.defaultModel),
			LanguageWithLogger(s.log),
		)
	}
	return s
}

// AskRequest represents a question about the session's guide
type AskRequest struct {
	Question string
	Model    string // Optional
	// Language forces the answer language. When empty, the detected language
	// is used in auto-language mode and the session language otherwise.
	Language string
}

// AskResult represents the outcome of a question
type AskResult struct {
	Outcome   models.Outcome
	Answer    string
	Language  string
	ReplyKind ReplyKind
	Ticket    *models.SupportTicket
}

// Ask answers a question. The session is only changed when an answer or a
// ticket is produced.
func (s *ChatService) Ask(ctx context.Context, session models.Session, req AskRequest) (models.Session, AskResult) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return session, AskResult{Outcome: models.Warning(emptyQuestionWarning)}
	}
	if !session.HasSummary() {
		return session, AskResult{Outcome: models.Warning(missingSummaryWarning)}
	}

	if tr := s.detector.Detect(question); tr != nil {
		s.log.Info(ctx, "session %s: support request detected locally", session.ID)
		return s.fileTicket(session, question, *tr)
	}

	if s.gateway == nil {
		return session, AskResult{Outcome: models.Errorf("Error answering question: %v", ErrNoGateway)}
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	language := req.Language
	if language == "" {
		if s.autoLanguage {
			language = s.language.DetectLanguage(ctx, DetectLanguageRequest{Text: question, Model: model})
		} else {
			language = session.Language
		}
	}

	resp, err := s.gateway.Complete(ctx, llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: BuildQASystemPrompt(language) + s.detector.SystemInstruction()},
			{Role: llm.RoleUser, Content: BuildQAUserPrompt(session.SummaryText(), session.Document.Text, question, s.contextChars)},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Tools:       s.detector.Tools(),
	})
	if err != nil {
		s.log.Error(ctx, "session %s: answering question failed: %v", session.ID, err)
		return session, AskResult{Outcome: models.Errorf("Error answering question: %v", err)}
	}

	reply := ParseReply(resp)
	switch reply.Kind {
	case ReplyToolCall:
		tr, err := s.detector.FromToolCall(*reply.ToolCall)
		if err != nil {
			s.log.Warn(ctx, "session %s: rejected tool call %s: %v", session.ID, reply.ToolCall.RawArguments, err)
			if errors.Is(err, ErrIncompleteTicket) {
				return session, AskResult{Outcome: models.Warning(incompleteTicketNotice), ReplyKind: reply.Kind}
			}
			return session, AskResult{Outcome: models.Errorf("Error answering question: %v", err), ReplyKind: reply.Kind}
		}
		s.log.Info(ctx, "session %s: model requested a support ticket: %s", session.ID, tr.IssueDescription)
		updated, result := s.fileTicket(session, question, *tr)
		result.Language = language
		result.ReplyKind = ReplyToolCall
		return updated, result
	case ReplyRaw:
		s.log.Warn(ctx, "session %s: JSON parsing failed, returning raw response", session.ID)
	}

	answer := s.interpreter.Render(ctx, reply)

	updated := session.Clone()
	updated.ChatHistory = append(updated.ChatHistory, models.ChatTurn{
		Question: question,
		Answer:   answer,
		AskedAt:  s.now(),
	})
	updated.PreviousQuestion = question
	updated.UpdatedAt = s.now()

	return updated, AskResult{
		Outcome:   models.OK(answer),
		Answer:    answer,
		Language:  language,
		ReplyKind: reply.Kind,
	}
}

func (s *ChatService) fileTicket(session models.Session, question string, tr TicketRequest) (models.Session, AskResult) {
	now := s.now()
	ticket := NewSupportTicket(tr.Name, tr.Email, question, session.PreviousQuestion, now)
	answer := TicketConfirmation(ticket)

	updated := session.Clone()
	updated.Tickets = append(updated.Tickets, ticket)
	updated.ChatHistory = append(updated.ChatHistory, models.ChatTurn{
		Question: question,
		Answer:   answer,
		AskedAt:  now,
	})
	updated.PreviousQuestion = question
	updated.UpdatedAt = now

	return updated, AskResult{
		Outcome: models.OK(answer),
		Answer:  answer,
		Ticket:  &ticket,
	}
}

// ClearHistory empties the conversation and keeps the summary.
func (s *ChatService) ClearHistory(session models.Session) models.Session {
	updated := session.Clone()
	updated.ChatHistory = []models.ChatTurn{}
	updated.PreviousQuestion = ""
	updated.UpdatedAt = s.now()
	return updated
}

// SuggestedQuestions returns starter questions while a summary exists and
// nothing has been asked yet.
func (s *ChatService) SuggestedQuestions(session models.Session) []string {
	if !session.HasSummary() || len(session.ChatHistory) > 0 {
		return []string{}
	}
	return append([]string{}, suggestedQuestions...)
}

// Threshold returns the low-confidence cutoff in use.
func (s *ChatService) Threshold() float64 {
	return s.interpreter.Threshold()
}
