package handlers

import (
	"fmt"
	"net/http"

	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/repository"
	"guidedigest-backend/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles HTTP requests for questions about a summarized guide
type ChatHandler struct {
	repo     *repository.SessionRepository
	chat     *service.ChatService
	language *service.LanguageService
	catalog  []models.ModelInfo
	log      logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(repo *repository.SessionRepository, chat *service.ChatService, language *service.LanguageService, catalog []models.ModelInfo, l logger.Logger) *ChatHandler {
	return &ChatHandler{
		repo:     repo,
		chat:     chat,
		language: language,
		catalog:  catalog,
		log:      l,
	}
}

// AskQuestionRequest represents the request body for asking a question
type AskQuestionRequest struct {
	Question string `json:"question"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

// AskQuestionResponse is the payload returned for a question
type AskQuestionResponse struct {
	Answer    string                `json:"answer,omitempty"`
	Message   string                `json:"message"`
	Language  string                `json:"language,omitempty"`
	ReplyKind string                `json:"reply_kind,omitempty"`
	Ticket    *models.SupportTicket `json:"ticket,omitempty"`
	History   []models.ChatTurn     `json:"chat_history"`
}

// AskQuestion handles POST /api/sessions/:id/questions
func (h *ChatHandler) AskQuestion(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Model != "" && len(h.catalog) > 0 {
		if _, ok := models.FindModel(h.catalog, req.Model); !ok {
			respondError(c, http.StatusBadRequest, "INVALID_MODEL", fmt.Sprintf("Unknown model %q", req.Model))
			return
		}
	}
	if req.Language != "" {
		if _, ok := models.LookupLanguage(req.Language); !ok {
			respondError(c, http.StatusBadRequest, "INVALID_LANGUAGE", fmt.Sprintf("Unsupported language %q", req.Language))
			return
		}
	}

	ctx := c.Request.Context()
	var result service.AskResult
	session, err := h.repo.Update(ctx, id, func(s models.Session) (models.Session, error) {
		updated, res := h.chat.Ask(ctx, s, service.AskRequest{
			Question: req.Question,
			Model:    req.Model,
			Language: req.Language,
		})
		result = res
		return updated, nil
	})
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	resp := AskQuestionResponse{
		Answer:   result.Answer,
		Message:  result.Outcome.Message,
		Language: result.Language,
		Ticket:   result.Ticket,
		History:  session.ChatHistory,
	}
	if result.Answer != "" {
		resp.ReplyKind = result.ReplyKind.String()
	}
	respondOutcome(c, result.Outcome, resp)
}

// DetectLanguageRequest represents the request body for language detection
type DetectLanguageRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// DetectLanguage handles POST /api/detect-language
func (h *ChatHandler) DetectLanguage(c *gin.Context) {
	var req DetectLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	lang := h.language.DetectLanguage(c.Request.Context(), service.DetectLanguageRequest{
		Text:  req.Text,
		Model: req.Model,
	})
	respondOK(c, http.StatusOK, gin.H{"language": lang})
}
