package handlers

import (
	"net/http"

	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/repository"
	"guidedigest-backend/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler handles HTTP requests for session lifecycle and history
type SessionHandler struct {
	repo *repository.SessionRepository
	chat *service.ChatService
	log  logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(repo *repository.SessionRepository, chat *service.ChatService, l logger.Logger) *SessionHandler {
	return &SessionHandler{
		repo: repo,
		chat: chat,
		log:  l,
	}
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session, err := h.repo.Create(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	h.log.Info(c.Request.Context(), "session %s created", session.ID)

	respondOK(c, http.StatusCreated, newSessionView(session))
}

// GetSession handles GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondOK(c, http.StatusOK, newSessionView(session))
}

// DeleteSession handles DELETE /api/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err)
		return
	}
	h.log.Info(c.Request.Context(), "session %s deleted", id)

	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// ClearHistory handles DELETE /api/sessions/:id/history
func (h *SessionHandler) ClearHistory(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.repo.Update(c.Request.Context(), id, func(s models.Session) (models.Session, error) {
		return h.chat.ClearHistory(s), nil
	})
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondOK(c, http.StatusOK, newSessionView(session))
}

// GetSuggestions handles GET /api/sessions/:id/suggestions
func (h *SessionHandler) GetSuggestions(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"questions": h.chat.SuggestedQuestions(session)})
}

// ListTickets handles GET /api/sessions/:id/tickets
func (h *SessionHandler) ListTickets(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}

	session, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"tickets": session.Tickets})
}
