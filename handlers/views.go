package handlers

import (
	"time"

	"guidedigest-backend/models"

	"github.com/google/uuid"
)

// DocumentView describes the session document without echoing its text
type DocumentView struct {
	Source   models.DocumentSource `json:"source,omitempty"`
	Filename string                `json:"filename,omitempty"`
	Chars    int                   `json:"chars"`
}

// SessionView is the JSON shape of a session
type SessionView struct {
	ID               uuid.UUID              `json:"id"`
	Language         string                 `json:"language"`
	Document         DocumentView           `json:"document"`
	Summary          *models.Summary        `json:"summary,omitempty"`
	ChatHistory      []models.ChatTurn      `json:"chat_history"`
	Tickets          []models.SupportTicket `json:"tickets"`
	PreviousQuestion string                 `json:"previous_question,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

func newSessionView(s models.Session) SessionView {
	return SessionView{
		ID:       s.ID,
		Language: s.Language,
		Document: DocumentView{
			Source:   s.Document.Source,
			Filename: s.Document.Filename,
			Chars:    s.Document.CharCount(),
		},
		Summary:          s.Summary,
		ChatHistory:      s.ChatHistory,
		Tickets:          s.Tickets,
		PreviousQuestion: s.PreviousQuestion,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
