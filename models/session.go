package models

import (
	"time"

	"github.com/google/uuid"
)

// Session represents the per-user working state: the current document, its
// summary, the Q&A history and any support tickets raised along the way.
// Services receive a Session by value and return the updated copy.
type Session struct {
	ID               uuid.UUID       `json:"id"`
	Document         Document        `json:"document"`
	Summary          *Summary        `json:"summary,omitempty"`
	ChatHistory      []ChatTurn      `json:"chat_history"`
	Tickets          []SupportTicket `json:"tickets"`
	PreviousQuestion string          `json:"previous_question,omitempty"`
	Language         string          `json:"language"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewSession creates an empty session with a fresh id
func NewSession(now time.Time) Session {
	return Session{
		ID:          uuid.New(),
		ChatHistory: []ChatTurn{},
		Tickets:     []SupportTicket{},
		Language:    BaseLanguage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasSummary reports whether a summary has been generated
func (s Session) HasSummary() bool {
	return s.Summary != nil && s.Summary.Text != ""
}

// SummaryText returns the current summary or an empty string
func (s Session) SummaryText() string {
	if s.Summary == nil {
		return ""
	}
	return s.Summary.Text
}

// Clone returns a deep copy so callers can mutate slices without aliasing
// the stored session.
func (s Session) Clone() Session {
	c := s
	if s.Summary != nil {
		summary := *s.Summary
		c.Summary = &summary
	}
	c.ChatHistory = append([]ChatTurn{}, s.ChatHistory...)
	c.Tickets = append([]SupportTicket{}, s.Tickets...)
	return c
}
