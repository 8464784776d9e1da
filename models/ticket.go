package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the status of a support ticket
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
)

// SupportTicket represents a locally recorded request for human follow-up
type SupportTicket struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Question         string       `json:"question"`
	PreviousQuestion string       `json:"previous_question,omitempty"`
	Timestamp        time.Time    `json:"timestamp"`
	Status           TicketStatus `json:"status"`
}

// NewTicketID derives a ticket id from the creation time plus a short random
// suffix, so tickets filed within the same millisecond stay distinct.
func NewTicketID(now time.Time) string {
	return fmt.Sprintf("TKT-%s-%03d-%s", now.Format("20060102150405"),
		now.Nanosecond()/int(time.Millisecond), uuid.NewString()[:6])
}
