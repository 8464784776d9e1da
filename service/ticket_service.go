package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"guidedigest-backend/config"
	"guidedigest-backend/llm"
	"guidedigest-backend/models"
)

const SupportTicketToolName = "create_support_ticket"

var (
	ErrIncompleteTicket   = errors.New("support ticket requires both name and email")
	ErrUnknownTool        = errors.New("model requested an unknown tool")
	ErrUnknownSupportMode = errors.New("unknown support mode")
)

// SupportTicketTool is the function declaration offered to the model in tool mode.
var SupportTicketTool = llm.Tool{
	Name:        SupportTicketToolName,
	Description: "Create a support ticket so a human from the support team can follow up with the user. Only call this when the user has provided BOTH their name and email address.",
	Parameters: []llm.ToolParameter{
		{Name: "name", Description: "The user's full name", Required: true},
		{Name: "email", Description: "The user's email address", Required: true},
		{Name: "issue_description", Description: "A short description of the user's issue or question", Required: true},
	},
}

const supportToolInstruction = `

## Support Tickets:
If the user asks to contact support, talk to a human or open a ticket, you may call the create_support_ticket function.
- NEVER call create_support_ticket unless the user has provided BOTH their name AND their email address.
- If either is missing, do not call the function; instead ask for the missing details in the "answer" field.`

// NewSupportTicket builds a pending ticket. It performs no I/O.
func NewSupportTicket(name, email, question, previousQuestion string, now time.Time) models.SupportTicket {
	return models.SupportTicket{
		ID:               models.NewTicketID(now),
		Name:             strings.TrimSpace(name),
		Email:            strings.TrimSpace(email),
		Question:         question,
		PreviousQuestion: previousQuestion,
		Timestamp:        now,
		Status:           models.TicketStatusPending,
	}
}

// TicketConfirmation is the answer shown after a ticket is filed.
func TicketConfirmation(t models.SupportTicket) string {
	return fmt.Sprintf("✅ Support ticket created! Ticket ID: %s\n\nThank you, %s. Our support team will contact you at %s shortly.", t.ID, t.Name, t.Email)
}

// TicketDetector decides when a question becomes a support ticket. The local
// detector matches phrasings before any model call; the tool detector lets the
// model request a ticket through a function call.
type TicketDetector interface {
	Mode() string
	// Detect inspects the question before the model is called.
	Detect(question string) *TicketRequest
	// Tools are offered to the model with the question.
	Tools() []llm.Tool
	// SystemInstruction is appended to the Q&A system prompt.
	SystemInstruction() string
	// FromToolCall converts a model tool call into a ticket request.
	FromToolCall(call llm.ToolCall) (*TicketRequest, error)
}

// NewTicketDetector returns the detector for a support mode.
func NewTicketDetector(mode string) (TicketDetector, error) {
	switch mode {
	case config.SupportModeLocal, "":
		return LocalTicketDetector{}, nil
	case config.SupportModeTool:
		return ToolTicketDetector{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSupportMode, mode)
	}
}

// LocalTicketDetector uses DetectSupportRequest.
type LocalTicketDetector struct{}

func (LocalTicketDetector) Mode() string { return config.SupportModeLocal }

func (LocalTicketDetector) Detect(question string) *TicketRequest {
	return DetectSupportRequest(question)
}

func (LocalTicketDetector) Tools() []llm.Tool { return nil }

func (LocalTicketDetector) SystemInstruction() string { return "" }

func (LocalTicketDetector) FromToolCall(call llm.ToolCall) (*TicketRequest, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
}

// ToolTicketDetector delegates the decision to the model.
type ToolTicketDetector struct{}

func (ToolTicketDetector) Mode() string { return config.SupportModeTool }

func (ToolTicketDetector) Detect(string) *TicketRequest { return nil }

func (ToolTicketDetector) Tools() []llm.Tool { return []llm.Tool{SupportTicketTool} }

func (ToolTicketDetector) SystemInstruction() string { return supportToolInstruction }

func (ToolTicketDetector) FromToolCall(call llm.ToolCall) (*TicketRequest, error) {
	if call.Name != SupportTicketToolName {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}

	req := &TicketRequest{
		Name:             strings.TrimSpace(llm.StringArg(call.Arguments, "name")),
		Email:            strings.TrimSpace(llm.StringArg(call.Arguments, "email")),
		IssueDescription: strings.TrimSpace(llm.StringArg(call.Arguments, "issue_description")),
	}
	if req.Name == "" || ExtractEmail(req.Email) == "" {
		return nil, ErrIncompleteTicket
	}
	return req, nil
}
