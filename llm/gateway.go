// Package llm hides the hosted chat-completion providers behind one Gateway.
package llm

import (
	"context"
	"errors"
	"fmt"

	"guidedigest-backend/config"
	"guidedigest-backend/models"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrEmptyResponse   = errors.New("model returned no choices")
	ErrUnknownProvider = errors.New("unknown model provider")
)

// Gateway sends a chat completion to a hosted model. Implementations must be
// safe for concurrent use.
type Gateway interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
	Provider() string
	Models() []models.ModelInfo
}

type Message struct {
	Role    string
	Content string
}

type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	Tools       []Tool
}

// Tool describes a function the model may ask the caller to invoke.
type Tool struct {
	Name        string
	Description string
	Parameters  []ToolParameter
}

// ToolParameter is a single string-typed argument of a Tool.
type ToolParameter struct {
	Name        string
	Description string
	Required    bool
}

type ToolCall struct {
	Name      string
	Arguments map[string]any
	// RawArguments keeps the provider payload for logging.
	RawArguments string
}

// Completion is a single model reply: text content, tool calls, or both.
type Completion struct {
	Model     string
	Content   string
	ToolCalls []ToolCall
}

// HasToolCalls reports whether the model requested at least one tool.
func (c *Completion) HasToolCalls() bool {
	return c != nil && len(c.ToolCalls) > 0
}

// New builds the Gateway for cfg.Provider
func New(ctx context.Context, cfg config.ModelConfig) (Gateway, error) {
	switch cfg.Provider {
	case config.ProviderAzure:
		return NewAzureGateway(cfg.APIKey, cfg.Endpoint, cfg.APIVersion), nil
	case config.ProviderGemini:
		return NewGeminiGateway(ctx, cfg.APIKey, cfg.Endpoint)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}

// StringArg returns args[key] as a string, or "" when absent or not a string.
func StringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}
	return s
}
