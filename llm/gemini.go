package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"guidedigest-backend/config"
	"guidedigest-backend/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiGateway struct {
	client *genai.Client
}

// NewGeminiGateway connects to the Gemini API. endpoint may be empty to use
// the library default.
func NewGeminiGateway(ctx context.Context, apiKey, endpoint string) (*GeminiGateway, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGateway{client: client}, nil
}

func (g *GeminiGateway) Provider() string { return config.ProviderGemini }

func (g *GeminiGateway) Models() []models.ModelInfo { return models.GeminiModels }

// Close releases the underlying client.
func (g *GeminiGateway) Close() error {
	return g.client.Close()
}

func (g *GeminiGateway) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	model := g.client.GenerativeModel(req.Model)
	model.SetTemperature(float32(req.Temperature))
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if len(req.Tools) > 0 {
		model.Tools = toGeminiTools(req.Tools)
	}

	system, history, last := splitGeminiMessages(req.Messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = history
	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	out, err := fromGeminiResponse(resp)
	if err != nil {
		return nil, err
	}
	out.Model = req.Model
	return out, nil
}

// splitGeminiMessages separates the system instruction and the final user
// turn from the rest of the conversation.
func splitGeminiMessages(msgs []Message) (system string, history []*genai.Content, last string) {
	var systemParts []string
	var turns []Message
	for _, m := range msgs {
		if m.Role == RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	system = strings.Join(systemParts, "\n\n")

	if len(turns) == 0 {
		return system, nil, ""
	}
	last = turns[len(turns)-1].Content
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return system, history, last
}

func toGeminiTools(tools []Tool) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(t.Parameters)),
		}
		for _, p := range t.Parameters {
			schema.Properties[p.Name] = &genai.Schema{
				Type:        genai.TypeString,
				Description: p.Description,
			}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  schema,
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) (*Completion, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	out := &Completion{}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			raw, _ := json.Marshal(p.Args)
			args := p.Args
			if args == nil {
				args = map[string]any{}
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				Name:         p.Name,
				Arguments:    args,
				RawArguments: string(raw),
			})
		}
	}
	out.Content = text.String()
	return out, nil
}
