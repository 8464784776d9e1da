package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"unicode"

	"guidedigest-backend/llm"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
)

const (
	LowConfidenceNotice = "⚠️ Note: Low confidence in this answer."
	NotFoundNotice      = "📝 Note: This information was not found in the guide."
	SourcesLabel        = "📚 Sources: "
	MissingAnswerText   = "Unable to generate response"

	LocalConfidenceThreshold = 0.5
	ToolConfidenceThreshold  = 0.7
)

type ReplyKind int

const (
	ReplyRaw ReplyKind = iota
	ReplyStructured
	ReplyToolCall
)

func (k ReplyKind) String() string {
	switch k {
	case ReplyStructured:
		return "structured"
	case ReplyToolCall:
		return "tool_call"
	default:
		return "raw"
	}
}

// Reply is an interpreted model completion. Exactly one of Answer, ToolCall
// or Raw is meaningful, selected by Kind.
type Reply struct {
	Kind     ReplyKind
	Answer   models.StructuredAnswer
	ToolCall *llm.ToolCall
	Raw      string
}

// wireAnswer uses pointers so absent fields can be told apart from zero values.
type wireAnswer struct {
	Reasoning    string   `json:"reasoning"`
	Answer       *string  `json:"answer"`
	Confidence   *float64 `json:"confidence"`
	Sources      []string `json:"sources"`
	FoundInGuide *bool    `json:"found_in_guide"`
}

// ParseReply classifies a completion. A tool call wins over text content; text
// that is not a JSON object comes back as ReplyRaw.
func ParseReply(c *llm.Completion) Reply {
	if c == nil {
		return Reply{Kind: ReplyRaw}
	}
	if c.HasToolCalls() {
		call := c.ToolCalls[0]
		return Reply{Kind: ReplyToolCall, ToolCall: &call}
	}
	return ParseAnswerText(c.Content)
}

// ParseAnswerText parses model text as a structured answer, tolerating a
// surrounding code fence.
func ParseAnswerText(content string) Reply {
	body := stripCodeFence(content)
	if !strings.HasPrefix(body, "{") {
		return Reply{Kind: ReplyRaw, Raw: content}
	}

	var w wireAnswer
	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return Reply{Kind: ReplyRaw, Raw: content}
	}

	ans := models.StructuredAnswer{
		Reasoning:    w.Reasoning,
		Answer:       MissingAnswerText,
		Confidence:   1.0,
		Sources:      w.Sources,
		FoundInGuide: true,
	}
	if w.Answer != nil {
		ans.Answer = *w.Answer
	}
	if w.Confidence != nil {
		ans.Confidence = math.Max(0, math.Min(1, *w.Confidence))
	}
	if w.FoundInGuide != nil {
		ans.FoundInGuide = *w.FoundInGuide
	}
	return Reply{Kind: ReplyStructured, Answer: ans}
}

// stripCodeFence removes a leading ``` with an optional language tag, on its
// own line or not, and a trailing ```.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }); i > 0 {
		s = s[i:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ReasoningSink receives the model's chain-of-thought, which is never shown
// to the user.
type ReasoningSink interface {
	Reasoning(ctx context.Context, reasoning string)
}

type logReasoningSink struct {
	l logger.Logger
}

// NewLogReasoningSink writes reasoning to l at debug level.
func NewLogReasoningSink(l logger.Logger) ReasoningSink {
	return &logReasoningSink{l: l}
}

func (s *logReasoningSink) Reasoning(ctx context.Context, reasoning string) {
	s.l.Debug(ctx, "🧠 CoT Reasoning: %s", reasoning)
}

// Interpreter renders replies into user-facing answers.
type Interpreter struct {
	threshold float64
	sink      ReasoningSink
}

// NewInterpreter returns an Interpreter flagging answers below threshold.
// A nil sink discards reasoning.
func NewInterpreter(threshold float64, sink ReasoningSink) *Interpreter {
	if sink == nil {
		sink = NewLogReasoningSink(logger.Nop())
	}
	return &Interpreter{threshold: threshold, sink: sink}
}

// Threshold returns the low-confidence cutoff.
func (i *Interpreter) Threshold() float64 {
	return i.threshold
}

// Render produces the answer text for a reply. Tool calls render as "".
func (i *Interpreter) Render(ctx context.Context, r Reply) string {
	switch r.Kind {
	case ReplyToolCall:
		return ""
	case ReplyRaw:
		return r.Raw
	}

	ans := r.Answer
	if ans.Reasoning != "" {
		i.sink.Reasoning(ctx, ans.Reasoning)
	}

	var b strings.Builder
	b.WriteString(ans.Answer)
	if ans.Confidence < i.threshold {
		b.WriteString("\n\n" + LowConfidenceNotice)
	}
	if !ans.FoundInGuide {
		b.WriteString("\n\n" + NotFoundNotice)
	}
	if len(ans.Sources) > 0 {
		b.WriteString("\n\n" + SourcesLabel + strings.Join(ans.Sources, ", "))
	}
	return b.String()
}
