package service

import (
	"fmt"
	"strings"

	"guidedigest-backend/models"
)

const (
	DefaultSummaryMaxTokens   = 300
	MinSummaryMaxTokens       = 150
	MaxSummaryMaxTokens       = 1000
	DefaultSummaryTemperature = 0.3

	QAMaxTokens   = 400
	QATemperature = 0.1

	DetectionMaxTokens   = 10
	DetectionTemperature = 0.1

	// DocumentContextLimit is how many characters of the source document
	// accompany a question.
	DocumentContextLimit = 2000
)

var stylePrompts = map[models.SummaryStyle]string{
	models.StyleConcise:       "Summarize the following user guide documentation into concise bullet points covering key features, instructions, and important information:",
	models.StyleDetailed:      "Provide a detailed summary of the following user guide documentation, including all major sections, procedures, and important details:",
	models.StyleActionFocused: "Extract and organize the key procedures, step-by-step instructions, and important guidelines from the following user guide documentation:",
}

const qaSystemPrompt = `You are an expert assistant specialized in analyzing user guides and technical documentation.%s

## Your Task:
Analyze the provided documentation and answer user questions using Chain of Thought reasoning, then return your response in structured JSON format.

## Response Format:
You MUST return your response as valid JSON with this structure:
{
    "reasoning": "Your internal step-by-step thought process (not shown to user)",
    "answer": "The clear, helpful answer for the user",
    "confidence": 0.0 to 1.0,
    "sources": ["List of relevant sections or references from the guide"],
    "found_in_guide": true or false
}

## Few-Shot Examples:

Example 1:
Q: How do I reset the application?
Response:
{
    "reasoning": "Looking for reset instructions... Found in Settings section under Advanced Options",
    "answer": "To reset the application: Navigate to Settings > Advanced Options > Reset to Defaults. Click 'Confirm Reset' and restart the application.",
    "confidence": 0.95,
    "sources": ["Settings section", "Advanced Options"],
    "found_in_guide": true
}

Example 2:
Q: What are the system requirements?
Response:
{
    "reasoning": "Searching for technical specifications or requirements section in the documentation",
    "answer": "Minimum requirements: Windows 10+ or macOS 10.15+, 8GB RAM, 50GB storage, internet connection for updates.",
    "confidence": 1.0,
    "sources": ["System Requirements section"],
    "found_in_guide": true
}

Example 3:
Q: Can I use custom themes?
Response:
{
    "reasoning": "Searched for themes, customization, appearance settings - no relevant information found",
    "answer": "The documentation doesn't mention custom themes or appearance customization options.",
    "confidence": 0.8,
    "sources": [],
    "found_in_guide": false
}

## Important Instructions:
- Always return valid JSON format
- Use the "reasoning" field for your Chain of Thought process
- Keep "answer" field user-friendly and direct
- Set confidence based on how certain you are
- List actual section names in "sources"
- Set "found_in_guide" to false if information is not available`

const qaUserPrompt = `Here is the documentation context:

%s

User Question: %s

Remember to return your response in the specified JSON format.`

const languageDetectionPrompt = `Identify the language of the following text and respond with ONLY the language name in English (e.g., "Spanish", "French", "German", etc.). If you're not sure or it's mixed languages, respond with "English".

Text: "%s"

Language:`

// languageInstruction returns the display name used in "respond in" phrases,
// or "" for the base language and anything unsupported.
func languageInstruction(language string) string {
	lang, ok := models.LookupLanguage(language)
	if !ok {
		return ""
	}
	return lang.Instruction
}

// BuildSummaryPrompt assembles the single user message for a summary call.
// Unknown styles fall back to concise.
func BuildSummaryPrompt(text string, style models.SummaryStyle, language string) string {
	base, ok := stylePrompts[style]
	if !ok {
		base = stylePrompts[models.StyleConcise]
	}

	if instr := languageInstruction(language); instr != "" {
		return fmt.Sprintf("%s Respond in %s.\n\n%s", base, instr, text)
	}
	return fmt.Sprintf("%s\n\n%s", base, text)
}

// BuildQASystemPrompt returns the chain-of-thought system prompt asking for a
// JSON answer in the given language.
func BuildQASystemPrompt(language string) string {
	suffix := ""
	if instr := languageInstruction(language); instr != "" {
		suffix = fmt.Sprintf(" Please respond in %s.", instr)
	}
	return fmt.Sprintf(qaSystemPrompt, suffix)
}

// BuildQAUserPrompt combines the summary, a slice of the original document
// and the question. The document is cut at limit characters and marked with
// "..." when truncated.
func BuildQAUserPrompt(summary, document, question string, limit int) string {
	var b strings.Builder
	b.WriteString("User Guide Summary:\n")
	b.WriteString(summary)

	if document != "" {
		b.WriteString("\n\nOriginal Document:\n")
		doc, truncated := truncateRunes(document, limit)
		b.WriteString(doc)
		if truncated {
			b.WriteString("...")
		}
	}

	return fmt.Sprintf(qaUserPrompt, b.String(), question)
}

// BuildLanguageDetectionPrompt asks the model to name the language of text.
func BuildLanguageDetectionPrompt(text string) string {
	return fmt.Sprintf(languageDetectionPrompt, text)
}

func truncateRunes(s string, limit int) (string, bool) {
	if limit <= 0 {
		return s, false
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]), true
}

// ClampMaxTokens bounds a requested summary length. Zero selects the default.
func ClampMaxTokens(n int) int {
	switch {
	case n == 0:
		return DefaultSummaryMaxTokens
	case n < MinSummaryMaxTokens:
		return MinSummaryMaxTokens
	case n > MaxSummaryMaxTokens:
		return MaxSummaryMaxTokens
	}
	return n
}

// ClampTemperature bounds t to [0, 1]. Nil selects the default.
func ClampTemperature(t *float64) float64 {
	if t == nil {
		return DefaultSummaryTemperature
	}
	switch {
	case *t < 0:
		return 0
	case *t > 1:
		return 1
	}
	return *t
}
