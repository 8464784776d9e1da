// Package export renders session content as downloadable files.
package export

import (
	"fmt"
	"strings"

	"guidedigest-backend/models"
)

const (
	SummaryTextFilename = "user_guide_summary.txt"
	SummaryDocxFilename = "user_guide_summary.docx"
	TranscriptFilename  = "user_guide_qa_session.txt"
)

// SummaryText returns the summary as UTF-8 bytes.
func SummaryText(summary string) []byte {
	return []byte(summary)
}

// Transcript renders the summary followed by numbered question/answer pairs.
func Transcript(summary string, turns []models.ChatTurn) string {
	var b strings.Builder
	b.WriteString("User Guide Q&A Session\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "User Guide Summary:\n%s\n\n", summary)
	b.WriteString("Conversation:\n")
	b.WriteString(strings.Repeat("-", 30))
	b.WriteString("\n")
	for i, t := range turns {
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, t.Question)
		fmt.Fprintf(&b, "A%d: %s\n\n", i+1, t.Answer)
	}
	return b.String()
}
