package models

import (
	"math"
	"strings"
	"time"
)

// SummaryStyle represents the style of summary requested
type SummaryStyle string

const (
	StyleConcise       SummaryStyle = "concise"
	StyleDetailed      SummaryStyle = "detailed"
	StyleActionFocused SummaryStyle = "action-focused"
)

// SummaryStyles lists the accepted styles in display order
var SummaryStyles = []SummaryStyle{StyleConcise, StyleDetailed, StyleActionFocused}

// IsValid reports whether the style is one of the known styles
func (s SummaryStyle) IsValid() bool {
	for _, style := range SummaryStyles {
		if s == style {
			return true
		}
	}
	return false
}

// Summary represents a model-generated condensation of a document
type Summary struct {
	Text        string       `json:"text"`
	Style       SummaryStyle `json:"style"`
	Language    string       `json:"language"`
	Model       string       `json:"model"`
	Stats       SummaryStats `json:"stats"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// SummaryStats represents word counts of a summary against its input
type SummaryStats struct {
	InputWords       int     `json:"input_words"`
	OutputWords      int     `json:"output_words"`
	CompressionRatio float64 `json:"compression_ratio"`
}

// ComputeSummaryStats counts whitespace separated words and returns the
// compression ratio as a percentage rounded to one decimal place.
func ComputeSummaryStats(input, output string) SummaryStats {
	in := len(strings.Fields(input))
	out := len(strings.Fields(output))

	stats := SummaryStats{
		InputWords:  in,
		OutputWords: out,
	}
	if in > 0 {
		ratio := (1 - float64(out)/float64(in)) * 100
		stats.CompressionRatio = math.Round(ratio*10) / 10
	}
	return stats
}
