package models

import "time"

// StructuredAnswer represents the JSON shape the model returns for Q&A
type StructuredAnswer struct {
	Reasoning    string   `json:"reasoning"`
	Answer       string   `json:"answer"`
	Confidence   float64  `json:"confidence"`
	Sources      []string `json:"sources"`
	FoundInGuide bool     `json:"found_in_guide"`
}

// ChatTurn represents one question and the answer shown to the user
type ChatTurn struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	AskedAt  time.Time `json:"asked_at"`
}
