package models

import "fmt"

// OutcomeLevel represents how a user-facing message should be treated
type OutcomeLevel string

const (
	OutcomeOK      OutcomeLevel = "ok"
	OutcomeWarning OutcomeLevel = "warning"
	OutcomeError   OutcomeLevel = "error"
)

const (
	WarningPrefix = "⚠️"
	ErrorPrefix   = "❌"
)

// Outcome represents the user-facing result of a single action
type Outcome struct {
	Level   OutcomeLevel `json:"level"`
	Message string       `json:"message"`
}

// OK wraps a successful message
func OK(message string) Outcome {
	return Outcome{Level: OutcomeOK, Message: message}
}

// Warning builds a warning outcome with the warning prefix
func Warning(message string) Outcome {
	return Outcome{Level: OutcomeWarning, Message: WarningPrefix + " " + message}
}

// Errorf builds an error outcome with the error prefix
func Errorf(format string, args ...interface{}) Outcome {
	return Outcome{Level: OutcomeError, Message: ErrorPrefix + " " + fmt.Sprintf(format, args...)}
}

// IsOK reports whether the action succeeded
func (o Outcome) IsOK() bool {
	return o.Level == OutcomeOK
}
