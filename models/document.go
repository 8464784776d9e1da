package models

import "strings"

// DocumentSource represents where a document came from
type DocumentSource string

const (
	SourcePaste  DocumentSource = "paste"
	SourceUpload DocumentSource = "upload"
	SourceSample DocumentSource = "sample"
	SourceInbox  DocumentSource = "inbox"
)

// Document represents user guide text supplied by the user
type Document struct {
	Text     string         `json:"text"`
	Source   DocumentSource `json:"source"`
	Filename string         `json:"filename,omitempty"`
}

// IsEmpty reports whether the document has no content beyond whitespace
func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// CharCount returns the number of characters (not bytes) in the document
func (d Document) CharCount() int {
	return len([]rune(d.Text))
}
