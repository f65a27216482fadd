package model

import (
	"time"
)

// Document represents an uploaded legal document and its processing state
type Document struct {
	ID            string    `json:"id"`
	FileName      string    `json:"file_name"` // generated storage name, decoupled from the original
	OriginalName  string    `json:"original_name"`
	ContentType   string    `json:"content_type"`
	FileSize      int64     `json:"file_size"`
	ExtractedText string    `json:"extracted_text,omitempty"`
	Status        string    `json:"status"` // pending, processing, completed, failed
	ErrorMsg      string    `json:"error_msg,omitempty"`
	Owner         string    `json:"owner"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Processing status constants, shared by documents and analyses.
// Transitions only move forward: pending -> processing -> completed | failed.
// A terminal document re-enters processing only through an explicit reprocess.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Allowed upload content types
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDoc  = "application/msword"
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedContentType reports whether ct is an accepted upload type
func AllowedContentType(ct string) bool {
	switch ct {
	case ContentTypePDF, ContentTypeDoc, ContentTypeDocx:
		return true
	}
	return false
}
