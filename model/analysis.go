package model

import (
	"time"
)

// Analysis kinds. The set is open to extension; only the first three have
// pipeline operations today.
const (
	KindSummary            = "SUMMARY"
	KindQuestionAnswer     = "QUESTION_ANSWER"
	KindTemplateGeneration = "TEMPLATE_GENERATION"
	KindRiskAnalysis       = "RISK_ANALYSIS"
	KindComplianceCheck    = "COMPLIANCE_CHECK"
)

// Analysis represents one AI-derived result for a document.
// Invariants: status completed implies non-empty Result and empty ErrorMsg;
// status failed implies non-empty ErrorMsg.
type Analysis struct {
	ID              string    `json:"id"`
	Kind            string    `json:"analysis_type"`
	Result          string    `json:"result,omitempty"`
	Prompt          string    `json:"prompt,omitempty"`
	ConfidenceScore *float64  `json:"confidence_score,omitempty"`
	Status          string    `json:"status"`
	ErrorMsg        string    `json:"error_msg,omitempty"`
	DocumentID      string    `json:"document_id,omitempty"` // empty for template generation
	CreatedAt       time.Time `json:"created_at"`
}
