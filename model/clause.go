package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Importance is the closed set of clause importance levels. It is an integer
// internally so clauses can be ordered by weight; it serializes as text.
type Importance int

const (
	ImportanceLow Importance = iota
	ImportanceMedium
	ImportanceHigh
	ImportanceCritical
)

var importanceNames = map[Importance]string{
	ImportanceLow:      "LOW",
	ImportanceMedium:   "MEDIUM",
	ImportanceHigh:     "HIGH",
	ImportanceCritical: "CRITICAL",
}

func (i Importance) String() string {
	if name, ok := importanceNames[i]; ok {
		return name
	}
	return "MEDIUM"
}

// ParseImportance maps a level name to an Importance, case-insensitively
func ParseImportance(s string) (Importance, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return ImportanceLow, nil
	case "MEDIUM":
		return ImportanceMedium, nil
	case "HIGH":
		return ImportanceHigh, nil
	case "CRITICAL":
		return ImportanceCritical, nil
	}
	return ImportanceMedium, fmt.Errorf("unknown importance level: %q", s)
}

func (i Importance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

func (i *Importance) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseImportance(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Clause is a single contractual provision extracted from a document
type Clause struct {
	ID          string     `json:"id"`
	ClauseType  string     `json:"clause_type"`
	ClauseText  string     `json:"clause_text"`
	StartPos    *int       `json:"start_pos,omitempty"`
	EndPos      *int       `json:"end_pos,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	Importance  Importance `json:"importance"`
	Confidence  float64    `json:"confidence"`
	DocumentID  string     `json:"document_id"`
	CreatedAt   time.Time  `json:"created_at"`
}
