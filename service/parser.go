package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kimi/legalease/backend/model"
	"github.com/kimi/legalease/backend/pkg/logger"
)

// Confidence assigned per parsing tier. Heuristic extraction earns lower
// trust than a well-formed JSON reply.
const (
	structuredConfidence = 0.8
	heuristicConfidence  = 0.6
)

// clauseParser is one tier of the clause interpretation chain. handled
// reports whether this tier could interpret the reply at all; a handled reply
// with zero clauses is a valid empty result, not a reason to fall through.
type clauseParser interface {
	name() string
	parse(ctx context.Context, raw string) (clauses []*model.Clause, handled bool)
}

// jsonClauseParser interprets the reply as a JSON array of clause objects
type jsonClauseParser struct{}

type clausePayload struct {
	ClauseType  string `json:"clauseType"`
	ClauseText  string `json:"clauseText"`
	Explanation string `json:"explanation"`
	Importance  string `json:"importance"`
}

func (jsonClauseParser) name() string { return "json" }

func (jsonClauseParser) parse(ctx context.Context, raw string) ([]*model.Clause, bool) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &elements); err != nil {
		return nil, false
	}

	clauses := make([]*model.Clause, 0, len(elements))
	for _, element := range elements {
		var payload clausePayload
		if err := json.Unmarshal(element, &payload); err != nil {
			logger.Warn(ctx, "skipping malformed clause element", "error", err)
			continue
		}

		importanceName := payload.Importance
		if importanceName == "" {
			importanceName = "MEDIUM"
		}
		importance, err := model.ParseImportance(importanceName)
		if err != nil {
			// A bad importance value drops the element, not the batch
			logger.Warn(ctx, "skipping clause with unrecognized importance", "importance", payload.Importance)
			continue
		}

		clauses = append(clauses, &model.Clause{
			ClauseType:  payload.ClauseType,
			ClauseText:  payload.ClauseText,
			Explanation: payload.Explanation,
			Importance:  importance,
			Confidence:  structuredConfidence,
		})
	}
	return clauses, true
}

// regexClauseParser scans free-form text for "clause type:"/"type:" lines
// followed by "clause text:"/"text:" lines
type regexClauseParser struct {
	pattern *regexp.Regexp
}

func newRegexClauseParser() regexClauseParser {
	return regexClauseParser{
		pattern: regexp.MustCompile(`(?is)(clause type|type):\s*(.+?)\n.*?(clause text|text):\s*(.+?)\n`),
	}
}

func (regexClauseParser) name() string { return "regex" }

func (p regexClauseParser) parse(_ context.Context, raw string) ([]*model.Clause, bool) {
	matches := p.pattern.FindAllStringSubmatch(raw, -1)
	clauses := make([]*model.Clause, 0, len(matches))
	for _, m := range matches {
		clauses = append(clauses, &model.Clause{
			ClauseType: strings.TrimSpace(m[2]),
			ClauseText: strings.TrimSpace(m[4]),
			Importance: model.ImportanceMedium,
			Confidence: heuristicConfidence,
		})
	}
	return clauses, true
}

// ClauseInterpreter turns a raw AI reply into clause records using an ordered
// chain of parser tiers: structured JSON first, heuristic scan second. An
// empty result after both tiers is not an error.
type ClauseInterpreter struct {
	parsers []clauseParser
}

func NewClauseInterpreter() *ClauseInterpreter {
	return &ClauseInterpreter{
		parsers: []clauseParser{
			jsonClauseParser{},
			newRegexClauseParser(),
		},
	}
}

// Interpret parses the reply and attaches every produced clause to the
// originating document
func (ci *ClauseInterpreter) Interpret(ctx context.Context, raw, documentID string) []*model.Clause {
	for _, p := range ci.parsers {
		clauses, handled := p.parse(ctx, raw)
		if !handled {
			logger.Debug(ctx, "clause parser could not interpret reply, falling back", "parser", p.name())
			continue
		}
		for _, c := range clauses {
			c.DocumentID = documentID
		}
		logger.Info(ctx, "clauses interpreted",
			"parser", p.name(),
			"count", len(clauses),
			"document_id", documentID,
		)
		return clauses
	}
	return []*model.Clause{}
}
