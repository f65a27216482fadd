package service

import (
	"context"
	"time"

	"github.com/kimi/legalease/backend/model"
	"github.com/kimi/legalease/backend/pkg/logger"
)

// AnalysisService orchestrates prompt construction, the gateway call and
// result interpretation. Every operation returns a persisted record whose
// status communicates the outcome; gateway failures are captured on the
// record, never raised.
type AnalysisService struct {
	gateway     Gateway
	store       *RecordStore
	interpreter *ClauseInterpreter
}

func NewAnalysisService(gateway Gateway, store *RecordStore) *AnalysisService {
	return &AnalysisService{
		gateway:     gateway,
		store:       store,
		interpreter: NewClauseInterpreter(),
	}
}

// Summarize produces a plain-English summary analysis for the document
func (s *AnalysisService) Summarize(ctx context.Context, doc *model.Document) *model.Analysis {
	prompt := SummarizePrompt(doc.ExtractedText)
	analysis := s.newAnalysis(model.KindSummary, doc.ID, prompt)

	result, err := s.gateway.Invoke(ctx, prompt)
	if err != nil {
		return s.fail(ctx, analysis, err)
	}
	return s.complete(analysis, result)
}

// AnswerQuestion answers a caller-supplied question from the document text.
// The record keeps the bare question as its prompt.
func (s *AnalysisService) AnswerQuestion(ctx context.Context, doc *model.Document, question string) *model.Analysis {
	prompt := AnswerQuestionPrompt(question, doc.ExtractedText)
	analysis := s.newAnalysis(model.KindQuestionAnswer, doc.ID, question)

	result, err := s.gateway.Invoke(ctx, prompt)
	if err != nil {
		return s.fail(ctx, analysis, err)
	}
	return s.complete(analysis, result)
}

// GenerateTemplate generates a document template. The resulting record is not
// owned by any document, on success or failure.
func (s *AnalysisService) GenerateTemplate(ctx context.Context, templateType, requirements string) *model.Analysis {
	prompt := GenerateTemplatePrompt(templateType, requirements)
	analysis := s.newAnalysis(model.KindTemplateGeneration, "", prompt)

	result, err := s.gateway.Invoke(ctx, prompt)
	if err != nil {
		return s.fail(ctx, analysis, err)
	}
	return s.complete(analysis, result)
}

// ExtractClauses asks the model for the document's key clauses and persists
// the interpreted batch in one store call. A gateway failure degrades to an
// empty list rather than propagating.
func (s *AnalysisService) ExtractClauses(ctx context.Context, doc *model.Document) []*model.Clause {
	prompt := ExtractClausesPrompt(doc.ExtractedText)

	raw, err := s.gateway.Invoke(ctx, prompt)
	if err != nil {
		logger.Error(ctx, "clause extraction call failed", "document_id", doc.ID, "error", err)
		return []*model.Clause{}
	}

	clauses := s.interpreter.Interpret(ctx, raw, doc.ID)
	if len(clauses) == 0 {
		return clauses
	}
	return s.store.SaveClauses(clauses)
}

func (s *AnalysisService) newAnalysis(kind, documentID, prompt string) *model.Analysis {
	analysis := &model.Analysis{
		Kind:       kind,
		Prompt:     prompt,
		Status:     model.StatusProcessing,
		DocumentID: documentID,
		CreatedAt:  time.Now(),
	}
	return s.store.SaveAnalysis(analysis)
}

func (s *AnalysisService) complete(analysis *model.Analysis, result string) *model.Analysis {
	analysis.Result = result
	analysis.Status = model.StatusCompleted
	analysis.ErrorMsg = ""
	return s.store.SaveAnalysis(analysis)
}

func (s *AnalysisService) fail(ctx context.Context, analysis *model.Analysis, err error) *model.Analysis {
	logger.Error(ctx, "analysis failed",
		"analysis_type", analysis.Kind,
		"document_id", analysis.DocumentID,
		"error", err,
	)
	analysis.Status = model.StatusFailed
	analysis.ErrorMsg = err.Error()
	return s.store.SaveAnalysis(analysis)
}
