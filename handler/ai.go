package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kimi/legalease/backend/middleware"
	"github.com/kimi/legalease/backend/model"
	"github.com/kimi/legalease/backend/service"
)

type AIHandler struct {
	analyzer *service.AnalysisService
	store    *service.RecordStore
}

func NewAIHandler(analyzer *service.AnalysisService, store *service.RecordStore) *AIHandler {
	return &AIHandler{
		analyzer: analyzer,
		store:    store,
	}
}

type QuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

type TemplateRequest struct {
	TemplateType string `json:"template_type" binding:"required"`
	Requirements string `json:"requirements" binding:"required"`
}

// Summarize generates a plain-English summary of a processed document
func (h *AIHandler) Summarize(c *gin.Context) {
	doc := h.processedDocumentForUser(c)
	if doc == nil {
		return
	}

	analysis := h.analyzer.Summarize(c.Request.Context(), doc)
	c.JSON(http.StatusOK, analysis)
}

// ExtractClauses extracts key clauses from a processed document
func (h *AIHandler) ExtractClauses(c *gin.Context) {
	doc := h.processedDocumentForUser(c)
	if doc == nil {
		return
	}

	clauses := h.analyzer.ExtractClauses(c.Request.Context(), doc)
	c.JSON(http.StatusOK, gin.H{"clauses": clauses})
}

// Question answers a question about a processed document
func (h *AIHandler) Question(c *gin.Context) {
	doc := h.processedDocumentForUser(c)
	if doc == nil {
		return
	}

	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	analysis := h.analyzer.AnswerQuestion(c.Request.Context(), doc, req.Question)
	c.JSON(http.StatusOK, analysis)
}

// GenerateTemplate generates a legal document template; the result is not
// tied to any document
func (h *AIHandler) GenerateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	analysis := h.analyzer.GenerateTemplate(c.Request.Context(), req.TemplateType, req.Requirements)
	c.JSON(http.StatusOK, analysis)
}

// ListAnalyses returns a document's analyses, newest first
func (h *AIHandler) ListAnalyses(c *gin.Context) {
	doc := h.documentForUser(c)
	if doc == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": h.store.AnalysesByDocument(doc.ID)})
}

// ListClauses returns a document's extracted clauses, most important first
func (h *AIHandler) ListClauses(c *gin.Context) {
	doc := h.documentForUser(c)
	if doc == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{"clauses": h.store.ClausesByDocument(doc.ID)})
}

func (h *AIHandler) documentForUser(c *gin.Context) *model.Document {
	owner := middleware.GetUsername(c)
	id := c.Param("id")

	doc := h.store.GetDocument(id)
	if doc == nil || doc.Owner != owner {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return nil
	}
	return doc
}

// processedDocumentForUser additionally requires extraction to have
// completed, since analysis prompts embed the extracted text
func (h *AIHandler) processedDocumentForUser(c *gin.Context) *model.Document {
	doc := h.documentForUser(c)
	if doc == nil {
		return nil
	}

	if doc.Status != model.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Document text is not ready for analysis"})
		return nil
	}
	return doc
}
