package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kimi/legalease/backend/middleware"
	"github.com/kimi/legalease/backend/model"
	"github.com/kimi/legalease/backend/pkg/logger"
	"github.com/kimi/legalease/backend/service"
)

type DocumentHandler struct {
	processor *service.DocumentProcessor
	store     *service.RecordStore
}

func NewDocumentHandler(processor *service.DocumentProcessor, store *service.RecordStore) *DocumentHandler {
	return &DocumentHandler{
		processor: processor,
		store:     store,
	}
}

// contentTypeForUpload resolves the declared content type, falling back to
// the file extension when the client sent none or a generic type
func contentTypeForUpload(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return model.ContentTypePDF
	case ".doc":
		return model.ContentTypeDoc
	case ".docx":
		return model.ContentTypeDocx
	}
	return declared
}

// Upload accepts a document and starts extraction in the background. The
// response carries the pending document; clients poll the status endpoint.
func (h *DocumentHandler) Upload(c *gin.Context) {
	owner := middleware.GetUsername(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	up := &service.Upload{
		Data:         data,
		ContentType:  contentTypeForUpload(header.Header.Get("Content-Type"), header.Filename),
		OriginalName: header.Filename,
		Size:         int64(len(data)),
		Owner:        owner,
	}

	doc, err := h.processor.Accept(c.Request.Context(), up)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file: " + err.Error()})
		return
	}

	// Extraction runs off the request path; the status endpoint reports
	// progress
	go h.processor.Run(detachedContext(c), doc.ID)

	c.JSON(http.StatusOK, gin.H{
		"id":            doc.ID,
		"original_name": doc.OriginalName,
		"status":        doc.Status,
	})
}

// detachedContext carries request-scoped log values into a background task
// that outlives the request
func detachedContext(c *gin.Context) context.Context {
	ctx := context.Background()
	if requestID := middleware.GetRequestID(c); requestID != "" {
		ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)
	}
	if username := middleware.GetUsername(c); username != "" {
		ctx = context.WithValue(ctx, logger.UsernameKey, username)
	}
	return ctx
}

// List returns all documents for the current user, without extracted text
func (h *DocumentHandler) List(c *gin.Context) {
	owner := middleware.GetUsername(c)
	docs := h.store.DocumentsByOwner(owner)

	result := make([]gin.H, len(docs))
	for i, doc := range docs {
		result[i] = gin.H{
			"id":            doc.ID,
			"original_name": doc.OriginalName,
			"content_type":  doc.ContentType,
			"file_size":     doc.FileSize,
			"status":        doc.Status,
			"created_at":    doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at":    doc.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"documents": result})
}

// Get returns a single document including its extracted text
func (h *DocumentHandler) Get(c *gin.Context) {
	doc := h.documentForUser(c)
	if doc == nil {
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetStatus returns the processing status of a document
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	doc := h.documentForUser(c)
	if doc == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        doc.ID,
		"status":    doc.Status,
		"error_msg": doc.ErrorMsg,
	})
}

// Reprocess restarts extraction for a terminal document
func (h *DocumentHandler) Reprocess(c *gin.Context) {
	doc := h.documentForUser(c)
	if doc == nil {
		return
	}

	if doc.Status == model.StatusPending || doc.Status == model.StatusProcessing {
		c.JSON(http.StatusConflict, gin.H{"error": "Document is already being processed"})
		return
	}

	go h.processor.Reprocess(detachedContext(c), doc.ID)

	c.JSON(http.StatusOK, gin.H{
		"id":     doc.ID,
		"status": model.StatusProcessing,
	})
}

// Delete removes a document, its stored file and all dependent records
func (h *DocumentHandler) Delete(c *gin.Context) {
	doc := h.documentForUser(c)
	if doc == nil {
		return
	}

	if err := h.processor.Delete(c.Request.Context(), doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete document: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// documentForUser fetches the document in the :id parameter and enforces
// owner scoping; it writes the 404 itself when access fails
func (h *DocumentHandler) documentForUser(c *gin.Context) *model.Document {
	owner := middleware.GetUsername(c)
	id := c.Param("id")

	doc := h.store.GetDocument(id)
	if doc == nil || doc.Owner != owner {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return nil
	}
	return doc
}
