package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kimi/legalease/backend/model"
	"github.com/kimi/legalease/backend/pkg/logger"
)

// MaxFileSize is the upload size ceiling (50 MiB)
const MaxFileSize = 50 * 1024 * 1024

// Upload carries a validated-to-be upload into the processor
type Upload struct {
	Data         []byte
	ContentType  string
	OriginalName string
	Size         int64
	Owner        string
}

// DocumentProcessor drives the ingestion pipeline: validation, file
// persistence, text extraction and document status tracking
type DocumentProcessor struct {
	storage   FileStorage
	extractor TextExtractor
	store     *RecordStore
}

func NewDocumentProcessor(storage FileStorage, extractor TextExtractor, store *RecordStore) *DocumentProcessor {
	return &DocumentProcessor{
		storage:   storage,
		extractor: extractor,
		store:     store,
	}
}

// Validate applies the upload checks in order, failing fast with a distinct
// error kind. It runs before any record is created.
func Validate(up *Upload) error {
	if up.Size == 0 {
		return &ValidationError{Kind: EmptyFile, Message: "file is empty"}
	}
	if up.Size > MaxFileSize {
		return &ValidationError{Kind: FileTooLarge, Message: "file size exceeds maximum allowed size of 50MB"}
	}
	if !model.AllowedContentType(up.ContentType) {
		return &ValidationError{Kind: UnsupportedType, Message: "invalid file type. Only PDF and Word documents are allowed"}
	}
	return nil
}

// Accept validates the upload, persists the file bytes and creates a pending
// document record. Extraction has not run yet when Accept returns.
func (p *DocumentProcessor) Accept(ctx context.Context, up *Upload) (*model.Document, error) {
	if err := Validate(up); err != nil {
		return nil, err
	}

	// Storage name is decoupled from the original filename, keeping only
	// the extension
	storageName := uuid.New().String() + filepath.Ext(up.OriginalName)

	if err := p.storage.Save(ctx, storageName, bytes.NewReader(up.Data), up.Size, up.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := &model.Document{
		ID:           uuid.New().String(),
		FileName:     storageName,
		OriginalName: up.OriginalName,
		ContentType:  up.ContentType,
		FileSize:     up.Size,
		Status:       model.StatusPending,
		Owner:        up.Owner,
		CreatedAt:    time.Now(),
	}
	p.store.SaveDocument(doc)

	logger.Info(ctx, "document accepted",
		"document_id", doc.ID,
		"original_name", doc.OriginalName,
		"size", doc.FileSize,
	)
	return doc, nil
}

// Run performs extraction for an accepted document and drives it to a
// terminal state. Extraction failure is recorded on the document, never
// returned as an error.
func (p *DocumentProcessor) Run(ctx context.Context, documentID string) *model.Document {
	doc := p.store.GetDocument(documentID)
	if doc == nil {
		return nil
	}

	p.store.UpdateDocumentStatus(doc.ID, model.StatusProcessing, "")

	data, err := p.storage.Read(ctx, doc.FileName)
	if err != nil {
		logger.Error(ctx, "failed to read stored file", "document_id", doc.ID, "error", err)
		p.store.UpdateDocumentStatus(doc.ID, model.StatusFailed, err.Error())
		return p.store.GetDocument(doc.ID)
	}

	text, err := p.extractor.Extract(ctx, data, doc.ContentType)
	if err != nil {
		logger.Error(ctx, "text extraction failed", "document_id", doc.ID, "error", err)
		p.store.UpdateDocumentStatus(doc.ID, model.StatusFailed, err.Error())
		return p.store.GetDocument(doc.ID)
	}

	p.store.SetExtractedText(doc.ID, text)
	logger.Info(ctx, "text extraction completed",
		"document_id", doc.ID,
		"text_length", len(text),
	)
	return p.store.GetDocument(doc.ID)
}

// Ingest runs the full pipeline synchronously and returns the document in a
// terminal state. Only validation and file-persistence failures abort before
// a record exists.
func (p *DocumentProcessor) Ingest(ctx context.Context, up *Upload) (*model.Document, error) {
	doc, err := p.Accept(ctx, up)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, doc.ID), nil
}

// Reprocess restarts a terminal document from processing, re-extracting from
// the stored bytes. Extracted text is overwritten on success.
func (p *DocumentProcessor) Reprocess(ctx context.Context, documentID string) *model.Document {
	return p.Run(ctx, documentID)
}

// Delete removes the stored file and the document record with its dependent
// analyses and clauses. Missing stored files are ignored.
func (p *DocumentProcessor) Delete(ctx context.Context, doc *model.Document) error {
	if err := p.storage.Delete(ctx, doc.FileName); err != nil {
		return err
	}
	p.store.DeleteDocument(doc.ID)
	logger.Info(ctx, "document deleted", "document_id", doc.ID, "original_name", doc.OriginalName)
	return nil
}
