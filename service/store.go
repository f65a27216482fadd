package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kimi/legalease/backend/config"
	"github.com/kimi/legalease/backend/model"
)

// RecordStore is an in-memory store for documents and their dependent
// analyses and clauses. Dependents reference their document by id; deleting a
// document cascades to both.
// In production, this should be replaced with a database.
type RecordStore struct {
	mu           sync.RWMutex
	documents    map[string]*model.Document
	analyses     map[string]*model.Analysis
	clauses      map[string]*model.Clause
	maxDocuments int // Maximum documents to keep, 0 = unlimited
}

var (
	globalStore *RecordStore
	storeOnce   sync.Once
)

// InitRecordStore initializes the global record store with configuration
func InitRecordStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		maxDocuments := cfg.MaxDocuments
		if maxDocuments < 0 {
			maxDocuments = 0
		}
		globalStore = NewRecordStore(maxDocuments)
		slog.Info("record store initialized", "max_documents", maxDocuments)
	})
}

// GetRecordStore returns the global record store
func GetRecordStore() *RecordStore {
	if globalStore == nil {
		// Fallback initialization with default settings
		globalStore = NewRecordStore(100)
	}
	return globalStore
}

func NewRecordStore(maxDocuments int) *RecordStore {
	return &RecordStore{
		documents:    make(map[string]*model.Document),
		analyses:     make(map[string]*model.Analysis),
		clauses:      make(map[string]*model.Clause),
		maxDocuments: maxDocuments,
	}
}

func (s *RecordStore) SaveDocument(doc *model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.UpdatedAt = time.Now()
	s.documents[doc.ID] = doc

	s.cleanupIfNeeded()
}

func (s *RecordStore) GetDocument(id string) *model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[id]
}

func (s *RecordStore) DocumentsByOwner(owner string) []*model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Document
	for _, d := range s.documents {
		if d.Owner == owner {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (s *RecordStore) UpdateDocumentStatus(id, status, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.documents[id]; ok {
		d.Status = status
		d.ErrorMsg = errMsg
		d.UpdatedAt = time.Now()
	}
}

// SetExtractedText records a successful extraction and completes the document
func (s *RecordStore) SetExtractedText(id, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.documents[id]; ok {
		d.ExtractedText = text
		d.Status = model.StatusCompleted
		d.ErrorMsg = ""
		d.UpdatedAt = time.Now()
	}
}

// DeleteDocument removes a document and cascades to its analyses and clauses
func (s *RecordStore) DeleteDocument(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteDocumentLocked(id)
}

// Must be called with lock held
func (s *RecordStore) deleteDocumentLocked(id string) {
	delete(s.documents, id)
	for aid, a := range s.analyses {
		if a.DocumentID == id {
			delete(s.analyses, aid)
		}
	}
	for cid, c := range s.clauses {
		if c.DocumentID == id {
			delete(s.clauses, cid)
		}
	}
}

// SaveAnalysis persists an analysis, assigning an id and creation time on
// first save
func (s *RecordStore) SaveAnalysis(a *model.Analysis) *model.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.New().String()
		a.CreatedAt = time.Now()
	}
	s.analyses[a.ID] = a
	return a
}

func (s *RecordStore) GetAnalysis(id string) *model.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyses[id]
}

// AnalysesByDocument returns a document's analyses, newest first
func (s *RecordStore) AnalysesByDocument(documentID string) []*model.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Analysis
	for _, a := range s.analyses {
		if a.DocumentID == documentID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// SaveClauses persists a batch of clauses in one call, assigning ids and
// creation times
func (s *RecordStore) SaveClauses(clauses []*model.Clause) []*model.Clause {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range clauses {
		if c.ID == "" {
			c.ID = uuid.New().String()
			c.CreatedAt = time.Now()
		}
		s.clauses[c.ID] = c
	}
	return clauses
}

// ClausesByDocument returns a document's clauses ordered by importance
// descending, then newest first
func (s *RecordStore) ClausesByDocument(documentID string) []*model.Clause {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Clause
	for _, c := range s.clauses {
		if c.DocumentID == documentID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Importance != result[j].Importance {
			return result[i].Importance > result[j].Importance
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// cleanupIfNeeded removes oldest documents if store exceeds maxDocuments
// Must be called with lock held
func (s *RecordStore) cleanupIfNeeded() {
	if s.maxDocuments <= 0 {
		return // Unlimited
	}

	if len(s.documents) <= s.maxDocuments {
		return
	}

	docs := make([]*model.Document, 0, len(s.documents))
	for _, d := range s.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	removeCount := len(docs) - s.maxDocuments
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old document",
			"document_id", docs[i].ID,
			"created_at", docs[i].CreatedAt,
		)
		s.deleteDocumentLocked(docs[i].ID)
	}
}

// CountDocuments returns the number of documents in the store
func (s *RecordStore) CountDocuments() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}
