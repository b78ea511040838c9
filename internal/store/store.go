// Package store holds the process-wide document and persists it wholesale
// through a Backend after every mutation.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/yukikurage/freelance-tracker-api/internal/metrics"
	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"go.uber.org/zap"
)

// Store is the in-memory document plus its durable copy.
//
// Mutations are serialized: Update holds the writer lock across the change
// and the persist, so the backend copy always reflects the last mutation.
type Store struct {
	backend Backend
	log     *zap.Logger

	mu  sync.RWMutex
	doc models.Document
}

// New creates a Store holding the default document. Call Load to read the
// backend copy.
func New(backend Backend, log *zap.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log.With(zap.String("backend", backend.Name())),
		doc:     models.DefaultDocument(),
	}
}

// Load replaces the in-memory document with the backend copy. When the copy is
// missing or cannot be decoded, the default document is used and persisted.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(ctx)
	if err != nil {
		if errors.Is(err, ErrNoDocument) {
			s.log.Info("No document found, creating default document")
		} else {
			s.log.Error("Error loading document, falling back to default", zap.Error(err))
		}
		s.doc = models.DefaultDocument()
		s.persist(ctx)
		return
	}

	doc.EnsureCollections()
	s.doc = doc
	s.observe()
	s.log.Info("Document loaded successfully")
}

func (s *Store) read(ctx context.Context) (models.Document, error) {
	data, err := s.backend.Read(ctx)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc models.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc == nil {
		return nil, errors.New("decode document: document is null")
	}
	return doc, nil
}

// Save persists the current document. Failures are logged and reported by the
// return value only.
func (s *Store) Save(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist(ctx)
}

// persist must be called with s.mu held.
func (s *Store) persist(ctx context.Context) bool {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err == nil {
		err = s.backend.Write(ctx, data)
	}
	if err != nil {
		s.log.Error("Error saving document", zap.Error(err))
		metrics.DocumentSaves.WithLabelValues(s.backend.Name(), metrics.SaveFailed).Inc()
		return false
	}

	metrics.DocumentSaves.WithLabelValues(s.backend.Name(), metrics.SaveOK).Inc()
	s.observe()
	return true
}

func (s *Store) observe() {
	for name, records := range s.doc {
		metrics.DocumentRecords.WithLabelValues(name).Set(float64(len(records)))
	}
}

// View runs fn with read access to the document. fn must not modify it.
func (s *Store) View(fn func(doc models.Document)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.doc)
}

// Update runs fn with write access to the document and persists the result.
// When fn returns an error nothing is persisted and the error is returned;
// fn must then leave the document unchanged. A failed persist is only logged.
func (s *Store) Update(ctx context.Context, fn func(doc models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.doc); err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// Reset replaces the document with the default document and persists it.
func (s *Store) Reset(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = models.DefaultDocument()
	return s.persist(ctx)
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// MaxID returns the largest record id currently stored.
func (s *Store) MaxID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.MaxID()
}
