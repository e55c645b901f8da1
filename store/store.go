// Package store is the single source of truth for persisted state. It wraps
// the blob transport with the document schema: JSON encode/decode, defaulting
// on corruption, and full-document replacement on every write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/vlnch/anonbox/blob"
	"github.com/vlnch/anonbox/models"
)

type DocumentStore interface {
	// Load fetches and parses the current document. A missing or corrupt
	// blob yields an empty document, never an error; only transport
	// failures propagate.
	Load(ctx context.Context) (models.Document, error)

	// Save serializes the full document and replaces the backing blob in
	// its entirety.
	Save(ctx context.Context, doc models.Document) error

	// Update runs a load-mutate-save cycle. Implementations serialize
	// concurrent Update calls so that within one process no cycle can
	// overwrite another's mutation. Writers in other processes sharing the
	// same remote document are not protected against.
	Update(ctx context.Context, mutate func(doc *models.Document) error) error
}

var ErrTransport = errors.New("store: transport failure")

type Store struct {
	transport blob.Transport

	// Guards the whole load-mutate-save cycle in Update. Load and Save on
	// their own are plain pass-throughs with no isolation between them.
	mu sync.Mutex
}

func NewStore(transport blob.Transport) *Store {
	return &Store{transport: transport}
}

// ParseDocument decodes raw blob content into a document. Unparsable content
// or content missing either top-level field falls back to an empty document:
// a malformed remote blob must never make the service unavailable.
func ParseDocument(content []byte) models.Document {
	var doc models.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return emptyDocument()
	}
	if doc.Users == nil || doc.Messages == nil {
		return emptyDocument()
	}
	return doc
}

func emptyDocument() models.Document {
	return models.Document{
		Users:    []models.Account{},
		Messages: []models.Message{},
	}
}

func (s *Store) Load(ctx context.Context) (models.Document, error) {
	content, err := s.transport.Get(ctx)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			// First run: the backing blob does not exist yet.
			return emptyDocument(), nil
		}
		return models.Document{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return ParseDocument(content), nil
}

func (s *Store) Save(ctx context.Context, doc models.Document) error {
	// Keep both top-level fields present in the encoded form even when
	// empty, so a saved document always round-trips through ParseDocument.
	if doc.Users == nil {
		doc.Users = []models.Account{}
	}
	if doc.Messages == nil {
		doc.Messages = []models.Message{}
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode document: %w", err)
	}

	if err := s.transport.Patch(ctx, content); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, mutate func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if err := mutate(&doc); err != nil {
		return err
	}

	return s.Save(ctx, doc)
}
