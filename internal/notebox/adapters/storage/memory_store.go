package storage

import (
	"context"
	"sync"

	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/repositories"
)

// MemoryStore хранит документ в памяти процесса.
type MemoryStore struct {
	mu  sync.Mutex
	doc *entities.Document
}

// NewMemoryStore создает хранилище в памяти с необязательным начальным документом.
func NewMemoryStore(initial *entities.Document) repositories.DocumentStore {
	if initial == nil {
		initial = entities.NewDocument()
	}
	return &MemoryStore{doc: initial.Clone()}
}

// Load возвращает копию документа.
func (s *MemoryStore) Load(_ context.Context) (*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), nil
}

// Save заменяет документ копией переданного.
func (s *MemoryStore) Save(_ context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone().Normalize()
	return nil
}
