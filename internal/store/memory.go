package store

import (
	"context"
	"sync"

	"github.com/careernova/portfolio-engine/internal/types"
)

// MemoryStore is an in-process PortfolioStore for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]types.PortfolioRecord
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]types.PortfolioRecord)}
}

// Get loads the record stored under slug.
func (s *MemoryStore) Get(_ context.Context, slug string) (types.PortfolioRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[slug]
	if !ok {
		return types.PortfolioRecord{}, &NotFoundError{Slug: slug}
	}
	return rec, nil
}

// Put inserts or replaces the record stored under its slug.
func (s *MemoryStore) Put(_ context.Context, rec types.PortfolioRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.Slug] = rec
	return nil
}

// Delete removes the record stored under slug.
func (s *MemoryStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[slug]; !ok {
		return &NotFoundError{Slug: slug}
	}
	delete(s.records, slug)
	return nil
}
