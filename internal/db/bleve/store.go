// Package bleve implements db.Store on an embedded bleve full-text index.
package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/kailas-cloud/blogdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

var errClosed = errors.New("store closed")

// Config holds storage parameters for a bleve store.
type Config struct {
	// Path is the directory holding one sub-directory per index.
	// Empty keeps every index in memory.
	Path string
}

// Store implements db.Store on top of bleve indexes.
type Store struct {
	dir string

	mu      sync.RWMutex
	indexes map[string]*openIndex
	closed  bool
}

type openIndex struct {
	def   *db.IndexDefinition
	index bleve.Index
	// writes serializes check-then-write sequences (PutNX, Delete).
	writes sync.Mutex
}

// NewStore creates a bleve store. The directory is created if needed.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &Store{dir: cfg.Path, indexes: make(map[string]*openIndex)}, nil
}

// NewMemStore creates a store that keeps every index in memory.
func NewMemStore() *Store {
	s, _ := NewStore(Config{})
	return s
}

// Ping reports whether the store is still open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return fmt.Errorf("ping: %w", errClosed)
	}
	return nil
}

// Close closes every open index.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, oi := range s.indexes {
		_ = oi.index.Close()
		delete(s.indexes, name)
	}
	s.closed = true
}

// WaitForReady returns once Ping succeeds; an embedded store is ready at once.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

func (s *Store) lookup(ctx context.Context, name string) (*openIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errClosed
	}
	oi, ok := s.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", db.ErrIndexNotFound, name)
	}
	return oi, nil
}
