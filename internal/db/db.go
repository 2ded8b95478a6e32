package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
//
//nolint:interfacebloat // facade by design -- consumers use narrow sub-interfaces (ISP)
type Store interface {
	Pinger
	DocumentStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore keeps JSON source documents addressed by index and id.
// The index must have been registered through IndexManager.CreateIndex.
type DocumentStore interface {
	// Put stores source under id, replacing any previous document.
	Put(ctx context.Context, index, id string, source []byte) error
	// PutNX stores source only if id is absent, else returns ErrKeyExists.
	PutNX(ctx context.Context, index, id string, source []byte) error
	// Get returns the stored source or ErrKeyNotFound.
	Get(ctx context.Context, index, id string) ([]byte, error)
	// Delete removes the document or returns ErrKeyNotFound.
	Delete(ctx context.Context, index, id string) error
	Exists(ctx context.Context, index, id string) (bool, error)
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	// CreateIndex creates the index and registers its definition with the
	// driver. An existing index is registered too and ErrIndexExists returned.
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides search operations over registered indexes.
type Searcher interface {
	// Search runs a composite query. Entries come back by descending score.
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
	// List pages through every document of the index in a stable order.
	List(ctx context.Context, index string, offset, limit int) (*SearchResult, error)
	Count(ctx context.Context, index string) (int, error)
}
