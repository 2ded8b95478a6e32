package db

import (
	"errors"

	"github.com/kailas-cloud/blogdex/internal/domain/search/query"
)

// SearchQuery is the input for a composite query search.
type SearchQuery struct {
	IndexName string
	Query     *query.Composite
	Offset    int
	Limit     int
}

// Validate checks the query before it reaches a driver.
func (q *SearchQuery) Validate() error {
	if q.IndexName == "" {
		return errors.New("index name is required")
	}
	if q.Query == nil {
		return errors.New("query is required")
	}
	if q.Limit <= 0 {
		return errors.New("limit must be positive")
	}
	if q.Offset < 0 {
		return errors.New("offset must not be negative")
	}
	return q.Query.Validate()
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	ID     string
	Score  float64
	Source []byte
}
