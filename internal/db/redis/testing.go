package redis

import (
	"github.com/redis/rueidis"

	"github.com/kailas-cloud/blogdex/internal/db"
)

// NewStoreForTest creates a Store with the provided rueidis client (test-only).
// defs are registered as if CreateIndex had run.
func NewStoreForTest(c rueidis.Client, defs ...*db.IndexDefinition) *Store {
	s := newStore(c)
	for _, d := range defs {
		s.register(d)
	}
	return s
}
