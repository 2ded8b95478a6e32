package blog

import (
	"context"
	"errors"
	"time"

	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/metrics"
)

// instrumentedStore records every store call in the store Prometheus metrics.
type instrumentedStore struct {
	next store
}

func instrument(s store) store {
	if _, ok := s.(*instrumentedStore); ok {
		return s
	}
	return &instrumentedStore{next: s}
}

func observe(op string, start time.Time, err error) {
	metrics.ObserveStoreOp(op, statusOf(err), start)
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.Is(err, db.ErrKeyNotFound):
		return metrics.StatusNotFound
	case errors.Is(err, db.ErrKeyExists), errors.Is(err, db.ErrIndexExists):
		return metrics.StatusConflict
	default:
		return metrics.StatusError
	}
}

func (s *instrumentedStore) Put(ctx context.Context, index, id string, source []byte) error {
	start := time.Now()
	err := s.next.Put(ctx, index, id, source)
	observe(db.OpPut, start, err)
	return err
}

func (s *instrumentedStore) PutNX(ctx context.Context, index, id string, source []byte) error {
	start := time.Now()
	err := s.next.PutNX(ctx, index, id, source)
	observe(db.OpPut, start, err)
	return err
}

func (s *instrumentedStore) Get(ctx context.Context, index, id string) ([]byte, error) {
	start := time.Now()
	raw, err := s.next.Get(ctx, index, id)
	observe(db.OpGet, start, err)
	return raw, err
}

func (s *instrumentedStore) Delete(ctx context.Context, index, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, index, id)
	observe(db.OpDelete, start, err)
	return err
}

func (s *instrumentedStore) Exists(ctx context.Context, index, id string) (bool, error) {
	start := time.Now()
	ok, err := s.next.Exists(ctx, index, id)
	observe(db.OpExists, start, err)
	return ok, err
}

func (s *instrumentedStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	start := time.Now()
	err := s.next.CreateIndex(ctx, def)
	observe(db.OpCreateIndex, start, err)
	return err
}

func (s *instrumentedStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	start := time.Now()
	res, err := s.next.Search(ctx, q)
	observe(db.OpSearch, start, err)
	return res, err
}

func (s *instrumentedStore) List(ctx context.Context, index string, offset, limit int) (*db.SearchResult, error) {
	start := time.Now()
	res, err := s.next.List(ctx, index, offset, limit)
	observe(db.OpList, start, err)
	return res, err
}
