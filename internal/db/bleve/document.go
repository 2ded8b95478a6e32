package bleve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"

	"github.com/kailas-cloud/blogdex/internal/db"
)

// Put indexes source under id, replacing any previous document.
func (s *Store) Put(ctx context.Context, index, id string, source []byte) error {
	oi, err := s.lookup(ctx, index)
	if err != nil {
		return err
	}
	oi.writes.Lock()
	defer oi.writes.Unlock()
	return put(oi, id, source)
}

// PutNX indexes source only if id is absent.
func (s *Store) PutNX(ctx context.Context, index, id string, source []byte) error {
	oi, err := s.lookup(ctx, index)
	if err != nil {
		return err
	}
	oi.writes.Lock()
	defer oi.writes.Unlock()

	_, err = get(ctx, oi, id)
	if err == nil {
		return db.ErrKeyExists
	}
	if !errors.Is(err, db.ErrKeyNotFound) {
		return err
	}
	return put(oi, id, source)
}

// Get returns the stored source of id.
func (s *Store) Get(ctx context.Context, index, id string) ([]byte, error) {
	oi, err := s.lookup(ctx, index)
	if err != nil {
		return nil, err
	}
	return get(ctx, oi, id)
}

// Delete removes id from the index.
func (s *Store) Delete(ctx context.Context, index, id string) error {
	oi, err := s.lookup(ctx, index)
	if err != nil {
		return err
	}
	oi.writes.Lock()
	defer oi.writes.Unlock()

	if _, err := get(ctx, oi, id); err != nil {
		return err
	}
	if err := oi.index.Delete(id); err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	return nil
}

// Exists reports whether id is indexed.
func (s *Store) Exists(ctx context.Context, index, id string) (bool, error) {
	oi, err := s.lookup(ctx, index)
	if err != nil {
		return false, err
	}
	_, err = get(ctx, oi, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, db.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func put(oi *openIndex, id string, source []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(source, &doc); err != nil {
		return &db.Error{Op: db.OpPut, Err: fmt.Errorf("decode source: %w", err)}
	}
	doc[sourceField] = string(source)

	if err := oi.index.Index(id, doc); err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	return nil
}

func get(ctx context.Context, oi *openIndex, id string) ([]byte, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = []string{sourceField}

	res, err := oi.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	if len(res.Hits) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return hitSource(res.Hits[0].Fields)
}

func hitSource(fields map[string]any) ([]byte, error) {
	src, ok := fields[sourceField].(string)
	if !ok {
		return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("document has no %s", sourceField)}
	}
	return []byte(src), nil
}
