package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/blogdex/internal/db"
)

// Put stores a JSON document with JSON.SET, replacing any previous value.
func (s *Store) Put(ctx context.Context, index, id string, source []byte) error {
	return s.put(ctx, index, id, source, false)
}

// PutNX stores a JSON document only if the key is absent.
func (s *Store) PutNX(ctx context.Context, index, id string, source []byte) error {
	return s.put(ctx, index, id, source, true)
}

func (s *Store) put(ctx context.Context, index, id string, source []byte, nx bool) error {
	def, err := s.lookup(index)
	if err != nil {
		return err
	}
	data, err := addShadowFields(def, source)
	if err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}

	args := []string{"$", string(data)}
	if nx {
		args = append(args, "NX")
	}
	cmd := s.b().Arbitrary("JSON.SET").Keys(docKey(def, id)).Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if nx && rueidis.IsRedisNil(err) {
			return db.ErrKeyExists
		}
		return &db.Error{Op: db.OpPut, Err: err}
	}
	return nil
}

// Get retrieves a JSON document by id.
func (s *Store) Get(ctx context.Context, index, id string) ([]byte, error) {
	def, err := s.lookup(index)
	if err != nil {
		return nil, err
	}

	cmd := s.b().Arbitrary("JSON.GET").Keys(docKey(def, id)).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	if raw == "" {
		return nil, db.ErrKeyNotFound
	}
	return stripShadowFields([]byte(raw))
}

// Delete removes a document; ErrKeyNotFound when nothing was deleted.
func (s *Store) Delete(ctx context.Context, index, id string) error {
	def, err := s.lookup(index)
	if err != nil {
		return err
	}

	cmd := s.b().Del().Key(docKey(def, id)).Build()
	n, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	if n == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}

// Exists checks if a document key exists.
func (s *Store) Exists(ctx context.Context, index, id string) (bool, error) {
	def, err := s.lookup(index)
	if err != nil {
		return false, err
	}

	cmd := s.b().Exists().Key(docKey(def, id)).Build()
	count, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return count > 0, nil
}

// --- Shadow fields ---
//
// RediSearch cannot range-query yyyy-MM-dd strings nor tag JSON booleans, so
// date and bool fields get a sibling the index points at instead.

const shadowPrefix = "__"

func shadowName(field string) string {
	return shadowPrefix + field
}

func addShadowFields(def *db.IndexDefinition, source []byte) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(source, &doc); err != nil {
		return nil, fmt.Errorf("decode source: %w", err)
	}

	for _, f := range def.Fields {
		raw, ok := doc[f.Name]
		if !ok {
			continue
		}
		switch f.Type {
		case db.IndexFieldDate:
			var v *string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			if v == nil {
				continue
			}
			epoch, err := dateEpoch(*v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			doc[shadowName(f.Name)] = json.RawMessage(strconv.FormatInt(epoch, 10))
		case db.IndexFieldBool:
			var v bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("field %s: %w", f.Name, err)
			}
			doc[shadowName(f.Name)] = json.RawMessage(strconv.Quote(strconv.FormatBool(v)))
		}
	}

	return json.Marshal(doc)
}

func stripShadowFields(data []byte) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: fmt.Errorf("decode document: %w", err)}
	}
	stripped := false
	for k := range doc {
		if strings.HasPrefix(k, shadowPrefix) {
			delete(doc, k)
			stripped = true
		}
	}
	if !stripped {
		return data, nil
	}
	return json.Marshal(doc)
}

const dateLayout = "2006-01-02"

func dateEpoch(s string) (int64, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
