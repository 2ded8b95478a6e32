package bleve

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/blogdex/internal/db"
)

// sourceField keeps the original JSON document, stored but not indexed.
const sourceField = "_source"

// CreateIndex opens or creates the index for def. With a data directory an
// index found on disk is reopened and ErrIndexExists returned.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}

	m := buildMapping(def)

	if s.dir == "" {
		idx, err := bleve.NewMemOnly(m)
		if err != nil {
			return &db.Error{Op: db.OpCreateIndex, Err: err}
		}
		s.indexes[def.Name] = &openIndex{def: def, index: idx}
		return nil
	}

	path := s.indexPath(def.Name)
	idx, err := bleve.Open(path)
	if err == nil {
		s.indexes[def.Name] = &openIndex{def: def, index: idx}
		return db.ErrIndexExists
	}
	if !errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	idx, err = bleve.New(path, m)
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	s.indexes[def.Name] = &openIndex{def: def, index: idx}
	return nil
}

// DropIndex closes the index and deletes its data.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	oi, ok := s.indexes[name]
	if !ok {
		return db.ErrIndexNotFound
	}
	delete(s.indexes, name)

	if err := oi.index.Close(); err != nil {
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	if s.dir != "" {
		if err := os.RemoveAll(s.indexPath(name)); err != nil {
			return &db.Error{Op: db.OpDropIndex, Err: err}
		}
	}
	return nil
}

// IndexExists reports whether the index is open or present on disk.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	_, ok := s.indexes[name]
	s.mu.RUnlock()
	if ok || s.dir == "" {
		return ok, nil
	}

	_, err := os.Stat(s.indexPath(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
}

func (s *Store) indexPath(name string) string {
	return filepath.Join(s.dir, name+".bleve")
}

// buildMapping turns def into a strict (non-dynamic) bleve mapping.
func buildMapping(def *db.IndexDefinition) *mapping.IndexMappingImpl {
	doc := bleve.NewDocumentMapping()
	doc.Dynamic = false

	for _, f := range def.Fields {
		doc.AddFieldMappingsAt(f.Name, fieldMappings(f)...)
	}

	src := bleve.NewTextFieldMapping()
	src.Index = false
	src.Store = true
	src.IncludeInAll = false
	src.DocValues = false
	doc.AddFieldMappingsAt(sourceField, src)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultAnalyzer = standard.Name
	return m
}

func fieldMappings(f db.IndexField) []*mapping.FieldMapping {
	switch f.Type {
	case db.IndexFieldText:
		return []*mapping.FieldMapping{textMapping()}
	case db.IndexFieldTag:
		return []*mapping.FieldMapping{keywordMapping("")}
	case db.IndexFieldTextTag:
		return []*mapping.FieldMapping{textMapping(), keywordMapping(db.ExactName(f.Name))}
	case db.IndexFieldDate:
		fm := bleve.NewDateTimeFieldMapping()
		fm.Store = false
		return []*mapping.FieldMapping{fm}
	case db.IndexFieldBool:
		fm := bleve.NewBooleanFieldMapping()
		fm.Store = false
		return []*mapping.FieldMapping{fm}
	default:
		fm := bleve.NewNumericFieldMapping()
		fm.Store = false
		return []*mapping.FieldMapping{fm}
	}
}

func textMapping() *mapping.FieldMapping {
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = standard.Name
	fm.Store = false
	return fm
}

// keywordMapping indexes the whole value as one term, under name when set.
func keywordMapping(name string) *mapping.FieldMapping {
	fm := bleve.NewKeywordFieldMapping()
	fm.Analyzer = keyword.Name
	fm.Store = false
	fm.IncludeInAll = false
	fm.Name = name
	return fm
}
