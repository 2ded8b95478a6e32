package redis

import (
	"context"
	"errors"

	"github.com/kailas-cloud/blogdex/internal/db"
)

// CreateIndex creates an FT index ON JSON from the given definition.
// The definition is registered even when the index already exists.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			s.register(def)
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	s.register(def)
	return nil
}

// DropIndex removes an FT index by name. Documents are kept.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return db.ErrIndexNotFound
		}
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	s.unregister(name)
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

func buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	args := []string{idx.Name, "ON", "JSON"}

	if idx.KeyPrefix != "" {
		args = append(args, "PREFIX", "1", idx.KeyPrefix)
	}

	args = append(args, "SCHEMA")

	for i := range idx.Fields {
		fieldArgs, err := buildFieldArgs(&idx.Fields[i])
		if err != nil {
			return nil, err
		}
		args = append(args, fieldArgs...)
	}

	return args, nil
}

func jsonPath(f *db.IndexField) string {
	if f.Multi {
		return "$." + f.Name + "[*]"
	}
	return "$." + f.Name
}

// tagSeparator replaces the default "," so a value such as "Smith, John"
// stays one tag.
const tagSeparator = "\x1f"

func buildFieldArgs(f *db.IndexField) ([]string, error) {
	if f.Name == "" {
		return nil, errors.New("field name is required")
	}

	path := jsonPath(f)

	switch f.Type {
	case db.IndexFieldText:
		return []string{path, "AS", f.Name, "TEXT"}, nil
	case db.IndexFieldTag:
		return []string{path, "AS", f.Name, "TAG", "SEPARATOR", tagSeparator, "CASESENSITIVE"}, nil
	case db.IndexFieldTextTag:
		return []string{
			path, "AS", f.Name, "TEXT",
			path, "AS", db.ExactName(f.Name), "TAG", "SEPARATOR", tagSeparator, "CASESENSITIVE",
		}, nil
	case db.IndexFieldNumeric:
		return []string{path, "AS", f.Name, "NUMERIC"}, nil
	case db.IndexFieldDate:
		return []string{"$." + shadowName(f.Name), "AS", f.Name, "NUMERIC"}, nil
	case db.IndexFieldBool:
		return []string{"$." + shadowName(f.Name), "AS", f.Name, "TAG"}, nil
	default:
		return nil, errors.New("unknown field type")
	}
}
