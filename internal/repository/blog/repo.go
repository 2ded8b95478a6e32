// Package blog persists blog documents in a db.Store search index.
package blog

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strconv"

	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/domain"
	"github.com/kailas-cloud/blogdex/internal/domain/blog"
	"github.com/kailas-cloud/blogdex/internal/domain/search/query"
)

// Defaults applied by New when Config leaves a value unset.
const (
	DefaultIndexName  = "blogs"
	DefaultKeyPrefix  = "blog:"
	DefaultPageSize   = 100
	DefaultMaxResults = 1000
)

// store is the consumer interface for blog persistence (ISP).
type store interface {
	Put(ctx context.Context, index, id string, source []byte) error
	PutNX(ctx context.Context, index, id string, source []byte) error
	Get(ctx context.Context, index, id string) ([]byte, error)
	Delete(ctx context.Context, index, id string) error
	Exists(ctx context.Context, index, id string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	List(ctx context.Context, index string, offset, limit int) (*db.SearchResult, error)
}

// Config tunes index naming and paging.
type Config struct {
	IndexName string
	KeyPrefix string
	// PageSize is the batch size of the lazy List sequence.
	PageSize int
	// MaxResults caps a single Query.
	MaxResults int
}

// Repo implements usecase/blog.Repository.
type Repo struct {
	store      store
	def        *db.IndexDefinition
	pageSize   int
	maxResults int
}

// New creates a blog repository. Store calls are recorded in the store metrics.
func New(s store, cfg Config) (*Repo, error) {
	if cfg.IndexName == "" {
		cfg.IndexName = DefaultIndexName
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}

	def, err := buildIndex(cfg.IndexName, cfg.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", cfg.IndexName, err)
	}

	return &Repo{
		store:      instrument(s),
		def:        def,
		pageSize:   cfg.PageSize,
		maxResults: cfg.MaxResults,
	}, nil
}

// EnsureIndex creates the blog index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	err := r.store.CreateIndex(ctx, r.def)
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.def.Name, err)
	}
	return nil
}

// Get returns the blog stored under id.
func (r *Repo) Get(ctx context.Context, id int64) (blog.Document, error) {
	raw, err := r.store.Get(ctx, r.def.Name, docID(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return blog.Document{}, domain.ErrNotFound
		}
		return blog.Document{}, fmt.Errorf("get blog %d: %w", id, err)
	}
	return decodeDocument(raw)
}

// List lazily yields every stored blog, fetching PageSize documents at a time.
// Iteration stops at the first error, which is yielded once.
func (r *Repo) List(ctx context.Context) iter.Seq2[blog.Document, error] {
	return func(yield func(blog.Document, error) bool) {
		for offset := 0; ; offset += r.pageSize {
			res, err := r.store.List(ctx, r.def.Name, offset, r.pageSize)
			if err != nil {
				yield(blog.Document{}, fmt.Errorf("list blogs at %d: %w", offset, err))
				return
			}

			for _, e := range res.Entries {
				doc, err := decodeDocument(e.Source)
				if err != nil {
					yield(blog.Document{}, fmt.Errorf("decode blog %s: %w", e.ID, err))
					return
				}
				if !yield(doc, nil) {
					return
				}
			}

			if len(res.Entries) < r.pageSize || offset+len(res.Entries) >= res.Total {
				return
			}
		}
	}
}

// Upsert stores doc under its id, replacing any previous version.
func (r *Repo) Upsert(ctx context.Context, doc blog.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.def.Name, docID(doc.ID), data); err != nil {
		return fmt.Errorf("put blog %d: %w", doc.ID, err)
	}
	return nil
}

// Create stores doc only if its id is free, else returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, doc blog.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}
	if err := r.store.PutNX(ctx, r.def.Name, docID(doc.ID), data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return fmt.Errorf("blog %d: %w", doc.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("create blog %d: %w", doc.ID, err)
	}
	return nil
}

// Delete removes the blog stored under id.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	if err := r.store.Delete(ctx, r.def.Name, docID(id)); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	return nil
}

// Exists reports whether a blog is stored under id.
func (r *Repo) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := r.store.Exists(ctx, r.def.Name, docID(id))
	if err != nil {
		return false, fmt.Errorf("exists blog %d: %w", id, err)
	}
	return ok, nil
}

// Query runs q and returns at most limit documents by descending relevance.
// A non-positive limit, or one above MaxResults, is capped to MaxResults.
func (r *Repo) Query(ctx context.Context, q *query.Composite, limit int) ([]blog.Document, error) {
	if limit <= 0 || limit > r.maxResults {
		limit = r.maxResults
	}

	res, err := r.store.Search(ctx, &db.SearchQuery{
		IndexName: r.def.Name,
		Query:     q,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}

	docs := make([]blog.Document, 0, len(res.Entries))
	for _, e := range res.Entries {
		doc, err := decodeDocument(e.Source)
		if err != nil {
			return nil, fmt.Errorf("decode blog %s: %w", e.ID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
