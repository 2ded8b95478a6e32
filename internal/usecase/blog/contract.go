package blog

import (
	"context"
	"iter"

	domblog "github.com/kailas-cloud/blogdex/internal/domain/blog"
	"github.com/kailas-cloud/blogdex/internal/domain/search/query"
	"github.com/kailas-cloud/blogdex/internal/domain/search/request"
)

// Repository defines the storage contract for blogs.
type Repository interface {
	Get(ctx context.Context, id int64) (domblog.Document, error)
	List(ctx context.Context) iter.Seq2[domblog.Document, error]
	Upsert(ctx context.Context, doc domblog.Document) error
	Create(ctx context.Context, doc domblog.Document) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Query(ctx context.Context, q *query.Composite, limit int) ([]domblog.Document, error)
}

// Clock supplies the current calendar date.
type Clock interface {
	Today() domblog.Date
}

// Composer turns a search request into a composite query.
type Composer interface {
	Compose(req request.Search) *query.Composite
}
