package health

import "context"

// DBPinger checks search engine availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexChecker reports whether the blog index exists.
type IndexChecker interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}
