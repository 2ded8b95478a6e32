// Package search turns raw blog search parameters into a composite query.
package search

import (
	"time"

	"github.com/kailas-cloud/blogdex/internal/domain/blog"
	"github.com/kailas-cloud/blogdex/internal/domain/search/query"
	"github.com/kailas-cloud/blogdex/internal/domain/search/request"
)

// Relevance weights of the scoring clauses, strictly decreasing.
const (
	NameBoost      = 3.0
	CelebrityBoost = 2.0
	ContentBoost   = 1.0
)

// DefaultMinShouldMatch requires a hit to match the word in at least one field.
const DefaultMinShouldMatch = 1

// Option configures a Composer.
type Option func(*Composer)

// WithMinShouldMatch sets how many scoring clauses a hit must match when a word
// is given. 0 lets documents that only pass the filters through with score 0.
func WithMinShouldMatch(n int) Option {
	return func(c *Composer) {
		c.minShouldMatch = max(n, 0)
	}
}

// Composer builds composite queries. It is stateless and safe for concurrent use.
type Composer struct {
	minShouldMatch int
}

// NewComposer creates a Composer.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{minShouldMatch: DefaultMinShouldMatch}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compose translates a search request into a composite query:
//
//   - should: fuzzy word match on name (x3), celebrityFullNames (x2), content (x1)
//   - filter: active, every requested celebrity, publishDate within the year, author
//
// A blank word yields no scoring clauses, so only the filters apply.
func (c *Composer) Compose(req request.Search) *query.Composite {
	q := query.New()

	if word := req.Word(); word != "" {
		q.Should(
			query.Match(blog.FieldName, word).WithBoost(NameBoost).WithFuzziness(query.FuzzinessAuto),
			query.Match(blog.FieldCelebrityFullNames, word).WithBoost(CelebrityBoost).WithFuzziness(query.FuzzinessAuto),
			query.Match(blog.FieldContent, word).WithBoost(ContentBoost).WithFuzziness(query.FuzzinessAuto),
		)
		q.MinimumShouldMatch(c.minShouldMatch)
	}

	q.Filter(query.Bool(blog.FieldActive, true))
	for _, name := range req.Celebrities() {
		q.Filter(query.Term(blog.FieldCelebrityFullNames, name))
	}
	from, to := YearRange(req.Year())
	q.Filter(query.DateRange(blog.FieldPublishDate, from, to))
	q.Filter(query.Term(blog.FieldAuthor, req.Author()))

	return q
}

// YearRange returns Jan 1 and Dec 31 of year at midnight UTC.
func YearRange(year int) (from, to time.Time) {
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return from, to
}
