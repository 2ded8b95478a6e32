package blogdex

import (
	"context"
	"time"
)

// SearchBuilder is a fluent builder for blog searches.
//
// Author and Year are required. Word is matched fuzzily against the name,
// the celebrity names and the content, in that order of weight.
// Every celebrity given must be mentioned by a hit.
type SearchBuilder struct {
	client *Client

	word        string
	celebrities []string
	year        int
	author      string
}

// Word sets the free-text word. Blank matches every blog that passes the filters.
func (b *SearchBuilder) Word(w string) *SearchBuilder {
	b.word = w
	return b
}

// Celebrities adds celebrities every hit must mention.
func (b *SearchBuilder) Celebrities(names ...string) *SearchBuilder {
	b.celebrities = append(b.celebrities, names...)
	return b
}

// Year keeps blogs published in the given calendar year.
func (b *SearchBuilder) Year(y int) *SearchBuilder {
	b.year = y
	return b
}

// Author keeps blogs of the given author, compared exactly.
func (b *SearchBuilder) Author(a string) *SearchBuilder {
	b.author = a
	return b
}

// Do runs the search and returns the hits by descending relevance.
func (b *SearchBuilder) Do(ctx context.Context) (hits []Blog, err error) {
	defer func(start time.Time) { b.client.obs.observe(opSearch, start, err) }(time.Now())

	views, err := b.client.blogs.Search(ctx, b.word, b.celebrities, b.year, b.author)
	if err != nil {
		return nil, err
	}
	return fromViews(views), nil
}
