package blog

import (
	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/domain/blog"
)

// buildIndex describes how every blog field is searchable.
// celebrityFullNames is both fuzzy-matched and filtered on exact names.
func buildIndex(name, prefix string) (*db.IndexDefinition, error) {
	return db.NewIndex(name).
		Prefix(prefix).
		Numeric(blog.FieldID).
		Tag(blog.FieldAuthor).
		Text(blog.FieldName).
		Text(blog.FieldContent).
		Date(blog.FieldPublishDate).
		Date(blog.FieldLastUpdateDate).
		TagArray(blog.FieldTopics).
		TextTagArray(blog.FieldCelebrityFullNames).
		Bool(blog.FieldActive).
		Build()
}
