// Package blog holds the blog document model: the persisted Document, the
// exposed View and the explicit conversions between them.
package blog

// Persisted field names. The search composer and the storage layer address
// fields only through these constants.
const (
	FieldID                 = "id"
	FieldAuthor             = "author"
	FieldName               = "name"
	FieldContent            = "content"
	FieldPublishDate        = "publishDate"
	FieldLastUpdateDate     = "lastUpdateDate"
	FieldTopics             = "topics"
	FieldCelebrityFullNames = "celebrityFullNames"
	FieldActive             = "active"
)

// Document is one persisted blog record in the search index.
type Document struct {
	ID                 int64
	Author             string
	Name               string
	Content            string
	PublishDate        Date
	LastUpdateDate     Date
	Topics             []Topic
	CelebrityFullNames []string
	Active             bool
}
