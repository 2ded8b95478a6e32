package blog

import (
	"strings"

	"github.com/kailas-cloud/blogdex/internal/domain"
)

// View is the externally exposed blog representation.
// It mirrors Document field for field and is validated independently.
type View struct {
	ID                 int64    `json:"id"`
	Author             string   `json:"author"`
	Name               string   `json:"name"`
	Content            string   `json:"content"`
	PublishDate        Date     `json:"publishDate"`
	LastUpdateDate     Date     `json:"lastUpdateDate"`
	Topics             []Topic  `json:"topics"`
	CelebrityFullNames []string `json:"celebrityFullNames"`
	Active             bool     `json:"active"`
}

// Validate checks a view submitted for creation.
// Every violated field is reported, not only the first one.
func (v *View) Validate() error {
	ve := &domain.ValidationError{}
	if v.ID <= 0 {
		ve.Add(FieldID, "must be a positive integer")
	}
	if isBlank(v.Author) {
		ve.Add(FieldAuthor, "author name should not be blank")
	}
	if v.PublishDate.IsZero() {
		ve.Add(FieldPublishDate, "publish date is required")
	}
	v.validateContent(ve)
	return ve.OrNil()
}

// ValidateContent checks only the fields an update may change:
// name, content, topics and celebrity names.
func (v *View) ValidateContent() error {
	ve := &domain.ValidationError{}
	v.validateContent(ve)
	return ve.OrNil()
}

func (v *View) validateContent(ve *domain.ValidationError) {
	if isBlank(v.Name) {
		ve.Add(FieldName, "blog name should not be blank")
	}
	if isBlank(v.Content) {
		ve.Add(FieldContent, "blog content should not be blank")
	}
	for _, t := range v.Topics {
		if !t.IsValid() {
			ve.Add(FieldTopics, "unknown topic "+strings.TrimSpace(string(t)))
		}
	}
	for _, name := range v.CelebrityFullNames {
		if isBlank(name) {
			ve.Add(FieldCelebrityFullNames, "celebrity name should not be blank")
			break
		}
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
