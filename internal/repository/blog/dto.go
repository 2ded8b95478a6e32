package blog

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/blogdex/internal/domain/blog"
)

// blogJSON is the persisted JSON shape; dates are yyyy-MM-dd strings.
type blogJSON struct {
	ID                 int64     `json:"id"`
	Author             string    `json:"author"`
	Name               string    `json:"name"`
	Content            string    `json:"content"`
	PublishDate        blog.Date `json:"publishDate"`
	LastUpdateDate     blog.Date `json:"lastUpdateDate"`
	Topics             []string  `json:"topics"`
	CelebrityFullNames []string  `json:"celebrityFullNames"`
	Active             bool      `json:"active"`
}

func encodeDocument(d blog.Document) ([]byte, error) {
	topics := make([]string, len(d.Topics))
	for i, t := range d.Topics {
		topics[i] = string(t)
	}
	names := d.CelebrityFullNames
	if names == nil {
		names = []string{}
	}

	data, err := json.Marshal(blogJSON{
		ID:                 d.ID,
		Author:             d.Author,
		Name:               d.Name,
		Content:            d.Content,
		PublishDate:        d.PublishDate,
		LastUpdateDate:     d.LastUpdateDate,
		Topics:             topics,
		CelebrityFullNames: names,
		Active:             d.Active,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal blog %d: %w", d.ID, err)
	}
	return data, nil
}

func decodeDocument(data []byte) (blog.Document, error) {
	var j blogJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return blog.Document{}, fmt.Errorf("unmarshal blog: %w", err)
	}

	topics := make([]blog.Topic, len(j.Topics))
	for i, t := range j.Topics {
		topics[i] = blog.Topic(t)
	}
	names := j.CelebrityFullNames
	if names == nil {
		names = []string{}
	}

	return blog.Document{
		ID:                 j.ID,
		Author:             j.Author,
		Name:               j.Name,
		Content:            j.Content,
		PublishDate:        j.PublishDate,
		LastUpdateDate:     j.LastUpdateDate,
		Topics:             topics,
		CelebrityFullNames: names,
		Active:             j.Active,
	}, nil
}
