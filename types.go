package blogdex

import (
	"time"

	domblog "github.com/kailas-cloud/blogdex/internal/domain/blog"
)

// Topic is a subject a blog brings up.
type Topic string

// Known topics.
const (
	TopicPolitics      = Topic(domblog.TopicPolitics)
	TopicEconomy       = Topic(domblog.TopicEconomy)
	TopicTechnology    = Topic(domblog.TopicTechnology)
	TopicScience       = Topic(domblog.TopicScience)
	TopicSports        = Topic(domblog.TopicSports)
	TopicCulture       = Topic(domblog.TopicCulture)
	TopicEntertainment = Topic(domblog.TopicEntertainment)
	TopicHealth        = Topic(domblog.TopicHealth)
	TopicTravel        = Topic(domblog.TopicTravel)
	TopicOther         = Topic(domblog.TopicOther)
)

// Blog is one blog post.
//
// Dates are calendar dates: only year, month and day are kept.
// LastUpdateDate is set by the client and ignored on input.
// Active controls whether Search can return the blog.
type Blog struct {
	ID                 int64
	Author             string
	Name               string
	Content            string
	PublishDate        time.Time
	LastUpdateDate     time.Time
	Topics             []Topic
	CelebrityFullNames []string
	Active             bool
}

func toView(b Blog) domblog.View {
	topics := make([]domblog.Topic, len(b.Topics))
	for i, t := range b.Topics {
		topics[i] = domblog.Topic(t)
	}
	return domblog.View{
		ID:                 b.ID,
		Author:             b.Author,
		Name:               b.Name,
		Content:            b.Content,
		PublishDate:        toDate(b.PublishDate),
		LastUpdateDate:     toDate(b.LastUpdateDate),
		Topics:             topics,
		CelebrityFullNames: b.CelebrityFullNames,
		Active:             b.Active,
	}
}

func fromView(v domblog.View) Blog {
	topics := make([]Topic, len(v.Topics))
	for i, t := range v.Topics {
		topics[i] = Topic(t)
	}
	return Blog{
		ID:                 v.ID,
		Author:             v.Author,
		Name:               v.Name,
		Content:            v.Content,
		PublishDate:        fromDate(v.PublishDate),
		LastUpdateDate:     fromDate(v.LastUpdateDate),
		Topics:             topics,
		CelebrityFullNames: v.CelebrityFullNames,
		Active:             v.Active,
	}
}

func fromViews(views []domblog.View) []Blog {
	out := make([]Blog, len(views))
	for i, v := range views {
		out[i] = fromView(v)
	}
	return out
}

func toDate(t time.Time) domblog.Date {
	if t.IsZero() {
		return domblog.Date{}
	}
	return domblog.DateOf(t)
}

func fromDate(d domblog.Date) time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return d.Time()
}
