package blog

import (
	"fmt"
	"slices"
)

// Topic is a subject a blog brings up.
type Topic string

// Known topics.
const (
	TopicPolitics      Topic = "POLITICS"
	TopicEconomy       Topic = "ECONOMY"
	TopicTechnology    Topic = "TECHNOLOGY"
	TopicScience       Topic = "SCIENCE"
	TopicSports        Topic = "SPORTS"
	TopicCulture       Topic = "CULTURE"
	TopicEntertainment Topic = "ENTERTAINMENT"
	TopicHealth        Topic = "HEALTH"
	TopicTravel        Topic = "TRAVEL"
	TopicOther         Topic = "OTHER"
)

var knownTopics = map[Topic]bool{
	TopicPolitics:      true,
	TopicEconomy:       true,
	TopicTechnology:    true,
	TopicScience:       true,
	TopicSports:        true,
	TopicCulture:       true,
	TopicEntertainment: true,
	TopicHealth:        true,
	TopicTravel:        true,
	TopicOther:         true,
}

// IsValid reports whether t is a known topic.
func (t Topic) IsValid() bool { return knownTopics[t] }

// ParseTopic validates a raw topic value.
func ParseTopic(s string) (Topic, error) {
	t := Topic(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown topic %q", s)
	}
	return t, nil
}

// Topics returns every known topic in a stable order.
func Topics() []Topic {
	out := make([]Topic, 0, len(knownTopics))
	for t := range knownTopics {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
