package request

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/blogdex/internal/domain"
)

// Search parameter limits.
const (
	// MaxWordLength is the maximum allowed free-text word length.
	MaxWordLength = 4096
	// MaxCelebrities caps the celebrity intersection filter.
	MaxCelebrities = 32
	MinYear        = 1
	MaxYear        = 9999
)

// Search is a validated multi-criteria blog search.
type Search struct {
	word        string
	celebrities []string
	year        int
	author      string
}

// New validates and normalizes search parameters.
// The word is trimmed and may be empty. Celebrity names are trimmed,
// blanks dropped, duplicates collapsed and the set sorted.
func New(word string, celebrities []string, year int, author string) (Search, error) {
	ve := &domain.ValidationError{}

	word = strings.TrimSpace(word)
	if len(word) > MaxWordLength {
		ve.Add("word", "word too long")
	}

	names := make([]string, 0, len(celebrities))
	for _, c := range celebrities {
		if c = strings.TrimSpace(c); c != "" {
			names = append(names, c)
		}
	}
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) > MaxCelebrities {
		ve.Add("celebrities", "too many celebrities")
	}

	if year < MinYear || year > MaxYear {
		ve.Add("year", "must be a calendar year between 1 and 9999")
	}

	if strings.TrimSpace(author) == "" {
		ve.Add("author", "must not be blank")
	}

	if err := ve.OrNil(); err != nil {
		return Search{}, err
	}

	return Search{word: word, celebrities: names, year: year, author: author}, nil
}

// Word returns the free-text word, possibly empty.
func (s Search) Word() string { return s.word }

// Celebrities returns the sorted set of required celebrity names.
func (s Search) Celebrities() []string { return s.celebrities }

// Year returns the publication year.
func (s Search) Year() int { return s.year }

// Author returns the exact author to filter on.
func (s Search) Author() string { return s.author }
