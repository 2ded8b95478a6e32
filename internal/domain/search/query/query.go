// Package query defines the engine-neutral composite search query: scored
// "should" and "must" clauses plus non-scoring "filter" clauses.
package query

import (
	"fmt"
	"time"
)

// Kind enumerates clause operators.
type Kind int

const (
	// KindTerm matches an exact keyword value.
	KindTerm Kind = iota
	// KindBool matches a boolean value.
	KindBool
	// KindDateRange matches a calendar date range, inclusive on both ends.
	KindDateRange
	// KindMatch is an analyzed full-text match.
	KindMatch
)

func (k Kind) String() string {
	switch k {
	case KindTerm:
		return "term"
	case KindBool:
		return "bool"
	case KindDateRange:
		return "date_range"
	case KindMatch:
		return "match"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Fuzziness is the maximum edit distance per analyzed token.
// FuzzinessAuto picks the distance from each token's length.
type Fuzziness int

// FuzzinessAuto selects 0, 1 or 2 edits depending on token length.
const FuzzinessAuto Fuzziness = -1

// MaxFuzziness is the largest edit distance engines accept.
const MaxFuzziness Fuzziness = 2

// ForToken resolves the edit distance applied to a single token.
func (f Fuzziness) ForToken(token string) int {
	if f != FuzzinessAuto {
		return int(min(max(f, 0), MaxFuzziness))
	}
	switch n := len([]rune(token)); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

// Clause is a single query operator bound to one field.
type Clause struct {
	kind      Kind
	field     string
	value     string
	boolValue bool
	from, to  time.Time
	boost     float64
	fuzziness Fuzziness
}

// Term creates an exact keyword clause.
func Term(field, value string) Clause {
	return Clause{kind: KindTerm, field: field, value: value, boost: 1}
}

// Bool creates a boolean equality clause.
func Bool(field string, value bool) Clause {
	return Clause{kind: KindBool, field: field, boolValue: value, boost: 1}
}

// DateRange creates an inclusive calendar date range clause.
// Only the date part of from and to is meaningful.
func DateRange(field string, from, to time.Time) Clause {
	return Clause{kind: KindDateRange, field: field, from: from, to: to, boost: 1}
}

// Match creates an analyzed full-text clause with exact (non-fuzzy) matching.
func Match(field, text string) Clause {
	return Clause{kind: KindMatch, field: field, value: text, boost: 1}
}

// WithBoost returns a copy of c with the relevance multiplier set.
func (c Clause) WithBoost(boost float64) Clause {
	c.boost = boost
	return c
}

// WithFuzziness returns a copy of c with approximate matching enabled.
func (c Clause) WithFuzziness(f Fuzziness) Clause {
	c.fuzziness = f
	return c
}

// Kind returns the clause operator.
func (c Clause) Kind() Kind { return c.kind }

// Field returns the target field name.
func (c Clause) Field() string { return c.field }

// Value returns the term value or the match text.
func (c Clause) Value() string { return c.value }

// BoolValue returns the expected boolean for KindBool.
func (c Clause) BoolValue() bool { return c.boolValue }

// From returns the inclusive lower bound for KindDateRange.
func (c Clause) From() time.Time { return c.from }

// To returns the inclusive upper bound for KindDateRange.
func (c Clause) To() time.Time { return c.to }

// Boost returns the relevance multiplier.
func (c Clause) Boost() float64 { return c.boost }

// Fuzziness returns the edit distance policy for KindMatch.
func (c Clause) Fuzziness() Fuzziness { return c.fuzziness }

// Composite combines scored and non-scored clauses.
//
//   - must: every clause has to match and contributes to the score
//   - should: optional scored clauses; at least MinShouldMatch of them must match
//   - filter: every clause has to match and contributes nothing to the score
type Composite struct {
	must           []Clause
	should         []Clause
	filter         []Clause
	minShouldMatch int
}

// New creates an empty composite query.
func New() *Composite {
	return &Composite{}
}

// Must appends mandatory scored clauses.
func (q *Composite) Must(c ...Clause) *Composite {
	q.must = append(q.must, c...)
	return q
}

// Should appends optional scored clauses.
func (q *Composite) Should(c ...Clause) *Composite {
	q.should = append(q.should, c...)
	return q
}

// Filter appends mandatory non-scoring clauses.
func (q *Composite) Filter(c ...Clause) *Composite {
	q.filter = append(q.filter, c...)
	return q
}

// MinimumShouldMatch sets how many should clauses a hit needs.
func (q *Composite) MinimumShouldMatch(n int) *Composite {
	q.minShouldMatch = max(n, 0)
	return q
}

// MustClauses returns the must clauses.
func (q *Composite) MustClauses() []Clause { return q.must }

// ShouldClauses returns the should clauses.
func (q *Composite) ShouldClauses() []Clause { return q.should }

// FilterClauses returns the filter clauses.
func (q *Composite) FilterClauses() []Clause { return q.filter }

// MinShouldMatch returns the effective minimum number of should matches,
// capped at the number of should clauses.
func (q *Composite) MinShouldMatch() int {
	return min(q.minShouldMatch, len(q.should))
}

// IsEmpty reports whether the query has no clauses (match everything).
func (q *Composite) IsEmpty() bool {
	return len(q.must) == 0 && len(q.should) == 0 && len(q.filter) == 0
}

// HasScoring reports whether any clause contributes to relevance.
func (q *Composite) HasScoring() bool {
	return len(q.must) > 0 || len(q.should) > 0
}

// Validate checks clause well-formedness.
func (q *Composite) Validate() error {
	groups := []struct {
		name    string
		clauses []Clause
	}{{"must", q.must}, {"should", q.should}, {"filter", q.filter}}

	for _, g := range groups {
		for i, c := range g.clauses {
			if c.field == "" {
				return fmt.Errorf("%s[%d]: field is required", g.name, i)
			}
			if c.boost < 0 {
				return fmt.Errorf("%s[%d]: boost must not be negative", g.name, i)
			}
			if c.kind == KindDateRange && c.to.Before(c.from) {
				return fmt.Errorf("%s[%d]: date range upper bound precedes lower bound", g.name, i)
			}
		}
	}
	return nil
}
