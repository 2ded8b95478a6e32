package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/domain/search/query"
)

// Search runs a composite query via FT.SEARCH ... WITHSCORES.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	def, err := s.lookup(q.IndexName)
	if err != nil {
		return nil, err
	}

	queryStr, err := buildQuery(def, q.Query)
	if errors.Is(err, errMatchesNothing) {
		return &db.SearchResult{}, nil
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	args := []string{
		q.IndexName, queryStr,
		"WITHSCORES",
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseResult(raw, def.KeyPrefix, true)
}

// List pages through every document of the index via FT.SEARCH "*".
func (s *Store) List(ctx context.Context, index string, offset, limit int) (*db.SearchResult, error) {
	def, err := s.lookup(index)
	if err != nil {
		return nil, err
	}

	args := []string{index, "*", "LIMIT", strconv.Itoa(offset), strconv.Itoa(limit), "DIALECT", "2"}
	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpList, Err: err}
	}

	return parseResult(raw, def.KeyPrefix, false)
}

// Count returns document count via FT.SEARCH with LIMIT 0 0.
func (s *Store) Count(ctx context.Context, index string) (int, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").Args(index, "*", "LIMIT", "0", "0").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// --- Result parsing ---

// parseResult reads [total, key, (score,) fields, ...] replies.
func parseResult(raw []rueidis.RedisMessage, prefix string, withScores bool) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	stride := 2
	if withScores {
		stride = 3
	}

	entries := make([]db.SearchEntry, 0, min(int(total), (len(raw)-1)/stride))
	for i := 1; i+stride-1 < len(raw); i += stride {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		var score float64
		if withScores {
			scoreStr, err := raw[i+1].ToString()
			if err != nil {
				continue
			}
			if score, err = strconv.ParseFloat(scoreStr, 64); err != nil {
				continue
			}
		}

		fields, err := raw[i+stride-1].ToArray()
		if err != nil {
			continue
		}
		source, err := stripShadowFields([]byte(parseFieldPairs(fields)["$"]))
		if err != nil {
			return nil, err
		}

		entries = append(entries, db.SearchEntry{
			ID:     strings.TrimPrefix(key, prefix),
			Score:  score,
			Source: source,
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// errMatchesNothing reports a query that cannot match any document, such as
// a required match whose text has no searchable tokens.
var errMatchesNothing = errors.New("query matches nothing")

// buildQuery translates a composite query into FT.SEARCH DIALECT 2 syntax.
// Adjacent expressions intersect; "~" marks an optional (score-only) group.
func buildQuery(def *db.IndexDefinition, q *query.Composite) (string, error) {
	var parts []string

	for _, c := range q.MustClauses() {
		expr, err := buildClause(def, c)
		if err != nil {
			return "", err
		}
		if expr == "" {
			return "", errMatchesNothing
		}
		parts = append(parts, expr)
	}

	if should := q.ShouldClauses(); len(should) > 0 {
		exprs := make([]string, 0, len(should))
		for _, c := range should {
			expr, err := buildClause(def, c)
			if err != nil {
				return "", err
			}
			if expr != "" {
				exprs = append(exprs, expr)
			}
		}

		// Text without searchable tokens behaves like a blank word.
		switch n := q.MinShouldMatch(); {
		case len(exprs) == 0:
		case n > len(exprs):
			return "", errMatchesNothing
		case n == 0:
			parts = append(parts, "~("+strings.Join(exprs, " | ")+")")
		case n == 1:
			parts = append(parts, "("+strings.Join(exprs, " | ")+")")
		case n == len(exprs):
			parts = append(parts, exprs...)
		default:
			return "", fmt.Errorf("minimum should match %d of %d is not supported", n, len(exprs))
		}
	}

	for _, c := range q.FilterClauses() {
		expr, err := buildClause(def, c)
		if err != nil {
			return "", err
		}
		parts = append(parts, expr)
	}

	if len(parts) == 0 {
		return "*", nil
	}
	return strings.Join(parts, " "), nil
}

func buildClause(def *db.IndexDefinition, c query.Clause) (string, error) {
	f, ok := def.Field(c.Field())
	if !ok {
		return "", fmt.Errorf("field %q is not indexed", c.Field())
	}

	switch c.Kind() {
	case query.KindTerm:
		switch f.Type {
		case db.IndexFieldTag:
			return buildTagFilter(f.Name, c.Value()), nil
		case db.IndexFieldTextTag:
			return buildTagFilter(db.ExactName(f.Name), c.Value()), nil
		default:
			return "", fmt.Errorf("term on %s field %q", f.Type, f.Name)
		}

	case query.KindBool:
		if f.Type != db.IndexFieldBool {
			return "", fmt.Errorf("bool on %s field %q", f.Type, f.Name)
		}
		return buildTagFilter(f.Name, strconv.FormatBool(c.BoolValue())), nil

	case query.KindDateRange:
		if f.Type != db.IndexFieldDate {
			return "", fmt.Errorf("date range on %s field %q", f.Type, f.Name)
		}
		return fmt.Sprintf("@%s:[%d %d]", f.Name, dayEpoch(c.From()), dayEpoch(c.To())), nil

	case query.KindMatch:
		if f.Type != db.IndexFieldText && f.Type != db.IndexFieldTextTag {
			return "", fmt.Errorf("match on %s field %q", f.Type, f.Name)
		}
		return buildMatch(f.Name, c), nil

	default:
		return "", fmt.Errorf("unsupported clause kind %s", c.Kind())
	}
}

// buildMatch ORs the tokens of the match text, each wrapped in %...% per
// edit, and attaches the boost as a $weight attribute.
func buildMatch(field string, c query.Clause) string {
	tokens := tokenize(c.Value())
	if len(tokens) == 0 {
		return ""
	}

	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		pad := strings.Repeat("%", c.Fuzziness().ForToken(tok))
		terms[i] = pad + tok + pad
	}

	expr := fmt.Sprintf("@%s:(%s)", field, strings.Join(terms, "|"))
	if c.Boost() != 1 {
		expr = fmt.Sprintf("(%s) => { $weight: %s; }", expr, strconv.FormatFloat(c.Boost(), 'f', 1, 64))
	}
	return expr
}

// stopWords is the RediSearch default list; the engine indexes none of them.
var stopWords = map[string]bool{
	"a": true, "is": true, "the": true, "an": true, "and": true, "are": true,
	"as": true, "at": true, "be": true, "but": true, "by": true, "for": true,
	"if": true, "in": true, "into": true, "it": true, "no": true, "not": true,
	"of": true, "on": true, "or": true, "such": true, "that": true, "their": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"to": true, "was": true, "will": true, "with": true,
}

// tokenize lowercases s, splits it on anything but letters and digits and
// drops stop words. What is left needs no escaping in the query parser.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return slices.DeleteFunc(fields, func(tok string) bool { return stopWords[tok] })
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

func dayEpoch(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)
