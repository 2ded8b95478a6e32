package bleve

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	bq "github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/domain/search/query"
)

// Search runs a composite query. Hits are ordered by descending score.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	oi, err := s.lookup(ctx, q.IndexName)
	if err != nil {
		return nil, err
	}

	bleveQuery, err := buildQuery(oi, q.Query)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	req := bleve.NewSearchRequestOptions(bleveQuery, q.Limit, q.Offset, false)
	req.Fields = []string{sourceField}

	res, err := oi.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return toResult(res)
}

// List pages through every document ordered by id.
func (s *Store) List(ctx context.Context, index string, offset, limit int) (*db.SearchResult, error) {
	oi, err := s.lookup(ctx, index)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), limit, offset, false)
	req.Fields = []string{sourceField}
	req.SortBy([]string{"_id"})

	res, err := oi.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, &db.Error{Op: db.OpList, Err: err}
	}
	return toResult(res)
}

// Count returns the number of documents in the index.
func (s *Store) Count(ctx context.Context, index string) (int, error) {
	oi, err := s.lookup(ctx, index)
	if err != nil {
		return 0, err
	}
	n, err := oi.index.DocCount()
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return int(n), nil
}

func toResult(res *bleve.SearchResult) (*db.SearchResult, error) {
	out := &db.SearchResult{
		Total:   int(res.Total),
		Entries: make([]db.SearchEntry, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		src, err := hitSource(hit.Fields)
		if err != nil {
			return nil, err
		}
		out.Entries = append(out.Entries, db.SearchEntry{ID: hit.ID, Score: hit.Score, Source: src})
	}
	return out, nil
}

// --- Query building ---

// buildQuery maps a composite query onto a bleve boolean query. Filters are
// required clauses with zero boost so they never move the score; a query made
// of filters alone keeps unit boosts since bleve normalizes by the summed weights.
func buildQuery(oi *openIndex, q *query.Composite) (bq.Query, error) {
	if q.IsEmpty() {
		return bleve.NewMatchAllQuery(), nil
	}

	b := bleve.NewBooleanQuery()
	scoring := false

	for _, c := range q.MustClauses() {
		cq, err := buildClause(oi, c)
		if err != nil {
			return nil, err
		}
		scoring = scoring || !matchesNothing(cq)
		b.AddMust(cq)
	}

	if should := q.ShouldClauses(); len(should) > 0 {
		clauses := make([]bq.Query, 0, len(should))
		searchable := false
		for _, c := range should {
			cq, err := buildClause(oi, c)
			if err != nil {
				return nil, err
			}
			searchable = searchable || !matchesNothing(cq)
			clauses = append(clauses, cq)
		}
		// Text without searchable tokens (stop words, punctuation) behaves
		// like a blank word: the filters alone decide.
		if searchable {
			scoring = true
			b.AddShould(clauses...)
			b.SetMinShould(float64(q.MinShouldMatch()))
		}
	}

	for _, c := range q.FilterClauses() {
		cq, err := buildClause(oi, c)
		if err != nil {
			return nil, err
		}
		if bcq, ok := cq.(bq.BoostableQuery); ok && scoring {
			bcq.SetBoost(0)
		}
		b.AddMust(cq)
	}

	if !scoring && len(q.MustClauses()) == 0 && len(q.FilterClauses()) == 0 {
		return bleve.NewMatchAllQuery(), nil
	}
	return b, nil
}

func matchesNothing(q bq.Query) bool {
	_, ok := q.(*bq.MatchNoneQuery)
	return ok
}

func buildClause(oi *openIndex, c query.Clause) (bq.Query, error) {
	f, ok := oi.def.Field(c.Field())
	if !ok {
		return nil, fmt.Errorf("field %q is not indexed", c.Field())
	}

	switch c.Kind() {
	case query.KindTerm:
		var field string
		switch f.Type {
		case db.IndexFieldTag:
			field = f.Name
		case db.IndexFieldTextTag:
			field = db.ExactName(f.Name)
		default:
			return nil, fmt.Errorf("term on %s field %q", f.Type, f.Name)
		}
		tq := bleve.NewTermQuery(c.Value())
		tq.SetField(field)
		tq.SetBoost(c.Boost())
		return tq, nil

	case query.KindBool:
		if f.Type != db.IndexFieldBool {
			return nil, fmt.Errorf("bool on %s field %q", f.Type, f.Name)
		}
		bfq := bleve.NewBoolFieldQuery(c.BoolValue())
		bfq.SetField(f.Name)
		bfq.SetBoost(c.Boost())
		return bfq, nil

	case query.KindDateRange:
		if f.Type != db.IndexFieldDate {
			return nil, fmt.Errorf("date range on %s field %q", f.Type, f.Name)
		}
		inclusive := true
		drq := bleve.NewDateRangeInclusiveQuery(c.From(), c.To(), &inclusive, &inclusive)
		drq.SetField(f.Name)
		drq.SetBoost(c.Boost())
		return drq, nil

	case query.KindMatch:
		if f.Type != db.IndexFieldText && f.Type != db.IndexFieldTextTag {
			return nil, fmt.Errorf("match on %s field %q", f.Type, f.Name)
		}
		return buildMatch(oi, f.Name, c), nil

	default:
		return nil, fmt.Errorf("unsupported clause kind %s", c.Kind())
	}
}

// buildMatch analyzes the text like the indexed field and ORs one term or
// fuzzy query per token, the edit distance picked per token.
//
// Each matched token scores the clause boost as a constant, so a hit's score
// is the weighted count of matched tokens per field and does not depend on
// field length or term statistics.
func buildMatch(oi *openIndex, field string, c query.Clause) bq.Query {
	analyzer := oi.index.Mapping().AnalyzerNamed(standard.Name)
	tokens := analyzer.Analyze([]byte(c.Value()))
	if len(tokens) == 0 {
		return bleve.NewMatchNoneQuery()
	}

	terms := make([]bq.Query, 0, len(tokens))
	for _, tok := range tokens {
		terms = append(terms, weightedToken(field, string(tok.Term), c))
	}
	return bleve.NewDisjunctionQuery(terms...)
}

// weightedToken matches term in field and scores c's boost when it does.
func weightedToken(field, term string, c query.Clause) bq.Query {
	var match bq.Query
	if d := c.Fuzziness().ForToken(term); d > 0 {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetField(field)
		fq.SetFuzziness(d)
		fq.SetBoost(0)
		match = fq
	} else {
		tq := bleve.NewTermQuery(term)
		tq.SetField(field)
		tq.SetBoost(0)
		match = tq
	}

	weight := bleve.NewMatchAllQuery()
	weight.SetBoost(c.Boost())
	return bleve.NewConjunctionQuery(match, weight)
}
