package blog

import (
	"context"
	"iter"

	"github.com/kailas-cloud/blogdex/internal/domain"
	domblog "github.com/kailas-cloud/blogdex/internal/domain/blog"
	"github.com/kailas-cloud/blogdex/internal/domain/search/query"
)

// mockRepo implements Repository for tests. Unset functions fall back to an
// in-memory map.
type mockRepo struct {
	docs map[int64]domblog.Document

	getFn    func(ctx context.Context, id int64) (domblog.Document, error)
	upsertFn func(ctx context.Context, doc domblog.Document) error
	createFn func(ctx context.Context, doc domblog.Document) error
	deleteFn func(ctx context.Context, id int64) error
	existsFn func(ctx context.Context, id int64) (bool, error)
	queryFn  func(ctx context.Context, q *query.Composite, limit int) ([]domblog.Document, error)
	listErr  error

	upserts int
	creates int
}

func newMockRepo(docs ...domblog.Document) *mockRepo {
	m := &mockRepo{docs: make(map[int64]domblog.Document)}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m *mockRepo) Get(ctx context.Context, id int64) (domblog.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	d, ok := m.docs[id]
	if !ok {
		return domblog.Document{}, domain.ErrNotFound
	}
	return d, nil
}

func (m *mockRepo) List(context.Context) iter.Seq2[domblog.Document, error] {
	return func(yield func(domblog.Document, error) bool) {
		if m.listErr != nil {
			yield(domblog.Document{}, m.listErr)
			return
		}
		for _, d := range m.docs {
			if !yield(d, nil) {
				return
			}
		}
	}
}

func (m *mockRepo) Upsert(ctx context.Context, doc domblog.Document) error {
	m.upserts++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, doc)
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockRepo) Create(ctx context.Context, doc domblog.Document) error {
	m.creates++
	if m.createFn != nil {
		return m.createFn(ctx, doc)
	}
	if _, ok := m.docs[doc.ID]; ok {
		return domain.ErrAlreadyExists
	}
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	if _, ok := m.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *mockRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	_, ok := m.docs[id]
	return ok, nil
}

func (m *mockRepo) Query(ctx context.Context, q *query.Composite, limit int) ([]domblog.Document, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, q, limit)
	}
	return []domblog.Document{}, nil
}

type fixedClock domblog.Date

func (c fixedClock) Today() domblog.Date { return domblog.Date(c) }

func validView(id int64) domblog.View {
	return domblog.View{
		ID:                 id,
		Author:             "jane",
		Name:               "AI rising",
		Content:            "Machines learn.",
		PublishDate:        domblog.MustParseDate("2023-03-01"),
		LastUpdateDate:     domblog.MustParseDate("2030-01-01"),
		Topics:             []domblog.Topic{domblog.TopicTechnology},
		CelebrityFullNames: []string{"Elon Musk"},
		Active:             true,
	}
}
