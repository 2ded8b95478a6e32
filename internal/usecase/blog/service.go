// Package blog implements the blog use cases: lookup, listing, search and
// the create/update/delete policy.
package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/blogdex/internal/domain"
	domblog "github.com/kailas-cloud/blogdex/internal/domain/blog"
	"github.com/kailas-cloud/blogdex/internal/domain/search/request"
	"github.com/kailas-cloud/blogdex/internal/usecase/search"
)

type systemClock struct{}

func (systemClock) Today() domblog.Date { return domblog.DateOf(time.Now().UTC()) }

// Service handles blog CRUD and search.
type Service struct {
	repo         Repository
	composer     Composer
	clock        Clock
	strictCreate bool
	maxResults   int
}

// New creates a blog service with the default composer and the system clock.
func New(repo Repository) *Service {
	return &Service{
		repo:     repo,
		composer: search.NewComposer(),
		clock:    systemClock{},
	}
}

// WithComposer replaces the search query composer.
func (s *Service) WithComposer(c Composer) *Service {
	if c != nil {
		s.composer = c
	}
	return s
}

// WithClock replaces the clock used to stamp updates.
func (s *Service) WithClock(c Clock) *Service {
	if c != nil {
		s.clock = c
	}
	return s
}

// WithStrictCreate makes Save fail with domain.ErrAlreadyExists on a taken id
// instead of overwriting the stored blog.
func (s *Service) WithStrictCreate(strict bool) *Service {
	s.strictCreate = strict
	return s
}

// WithMaxResults caps the number of search hits. Zero leaves the cap to the repository.
func (s *Service) WithMaxResults(n int) *Service {
	if n > 0 {
		s.maxResults = n
	}
	return s
}

// FindByID returns the blog with the given id.
func (s *Service) FindByID(ctx context.Context, id int64) (domblog.View, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domblog.View{}, fmt.Errorf("get blog: %w", err)
	}
	return domblog.ToView(doc), nil
}

// FindAll returns every stored blog in store order. An empty store yields an empty slice.
func (s *Service) FindAll(ctx context.Context) ([]domblog.View, error) {
	views := make([]domblog.View, 0)
	for doc, err := range s.repo.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
		views = append(views, domblog.ToView(doc))
	}
	return views, nil
}

// Search returns active blogs matching the criteria by descending relevance.
func (s *Service) Search(
	ctx context.Context, word string, celebrities []string, year int, author string,
) ([]domblog.View, error) {
	req, err := request.New(word, celebrities, year, author)
	if err != nil {
		return nil, err
	}

	docs, err := s.repo.Query(ctx, s.composer.Compose(req), s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("search blogs: %w", err)
	}
	return domblog.ToViews(docs), nil
}

// Save persists a new blog. lastUpdateDate is forced to publishDate.
// A taken id is overwritten unless strict create is enabled.
func (s *Service) Save(ctx context.Context, v domblog.View) (domblog.View, error) {
	if err := v.Validate(); err != nil {
		return domblog.View{}, err
	}

	doc := domblog.FromView(v)
	doc.LastUpdateDate = doc.PublishDate

	if s.strictCreate {
		if err := s.repo.Create(ctx, doc); err != nil {
			return domblog.View{}, fmt.Errorf("create blog: %w", err)
		}
	} else if err := s.repo.Upsert(ctx, doc); err != nil {
		return domblog.View{}, fmt.Errorf("save blog: %w", err)
	}

	return domblog.ToView(doc), nil
}

// Update replaces name, content, topics and celebrity names of the blog with id.
// Author, publishDate and active are kept from the stored blog and
// lastUpdateDate becomes today, never earlier than publishDate.
func (s *Service) Update(ctx context.Context, id int64, v domblog.View) (domblog.View, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return domblog.View{}, fmt.Errorf("get blog: %w", err)
	}

	if err := v.ValidateContent(); err != nil {
		return domblog.View{}, err
	}

	in := domblog.FromView(v)
	doc := existing
	doc.ID = id
	doc.Name = in.Name
	doc.Content = in.Content
	doc.Topics = in.Topics
	doc.CelebrityFullNames = in.CelebrityFullNames
	doc.LastUpdateDate = s.clock.Today()
	if doc.LastUpdateDate.Before(doc.PublishDate) {
		doc.LastUpdateDate = doc.PublishDate
	}

	if err := s.repo.Upsert(ctx, doc); err != nil {
		return domblog.View{}, fmt.Errorf("update blog: %w", err)
	}
	return domblog.ToView(doc), nil
}

// DeleteByID removes the blog with id, failing with domain.ErrNotFound if absent.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check blog: %w", err)
	}
	if !ok {
		return fmt.Errorf("blog %d: %w", id, domain.ErrNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}
