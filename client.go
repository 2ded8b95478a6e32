package blogdex

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/blogdex/internal/db"
	dbBleve "github.com/kailas-cloud/blogdex/internal/db/bleve"
	dbRedis "github.com/kailas-cloud/blogdex/internal/db/redis"
	blogrepo "github.com/kailas-cloud/blogdex/internal/repository/blog"
	chiTransport "github.com/kailas-cloud/blogdex/internal/transport/chi"
	bloguc "github.com/kailas-cloud/blogdex/internal/usecase/blog"
	healthuc "github.com/kailas-cloud/blogdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/blogdex/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the blogdex entry point.
type Client struct {
	store     db.Store
	indexName string
	blogs     *bloguc.Service
	health    *healthuc.Service
	logger    *zap.Logger
	obs       *observer
}

// New opens the configured engine, waits for it, and ensures the blog index exists.
// Without options blogs live in memory.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:           driverBleve,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("blogdex: engine not ready: %w", err)
	}

	c, err := wireClient(ctx, store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	c.obs = obs
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverBleve:
		s, err := dbBleve.NewStore(dbBleve.Config{Path: cfg.path})
		if err != nil {
			return nil, fmt.Errorf("blogdex: create bleve store: %w", err)
		}
		return s, nil
	case driverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("blogdex: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("blogdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	repo, err := blogrepo.New(store, blogrepo.Config{
		IndexName:  cfg.indexName,
		KeyPrefix:  cfg.keyPrefix,
		MaxResults: cfg.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("blogdex: %w", err)
	}
	if err := repo.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("blogdex: %w", err)
	}

	var composerOpts []searchuc.Option
	if cfg.textMatchOptional {
		composerOpts = append(composerOpts, searchuc.WithMinShouldMatch(0))
	}

	indexName := cfg.indexName
	if indexName == "" {
		indexName = blogrepo.DefaultIndexName
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		store:     store,
		indexName: indexName,
		blogs: bloguc.New(repo).
			WithComposer(searchuc.NewComposer(composerOpts...)).
			WithStrictCreate(cfg.strictCreate).
			WithMaxResults(cfg.maxResults),
		health: healthuc.New(store, store, indexName),
		logger: logger,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Get returns the blog with id, or ErrNotFound.
func (c *Client) Get(ctx context.Context, id int64) (b Blog, err error) {
	defer func(start time.Time) { c.obs.observe(opGet, start, err) }(time.Now())

	v, err := c.blogs.FindByID(ctx, id)
	if err != nil {
		return Blog{}, err
	}
	return fromView(v), nil
}

// All returns every stored blog in engine order.
func (c *Client) All(ctx context.Context) (blogs []Blog, err error) {
	defer func(start time.Time) { c.obs.observe(opAll, start, err) }(time.Now())

	views, err := c.blogs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return fromViews(views), nil
}

// Save stores a new blog and returns it as persisted.
// LastUpdateDate is set to PublishDate.
func (c *Client) Save(ctx context.Context, b Blog) (saved Blog, err error) {
	defer func(start time.Time) { c.obs.observe(opSave, start, err) }(time.Now())

	v, err := c.blogs.Save(ctx, toView(b))
	if err != nil {
		return Blog{}, err
	}
	return fromView(v), nil
}

// Update replaces name, content, topics and celebrity names of the blog with id.
// Author, PublishDate and Active keep their stored values.
func (c *Client) Update(ctx context.Context, id int64, b Blog) (updated Blog, err error) {
	defer func(start time.Time) { c.obs.observe(opUpdate, start, err) }(time.Now())

	v, err := c.blogs.Update(ctx, id, toView(b))
	if err != nil {
		return Blog{}, err
	}
	return fromView(v), nil
}

// Delete removes the blog with id, or returns ErrNotFound.
func (c *Client) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { c.obs.observe(opDelete, start, err) }(time.Now())

	return c.blogs.DeleteByID(ctx, id)
}

// Search starts a blog search.
func (c *Client) Search() *SearchBuilder {
	return &SearchBuilder{client: c}
}

// Handler serves the blog HTTP API on top of this client:
// /blogs CRUD and search, /health and /metrics.
func (c *Client) Handler() http.Handler {
	server := chiTransport.NewServer(c.blogs, c.health, c.logger)
	return chiTransport.NewRouter(server, c.logger)
}
