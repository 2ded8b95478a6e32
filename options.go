package blogdex

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	driverBleve = "bleve"
	driverRedis = "redis"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "bleve" or "redis"
	path     string
	addrs    []string
	password string

	indexName         string
	keyPrefix         string
	maxResults        int
	strictCreate      bool
	textMatchOptional bool
	readinessTimeout  time.Duration

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithBleve stores blogs in an embedded bleve index under dir.
func WithBleve(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverBleve
		c.path = dir
		c.addrs = nil
	})
}

// WithMemory keeps every blog in an in-memory bleve index. This is the default.
func WithMemory() Option {
	return WithBleve("")
}

// WithRedis stores blogs in Redis 8+ (RediSearch and RedisJSON).
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithIndex overrides the index name and the Redis key prefix.
// Defaults: "blogs" and "blog:".
func WithIndex(name, keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexName = name
		c.keyPrefix = keyPrefix
	})
}

// WithMaxResults caps the number of search hits. Default: 1000.
func WithMaxResults(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxResults = n
	})
}

// WithStrictCreate makes Save fail with ErrAlreadyExists when the id is taken.
// By default a second Save with the same id overwrites the first.
func WithStrictCreate() Option {
	return optionFunc(func(c *clientConfig) {
		c.strictCreate = true
	})
}

// WithTextMatchOptional lets searches with a word also return blogs that
// match only the filters, ranked after every text match.
func WithTextMatchOptional() Option {
	return optionFunc(func(c *clientConfig) {
		c.textMatchOptional = true
	})
}

// WithReadinessTimeout bounds how long New waits for the engine. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
