package vecdesk

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	settings   SettingsStore
	httpClient *http.Client

	embedder Embedder

	countConcurrency   int
	defaultSearchLimit int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithSettings sets the settings collaborator the connection is loaded
// from. Defaults to FileSettings("", "", logger).
func WithSettings(s SettingsStore) Option {
	return optionFunc(func(c *clientConfig) {
		c.settings = s
	})
}

// WithHTTPClient sets the HTTP client used for store calls.
// Its timeout is the only one applied. Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithEmbedder vectorizes vector-search queries client-side (nearVector).
// Without it the store's own vectorizer is used (nearText).
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithCountConcurrency bounds parallel count queries in ListCollections.
// Default: 4.
func WithCountConcurrency(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.countConcurrency = n
	})
}

// WithDefaultSearchLimit sets the limit used when a SearchRequest has none.
// Default: 10.
func WithDefaultSearchLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultSearchLimit = n
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
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
