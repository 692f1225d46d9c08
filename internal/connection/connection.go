package connection

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

// NotConfigured is what CurrentEndpoint reports when no url is set.
const NotConfigured = "(not configured)"

// Settings is the pair persisted by the settings collaborator.
type Settings struct {
	URL        string `yaml:"url"`
	Credential string `yaml:"-"`
}

// Source loads the persisted settings.
type Source interface {
	GetSettings(ctx context.Context) (Settings, error)
}

// Connection is an immutable url/credential pair. URL is normalized.
type Connection struct {
	URL        string
	Credential string
}

// Configured reports whether the url is usable.
func (c Connection) Configured() bool { return c.URL != "" }

// State holds the current connection. It is only ever replaced wholesale,
// so concurrent readers see either the old or the new pair.
type State struct {
	source  Source
	current atomic.Pointer[Connection]
}

// New creates a State backed by source. Nothing is loaded until Initialize.
func New(source Source) *State {
	s := &State{source: source}
	s.current.Store(&Connection{})
	return s
}

// Initialize reloads the settings and replaces the current connection.
// It is a local lookup and is called before every store operation.
func (s *State) Initialize(ctx context.Context) (Connection, error) {
	if s.source == nil {
		return Connection{}, &domain.ConfigurationError{Reason: "no settings source"}
	}
	st, err := s.source.GetSettings(ctx)
	if err != nil {
		return Connection{}, &domain.ConfigurationError{Reason: fmt.Sprintf("load settings: %v", err)}
	}
	conn := &Connection{URL: NormalizeURL(st.URL), Credential: st.Credential}
	s.current.Store(conn)
	return *conn, nil
}

// Snapshot returns the current connection without reloading.
func (s *State) Snapshot() Connection { return *s.current.Load() }

// CurrentEndpoint returns the normalized url for display, or NotConfigured.
func (s *State) CurrentEndpoint() string {
	if u := s.Snapshot().URL; u != "" {
		return u
	}
	return NotConfigured
}

// Require initializes and fails with a ConfigurationError when the url is
// empty.
func (s *State) Require(ctx context.Context) (Connection, error) {
	conn, err := s.Initialize(ctx)
	if err != nil {
		return Connection{}, err
	}
	if !conn.Configured() {
		return Connection{}, &domain.ConfigurationError{Reason: "store url is empty"}
	}
	return conn, nil
}

// NormalizeURL trims whitespace, prefixes http:// when no http(s) scheme is
// present and strips trailing slashes. Blank input yields "".
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		u = "http://" + u
	}
	return strings.TrimRight(u, "/")
}
