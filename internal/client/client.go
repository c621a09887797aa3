// Package client talks to the library API on behalf of the shelf CLI and the
// state containers.
//
// Reads degrade to cached or built-in fixture data when the API cannot be
// reached. List mutations degrade to locally synthesized results unless the
// client is built WithStrictWrites. Every fallback is logged at warn level.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"libraryapi/internal/book"
	"libraryapi/internal/logging"
)

const (
	DefaultBaseURL    = "http://localhost:3000/api"
	DefaultCatalogTTL = 5 * time.Minute
	DefaultUserID     = "1"
)

// ErrNotFound is returned when the API or the fixture set has no such entry.
var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Code)
	}
	return fmt.Sprintf("api: status %d: %s", e.Code, e.Message)
}

// TokenSource supplies the bearer token for mutating calls. An empty token
// means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns itself.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	userID  string
	ttl     time.Duration
	strict  bool
	now     func() time.Time
	log     zerolog.Logger

	breaker *gobreaker.CircuitBreaker[[]byte]
	group   singleflight.Group
	cache   catalogCache
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithCatalogTTL sets how long a fetched catalog is served without a network call.
func WithCatalogTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithUserID sets the identity sent as userId on reading list calls.
func WithUserID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.userID = id
		}
	}
}

// WithStrictWrites makes list mutations return transport and server errors
// instead of synthesizing a local result.
func WithStrictWrites() Option {
	return func(c *Client) { c.strict = true }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithBreakerSettings replaces the default circuit breaker settings.
// IsSuccessful is always overridden so that 4xx answers do not trip it.
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(c *Client) { c.breaker = newBreaker(st) }
}

// New builds a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		userID:  DefaultUserID,
		ttl:     DefaultCatalogTTL,
		now:     time.Now,
		log:     logging.With("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = newBreaker(defaultBreakerSettings())
	}
	return c
}

func defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "library-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

func newBreaker(st gobreaker.Settings) *gobreaker.CircuitBreaker[[]byte] {
	st.IsSuccessful = func(err error) bool {
		var se *StatusError
		return err == nil || (errors.As(err, &se) && se.Code < http.StatusInternalServerError)
	}
	if st.OnStateChange == nil {
		st.OnStateChange = func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		}
	}
	return gobreaker.NewCircuitBreaker[[]byte](st)
}

// UserID is the identity sent on reading list calls.
func (c *Client) UserID() string { return c.userID }

// do sends one request through the breaker and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if method != http.MethodGet {
			c.authorize(ctx, req)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, statusError(resp.StatusCode, data)
		}
		return data, nil
	})
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("no session token, sending unauthenticated")
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func statusError(code int, body []byte) *StatusError {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	se := &StatusError{Code: code}
	if json.Unmarshal(body, &env) == nil {
		se.Message = env.Error
		if env.Message != "" {
			se.Message += ": " + env.Message
		}
	}
	return se
}

func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// fallback logs that op degraded to local data.
func (c *Client) fallback(op string, err error) {
	c.log.Warn().Err(err).Str("op", op).Msg("api unavailable, using local data")
}

type catalogCache struct {
	mu        sync.Mutex
	books     []book.Book
	fetchedAt time.Time
}

func (cc *catalogCache) load() ([]book.Book, time.Time, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.fetchedAt.IsZero() {
		return nil, time.Time{}, false
	}
	return cloneBooks(cc.books), cc.fetchedAt, true
}

func (cc *catalogCache) store(books []book.Book, at time.Time) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.books = cloneBooks(books)
	cc.fetchedAt = at
}

func (cc *catalogCache) reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.books = nil
	cc.fetchedAt = time.Time{}
}

func cloneBooks(books []book.Book) []book.Book {
	return append(make([]book.Book, 0, len(books)), books...)
}
