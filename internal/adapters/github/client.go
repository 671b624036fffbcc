// Package github implements ports.RepositoryClient on top of the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cespare/xxhash/v2"
	gh "github.com/google/go-github/v67/github"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Client implements ports.RepositoryClient.
// API clients are created lazily per repository and token and reused for the
// lifetime of the Client.
type Client struct {
	logger     ports.Logger
	httpClient *http.Client
	baseURL    *url.URL

	maxTries        uint
	initialInterval time.Duration

	mu      sync.Mutex
	clients map[string]*gh.Client
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return zerr.Wrap(domain.ErrRemoteRequestFailed, "http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithBaseURL points the client at an alternative API endpoint.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if raw == "" {
			return nil
		}
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrRemoteRequestFailed, "invalid API base URL"), "url", raw)
		}
		c.baseURL = u
		return nil
	}
}

// WithRetry sets the maximum attempts per request and the first retry delay.
func WithRetry(maxTries uint, initialInterval time.Duration) Option {
	return func(c *Client) error {
		c.maxTries = maxTries
		c.initialInterval = initialInterval
		return nil
	}
}

// NewClient creates a Client.
func NewClient(logger ports.Logger, opts ...Option) (*Client, error) {
	c := &Client{
		logger:          logger,
		httpClient:      &http.Client{Timeout: domain.DefaultRequestTimeout},
		maxTries:        domain.DefaultMaxRetries,
		initialInterval: 500 * time.Millisecond,
		clients:         make(map[string]*gh.Client),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// api returns the API client for repo, creating it on first use.
func (c *Client) api(repo domain.RepositoryConfig) *gh.Client {
	key := fmt.Sprintf("%s#%016x", repo.Key(), xxhash.Sum64String(repo.Token))

	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[key]; ok {
		return client
	}

	client := gh.NewClient(c.httpClient)
	if repo.Token != "" {
		client = client.WithAuthToken(repo.Token)
	}
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	c.clients[key] = client
	return client
}

// call runs fn with exponential backoff. Only transient failures are retried.
func call[T any](ctx context.Context, c *Client, op string, fn func() (T, *gh.Response, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval

	res, err := backoff.Retry(ctx, func() (T, error) {
		v, resp, err := fn()
		if err == nil {
			return v, nil
		}
		classified := classify(ctx, err, resp)
		if !retryable(err, classified) {
			return v, backoff.Permanent(classified)
		}
		return v, classified
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Debug("retrying remote request", "op", op, "in", next, "error", err)
		}),
	)
	return res, unwrapPermanent(err)
}

func withRepo(err error, repo domain.RepositoryConfig, branch, path string) error {
	err = zerr.With(err, "repo", repo.Key())
	err = zerr.With(err, "branch", branch)
	return zerr.With(err, "path", path)
}
