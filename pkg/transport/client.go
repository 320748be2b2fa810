// Package transport is the HTTP layer used by adapters. It adds rate limiting,
// request ids, de-duplication of identical in-flight requests and optional
// ETag revalidation against a store.Store.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/mrchypark/shopclient/pkg/store"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries a unique id per outgoing request.
const RequestIDHeader = "X-Request-Id"

// maxErrorBody bounds how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// ErrNotFound is matched by a StatusError for a 404 response.
var ErrNotFound = errors.New("transport: resource not found")

// StatusError is returned for any response that is neither 2xx nor a usable 304.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("transport: GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Is reports ErrNotFound for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Request describes a GET to perform.
type Request struct {
	URL    string
	Header http.Header
}

// Client performs GET requests. It is safe for concurrent use and meant to be
// shared by every adapter built for a ShopClient.
type Client struct {
	httpClient *http.Client
	logger     log.Logger
	limiter    *rate.Limiter
	store      store.Store
	userAgent  string
	now        func() time.Time

	flight   singleflight.Group
	mu       sync.Mutex
	inflight map[string]*sharedCall
}

// New creates a Client. Without options it uses a 30s timeout, no rate limit
// and no response store.
func New(logger log.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		userAgent:  "shopclient-go",
		now:        time.Now,
		inflight:   make(map[string]*sharedCall),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Get performs req and returns the response body. Concurrent calls for the same
// URL and credentials share one round trip. The shared request is detached from
// every caller's ctx: a caller whose ctx ends gets its own ctx error while the
// others keep waiting, and the request is aborted once no caller is left.
func (c *Client) Get(ctx context.Context, req Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("transport: rate limit wait: %w", err)
		}
	}

	key := requestKey(req)
	f := c.join(ctx, key)
	defer c.leave(key, f)

	ch := c.flight.DoChan(key, func() (any, error) {
		return c.do(f.ctx, key, req)
	})

	select {
	case <-ctx.Done():
		level.Debug(c.logger).Log("msg", "caller left shared request", "url", req.URL, "err", ctx.Err())
		return nil, fmt.Errorf("transport: request was cancelled: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		body := res.Val.([]byte)
		if res.Shared {
			level.Debug(c.logger).Log("msg", "shared in-flight response", "url", req.URL)
			body = bytes.Clone(body)
		}
		return body, nil
	}
}

// sharedCall is the context of one shared request and the number of callers
// waiting on it.
type sharedCall struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

func (c *Client) join(ctx context.Context, key string) *sharedCall {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.inflight[key]; ok {
		f.waiters++
		return f
	}
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f := &sharedCall{ctx: fctx, cancel: cancel, waiters: 1}
	c.inflight[key] = f
	return f
}

// leave drops one waiter. The last one cancels the request and makes the next
// Get for key start a fresh round trip.
func (c *Client) leave(key string, f *sharedCall) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f.waiters--
	if f.waiters > 0 {
		return
	}
	f.cancel()
	if c.inflight[key] == f {
		delete(c.inflight, key)
		c.flight.Forget(key)
	}
}

func (c *Client) do(ctx context.Context, key string, req Request) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: create request: %w", err)
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())

	cached := c.lookup(ctx, key)
	if cached != nil && cached.ETag != "" {
		httpReq.Header.Set("If-None-Match", cached.ETag)
	}

	level.Debug(c.logger).Log("msg", "sending request", "url", req.URL, "request_id", httpReq.Header.Get(RequestIDHeader), "revalidate", cached != nil)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("transport: request was cancelled: %w", ctx.Err())
		default:
			return nil, fmt.Errorf("transport: execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified && cached != nil:
		level.Debug(c.logger).Log("msg", "not modified, serving stored body", "url", req.URL)
		return cached.Body, nil

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: read response body: %w", err)
		}
		if etag := resp.Header.Get("ETag"); etag != "" {
			c.save(ctx, key, &store.Entry{ETag: etag, Body: body, StoredAt: c.now()})
		}
		return body, nil

	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        req.URL,
			Body:       string(snippet),
		}
	}
}

// lookup returns the stored entry for key or nil. Store failures only cost a
// revalidation, so they are logged and ignored.
func (c *Client) lookup(ctx context.Context, key string) *store.Entry {
	if c.store == nil {
		return nil
	}
	e, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			level.Warn(c.logger).Log("msg", "response store get failed", "key", key, "err", err)
		}
		return nil
	}
	return e
}

func (c *Client) save(ctx context.Context, key string, e *store.Entry) {
	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, key, e); err != nil {
		level.Warn(c.logger).Log("msg", "response store set failed", "key", key, "err", err)
	}
}

// requestKey identifies a request by URL and credentials so that different
// shops never share a flight or a stored response.
func requestKey(req Request) string {
	return fmt.Sprintf("%016x", xxh3.HashString(req.URL+"\x00"+req.Header.Get("Authorization")))
}
