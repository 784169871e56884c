package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/tokens"
	"github.com/dmitrijs2005/faktura/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxBodySize = 8 << 20
)

// TokenSource is the part of the token store the gateway needs.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Refresher renews the credential pair and tears the session down when the
// retry protocol gives up. The session manager implements it.
type Refresher interface {
	Refresh(ctx context.Context) (tokens.Pair, error)
	Expire(ctx context.Context)
}

// Request describes one backend call. Path is relative to the base URL
// ("/auth/me"). A non-nil Body is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.http = c }
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

type Gateway struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	mu        sync.RWMutex
	refresher Refresher

	refreshes singleflight.Group
}

func New(baseURL string, ts TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  ts,
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// UseRefresher attaches the component that renews credentials. The session
// manager depends on the gateway, so this is wired after construction.
func (g *Gateway) UseRefresher(r Refresher) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refresher = r
}

func (g *Gateway) BaseURL() string { return g.baseURL }

type attempt int

const (
	attemptFirst attempt = iota
	attemptRetried
)

// Call performs an authenticated request and decodes a JSON response into
// out (which may be nil). See the package doc for the refresh protocol.
func (g *Gateway) Call(ctx context.Context, req Request, out any) error {
	token, err := g.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	state := attemptFirst
	for {
		status, body, err := g.exchange(ctx, req, token)
		if err != nil {
			return err
		}

		if status != http.StatusUnauthorized {
			return g.finish(status, body, out)
		}

		switch state {
		case attemptFirst:
			pair, rerr := g.refresh(ctx)
			if rerr != nil {
				g.log.Info(ctx, "refresh failed, session expired", "path", req.Path, "error", rerr)
				g.expire(ctx)
				return fmt.Errorf("%w: %w", ErrSessionExpired, rerr)
			}
			token = pair.AccessToken
			state = attemptRetried
		case attemptRetried:
			g.log.Info(ctx, "retried request rejected, session expired", "path", req.Path)
			g.expire(ctx)
			return ErrSessionExpired
		}
	}
}

// Raw performs a single unauthenticated exchange. No token is attached and a
// 401 is reported as an *APIError.
func (g *Gateway) Raw(ctx context.Context, req Request, out any) error {
	status, body, err := g.exchange(ctx, req, "")
	if err != nil {
		return err
	}
	return g.finish(status, body, out)
}

// Health reports whether GET /health answers with a 2xx status.
func (g *Gateway) Health(ctx context.Context) bool {
	return g.Raw(ctx, Request{Method: http.MethodGet, Path: "/health"}, nil) == nil
}

func (g *Gateway) finish(status int, body []byte, out any) error {
	if status < 200 || status > 299 {
		return newAPIError(status, body)
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (g *Gateway) refresh(ctx context.Context) (tokens.Pair, error) {
	g.mu.RLock()
	r := g.refresher
	g.mu.RUnlock()
	if r == nil {
		return tokens.Pair{}, ErrNoRefresher
	}

	v, err, shared := g.refreshes.Do("refresh", func() (any, error) {
		return r.Refresh(ctx)
	})
	if shared {
		g.log.Debug(ctx, "joined in-flight refresh")
	}
	if err != nil {
		return tokens.Pair{}, err
	}
	return v.(tokens.Pair), nil
}

func (g *Gateway) expire(ctx context.Context) {
	g.mu.RLock()
	r := g.refresher
	g.mu.RUnlock()
	if r != nil {
		r.Expire(ctx)
		return
	}
	if err := g.tokens.Clear(ctx); err != nil {
		g.log.Warn(ctx, "failed to clear tokens", "error", err)
	}
}

func (g *Gateway) exchange(ctx context.Context, req Request, token string) (int, []byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := g.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var payload io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(HeaderRequestID, requestID)

	started := time.Now()
	resp, err := g.http.Do(httpReq)
	if err != nil {
		nerr := &NetworkError{Method: method, URL: target, Err: err, Timeout: isTimeout(err)}
		g.log.Warn(ctx, "request failed", "method", method, "path", req.Path, "request_id", requestID, "error", err)
		return 0, nil, nerr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, &NetworkError{Method: method, URL: target, Err: err, Timeout: isTimeout(err)}
	}

	g.log.Debug(ctx, "request done",
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started),
	)
	return resp.StatusCode, body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
