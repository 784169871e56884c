// Package session is the Session Manager: it owns the authentication state
// of the client and the login, logout, refresh and account flows.
//
// Login, CheckAuthStatus and Logout are ordered through an epoch counter:
// Logout bumps the epoch synchronously, and any operation that started
// under an older epoch discards its result instead of reinstating a session.
package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/client/tokens"
	"github.com/dmitrijs2005/faktura/internal/logging"
)

var (
	ErrNoRefreshToken = errors.New("no refresh token available")
	ErrNoAccessToken  = errors.New("no access token received")
	// ErrSuperseded is returned by an operation overtaken by Logout.
	ErrSuperseded = errors.New("operation superseded by logout")
)

type Status string

const (
	StatusChecking        Status = "checking"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// User is the record returned by /auth/me.
type User struct {
	ID         api.ID `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
}

// Snapshot is a consistent read of the session.
type Snapshot struct {
	Status Status
	User   *User
}

func (s Snapshot) Authenticated() bool { return s.Status == StatusAuthenticated }

// Gateway is the part of the API gateway the manager uses.
type Gateway interface {
	Call(ctx context.Context, req api.Request, out any) error
	Raw(ctx context.Context, req api.Request, out any) error
}

// Credentials is the token store.
type Credentials interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	Load(ctx context.Context) (tokens.Pair, error)
	Save(ctx context.Context, p tokens.Pair) error
	Clear(ctx context.Context) error
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithServerLogout makes Logout also notify the backend. The request is
// fired in the background and bounded by timeout; its outcome is ignored.
func WithServerLogout(enabled bool, timeout time.Duration) Option {
	return func(m *Manager) {
		m.serverLogout = enabled
		m.logoutTimeout = timeout
	}
}

type Manager struct {
	gw     Gateway
	tokens Credentials
	log    logging.Logger

	serverLogout  bool
	logoutTimeout time.Duration
	background    sync.WaitGroup

	// opMu serializes Login and CheckAuthStatus.
	opMu sync.Mutex

	mu     sync.RWMutex
	status Status
	user   *User
	epoch  uint64
}

func New(gw Gateway, creds Credentials, opts ...Option) *Manager {
	m := &Manager{
		gw:            gw,
		tokens:        creds,
		log:           logging.Nop(),
		logoutTimeout: 5 * time.Second,
		status:        StatusChecking,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var u *User
	if m.user != nil {
		cp := *m.user
		u = &cp
	}
	return Snapshot{Status: m.status, User: u}
}

func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager) IsAuthenticated() bool { return m.Status() == StatusAuthenticated }

// UpdateUser replaces the cached user record. It has no effect unless the
// session is authenticated.
func (m *Manager) UpdateUser(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status != StatusAuthenticated {
		return
	}
	m.user = &u
}

// AccessExpiry reports the expiry embedded in the stored access token.
func (m *Manager) AccessExpiry(ctx context.Context) (time.Time, bool) {
	p, err := m.tokens.Load(ctx)
	if err != nil || p.AccessToken == "" {
		return time.Time{}, false
	}
	return p.AccessExpiry()
}

func (m *Manager) currentEpoch() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.epoch
}

// settle commits the outcome of an operation that started at epoch.
func (m *Manager) settle(epoch uint64, status Status, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return ErrSuperseded
	}
	m.status = status
	m.user = u
	return nil
}

// persist saves p unless a logout happened since epoch.
func (m *Manager) persist(ctx context.Context, epoch uint64, p tokens.Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return ErrSuperseded
	}
	return m.tokens.Save(ctx, p)
}

func (m *Manager) fetchUser(ctx context.Context) (*User, error) {
	var u User
	if err := m.gw.Call(ctx, api.Request{Method: http.MethodGet, Path: "/auth/me"}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckAuthStatus reconciles the session with the stored credentials. It is
// run once at start-up. A failed user fetch gets one extra refresh attempt;
// any further failure clears the credentials.
func (m *Manager) CheckAuthStatus(ctx context.Context) Snapshot {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	epoch := m.currentEpoch()
	_ = m.settle(epoch, StatusChecking, nil)

	access, err := m.tokens.AccessToken(ctx)
	if err != nil {
		m.log.Warn(ctx, "failed to read access token", "error", err)
	}
	if access == "" {
		_ = m.settle(epoch, StatusUnauthenticated, nil)
		return m.Snapshot()
	}

	u, err := m.fetchUser(ctx)
	if err != nil {
		m.log.Info(ctx, "stored session rejected, trying refresh", "error", err)
		if _, rerr := m.Refresh(ctx); rerr == nil {
			u, err = m.fetchUser(ctx)
		} else {
			err = rerr
		}
	}
	if err != nil {
		m.log.Info(ctx, "session could not be restored", "error", err)
		m.mu.Lock()
		if m.epoch == epoch {
			if cerr := m.tokens.Clear(ctx); cerr != nil {
				m.log.Warn(ctx, "failed to clear tokens", "error", cerr)
			}
		}
		m.mu.Unlock()
		_ = m.settle(epoch, StatusUnauthenticated, nil)
		return m.Snapshot()
	}

	if err := m.settle(epoch, StatusAuthenticated, u); err != nil {
		m.log.Debug(ctx, "auth check superseded")
	}
	return m.Snapshot()
}

// Refresh renews the credential pair with the stored refresh token. Without
// a refresh token it fails with ErrNoRefreshToken and makes no request. Any
// other failure clears the credentials and ends the session.
func (m *Manager) Refresh(ctx context.Context) (tokens.Pair, error) {
	epoch := m.currentEpoch()

	refresh, err := m.tokens.RefreshToken(ctx)
	if err != nil {
		return tokens.Pair{}, err
	}
	if refresh == "" {
		return tokens.Pair{}, ErrNoRefreshToken
	}

	var p tokens.Pair
	err = m.gw.Raw(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
		Body:   map[string]string{"refresh_token": refresh},
	}, &p)
	if err == nil && p.AccessToken == "" {
		err = ErrNoAccessToken
	}
	if err == nil {
		// A backend that does not rotate refresh tokens keeps the old one.
		if p.RefreshToken == "" {
			p.RefreshToken = refresh
		}
		err = m.persist(ctx, epoch, p)
	}
	if err != nil {
		if !errors.Is(err, ErrSuperseded) {
			m.expire(ctx, epoch)
		}
		return tokens.Pair{}, err
	}

	m.log.Debug(ctx, "tokens refreshed")
	return p, nil
}

// Expire ends the session after the gateway gave up on a request.
func (m *Manager) Expire(ctx context.Context) {
	m.expire(ctx, m.currentEpoch())
}

func (m *Manager) expire(ctx context.Context, epoch uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return
	}
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear tokens", "error", err)
	}
	if m.status == StatusAuthenticated {
		m.status = StatusUnauthenticated
	}
	m.user = nil
}

// Logout clears the credentials and the session immediately. It does not
// wait for any in-flight operation; those observe the new epoch and discard
// their results.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.epoch++
	var refresh string
	if m.serverLogout {
		refresh, _ = m.tokens.RefreshToken(ctx)
	}
	err := m.tokens.Clear(ctx)
	m.status = StatusUnauthenticated
	m.user = nil
	m.mu.Unlock()

	if refresh != "" {
		m.notifyLogout(ctx, refresh)
	}
	if err != nil {
		m.log.Error(ctx, "logout: failed to clear tokens", "error", err)
		return err
	}
	m.log.Info(ctx, "logged out")
	return nil
}

func (m *Manager) notifyLogout(ctx context.Context, refresh string) {
	m.background.Add(1)
	go func() {
		defer m.background.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.logoutTimeout)
		defer cancel()
		err := m.gw.Raw(ctx, api.Request{
			Method: http.MethodPost,
			Path:   "/auth/logout",
			Body:   map[string]string{"refresh_token": refresh},
		}, nil)
		if err != nil {
			m.log.Debug(ctx, "server logout failed", "error", err)
		}
	}()
}

// Wait blocks until background requests started by Logout have finished.
func (m *Manager) Wait() { m.background.Wait() }

func errorText(err error) string {
	if err == nil {
		return ""
	}
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		if ne.Timeout {
			return "Request timed out"
		}
		return "Network error, please check your connection"
	}
	return strings.TrimSpace(err.Error())
}
