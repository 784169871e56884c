package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/client/catalog"
	"github.com/dmitrijs2005/faktura/internal/client/config"
	"github.com/dmitrijs2005/faktura/internal/client/i18n"
	"github.com/dmitrijs2005/faktura/internal/client/session"
	"github.com/dmitrijs2005/faktura/internal/client/storage"
	"github.com/dmitrijs2005/faktura/internal/logging"
)

type fakeSession struct {
	mu   sync.Mutex
	snap session.Snapshot

	loginEmail, loginPassword string
	loginRes                  session.Result
	registered                session.Registration
	registerRes               session.Result
	verifyToken               string
	forgotEmail               string
	resetToken, resetPassword string
	changeCurrent, changeNext string
	result                    session.Result
	expiry                    time.Time
	logoutErr                 error
	calls                     []string
}

func signedIn(email string) *fakeSession {
	return &fakeSession{snap: session.Snapshot{
		Status: session.StatusAuthenticated,
		User:   &session.User{ID: "1", Email: email, FirstName: "Anna", LastName: "Berg"},
	}}
}

func signedOut() *fakeSession {
	return &fakeSession{snap: session.Snapshot{Status: session.StatusUnauthenticated}}
}

func (f *fakeSession) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeSession) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSession) CheckAuthStatus(context.Context) session.Snapshot {
	f.record("check")
	return f.Snapshot()
}

func (f *fakeSession) Login(_ context.Context, email, password string) session.Result {
	f.record("login")
	f.loginEmail, f.loginPassword = email, password
	if f.loginRes.Success {
		f.mu.Lock()
		f.snap = session.Snapshot{Status: session.StatusAuthenticated, User: &session.User{Email: email}}
		f.mu.Unlock()
	}
	return f.loginRes
}

func (f *fakeSession) Register(_ context.Context, r session.Registration) session.Result {
	f.record("register")
	f.registered = r
	return f.registerRes
}

func (f *fakeSession) VerifyEmail(_ context.Context, token string) session.Result {
	f.record("verify")
	f.verifyToken = token
	return f.result
}

func (f *fakeSession) ForgotPassword(_ context.Context, email string) session.Result {
	f.record("forgot")
	f.forgotEmail = email
	return f.result
}

func (f *fakeSession) ResetPassword(_ context.Context, token, pw string) session.Result {
	f.record("reset")
	f.resetToken, f.resetPassword = token, pw
	return f.result
}

func (f *fakeSession) ChangePassword(_ context.Context, current, next string) session.Result {
	f.record("passwd")
	f.changeCurrent, f.changeNext = current, next
	return f.result
}

func (f *fakeSession) Logout(context.Context) error {
	f.record("logout")
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.mu.Lock()
	f.snap = session.Snapshot{Status: session.StatusUnauthenticated}
	f.mu.Unlock()
	return nil
}

func (f *fakeSession) AccessExpiry(context.Context) (time.Time, bool) {
	return f.expiry, !f.expiry.IsZero()
}

func (f *fakeSession) Wait() {}

// fakeAPI answers catalog calls with whatever handle returns, JSON
// round-tripped into the caller's value.
type fakeAPI struct {
	mu     sync.Mutex
	reqs   []api.Request
	handle func(req api.Request) (any, error)
}

func (f *fakeAPI) Call(_ context.Context, req api.Request, out any) error {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	h := f.handle
	f.mu.Unlock()

	if h == nil {
		return nil
	}
	v, err := h(req)
	if err != nil {
		return err
	}
	if out == nil || v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeAPI) requests() []api.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Request(nil), f.reqs...)
}

// offlineTranslations makes the localization manager fall back to its
// bundled packs.
type offlineTranslations struct{}

func (offlineTranslations) Call(context.Context, api.Request, any) error {
	return fmt.Errorf("%w: offline", api.ErrNetwork)
}

// lockedBuffer lets tests read output written by the search goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

type testApp struct {
	*App
	out  *lockedBuffer
	sess *fakeSession
	api  *fakeAPI
}

func newTestApp(t *testing.T, sess *fakeSession, input string) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SearchDebounce = 30 * time.Millisecond

	fa := &fakeAPI{}
	out := &lockedBuffer{}
	lang := i18n.New(offlineTranslations{}, storage.NewMemory(),
		i18n.WithBrandName(cfg.BrandName),
		i18n.WithEnvironmentLanguage(func() string { return "" }),
	)

	a := &App{
		config:  cfg,
		log:     logging.Nop(),
		session: sess,
		lang:    lang,
		catalog: catalog.New(fa, cfg.PageSize, logging.Nop()),
		reader:  rdr(input),
		out:     out,
	}
	a.online.Store(true)
	return &testApp{App: a, out: out, sess: sess, api: fa}
}

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(string, io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	t.Cleanup(func() { getPassword = orig })
}
