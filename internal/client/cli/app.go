package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/client/catalog"
	"github.com/dmitrijs2005/faktura/internal/client/config"
	"github.com/dmitrijs2005/faktura/internal/client/i18n"
	"github.com/dmitrijs2005/faktura/internal/client/session"
	"github.com/dmitrijs2005/faktura/internal/client/storage"
	"github.com/dmitrijs2005/faktura/internal/client/tokens"
	"github.com/dmitrijs2005/faktura/internal/logging"
)

// healthInterval is how often the online watcher probes the API.
const healthInterval = 30 * time.Second

// sessionService is the part of the session manager the REPL drives.
type sessionService interface {
	Snapshot() session.Snapshot
	CheckAuthStatus(ctx context.Context) session.Snapshot
	Login(ctx context.Context, email, password string) session.Result
	Register(ctx context.Context, r session.Registration) session.Result
	VerifyEmail(ctx context.Context, token string) session.Result
	ForgotPassword(ctx context.Context, email string) session.Result
	ResetPassword(ctx context.Context, token, newPassword string) session.Result
	ChangePassword(ctx context.Context, current, newPassword string) session.Result
	Logout(ctx context.Context) error
	AccessExpiry(ctx context.Context) (time.Time, bool)
	Wait()
}

// translator is the part of the localization manager the REPL uses.
type translator interface {
	Translate(key string, fallback ...string) string
	Language() string
	AvailableLanguages() []string
	Initialize(ctx context.Context) i18n.Origin
	SwitchLanguage(ctx context.Context, code string) (i18n.Origin, error)
}

// listing is the product page the user is looking at.
type listing struct {
	page   int
	pages  int
	search string
}

type App struct {
	config   *config.Config
	log      logging.Logger
	session  sessionService
	lang     translator
	catalog  *catalog.Catalog
	health   func(ctx context.Context) bool
	closeFns []func() error

	reader *bufio.Reader
	out    io.Writer
	outMu  sync.Mutex

	online   atomic.Bool
	mu       sync.Mutex
	current  listing
	searcher *catalog.Searcher
}

// NewApp opens the client storage and wires the token store, API gateway,
// session manager, localization manager and catalog on top of it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := storage.Open(ctx, c.StorageOptions())
	if err != nil {
		log.Error(ctx, "error opening storage", "backend", c.StoreBackend, "err", err)
		return nil, err
	}

	creds := tokens.NewStore(store)
	gw := api.New(c.APIBaseURL, creds, api.WithTimeout(c.RequestTimeout), api.WithLogger(log))
	sess := session.New(gw, creds,
		session.WithLogger(log),
		session.WithServerLogout(c.ServerLogout, c.RequestTimeout),
	)
	gw.UseRefresher(sess)

	lang := i18n.New(gw, store, i18n.WithLogger(log), i18n.WithBrandName(c.BrandName))
	cat := catalog.New(gw, c.PageSize, log)

	a := &App{
		config:  c,
		log:     log,
		session: sess,
		lang:    lang,
		catalog: cat,
		health:  gw.Health,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	a.closeFns = append(a.closeFns, store.Close)
	a.online.Store(true)
	return a, nil
}

// Run shows the banner, restores language and session, and serves the REPL
// until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printBanner(a, a.config.AppName)

	if a.health != nil {
		a.setOnline(ctx, a.health(ctx))
		go a.StartOnlineStatusWatcher(ctx, healthInterval)
	}

	origin := a.lang.Initialize(ctx)
	a.log.Debug(ctx, "language ready", "code", a.lang.Language(), "origin", origin.String())

	if snap := a.session.CheckAuthStatus(ctx); snap.Authenticated() && snap.User != nil {
		a.println(a.t("logged_in_as"), snap.User.Email)
	}

	a.startSearch(ctx)
	a.println(a.t("welcome_back") + " (help)")

	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close waits for background logout requests and releases the storage.
func (a *App) Close() {
	if a.searcher != nil {
		a.searcher.Close()
	}
	a.session.Wait()
	for _, fn := range a.closeFns {
		if err := fn(); err != nil {
			a.log.Warn(context.Background(), "close failed", "err", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated()
}

func (a *App) t(key string) string { return a.lang.Translate(key) }

// getStatus renders the prompt status: session state, user, language and an
// offline marker.
func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	s := a.t("status_" + string(snap.Status))
	if snap.Authenticated() && snap.User != nil {
		s += " " + snap.User.Email
	}
	s += " | " + a.lang.Language()
	if !a.online.Load() {
		s += " | offline"
	}
	return s
}

func (a *App) setOnline(ctx context.Context, up bool) {
	if a.online.Swap(up) != up {
		if up {
			a.log.Info(ctx, "api reachable")
		} else {
			a.log.Warn(ctx, "api unreachable", "url", a.config.APIBaseURL)
			a.println(a.t("api_unreachable"))
		}
	}
}

// StartOnlineStatusWatcher probes the API health endpoint every interval and
// updates the offline marker of the prompt until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.setOnline(ctx, a.health(ctx))
		case <-ctx.Done():
			return
		}
	}
}

// Write serializes terminal output: search results arrive from a background
// goroutine while a command may be printing.
func (a *App) Write(p []byte) (int, error) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	return a.out.Write(p)
}

func (a *App) println(args ...any) { fmt.Fprintln(a, args...) }

func (a *App) printf(format string, args ...any) { fmt.Fprintf(a, format, args...) }
