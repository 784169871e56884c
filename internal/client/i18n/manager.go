// Package i18n is the Localization Manager. It loads language packs from the
// backend, remaps their keys to display keys and serves lookups for the View
// Layer.
//
// Translate is lock free: the active pack is swapped atomically, so a reader
// sees either the old or the new pack, never a mix.
package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/logging"
)

// KeyPreferredLanguage is the storage key of the saved language choice.
const KeyPreferredLanguage = "preferred_language"

// DefaultLanguage is used when nothing else decides.
const DefaultLanguage = "en"

var fallbackLanguages = []string{"en", "sv"}

// ErrSuperseded is returned by a switch overtaken by a later one.
var ErrSuperseded = errors.New("language switch superseded")

var errBadFormat = errors.New("invalid response format")

// Pack maps display keys to display strings for one language.
type Pack map[string]string

// Origin tells where an activated pack came from.
type Origin int

const (
	OriginNetwork Origin = iota
	OriginCache
	OriginBundled
	// OriginCurrent means the language was already active.
	OriginCurrent
)

func (o Origin) String() string {
	switch o {
	case OriginNetwork:
		return "network"
	case OriginCache:
		return "cache"
	case OriginBundled:
		return "bundled"
	case OriginCurrent:
		return "current"
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// Fetcher performs backend calls; *api.Gateway implements it.
type Fetcher interface {
	Call(ctx context.Context, req api.Request, out any) error
}

// Preferences persists the chosen language.
type Preferences interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithBrandName sets brand_name in the bundled packs.
func WithBrandName(name string) Option {
	return func(m *Manager) { m.brand = name }
}

// WithEnvironmentLanguage replaces the detection of the user's language.
func WithEnvironmentLanguage(fn func() string) Option {
	return func(m *Manager) { m.envLang = fn }
}

type active struct {
	code string
	pack Pack
}

type Manager struct {
	fetch   Fetcher
	prefs   Preferences
	log     logging.Logger
	brand   string
	envLang func() string

	current atomic.Pointer[active]
	loading atomic.Int32
	version atomic.Uint64

	mu        sync.Mutex
	available []string
	cache     map[string]Pack
	seq       uint64
	cancel    context.CancelFunc
}

// New returns a manager serving the bundled English pack until Initialize
// or SwitchLanguage activates another one.
func New(f Fetcher, prefs Preferences, opts ...Option) *Manager {
	m := &Manager{
		fetch:     f,
		prefs:     prefs,
		log:       logging.Nop(),
		available: slices.Clone(fallbackLanguages),
		cache:     map[string]Pack{},
	}
	m.envLang = func() string { return EnvironmentLanguage(os.Getenv) }
	for _, o := range opts {
		o(m)
	}
	m.current.Store(&active{code: DefaultLanguage, pack: Bundled(DefaultLanguage, m.brand)})
	return m
}

// Translate looks key up in the active pack. A missing or empty entry yields
// fallback, or key itself when no fallback is given.
func (m *Manager) Translate(key string, fallback ...string) string {
	if a := m.current.Load(); a != nil {
		if v := a.pack[key]; v != "" {
			return v
		}
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return key
}

func (m *Manager) Language() string { return m.current.Load().code }

// Pack returns a copy of the active pack.
func (m *Manager) Pack() Pack {
	src := m.current.Load().pack
	out := make(Pack, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Version is incremented every time a pack is activated.
func (m *Manager) Version() uint64 { return m.version.Load() }

func (m *Manager) Loading() bool { return m.loading.Load() > 0 }

func (m *Manager) AvailableLanguages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.available)
}

// Initialize picks the start-up language and activates it. The choice is the
// saved preference, then the environment language, then the first available
// language. When the language list cannot be fetched the fallback set
// {en, sv} is used together with the saved preference or English.
func (m *Manager) Initialize(ctx context.Context) Origin {
	m.loading.Add(1)
	defer m.loading.Add(-1)

	saved := m.savedLanguage(ctx)

	langs, err := m.FetchLanguages(ctx)
	var code string
	if err != nil || len(langs) == 0 {
		m.log.Warn(ctx, "language list unavailable, using fallback set", "error", err)
		langs = slices.Clone(fallbackLanguages)
		code = saved
		if code == "" {
			code = DefaultLanguage
		}
	} else {
		code = chooseLanguage(langs, saved, m.envLang())
	}

	m.mu.Lock()
	m.available = langs
	m.mu.Unlock()

	origin, err := m.activate(ctx, code, true)
	if err != nil {
		m.log.Debug(ctx, "initial language superseded", "code", code)
	}
	return origin
}

func chooseLanguage(langs []string, saved, env string) string {
	switch {
	case saved != "" && slices.Contains(langs, saved):
		return saved
	case env != "" && slices.Contains(langs, env):
		return env
	default:
		return langs[0]
	}
}

// SwitchLanguage activates code. Switching to the active language is a
// no-op. A later switch supersedes an earlier one still in flight: the
// earlier call returns ErrSuperseded and never becomes visible.
func (m *Manager) SwitchLanguage(ctx context.Context, code string) (Origin, error) {
	return m.activate(ctx, code, false)
}

// LoadLanguage activates code even when it is already active, reloading its
// pack.
func (m *Manager) LoadLanguage(ctx context.Context, code string) (Origin, error) {
	return m.activate(ctx, code, true)
}

func (m *Manager) activate(ctx context.Context, code string, force bool) (Origin, error) {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.seq++
	if !force && code == m.Language() {
		m.mu.Unlock()
		return OriginCurrent, nil
	}
	seq := m.seq
	loadCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.mu.Unlock()
	defer cancel()

	m.loading.Add(1)
	defer m.loading.Add(-1)

	pack, origin := m.resolve(loadCtx, code)

	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		return origin, ErrSuperseded
	}
	m.cancel = nil
	m.current.Store(&active{code: code, pack: pack})
	m.version.Add(1)
	m.mu.Unlock()

	if err := m.prefs.Set(ctx, KeyPreferredLanguage, code); err != nil {
		m.log.Warn(ctx, "failed to save language preference", "code", code, "error", err)
	}
	m.log.Info(ctx, "language activated", "code", code, "origin", origin.String(), "keys", len(pack))
	return origin, nil
}

// resolve returns the pack for code: fresh from the backend, else the last
// good copy, else the bundled pack.
func (m *Manager) resolve(ctx context.Context, code string) (Pack, Origin) {
	pack, err := m.FetchPack(ctx, code)
	if err == nil {
		m.mu.Lock()
		m.cache[code] = pack
		m.mu.Unlock()
		return pack, OriginNetwork
	}

	m.mu.Lock()
	cached, ok := m.cache[code]
	m.mu.Unlock()
	if ok {
		m.log.Warn(ctx, "language pack unavailable, using cached copy", "code", code, "error", err)
		return cached, OriginCache
	}
	m.log.Warn(ctx, "language pack unavailable, using bundled copy", "code", code, "error", err)
	return Bundled(code, m.brand), OriginBundled
}

// FetchPack downloads the pack for code and converts it to display keys.
// The body may wrap the pack in a "translations" object or be the pack
// itself; nested objects are flattened into dotted keys first.
func (m *Manager) FetchPack(ctx context.Context, code string) (Pack, error) {
	var raw json.RawMessage
	err := m.fetch.Call(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/translations/language/" + url.PathEscape(code),
	}, &raw)
	if err != nil {
		return nil, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("language pack %s: %w", code, err)
	}
	if inner, ok := obj["translations"]; ok {
		if obj, err = decodeObject(inner); err != nil {
			return nil, fmt.Errorf("language pack %s: %w", code, err)
		}
	}

	flat := map[string]string{}
	flatten("", obj, flat)
	return WithDefaults(Remap(flat), code), nil
}

// FetchCategory downloads one translation category for code, remapped but
// without defaults.
func (m *Manager) FetchCategory(ctx context.Context, category, code string) (Pack, error) {
	var raw json.RawMessage
	err := m.fetch.Call(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/translations/category/" + url.PathEscape(category),
		Query:  url.Values{"language": {code}},
	}, &raw)
	if err != nil {
		return nil, err
	}
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", category, err)
	}
	if inner, ok := obj["translations"]; ok {
		if obj, err = decodeObject(inner); err != nil {
			return nil, fmt.Errorf("category %s: %w", category, err)
		}
	}
	flat := map[string]string{}
	flatten("", obj, flat)
	return Remap(flat), nil
}

// FetchLanguages returns the language codes offered by the backend. Both
// {"languages":[{"code":"en"}]} and a bare array of codes are accepted.
func (m *Manager) FetchLanguages(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := m.fetch.Call(ctx, api.Request{Method: http.MethodGet, Path: "/translations/languages"}, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		Languages json.RawMessage `json:"languages"`
	}
	if json.Unmarshal(raw, &wrapped) == nil && len(wrapped.Languages) > 0 {
		raw = wrapped.Languages
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("languages: %w", errBadFormat)
	}
	codes := make([]string, 0, len(items))
	for _, it := range items {
		var code string
		if json.Unmarshal(it, &code) != nil {
			var obj struct {
				Code string `json:"code"`
			}
			if json.Unmarshal(it, &obj) != nil {
				continue
			}
			code = obj.Code
		}
		if code != "" && !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}
	return codes, nil
}

func (m *Manager) savedLanguage(ctx context.Context) string {
	v, _, err := m.prefs.Get(ctx, KeyPreferredLanguage)
	if err != nil {
		m.log.Warn(ctx, "failed to read language preference", "error", err)
		return ""
	}
	return v
}

func decodeObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, errBadFormat
	}
	return obj, nil
}

// flatten collects string leaves of obj into out under dotted keys. Other
// scalar values are ignored.
func flatten(prefix string, obj map[string]json.RawMessage, out map[string]string) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		var s string
		if json.Unmarshal(v, &s) == nil {
			out[key] = s
			continue
		}
		var nested map[string]json.RawMessage
		if json.Unmarshal(v, &nested) == nil && nested != nil {
			flatten(key, nested, out)
		}
	}
}
