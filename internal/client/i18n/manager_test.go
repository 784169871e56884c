package i18n

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/api"
	"github.com/dmitrijs2005/faktura/internal/client/storage"
	"github.com/dmitrijs2005/faktura/internal/client/tokens"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type translationAPI struct {
	mu        sync.Mutex
	languages any
	packs     map[string]any
	down      bool
	delay     map[string]time.Duration
	requested chan string
	hits      map[string]int
}

func newTranslationAPI(t *testing.T) (*translationAPI, *api.Gateway) {
	t.Helper()
	a := &translationAPI{
		languages: map[string]any{"languages": []map[string]string{{"code": "en"}, {"code": "sv"}}},
		packs: map[string]any{
			"en": map[string]any{"translations": map[string]string{
				"auth.login":    "Sign In",
				"ui.save":       "Save",
				"welcome_back":  "Hello again",
				"invoice.total": "Total",
			}},
			"sv": map[string]any{"translations": map[string]string{
				"auth.login":    "Logga in",
				"ui.save":       "Spara",
				"invoice.total": "Summa",
			}},
		},
		delay: map[string]time.Duration{},
		hits:  map[string]int{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/translations/languages", func(w http.ResponseWriter, _ *http.Request) {
		a.mu.Lock()
		down, body := a.down, a.languages
		a.mu.Unlock()
		if down {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	r.HandleFunc("/translations/language/{code}", func(w http.ResponseWriter, req *http.Request) {
		code := mux.Vars(req)["code"]
		a.mu.Lock()
		a.hits[code]++
		down, body, ok, delay, requested := a.down, a.packs[code], a.packs[code] != nil, a.delay[code], a.requested
		a.mu.Unlock()

		if requested != nil {
			requested <- code
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-req.Context().Done():
				return
			}
		}
		if down || !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Language not found"})
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return a, api.New(srv.URL, tokens.NewStore(storage.NewMemory()), api.WithTimeout(2*time.Second))
}

func (a *translationAPI) setDown(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.down = v
}

func (a *translationAPI) setLanguages(v any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.languages = v
}

func (a *translationAPI) count(code string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[code]
}

func noEnv() string { return "" }

func TestTranslate(t *testing.T) {
	_, gw := newTranslationAPI(t)
	m := New(gw, storage.NewMemory(), WithBrandName("Lättfaktura"))

	assert.Equal(t, "Sign In", m.Translate("sign_in"))
	assert.Equal(t, "Lättfaktura", m.Translate("brand_name"))
	assert.Equal(t, "no_such_key", m.Translate("no_such_key"))
	assert.Equal(t, "Fallback", m.Translate("no_such_key", "Fallback"))
	assert.Equal(t, "", m.Translate(""))
}

func TestFetchPack_RemapsAndAddsDefaults(t *testing.T) {
	a, gw := newTranslationAPI(t)
	a.packs["fi"] = map[string]any{
		"auth":   map[string]any{"register": "Liity"},
		"nav":    map[string]any{"home": "Koti", "depth": map[string]any{"x": "deep"}},
		"count":  3,
		"create": "Luo",
	}
	m := New(gw, storage.NewMemory())
	ctx := context.Background()

	en, err := m.FetchPack(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "Sign In", en["sign_in"])
	assert.Equal(t, "Save", en["save"])
	assert.Equal(t, "Total", en["invoice_total"])
	assert.Equal(t, "Hello again", en["welcome_back"], "defaults must not overwrite server keys")
	assert.Equal(t, "Create Account", en["create_account"])

	sv, err := m.FetchPack(ctx, "sv")
	require.NoError(t, err)
	assert.Equal(t, "Välkommen tillbaka", sv["welcome_back"])
	assert.Equal(t, "Skapa konto", sv["create_account"])

	fi, err := m.FetchPack(ctx, "fi")
	require.NoError(t, err)
	assert.Equal(t, "Liity", fi["sign_up"])
	assert.Equal(t, "Koti", fi["home"])
	assert.Equal(t, "deep", fi["nav_depth_x"])
	assert.Equal(t, "Luo", fi["create"])
	assert.NotContains(t, fi, "count")
	assert.Equal(t, "Create Account", fi["create_account"])

	_, err = m.FetchPack(ctx, "xx")
	require.Error(t, err)
}

func TestFetchLanguages(t *testing.T) {
	a, gw := newTranslationAPI(t)
	m := New(gw, storage.NewMemory())
	ctx := context.Background()

	langs, err := m.FetchLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "sv"}, langs)

	a.setLanguages([]string{"sv", "fi", "sv"})
	langs, err = m.FetchLanguages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"sv", "fi"}, langs)

	a.setLanguages(map[string]string{"oops": "x"})
	_, err = m.FetchLanguages(ctx)
	require.Error(t, err)
}

func TestInitialize_Priority(t *testing.T) {
	tests := []struct {
		name  string
		langs []string
		saved string
		env   string
		want  string
	}{
		{name: "saved preference", langs: []string{"en", "sv"}, saved: "sv", env: "en", want: "sv"},
		{name: "saved not offered, environment", langs: []string{"en", "sv"}, saved: "de", env: "sv", want: "sv"},
		{name: "first offered", langs: []string{"sv", "en"}, env: "fi", want: "sv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, gw := newTranslationAPI(t)
			a.setLanguages(tt.langs)
			prefs := storage.NewMemory()
			ctx := context.Background()
			if tt.saved != "" {
				require.NoError(t, prefs.Set(ctx, KeyPreferredLanguage, tt.saved))
			}
			m := New(gw, prefs, WithEnvironmentLanguage(func() string { return tt.env }))

			assert.Equal(t, OriginNetwork, m.Initialize(ctx))
			assert.Equal(t, tt.want, m.Language())
			assert.Equal(t, tt.langs, m.AvailableLanguages())
			assert.False(t, m.Loading())
		})
	}
}

func TestInitialize_LanguageListUnavailable(t *testing.T) {
	a, gw := newTranslationAPI(t)
	a.setDown(true)
	ctx := context.Background()

	m := New(gw, storage.NewMemory(), WithEnvironmentLanguage(func() string { return "sv" }))
	assert.Equal(t, OriginBundled, m.Initialize(ctx))
	assert.Equal(t, []string{"en", "sv"}, m.AvailableLanguages())
	assert.Equal(t, "en", m.Language())
	assert.Equal(t, "Sign In", m.Translate("sign_in"))

	prefs := storage.NewMemory()
	require.NoError(t, prefs.Set(ctx, KeyPreferredLanguage, "sv"))
	m = New(gw, prefs)
	m.Initialize(ctx)
	assert.Equal(t, "sv", m.Language())
	assert.Equal(t, "Logga in", m.Translate("sign_in"))
}

func TestAvailableLanguages_ReturnsCopy(t *testing.T) {
	_, gw := newTranslationAPI(t)
	m := New(gw, storage.NewMemory())
	langs := m.AvailableLanguages()
	langs[0] = "xx"
	assert.Equal(t, []string{"en", "sv"}, m.AvailableLanguages())
}

func TestSwitchLanguage(t *testing.T) {
	a, gw := newTranslationAPI(t)
	prefs := storage.NewMemory()
	m := New(gw, prefs, WithEnvironmentLanguage(noEnv))
	ctx := context.Background()
	m.Initialize(ctx)
	require.Equal(t, "en", m.Language())
	enPack := m.Pack()
	v := m.Version()

	origin, err := m.SwitchLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, OriginCurrent, origin)
	assert.Equal(t, 1, a.count("en"))
	assert.Equal(t, v, m.Version())

	origin, err = m.SwitchLanguage(ctx, "sv")
	require.NoError(t, err)
	assert.Equal(t, OriginNetwork, origin)
	assert.Equal(t, "Spara", m.Translate("save"))
	assert.Equal(t, v+1, m.Version())

	saved, ok, err := prefs.Get(ctx, KeyPreferredLanguage)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sv", saved)

	_, err = m.SwitchLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, enPack, m.Pack())
	assert.Equal(t, v+2, m.Version())
}

func TestSwitchLanguage_FailurePolicy(t *testing.T) {
	a, gw := newTranslationAPI(t)
	m := New(gw, storage.NewMemory(), WithEnvironmentLanguage(noEnv), WithBrandName("Lättfaktura"))
	ctx := context.Background()
	m.Initialize(ctx)

	_, err := m.SwitchLanguage(ctx, "sv")
	require.NoError(t, err)
	svPack := m.Pack()
	_, err = m.SwitchLanguage(ctx, "en")
	require.NoError(t, err)

	a.setDown(true)

	origin, err := m.SwitchLanguage(ctx, "sv")
	require.NoError(t, err)
	assert.Equal(t, OriginCache, origin)
	assert.Equal(t, svPack, m.Pack())

	origin, err = m.SwitchLanguage(ctx, "de")
	require.NoError(t, err)
	assert.Equal(t, OriginBundled, origin)
	assert.Equal(t, "de", m.Language())
	assert.Equal(t, "Sign In", m.Translate("sign_in"))
	assert.Equal(t, "Lättfaktura", m.Translate("brand_name"))

	for k, v := range m.Pack() {
		assert.False(t, strings.HasPrefix(v, "["), "placeholder for %s", k)
	}
}

func TestSwitchLanguage_LastWriteWins(t *testing.T) {
	a, gw := newTranslationAPI(t)
	m := New(gw, storage.NewMemory(), WithEnvironmentLanguage(noEnv))
	ctx := context.Background()
	m.Initialize(ctx)

	a.mu.Lock()
	a.delay["sv"] = 5 * time.Second
	a.requested = make(chan string, 4)
	a.mu.Unlock()

	slow := make(chan error, 1)
	go func() {
		_, err := m.SwitchLanguage(ctx, "sv")
		slow <- err
	}()
	require.Equal(t, "sv", <-a.requested)
	assert.True(t, m.Loading())

	a.mu.Lock()
	a.packs["fi"] = map[string]string{"auth.login": "Kirjaudu"}
	a.mu.Unlock()

	_, err := m.SwitchLanguage(ctx, "fi")
	require.NoError(t, err)

	select {
	case err := <-slow:
		require.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(3 * time.Second):
		t.Fatal("superseded switch did not return")
	}

	assert.Equal(t, "fi", m.Language())
	assert.Equal(t, "Kirjaudu", m.Translate("sign_in"))
	assert.False(t, m.Loading())
}

func TestSwitchLanguage_BackToCurrentCancelsPending(t *testing.T) {
	a, gw := newTranslationAPI(t)
	m := New(gw, storage.NewMemory(), WithEnvironmentLanguage(noEnv))
	ctx := context.Background()
	m.Initialize(ctx)

	a.mu.Lock()
	a.delay["sv"] = 5 * time.Second
	a.requested = make(chan string, 4)
	a.mu.Unlock()

	slow := make(chan error, 1)
	go func() {
		_, err := m.SwitchLanguage(ctx, "sv")
		slow <- err
	}()
	<-a.requested

	origin, err := m.SwitchLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, OriginCurrent, origin)
	require.ErrorIs(t, <-slow, ErrSuperseded)
	assert.Equal(t, "en", m.Language())
}

func TestLoadLanguage_ReloadsCurrent(t *testing.T) {
	a, gw := newTranslationAPI(t)
	m := New(gw, storage.NewMemory(), WithEnvironmentLanguage(noEnv))
	ctx := context.Background()
	m.Initialize(ctx)

	origin, err := m.LoadLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, OriginNetwork, origin)
	assert.Equal(t, 2, a.count("en"))
}

func TestFetchCategory(t *testing.T) {
	r := mux.NewRouter()
	var gotLang string
	r.HandleFunc("/translations/category/{cat}", func(w http.ResponseWriter, req *http.Request) {
		gotLang = req.URL.Query().Get("language")
		_ = json.NewEncoder(w).Encode(map[string]any{"translations": map[string]string{"ui.cancel": "Avbryt"}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	m := New(api.New(srv.URL, tokens.NewStore(storage.NewMemory())), storage.NewMemory())
	p, err := m.FetchCategory(context.Background(), "ui", "sv")
	require.NoError(t, err)
	assert.Equal(t, "sv", gotLang)
	assert.Equal(t, Pack{"cancel": "Avbryt"}, p)
}

func TestEnvironmentLanguage(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "posix locale", env: map[string]string{"LANG": "sv_SE.UTF-8"}, want: "sv"},
		{name: "lc_all wins", env: map[string]string{"LC_ALL": "de_DE@euro", "LANG": "sv_SE.UTF-8"}, want: "de"},
		{name: "bcp47", env: map[string]string{"LC_MESSAGES": "en-GB"}, want: "en"},
		{name: "C locale skipped", env: map[string]string{"LC_ALL": "C", "LANG": "fi_FI"}, want: "fi"},
		{name: "nothing set", env: map[string]string{}, want: ""},
		{name: "garbage", env: map[string]string{"LANG": "???"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnvironmentLanguage(func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemap(t *testing.T) {
	got := Remap(map[string]string{
		"auth.login":    "a",
		"brand.name":    "b",
		"misc.deep.key": "c",
		"already_flat":  "d",
	})
	assert.Equal(t, Pack{"sign_in": "a", "brand_name": "b", "misc_deep_key": "c", "already_flat": "d"}, got)
}

func TestBundled_UnknownCodeIsEnglish(t *testing.T) {
	assert.Equal(t, Bundled("en", "X"), Bundled("zz", "X"))
	assert.Equal(t, "Logga in", Bundled("sv", "")["sign_in"])
}
