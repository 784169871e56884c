package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/faktura/internal/client/storage"
	"github.com/dmitrijs2005/faktura/internal/logging"
)

const MaxPageSize = 100

// Config holds runtime settings for the faktura CLI.
//
// Units: RequestTimeout and SearchDebounce are time.Duration values.
type Config struct {
	APIBaseURL     string        `env:"FAKTURA_API_BASE_URL" env-description:"base URL of the storefront API"`
	RequestTimeout time.Duration `env:"FAKTURA_REQUEST_TIMEOUT" env-description:"timeout of a single API request"`

	StoreBackend string `env:"FAKTURA_STORE" env-description:"client storage backend: sqlite, redis or memory"`
	StorePath    string `env:"FAKTURA_STORE_PATH" env-description:"SQLite database file"`
	RedisAddr    string `env:"FAKTURA_REDIS_ADDR" env-description:"Redis address for the redis backend"`
	RedisPrefix  string `env:"FAKTURA_REDIS_PREFIX" env-description:"key prefix for the redis backend"`

	PageSize       int           `env:"FAKTURA_PAGE_SIZE" env-description:"products per page (1-100)"`
	SearchDebounce time.Duration `env:"FAKTURA_SEARCH_DEBOUNCE" env-description:"quiet period before a search is sent"`
	ServerLogout   bool          `env:"FAKTURA_SERVER_LOGOUT" env-description:"notify the API on logout"`

	LogFormat string `env:"FAKTURA_LOG_FORMAT" env-description:"log format: text or json"`
	LogLevel  string `env:"FAKTURA_LOG_LEVEL" env-description:"log level: debug, info, warn, error"`

	BrandName string `env:"FAKTURA_BRAND_NAME" env-description:"brand shown in the banner"`
	AppName   string `env:"FAKTURA_APP_NAME" env-description:"application name"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 10 * time.Second
	c.StoreBackend = storage.BackendSQLite
	c.StorePath = "faktura.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "faktura:"
	c.PageSize = 10
	c.SearchDebounce = 500 * time.Millisecond
	c.ServerLogout = false
	c.LogFormat = logging.FormatText
	c.LogLevel = "info"
	c.BrandName = "Lättfaktura"
	c.AppName = "123 Fakturera"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base url is required")
	}
	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url %q", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.StoreBackend {
	case storage.BackendSQLite, storage.BackendRedis, storage.BackendMemory:
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnknownBackend, c.StoreBackend)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("page size must be between 1 and %d, got %d", MaxPageSize, c.PageSize)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("search debounce must not be negative, got %s", c.SearchDebounce)
	}
	return nil
}

// StorageOptions maps the storage settings to storage.Options.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:     c.StoreBackend,
		Path:        c.StorePath,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), dotenv and environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
