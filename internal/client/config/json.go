package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/faktura/internal/flagx"
	"github.com/dmitrijs2005/faktura/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values; durations use timex.Duration
// so they may be written as "3s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StoreBackend   *string         `json:"store"`
	StorePath      *string         `json:"store_path"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisPrefix    *string         `json:"redis_prefix"`
	PageSize       *int            `json:"page_size"`
	SearchDebounce *timex.Duration `json:"search_debounce"`
	ServerLogout   *bool           `json:"server_logout"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
	BrandName      *string         `json:"brand_name"`
	AppName        *string         `json:"app_name"`
}

// parseJson overlays Config with values from the JSON file named by -c or
// -config. Without the flag nothing is loaded. Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFiles().JSON
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.StoreBackend, jc.StoreBackend)
	setIf(&cfg.StorePath, jc.StorePath)
	setIf(&cfg.RedisAddr, jc.RedisAddr)
	setIf(&cfg.RedisPrefix, jc.RedisPrefix)
	setIf(&cfg.PageSize, jc.PageSize)
	setIf(&cfg.ServerLogout, jc.ServerLogout)
	setIf(&cfg.LogFormat, jc.LogFormat)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.BrandName, jc.BrandName)
	setIf(&cfg.AppName, jc.AppName)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SearchDebounce != nil {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
