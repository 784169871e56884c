package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/faktura/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the API
//	-t int      request timeout (seconds)
//	-s string   storage backend (sqlite, redis, memory)
//	-d string   SQLite database file
//	-p int      products per page
//	-l string   log format (text, json)
//	-v string   log level
//
// Only these flags are taken from os.Args, so other components may define
// their own. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-d", "-p", "-l", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "storage backend: sqlite, redis or memory")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "SQLite database file")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "products per page")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	timeoutSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			timeoutSet = true
		}
	})
	if timeoutSet {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
}
