// Package config loads runtime configuration for the faktura CLI.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Optional dotenv file selected with -e or -env (./.env when present),
//     then FAKTURA_* environment variables.
//  4. Command-line flags (-a, -t, -s, -d, -p, -l, -v).
//
// # JSON schema
//
// Durations accept strings such as "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api",
//	  "request_timeout": "10s",
//	  "store": "sqlite",
//	  "store_path": "faktura.db",
//	  "page_size": 10,
//	  "search_debounce": "500ms"
//	}
//
// Only keys present in the file override earlier values.
package config
