// Package config loads canarywatch's TOML configuration.
//
// The file lives at ~/.config/canarywatch/config.toml unless a path is
// given. Every key is optional; a missing file is not an error and yields
// Default(). A file that fails to parse is.
//
// Example:
//
//	api_url = "http://127.0.0.1:8080"
//	poll_interval = "5s"
//	request_timeout = "10s"
//	time_range_minutes = 30
//	performance_window = 60
//	page_size = 20
//	lookup_url = "https://crt.sh/"
//	log_file = "~/.local/state/canarywatch/canarywatch.log"
//	metrics_addr = "127.0.0.1:9108"
//
// Durations use time.ParseDuration syntax and must be positive. Paths
// starting with ~ are expanded against the home directory.
package config
