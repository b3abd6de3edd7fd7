package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything canarywatch reads from its config file.
type Config struct {
	APIURL            string
	PollInterval      time.Duration
	RequestTimeout    time.Duration
	TimeRangeMinutes  int
	PerformanceWindow int
	PageSize          int
	LookupURL         string
	LogFile           string
	MetricsAddr       string
}

const (
	defaultConfigPath        = "~/.config/canarywatch/config.toml"
	defaultAPIURL            = "http://127.0.0.1:8080"
	defaultPollInterval      = 5 * time.Second
	defaultRequestTimeout    = 10 * time.Second
	defaultTimeRangeMinutes  = 30
	defaultPerformanceWindow = 60
	defaultPageSize          = 20
	defaultLookupURL         = "https://crt.sh/"
	defaultLogFile           = "~/.local/state/canarywatch/canarywatch.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:            defaultAPIURL,
		PollInterval:      defaultPollInterval,
		RequestTimeout:    defaultRequestTimeout,
		TimeRangeMinutes:  defaultTimeRangeMinutes,
		PerformanceWindow: defaultPerformanceWindow,
		PageSize:          defaultPageSize,
		LookupURL:         defaultLookupURL,
		LogFile:           mustExpand(defaultLogFile),
	}
}

// Load reads the config at path, or the default location when path is
// empty. A missing file yields Default().
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string `toml:"api_url"`
		PollInterval      string `toml:"poll_interval"`
		RequestTimeout    string `toml:"request_timeout"`
		TimeRangeMinutes  int    `toml:"time_range_minutes"`
		PerformanceWindow int    `toml:"performance_window"`
		PageSize          int    `toml:"page_size"`
		LookupURL         string `toml:"lookup_url"`
		LogFile           string `toml:"log_file"`
		MetricsAddr       string `toml:"metrics_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if cfg.PollInterval, err = parseDuration("poll_interval", raw.PollInterval, defaultPollInterval); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if raw.TimeRangeMinutes > 0 {
		cfg.TimeRangeMinutes = raw.TimeRangeMinutes
	}
	if raw.PerformanceWindow > 0 {
		cfg.PerformanceWindow = raw.PerformanceWindow
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if v := strings.TrimSpace(raw.LookupURL); v != "" {
		cfg.LookupURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	return cfg, nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("parse config: %s must be positive, got %s", key, value)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
