package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/canaryct/canarywatch/internal/canary"
	"github.com/canaryct/canarywatch/internal/config"
	"github.com/canaryct/canarywatch/internal/dashboard"
	"github.com/canaryct/canarywatch/internal/prefs"
	"github.com/canaryct/canarywatch/internal/telemetry"
	"github.com/canaryct/canarywatch/internal/ui"
)

// Options configure the canarywatch application. Zero values defer to the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/canarywatch/prefs.toml
	PollEvery  time.Duration
	APIURL     string
	Debug      bool
}

// Run boots the TUI and blocks until the operator quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := canary.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init canary client: %w", err)
	}

	metrics := telemetry.New()
	if cfg.MetricsAddr != "" {
		srv := telemetry.NewServer(metrics, cfg.MetricsAddr, "", logger)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	logger.WithFields(logrus.Fields{
		"api":   client.BaseURL(),
		"poll":  cfg.PollInterval.String(),
		"theme": string(userPrefs.Theme),
	}).Info("starting canarywatch")

	err = ui.Run(ui.Options{
		Context:   ctx,
		Fetcher:   client,
		Dashboard: dashboardOptions(cfg, logger, metrics),
		Theme:     userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		APIURL:    client.BaseURL(),
		Logger:    logger,
	})
	logger.Info("canarywatch stopped")
	return err
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	return cfg, nil
}

func dashboardOptions(cfg config.Config, logger logrus.FieldLogger, observer dashboard.Observer) dashboard.Options {
	return dashboard.Options{
		PageSize:          cfg.PageSize,
		TimeRangeMinutes:  cfg.TimeRangeMinutes,
		PerformanceWindow: cfg.PerformanceWindow,
		PollInterval:      cfg.PollInterval,
		LookupURL:         cfg.LookupURL,
		Logger:            logger,
		Observer:          observer,
	}
}
