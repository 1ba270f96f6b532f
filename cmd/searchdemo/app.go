package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/searchdemo/internal/config"
	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	logpkg "github.com/kailas-cloud/searchdemo/internal/logger"
	"github.com/kailas-cloud/searchdemo/internal/metrics"
	"github.com/kailas-cloud/searchdemo/internal/transport/backend"
	"github.com/kailas-cloud/searchdemo/internal/ui"
	"github.com/kailas-cloud/searchdemo/internal/ui/event"
	"github.com/kailas-cloud/searchdemo/internal/ui/terminal"
	healthuc "github.com/kailas-cloud/searchdemo/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchdemo/internal/usecase/search"
	"github.com/kailas-cloud/searchdemo/internal/version"
)

const shutdownTimeout = 5 * time.Second

// app is the composition root shared by every command.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	search   *searchuc.Service
	health   *healthuc.Service
	surface  *terminal.Surface
}

func newApp(opts *rootOptions) (*app, error) {
	env := opts.env
	if env == "" {
		env = config.GetEnv()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.backend != "" {
		cfg.Backend.BaseURL = strings.TrimRight(opts.backend, "/")
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.noColor {
		off := false
		cfg.UI.Color = &off
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	client := backend.NewClient(&backend.Config{
		BaseURL:   cfg.Backend.BaseURL,
		APIKey:    cfg.Backend.APIKey,
		UserAgent: cfg.Backend.UserAgent,
		Timeout:   cfg.Timeout(),
		Logger:    logger,
	})

	logger.Debug("searchdemo configured",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.Duration("timeout", cfg.Timeout()),
		zap.Int("metrics_port", cfg.Metrics.Port),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		search:   searchuc.New(client, logger),
		health:   healthuc.New(client, logger),
		surface:  terminal.NewSurface(os.Stdout, cfg.ColorEnabled()),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) newClient(m mode.Mode) *ui.SearchClient {
	return ui.New(a.search, a.health, a.surface, a.logger,
		ui.WithNotificationTTL(a.cfg.NotificationTTL()),
		ui.WithMode(m),
	)
}

func (a *app) runInteractive(ctx context.Context, m mode.Mode) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	if a.cfg.Metrics.Port > 0 {
		srv := metrics.NewServer(a.cfg.Metrics.Port, a.registry)
		g.Go(func() error {
			a.logger.Info("metrics server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	client := a.newClient(m)
	defer client.Close()

	reg := event.NewRegistry()
	a.surface.Printf("searchdemo %s, backend %s. Type :help for commands.\n", version.Version, a.cfg.Backend.BaseURL)
	client.Init(gctx, reg)

	loop := terminal.NewLoop(os.Stdin, a.surface, reg, client, a.logger)
	g.Go(func() error {
		defer stop()
		return loop.Run(gctx)
	})

	return g.Wait()
}

func (a *app) runSearch(ctx context.Context, args []string, m mode.Mode) error {
	client := a.newClient(m)
	defer client.Close()

	client.SetQuery(strings.Join(args, " "))
	return client.Search(ctx)
}

func (a *app) runHealth(ctx context.Context) error {
	r := a.health.Check(ctx)
	a.surface.ShowStatus(r)
	for _, name := range slices.Sorted(maps.Keys(r.Checks)) {
		a.surface.Printf("  %-16s %s\n", name, r.Checks[name])
	}
	if r.Status != healthuc.Ready {
		if r.Err != nil {
			return fmt.Errorf("backend not ready: %w", r.Err)
		}
		return errors.New("backend not ready")
	}
	return nil
}
