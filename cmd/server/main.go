package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	webAdapter "erp-dashboard/internal/adapters/web"
	"erp-dashboard/internal/app"
	"erp-dashboard/internal/config"
	"erp-dashboard/internal/core"
	"erp-dashboard/internal/logging"
	"erp-dashboard/internal/metrics"
	"erp-dashboard/internal/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.WithError(err).WithField("driver", cfg.Storage.Driver).Fatal("storage")
	}
	defer store.Close()

	creds, err := core.NewStaticCredentials(cfg.DemoPassword)
	if err != nil {
		logger.WithError(err).Fatal("credentials")
	}

	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET is not set, using the development secret")
	}

	var m *metrics.Metrics
	if cfg.Prometheus.Enabled {
		m = metrics.New()
	}

	svc := app.NewAppService(app.Options{
		Store:       store,
		Credentials: creds,
		Finance:     core.NewFileFinanceSource(cfg.FinanceDataPath),
		Logger:      logger,
		Metrics:     m,
		Clock:       time.Now,
		SessionTTL:  cfg.SessionDuration,
	})

	metricsPath := ""
	if cfg.Prometheus.Enabled {
		metricsPath = cfg.Prometheus.Path
	}
	handler := webAdapter.NewHandler(svc, webAdapter.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		SecureCookies:  cfg.Production(),
		SessionTTL:     cfg.SessionDuration,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		MetricsPath:    metricsPath,
		Logger:         logger,
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"storage": cfg.Storage.Driver,
			"metrics": metricsPath,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Fatal("server")
	}
	logger.Info("server stopped")
}
