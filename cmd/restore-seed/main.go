// restore-seed is a one-shot tool that puts every record collection back to
// its seed data. Run it when demo data has been edited beyond repair.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"time"

	"erp-dashboard/internal/app"
	"erp-dashboard/internal/config"
	"erp-dashboard/internal/core"
	"erp-dashboard/internal/logging"
	"erp-dashboard/internal/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage")
	}
	defer store.Close()

	creds, err := core.NewStaticCredentials(cfg.DemoPassword)
	if err != nil {
		logger.WithError(err).Fatal("credentials")
	}

	svc := app.NewAppService(app.Options{
		Store:       store,
		Credentials: creds,
		Finance:     core.NewFileFinanceSource(cfg.FinanceDataPath),
		Logger:      logger,
		Clock:       time.Now,
	})

	results, err := svc.ResetAll(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Failed to restore seed data")
	}
	for _, r := range results {
		logger.WithFields(logrus.Fields{"collection": r.Collection, "records": r.Records}).Info("Restored")
	}
	logger.Info("Seed data restored.")
}
