// erpctl manages the dashboard records from the terminal. Without arguments
// it starts the interactive shell.
//
// Usage: go run ./cmd/erpctl [command] [args]
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"erp-dashboard/internal/adapters/cli"
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
	// Warnings and errors only; command output owns stdout.
	logger := logging.NewWithWriter(os.Stderr, "warn", cfg.LogFormat)

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage")
	}

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
		SessionTTL:  cfg.SessionDuration,
	})

	root := cli.NewRootCommand(svc, cli.StdStreams())
	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"shell"}
	}
	root.SetArgs(args)

	err = root.ExecuteContext(ctx)
	_ = store.Close()
	if err != nil {
		if !errors.Is(err, cli.ErrRejected) {
			logger.WithError(err).Error("command failed")
		}
		os.Exit(1)
	}
}
