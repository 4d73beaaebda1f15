// migrate applies the SQL files in migrations/ to the PostgreSQL database
// named by DATABASE_URL. Each file runs once; its checksum is recorded in
// schema_migrations and verified on later runs.
//
// Usage: go run ./cmd/migrate [-dir migrations]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"erp-dashboard/internal/config"
	"erp-dashboard/internal/db"
	"erp-dashboard/internal/logging"

	"github.com/sirupsen/logrus"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding NNN_description.sql files")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuration")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.Storage.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	migrations, err := db.DiscoverMigrations(os.DirFS(*dir))
	if err != nil {
		logger.WithError(err).Fatal("discover")
	}

	ctx := context.Background()
	connCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	pool, err := db.NewPool(connCtx, cfg.Storage.DatabaseURL)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("connect")
	}
	defer pool.Close()

	applied, err := db.Migrate(ctx, pool, migrations, logger)
	if err != nil {
		pool.Close()
		logger.WithError(err).Fatal("migrate")
	}
	logger.WithFields(logrus.Fields{"applied": applied, "total": len(migrations)}).Info("All migrations processed.")
}
