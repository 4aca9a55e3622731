package main

import (
	"context"
	"fmt"
	"os"

	"healthlog/internal/domain/repository"
	"healthlog/internal/infrastructure/database/sqlite"
	"healthlog/internal/pkg/config"
	appLogger "healthlog/internal/pkg/logger"
	"healthlog/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

// runtime holds what every subcommand needs: config, logging and the store.
type runtime struct {
	cfg      *config.Config
	log      appLogger.Logger
	db       *gorm.DB
	store    *repository.Store
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := appLogger.New(appLogger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}
	log.Info("Logger initialized.")

	db, err := sqlite.NewDB(cfg.DBPath, cfg.SQLLogLevel, log)
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &runtime{
		cfg:      cfg,
		log:      log,
		db:       db,
		store:    sqlite.NewStore(db),
		registry: registry,
		metrics:  metrics.New(registry),
	}, nil
}

func (r *runtime) close() {
	if err := sqlite.CloseDB(r.db); err != nil {
		r.log.Error("Error closing database", err)
	} else {
		r.log.Info("Database connection closed.")
	}
	appLogger.Sync(r.log)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "healthlog",
		Short:         "Personal health journal with medication reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newExportCmd(), newImportCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
