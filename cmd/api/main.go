package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/wagedash/internal/api"
	"github.com/ougirez/wagedash/internal/pkg/config"
	"github.com/ougirez/wagedash/internal/pkg/constants"
	"github.com/ougirez/wagedash/internal/pkg/loader"
	"github.com/ougirez/wagedash/internal/pkg/logger"
	"github.com/ougirez/wagedash/internal/pkg/store"
	"github.com/ougirez/wagedash/internal/service/dashboard"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var configPath string

var rootCmd = &cobra.Command{
	Use:          "wagedash",
	Short:        "Дашборд зарплат в Японии по данным RESAS",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "путь к config.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := newSource(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer closeSrc()

	ds, err := loader.LoadDataset(ctx, src)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	svc, err := api.NewAPIService(cfg.Server, dashboard.NewDashboardService(ds))
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(cfg.Server.Addr)
	logger.Infof(ctx, "listening on %s", cfg.Server.Addr)

	<-ctx.Done()
	logger.Infof(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return svc.Shutdown(shutdownCtx)
}

// newSource выбирает, откуда читать таблицы: CSV-файлы или Postgres.
func newSource(ctx context.Context, cfg *config.Config) (loader.Source, func(), error) {
	if cfg.Data.Source != constants.DataSourcePostgres {
		return loader.NewFileSource(cfg.Data), func() {}, nil
	}

	pool, err := store.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.ConnectRetries)
	if err != nil {
		return nil, nil, fmt.Errorf("store.Connect: %w", err)
	}
	return store.NewStore(pool), pool.Close, nil
}
