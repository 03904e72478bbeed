package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"patient-service/internal/app"
	"patient-service/internal/core/config"
	"patient-service/internal/core/database"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		timeout time.Duration
	)
	root := &cobra.Command{
		Use:           "admin",
		Short:         "patient-service operator tasks",
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "operation timeout")

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "create or update the patient table and its unique email index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), cfgPath, timeout, func(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
				if err := database.Migrate(ctx, db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				l.Info("migrate done")
				return nil
			})
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "check database connectivity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), cfgPath, timeout, func(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
				if err := database.Ping(ctx, db); err != nil {
					return fmt.Errorf("ping: %w", err)
				}
				l.Info("database reachable")
				return nil
			})
		},
	})
	return root
}

func withDB(parent context.Context, cfgPath string, timeout time.Duration, fn func(context.Context, *gorm.DB, *zap.Logger) error) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	l, cleanup := app.NewLogger(cfg)
	defer cleanup()

	db, err := app.OpenDB(cfg, l)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()
	return fn(ctx, db, l.With(zap.String("driver", cfg.DB.Driver)))
}
