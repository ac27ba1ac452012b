package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/announcement"
	"github.com/smallbiznis/estatehub/internal/authorization"
	"github.com/smallbiznis/estatehub/internal/clock"
	"github.com/smallbiznis/estatehub/internal/config"
	"github.com/smallbiznis/estatehub/internal/estate"
	"github.com/smallbiznis/estatehub/internal/fee"
	"github.com/smallbiznis/estatehub/internal/maintenance"
	"github.com/smallbiznis/estatehub/internal/migration"
	"github.com/smallbiznis/estatehub/internal/observability"
	"github.com/smallbiznis/estatehub/internal/payment"
	"github.com/smallbiznis/estatehub/internal/reporting"
	"github.com/smallbiznis/estatehub/internal/server"
	"github.com/smallbiznis/estatehub/internal/unit"
	"github.com/smallbiznis/estatehub/pkg/db"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "estatehub",
		Short: "Estate management backend",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			fx.New(
				// Core Infrastructure
				config.Module,
				observability.Module,
				fx.Provide(RegisterSnowflake),
				db.Module,
				clock.Module,
				authorization.Module,

				// Functional Domains
				estate.Module,
				unit.Module,
				fee.Module,
				payment.Module,
				maintenance.Module,
				announcement.Module,
				reporting.Module,

				migration.Module,
				server.Module,
			).Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and seed the role policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			conn, err := db.New(db.ConfigFrom(cfg), log)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err := migration.Run(conn); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if _, err := authorization.NewEnforcer(conn); err != nil {
				return fmt.Errorf("seed policies: %w", err)
			}

			log.Info("schema migrated", zap.String("db_type", cfg.DBType))
			return nil
		},
	}
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
