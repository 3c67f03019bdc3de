// Command migrate применяет встроенные миграции схемы.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wishly/internal/config"
	"wishly/internal/infrastructure/persistence"
	"wishly/pkg/application/connectors"
	"wishly/pkg/contextx"
	"wishly/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1) //nolint:gocritic
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the wishly database schema",
		SilenceUsage: true,
	}

	for _, command := range []struct {
		name  string
		short string
	}{
		{name: persistence.MigrateUp, short: "Apply all pending migrations"},
		{name: persistence.MigrateDown, short: "Roll back the latest migration"},
		{name: persistence.MigrateStatus, short: "Print applied and pending migrations"},
	} {
		root.AddCommand(&cobra.Command{
			Use:   command.name,
			Short: command.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context(), command.name)
			},
		})
	}

	return root
}

func migrate(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	ctx = contextx.WithLogger(ctx, logx.New(os.Stderr, cfg.Log.Format, cfg.Log.Level))

	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err = persistence.Migrate(ctx, db.DB, command); err != nil {
		return fmt.Errorf("persistence.Migrate: %w", err)
	}

	return nil
}
