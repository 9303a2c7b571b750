package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/pkordes/wayfarer/internal/repo"
	"github.com/pkordes/wayfarer/internal/service"
	"github.com/pkordes/wayfarer/migrations"
)

func newImportCmd() *cobra.Command {
	var (
		snapshotPath string
		databaseURL  string
		migrate      bool
	)
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Upsert a YAML snapshot of places into Postgres",
		Args:    cobra.NoArgs,
		GroupID: "content",
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return fmt.Errorf("--database-url or DATABASE_URL is required")
			}
			snap, err := loadSnapshot(snapshotPath)
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil)).With("component", "import")
			ctx := cmd.Context()

			pool, err := pgxpool.New(ctx, databaseURL)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()

			if migrate {
				sqlDB := stdlib.OpenDBFromPool(pool)
				applied, err := migrations.Up(ctx, sqlDB)
				_ = sqlDB.Close()
				if err != nil {
					return err
				}
				logger.Info("migrations applied", "count", applied)
			}

			svc := service.NewPlaceService(repo.NewPlaceRepo(pool), nil, nil)
			n, err := svc.Import(ctx, snap.Places)
			logger.Info("import finished", "snapshot", snapshotPath, "written", n, "total", len(snap.Places))
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("imported %d %s", n, plural(n, "place", "places")))
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "YAML snapshot of places (required)")
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (default $DATABASE_URL)")
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations first")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
