package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/owaspcebu/ctf-platform/internal/infrastructure/db/mongo"
	"github.com/owaspcebu/ctf-platform/internal/pkg/config"
)

// newMigrateCmd creates the MongoDB indexes. serve does the same at startup;
// this lets operators run it ahead of a deploy.
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create MongoDB indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	if cfg.Store != config.StoreMongo {
		return errors.New("migrate requires STORE_DRIVER=mongo")
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("indexes applied")
	return nil
}
