package main

import (
	"context"

	"github.com/spf13/cobra"

	dbadapter "taskmanager/internal/adapter/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema for the configured driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, flush, err := setup()
			if err != nil {
				return err
			}
			defer flush()

			db, err := dbadapter.ConnectDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			return dbadapter.Migrate(context.Background(), db)
		},
	}
}
