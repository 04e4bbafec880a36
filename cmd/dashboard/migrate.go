package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"rockalpatio/pkg/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the dashboard tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := db.NewConnection(cfg.DB, log)
		if err != nil {
			return err
		}
		defer pool.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		return db.Migrate(ctx, pool, log)
	},
}
