package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmeticdb/license-registry/internal/storage"
)

// newPurgeCmd creates the purge subcommand.
func newPurgeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every license record",
		Long: `Purge removes all records from the registry. There is no soft delete;
this is a full removal intended for bulk resets before a re-import.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("purge removes all records; re-run with --yes to confirm")
			}

			ctx := context.Background()

			db, err := openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := storage.NewLicenseRepository(db)

			removed, err := repo.DeleteAll(ctx)
			if err != nil {
				return fmt.Errorf("purge: %w", err)
			}

			printSuccess("removed %d licenses", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all records")

	return cmd
}
