package main

import (
	"github.com/spf13/cobra"

	"student-rank/driver"
	"student-rank/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the students table if missing and build its indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer driver.Close(db)

			if err := migrations.Up(ctx, db); err != nil {
				return err
			}
			return migrations.Verify(ctx, db)
		},
	}
}
