package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"student-rank/driver"
	"student-rank/query"
	"student-rank/store"
)

func newStudentCmd() *cobra.Command {
	var scope query.Scope
	cmd := &cobra.Command{
		Use:   "student <roll_number>",
		Short: "Print one student's result sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, err := setup(ctx)
			if err != nil {
				return err
			}
			defer driver.Close(db)

			s, err := store.New(db).GetStudent(ctx, args[0], scope)
			if store.IsNotFound(err) {
				return errors.Errorf("no student with roll number %s", args[0])
			}
			if err != nil {
				return err
			}
			renderStudent(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&scope.ExamType, "exam-type", "", "exam type")
	cmd.Flags().StringVar(&scope.Year, "year", "", "exam year")
	return cmd
}
