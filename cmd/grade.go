package cmd

import (
	"github.com/spf13/cobra"
)

// gradeCmd represents the grade command.
var gradeCmd = newGradeCmd()

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade [project]",
		Short: "Grade a lab submission",
		Long:  gradeLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runArgs, err := runArgs(cmd.Context(), args)
			if err != nil {
				return err
			}

			_, err = workflow.Grade(cmd.Context(), runArgs)

			return err
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(gradeCmd)
}
