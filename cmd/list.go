package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [project]",
		Short: "List the files located for each role",
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gradeArgs, err := gradeArgs(cmd.Context(), args)
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), gradeArgs)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
