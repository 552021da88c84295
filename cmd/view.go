package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"labgrade.dev/pkg/labgrade/internal/domain"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View a previously generated grading report",
		Long:  "View the report.json saved in the output directory by a previous grade run.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			output := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Output: output})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
