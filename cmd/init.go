package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default labgrade.yaml configuration file",
		Long: `Create a labgrade.yaml in the current working directory holding the
deadline, marks, lab and logging defaults so they can be edited manually.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", targetPath)

			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
