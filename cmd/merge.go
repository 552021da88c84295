package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"labgrade.dev/pkg/labgrade/internal/domain"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

var mergeRosterFlag string
var mergeParallelFlag uint

// mergeCmd represents the merge command.
var mergeCmd = newMergeCmd()

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <report-dir>...",
		Short: "Merge saved reports into one roster",
		Long: `Merge the report.json files of several output directories (one per student
checkout) into a single roster CSV. A directory named artifacts is listed under
the name of the checkout that contains it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Merge(cmd.Context(), domain.MergeArgs{
				Dirs:    parsePaths(args),
				Roster:  m.Path(viper.GetString(mergeRosterKey)),
				Threads: viper.GetUint(mergeParallelKey),
			})
		},
	}

	configureMergeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func configureMergeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mergeRosterFlag, rosterFlagName, viper.GetString(mergeRosterKey), "path of the merged roster CSV")
	bindFlagToConfig(cmd.Flags().Lookup(rosterFlagName), mergeRosterKey)

	cmd.Flags().UintVarP(&mergeParallelFlag, parallelFlagName, "p", viper.GetUint(mergeParallelKey), "number of reports loaded concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), mergeParallelKey)
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
