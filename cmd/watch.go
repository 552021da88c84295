package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"labgrade.dev/pkg/labgrade/internal/domain"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [project]",
		Short: "Re-grade whenever the project changes",
		Long: `Grade the project once, then watch it and grade again after every burst of
file changes (see watch.debounce). Stop with Ctrl+C.

` + projectHelp,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runArgs, err := runArgs(ctx, args)
			if err != nil {
				return err
			}

			return workflow.Watch(ctx, domain.WatchArgs{
				RunArgs:     runArgs,
				Debounce:    viper.GetDuration(watchDebounceKey),
				IgnorePaths: []m.Path{m.Path(resolveLogPath(viper.GetString(logFilenameKey)))},
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
