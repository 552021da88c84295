// Package cmd provides the root command and CLI setup for labgrade.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"labgrade.dev/pkg/labgrade/internal/adapter"
	"labgrade.dev/pkg/labgrade/internal/controller"
	"labgrade.dev/pkg/labgrade/internal/domain"
	"labgrade.dev/pkg/labgrade/internal/domain/labs"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var commitAdapter adapter.CommitAdapter
var reportStore adapter.ReportStore
var rubricLoader adapter.RubricLoader
var watcher adapter.Watcher
var grader domain.Grader
var workflow domain.Workflow
var ui controller.UI

// Root-level flags shared by every command.
var (
	outputDirFlag string
	rubricFlag    string
	deadlineFlag  string
	fallbackFlag  string
	verboseFlag   bool
	logFileFlag   string
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	commitAdapter = adapter.NewLocalGitAdapter(gitTimeout())
	reportStore = adapter.NewReportStore(fsAdapter)
	rubricLoader = adapter.NewYAMLRubricLoader(fsAdapter)
	watcher = adapter.NewFSNotifyWatcher()
	grader = domain.NewGrader(fsAdapter, commitAdapter, clockwork.NewRealClock())
	workflow = domain.NewWorkflow(grader, reportStore, watcher, ui)
}

const projectHelp = `The project directory defaults to project.root from labgrade.yaml (or
LABGRADE_PROJECT_ROOT). Relative paths are resolved against the current
directory, which must be inside the student's git repository.`

const rootLongDescription = `Labgrade is a lenient autograder for beginner React labs. It locates the
student's component files, strips comments, checks each TODO against a
requirement checklist with partial credit and scores the submission time
against the deadline.

` + projectHelp

const gradeLongDescription = `Grade the lab in the given project directory and write report.json,
feedback/README.md and grade.csv into the output directory.

` + projectHelp

const listLongDescription = `List the file located for every role of the lab.

` + projectHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labgrade",
		Short: "Lenient autograder for React lab submissions",
		Long:  rootLongDescription,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for the grading artifacts",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&rubricFlag, rubricFlagName, "r", viper.GetString(rubricFileKey), "YAML rubric replacing the built-in lab")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rubricFlagName), rubricFileKey)

	cmd.PersistentFlags().StringVar(&deadlineFlag, deadlineFlagName, viper.GetString(deadlineKey), "submission deadline (RFC 3339, inclusive)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(deadlineFlagName), deadlineKey)

	cmd.PersistentFlags().StringVar(&fallbackFlag, fallbackFlagName, viper.GetString(fallbackKey), "commit time fallback when git fails: now or late")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(fallbackFlagName), fallbackKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func gitTimeout() time.Duration {
	timeout := viper.GetDuration(gitTimeoutKey)
	if timeout <= 0 {
		return adapter.DefaultGitTimeout
	}

	return timeout
}

// gradeArgs assembles the grading inputs from the configuration and the
// optional project argument.
func gradeArgs(ctx context.Context, args []string) (domain.GradeArgs, error) {
	lab, err := loadLab(ctx)
	if err != nil {
		return domain.GradeArgs{}, err
	}

	policy, err := submissionPolicy()
	if err != nil {
		return domain.GradeArgs{}, err
	}

	repoRoot, err := os.Getwd()
	if err != nil {
		return domain.GradeArgs{}, fmt.Errorf("resolve working directory: %w", err)
	}

	project := viper.GetString(projectRootKey)
	if len(args) > 0 {
		project = args[0]
	}

	return domain.GradeArgs{
		RepoRoot:    m.Path(repoRoot),
		ProjectRoot: resolveProject(repoRoot, project),
		Lab:         lab,
		Policy:      policy,
		SkipDirs:    domain.DefaultSkipDirs,
	}, nil
}

func runArgs(ctx context.Context, args []string) (domain.RunArgs, error) {
	grade, err := gradeArgs(ctx, args)
	if err != nil {
		return domain.RunArgs{}, err
	}

	return domain.RunArgs{
		GradeArgs:   grade,
		Output:      m.Path(viper.GetString(outputFlagName)),
		SummaryFile: m.Path(viper.GetString(summaryFileKey)),
	}, nil
}

func resolveProject(repoRoot, project string) m.Path {
	if strings.TrimSpace(project) == "" {
		project = defaultProjectRoot
	}

	if filepath.IsAbs(project) {
		return m.Path(filepath.Clean(project))
	}

	return m.Path(filepath.Join(repoRoot, project))
}

// loadLab returns the rubric lab when a rubric file is configured and the
// built-in lab named by lab.name otherwise.
func loadLab(ctx context.Context) (m.Lab, error) {
	if path := viper.GetString(rubricFileKey); path != "" {
		spec, err := rubricLoader.Load(ctx, m.Path(path))
		if err != nil {
			slog.Error("Failed to load rubric", "path", path, "error", err)
			return m.Lab{}, fmt.Errorf("load rubric: %w", err)
		}

		lab, err := domain.BuildLab(spec)
		if err != nil {
			slog.Error("Invalid rubric", "path", path, "error", err)
			return m.Lab{}, err
		}

		return lab, nil
	}

	name := viper.GetString(labNameKey)

	lab, ok := labs.Lookup(name)
	if !ok {
		return m.Lab{}, fmt.Errorf("unknown lab %q (available: %s)", name, strings.Join(labs.Names(), ", "))
	}

	return lab, nil
}

func submissionPolicy() (domain.SubmissionPolicy, error) {
	raw := viper.GetString(deadlineKey)

	deadline, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		slog.Error("Invalid submission deadline", "deadline", raw, "error", err)
		return domain.SubmissionPolicy{}, fmt.Errorf("invalid %s %q: %w", deadlineKey, raw, err)
	}

	fallback, err := domain.ParseFallbackPolicy(viper.GetString(fallbackKey))
	if err != nil {
		return domain.SubmissionPolicy{}, err
	}

	maxScore := viper.GetFloat64(submissionMaxKey)
	late := viper.GetFloat64(submissionLateKey)

	if maxScore < 0 || late < 0 || late > maxScore {
		return domain.SubmissionPolicy{}, fmt.Errorf("invalid submission marks: max %v, late %v", maxScore, late)
	}

	return domain.SubmissionPolicy{
		Deadline: deadline,
		Max:      maxScore,
		Late:     late,
		Fallback: fallback,
	}, nil
}
