package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"labgrade.dev/pkg/labgrade/internal/adapter"
	"labgrade.dev/pkg/labgrade/internal/controller"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// RunArgs contains the arguments of a grading run that writes artifacts.
type RunArgs struct {
	GradeArgs

	Output      m.Path
	SummaryFile m.Path
}

// ViewArgs contains the arguments for displaying a saved report.
type ViewArgs struct {
	Output m.Path
}

// MergeArgs contains the arguments for folding saved reports into a roster.
type MergeArgs struct {
	Dirs    []m.Path
	Roster  m.Path
	Threads uint
}

// WatchArgs contains the arguments for re-grading on file changes.
type WatchArgs struct {
	RunArgs

	Debounce time.Duration
	// IgnorePaths are files the grader itself writes, such as the log file.
	IgnorePaths []m.Path
}

var errNoReportDirs = errors.New("no report directories given")

// Workflow defines the commands of the grader.
type Workflow interface {
	Grade(ctx context.Context, args RunArgs) (m.Report, error)
	List(ctx context.Context, args GradeArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	adapter.ReportStore
	controller.UI

	grader  Grader
	watcher adapter.Watcher
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	grader Grader,
	reportStore adapter.ReportStore,
	watcher adapter.Watcher,
	ui controller.UI,
) Workflow {
	return &workflow{
		ReportStore: reportStore,
		UI:          ui,
		grader:      grader,
		watcher:     watcher,
	}
}

func (w *workflow) Grade(ctx context.Context, args RunArgs) (m.Report, error) {
	previous, prevErr := w.LoadReport(ctx, args.Output)
	if prevErr != nil && !errors.Is(prevErr, adapter.ErrNoReport) {
		slog.Warn("Ignoring unreadable previous report", "output", args.Output, "error", prevErr)
	}

	report, err := w.grader.Grade(ctx, args.GradeArgs)
	if err != nil {
		return m.Report{}, fmt.Errorf("grade: %w", err)
	}

	if err := w.SaveReport(ctx, args.Output, report); err != nil {
		return report, fmt.Errorf("save report: %w", err)
	}

	if args.SummaryFile != "" {
		if err := w.AppendSummary(ctx, args.SummaryFile, report); err != nil {
			slog.Warn("Failed to append job summary", "file", args.SummaryFile, "error", err)
		}
	}

	if err := w.DisplayReport(ctx, report); err != nil {
		return report, fmt.Errorf("display report: %w", err)
	}

	if prevErr != nil {
		return report, nil
	}

	diff, err := ChecklistDiff(previous, report)
	if err != nil {
		slog.Warn("Failed to diff against previous report", "error", err)
		return report, nil
	}

	if diff != "" {
		if err := w.DisplayChanges(ctx, diff); err != nil {
			return report, fmt.Errorf("display changes: %w", err)
		}
	}

	return report, nil
}

func (w *workflow) List(ctx context.Context, args GradeArgs) error {
	_, files, err := w.grader.Locate(ctx, args)
	if err != nil {
		return fmt.Errorf("locate sources: %w", err)
	}

	return w.DisplaySources(ctx, files)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Output)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	return w.ViewReport(ctx, report)
}

func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	if len(args.Dirs) == 0 {
		return errNoReportDirs
	}

	rows := make([]m.RosterRow, len(args.Dirs))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Threads > 0 {
		group.SetLimit(int(args.Threads))
	}

	for i, dir := range args.Dirs {
		group.Go(func() error {
			report, err := w.LoadReport(groupCtx, dir)
			if err != nil {
				return fmt.Errorf("load %s: %w", dir, err)
			}

			rows[i] = m.RosterRow{
				Student:  StudentName(dir),
				Score:    report.Totals.Total,
				MaxScore: report.Totals.TotalMax,
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Student < rows[j].Student
	})

	if err := w.SaveRoster(ctx, args.Roster, rows); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}

	return w.DisplayRoster(ctx, rows)
}

func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	if _, err := w.Grade(ctx, args.RunArgs); err != nil {
		return err
	}

	if err := w.DisplayWatching(ctx, args.ProjectRoot); err != nil {
		return err
	}

	ignore := adapter.WatchIgnore{
		DirNames: slices.Clone(args.SkipDirs),
		Paths:    watchIgnoredPaths(args),
	}

	regrade := func() {
		if _, err := w.Grade(ctx, args.RunArgs); err != nil {
			slog.Error("Re-grading failed", "error", err)
		}
	}

	if err := w.watcher.Watch(ctx, args.ProjectRoot, args.Debounce, regrade, ignore); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	return nil
}

// watchIgnoredPaths lists every location a grading run writes to. Changes
// there must not trigger another run.
func watchIgnoredPaths(args WatchArgs) []m.Path {
	paths := make([]m.Path, 0, len(args.IgnorePaths)+2)

	for _, path := range append([]m.Path{args.Output, args.SummaryFile}, args.IgnorePaths...) {
		if path != "" {
			paths = append(paths, m.Path(filepath.Clean(string(path))))
		}
	}

	return paths
}

// StudentName derives the roster name from a report directory. The default
// artifacts directory is named after the checkout that contains it.
func StudentName(dir m.Path) string {
	clean := filepath.Clean(string(dir))
	base := filepath.Base(clean)

	if strings.EqualFold(base, "artifacts") {
		parent := filepath.Base(filepath.Dir(clean))
		if parent != "." && parent != string(filepath.Separator) {
			return parent
		}
	}

	return base
}
