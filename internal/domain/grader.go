// Package domain contains the grading workflow: locating submissions,
// evaluating requirement checklists and scoring submission timing.
package domain

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"labgrade.dev/pkg/labgrade/internal/adapter"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// GradeArgs contains the inputs of one grading run.
type GradeArgs struct {
	RepoRoot    m.Path
	ProjectRoot m.Path
	Lab         m.Lab
	Policy      SubmissionPolicy
	SkipDirs    []string
}

// Grader locates a submission's files and produces its report.
type Grader interface {
	Locate(ctx context.Context, args GradeArgs) ([]m.Source, []m.FileStatus, error)
	Grade(ctx context.Context, args GradeArgs) (m.Report, error)
}

type grader struct {
	fs      adapter.SourceFSAdapter
	commits adapter.CommitAdapter
	clock   clockwork.Clock
}

// NewGrader constructs a Grader. The clock is only consulted when the commit
// time falls back to "now".
func NewGrader(fsAdapter adapter.SourceFSAdapter, commits adapter.CommitAdapter, clock clockwork.Clock) Grader {
	return &grader{
		fs:      fsAdapter,
		commits: commits,
		clock:   clock,
	}
}

// Grade evaluates every requirement set of the lab against one snapshot of
// the submission and scores its timing. Missing or unreadable files and git
// failures lower the score; they never make Grade fail.
func (g *grader) Grade(ctx context.Context, args GradeArgs) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	sources, files, err := g.Locate(ctx, args)
	if err != nil {
		return m.Report{}, err
	}

	snap := NewSnapshot(sources)

	tasks := make([]m.TaskResult, 0, len(args.Lab.Sets))
	for _, set := range args.Lab.Sets {
		result := Evaluate(set, snap)
		slog.Debug("Evaluated task", "task", set.Task.ID, "awarded", result.Score.Awarded, "failed", result.Score.FailedCount, "total", result.Score.TotalCount)
		tasks = append(tasks, result)
	}

	commit := ResolveCommitTime(ctx, g.commits, g.clock, args.RepoRoot, args.Policy.Fallback)
	submission := ScoreSubmission(commit, args.Policy)

	report := m.Report{
		Lab:         args.Lab.Name,
		RepoRoot:    args.RepoRoot,
		ProjectRoot: args.ProjectRoot,
		Files:       files,
		Tasks:       tasks,
		Submission:  submission,
		Totals:      Aggregate(tasks, submission),
	}

	slog.Info("Graded submission", "lab", report.Lab, "total", report.Totals.Total, "max", report.Totals.TotalMax, "late", submission.Late)

	return report, nil
}
