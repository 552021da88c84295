package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"labgrade.dev/pkg/labgrade/internal/adapter"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// SimpleUI implements UI by printing plain text to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySources prints the file located for every role.
func (s *SimpleUI) DisplaySources(ctx context.Context, files []m.FileStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSourcesTable(files))

	return nil
}

func renderSourcesTable(files []m.FileStatus) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Role", "File", "Path", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	located := 0

	for _, f := range files {
		path := string(f.Path)
		if !f.Found {
			path = f.NotFound
		} else {
			located++
		}

		table.Append([]string{string(f.Role), f.Label, path, sourceStatus(f)})
	}

	table.SetFooter([]string{"", "", fmt.Sprintf("Located %d", located), fmt.Sprintf("of %d", len(files))})
	table.Render()

	return tableBuffer.String()
}

func sourceStatus(f m.FileStatus) string {
	switch {
	case !f.Found:
		return "missing"
	case !f.Readable:
		return "unreadable"
	default:
		return "ok"
	}
}

// DisplayReport prints the marks breakdown and the one-line result.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderMarksTable(report))

	for _, task := range report.Tasks {
		if len(task.Deductions) == 0 {
			continue
		}

		s.printf("%s:\n", task.Name)

		for _, d := range task.Deductions {
			s.printf("  - %s\n", d)
		}
	}

	s.printf("%s\n", ResultLine(report))

	return nil
}

// ResultLine is the one-line grading result printed after every run.
func ResultLine(report m.Report) string {
	return fmt.Sprintf("✔ Lab graded: %s/%s (Submission: %s/%s, TODOs: %s/%s).",
		adapter.FormatMarks(report.Totals.Total), adapter.FormatMarks(report.Totals.TotalMax),
		adapter.FormatMarks(report.Submission.Score), adapter.FormatMarks(report.Submission.Max),
		adapter.FormatMarks(report.Totals.StepsScore), adapter.FormatMarks(report.Totals.StepsMax))
}

func renderMarksTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Task", "Checks", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT})

	for _, task := range report.Tasks {
		checks := fmt.Sprintf("%d/%d", task.Score.TotalCount-task.Score.FailedCount, task.Score.TotalCount)
		if task.Score.TotalCount == 0 && len(task.Deductions) > 0 {
			checks = "-"
		}

		table.Append([]string{
			task.Name,
			checks,
			adapter.FormatMarks(task.Score.Awarded) + "/" + adapter.FormatMarks(task.Score.Budget),
		})
	}

	timing := "on time"
	if report.Submission.Late {
		timing = "late"
	}

	table.Append([]string{
		"Submission",
		timing,
		adapter.FormatMarks(report.Submission.Score) + "/" + adapter.FormatMarks(report.Submission.Max),
	})

	table.SetFooter([]string{
		"Total",
		"",
		adapter.FormatMarks(report.Totals.Total) + "/" + adapter.FormatMarks(report.Totals.TotalMax),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayChanges prints the checklist diff against the previous run.
func (s *SimpleUI) DisplayChanges(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nChanges since the previous run:\n%s", diff)

	return nil
}

// DisplayRoster prints a merged grade sheet.
func (s *SimpleUI) DisplayRoster(ctx context.Context, rows []m.RosterRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Student", "Score", "Max"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, row := range rows {
		table.Append([]string{row.Student, adapter.FormatMarks(row.Score), adapter.FormatMarks(row.MaxScore)})
	}

	table.SetFooter([]string{fmt.Sprintf("Students %d", len(rows)), "", ""})
	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayWatching announces that the project is being watched.
func (s *SimpleUI) DisplayWatching(ctx context.Context, root m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Watching %s for changes (Ctrl+C to stop)\n", root)

	return nil
}

// ViewReport prints the feedback document of a saved report.
func (s *SimpleUI) ViewReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", adapter.RenderFeedback(report))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
