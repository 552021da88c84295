package domain

import (
	"fmt"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
	"labgrade.dev/pkg/labgrade/internal/adapter"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// ChecklistDiff returns a unified diff of the checklists and scores of two
// reports, or "" when nothing changed.
func ChecklistDiff(previous, current m.Report) (string, error) {
	a := checklistLines(previous)
	b := checklistLines(current)

	if slices.Equal(a, b) {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "previous",
		ToFile:   "current",
		Context:  1,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff checklists: %w", err)
	}

	return text, nil
}

func checklistLines(report m.Report) []string {
	lines := make([]string, 0)

	for _, task := range report.Tasks {
		lines = append(lines, fmt.Sprintf("%s %s/%s\n", task.Name,
			adapter.FormatMarks(task.Score.Awarded), adapter.FormatMarks(task.Score.Budget)))

		for _, o := range task.Checklist {
			lines = append(lines, "  "+adapter.ChecklistLine(o)+"\n")
		}

		if len(task.Checklist) == 0 {
			for _, d := range task.Deductions {
				lines = append(lines, "  ❗ "+d+"\n")
			}
		}
	}

	lines = append(lines,
		fmt.Sprintf("Submission %s/%s\n", adapter.FormatMarks(report.Submission.Score), adapter.FormatMarks(report.Submission.Max)),
		fmt.Sprintf("Total %s/%s\n", adapter.FormatMarks(report.Totals.Total), adapter.FormatMarks(report.Totals.TotalMax)),
	)

	return lines
}

