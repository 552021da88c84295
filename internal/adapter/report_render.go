package adapter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

const (
	passMark = "✅"
	failMark = "❌"
)

// FormatMarks prints a score without trailing zeros (40, 33.33, 6.5).
func FormatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ChecklistLine renders one checklist item with its pass/fail mark.
func ChecklistLine(o m.Outcome) string {
	if o.Passed {
		return passMark + " " + o.Label
	}

	return failMark + " " + o.Label
}

func mdEscape(s string) string {
	return strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(s)
}

// RenderSummary renders the CI step summary for report.
func RenderSummary(report m.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — Autograding Summary\n\n", report.Lab)
	b.WriteString("## Submission\n\n")
	writeSubmission(&b, report)
	b.WriteString("\n## Files Checked\n\n")
	writeFiles(&b, report)

	b.WriteString("\n## Marks Breakdown\n\n")
	b.WriteString("| Component | Marks |\n|---|---:|\n")

	for _, task := range report.Tasks {
		fmt.Fprintf(&b, "| %s | %s/%s |\n", task.Name, FormatMarks(task.Score.Awarded), FormatMarks(task.Score.Budget))
	}

	fmt.Fprintf(&b, "| Submission (timing) | %s/%s |\n", FormatMarks(report.Submission.Score), FormatMarks(report.Submission.Max))

	b.WriteString("\n## Total Marks\n\n")
	fmt.Fprintf(&b, "**%s / %s**\n\n", FormatMarks(report.Totals.Total), FormatMarks(report.Totals.TotalMax))
	b.WriteString("## Detailed Checks (What you did / missed)\n")

	for _, task := range report.Tasks {
		writeTaskDetails(&b, task)
	}

	b.WriteString("\n> Full feedback is also available in: `" + FeedbackFileName + "` under the artifacts directory.\n")

	return b.String()
}

func writeTaskDetails(b *strings.Builder, task m.TaskResult) {
	fmt.Fprintf(b, "\n<details>\n  <summary><strong>%s</strong> — %s/%s</summary>\n\n  <br/>\n\n",
		mdEscape(task.Name), FormatMarks(task.Score.Awarded), FormatMarks(task.Score.Budget))

	b.WriteString("  <strong>✅ Found</strong>\n")
	writeOutcomeList(b, task.Passed(), "(Nothing detected)")
	b.WriteString("\n  <br/><br/>\n\n  <strong>❌ Missing</strong>\n")
	writeOutcomeList(b, task.Failed(), "(Nothing missing)")
	b.WriteString("\n  <br/><br/>\n\n  <strong>❗ Deductions / Notes</strong>\n")

	if len(task.Deductions) == 0 {
		b.WriteString("\n- No deductions.\n")
	} else {
		b.WriteString("\n")

		for _, d := range task.Deductions {
			fmt.Fprintf(b, "- %s\n", mdEscape(d))
		}
	}

	b.WriteString("\n</details>\n")
}

func writeOutcomeList(b *strings.Builder, outcomes []m.Outcome, empty string) {
	b.WriteString("\n")

	if len(outcomes) == 0 {
		fmt.Fprintf(b, "- %s\n", empty)
		return
	}

	for _, o := range outcomes {
		fmt.Fprintf(b, "- %s\n", mdEscape(ChecklistLine(o)))
	}
}

// RenderFeedback renders the TODO-by-TODO feedback document.
func RenderFeedback(report m.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — Feedback\n\n", report.Lab)
	b.WriteString("## Submission\n\n")
	writeSubmission(&b, report)
	b.WriteString("\n## Files Checked\n\n")
	writeFiles(&b, report)
	b.WriteString("\n---\n\n## TODO-by-TODO Feedback\n")

	for _, task := range report.Tasks {
		fmt.Fprintf(&b, "\n### %s — **%s/%s**\n\n", task.Name, FormatMarks(task.Score.Awarded), FormatMarks(task.Score.Budget))
		b.WriteString("**Checklist**\n")

		if len(task.Checklist) == 0 {
			b.WriteString("- (No checks available)\n")
		}

		for _, o := range task.Checklist {
			fmt.Fprintf(&b, "- %s\n", ChecklistLine(o))
		}

		b.WriteString("\n**Deductions / Notes**\n")

		if len(task.Deductions) == 0 {
			b.WriteString("- ✅ No deductions. Good job!\n")
		}

		for _, d := range task.Deductions {
			fmt.Fprintf(&b, "- ❗ %s\n", d)
		}
	}

	b.WriteString(`
---

## How marks were deducted (rules)

- JS/JSX comments are ignored (so examples in comments do NOT count).
- Checks are intentionally light: they look for key constructs and basic structure.
- Code can be in ANY order; repeated code is allowed.
- Common equivalents are accepted, and naming is flexible.
- Missing required items reduce marks proportionally within that TODO.
`)

	return b.String()
}

func writeSubmission(b *strings.Builder, report m.Report) {
	sub := report.Submission

	status := "(On time)"
	if sub.Late {
		status = "(Late submission)"
	}

	fmt.Fprintf(b, "- **Lab:** %s\n", report.Lab)
	fmt.Fprintf(b, "- **Deadline%s:** %s\n", deadlineZone(sub.Deadline), sub.Deadline)
	fmt.Fprintf(b, "- **Last commit time %s:** %s\n", commitOrigin(sub.CommitSource), orUnknown(sub.CommitTime))
	fmt.Fprintf(b, "- **Submission marks:** **%s/%s** %s\n", FormatMarks(sub.Score), FormatMarks(sub.Max), status)
}

func writeFiles(b *strings.Builder, report m.Report) {
	fmt.Fprintf(b, "- Repo root: %s\n", report.RepoRoot)
	fmt.Fprintf(b, "- Project root: %s\n", report.ProjectRoot)

	for _, f := range report.Files {
		fmt.Fprintf(b, "- %s: %s\n", f.Label, FileLine(f))
	}
}

// FileLine renders the located path or the not-found message of a file.
func FileLine(f m.FileStatus) string {
	if !f.Found {
		return failMark + " " + f.NotFound
	}

	if !f.Readable {
		return fmt.Sprintf("%s %s (unreadable)", failMark, f.Path)
	}

	return passMark + " " + string(f.Path)
}

func deadlineZone(deadline string) string {
	t, err := time.Parse(time.RFC3339, deadline)
	if err != nil {
		return ""
	}

	return " (UTC" + t.Format("-07:00") + ")"
}

func commitOrigin(source m.CommitSource) string {
	switch source {
	case m.CommitFromGit:
		return "(from git log)"
	case m.CommitFallbackNow:
		return "(git unavailable, grading time used)"
	case m.CommitFallbackLate:
		return "(git unavailable, treated as late)"
	case m.CommitUnparsable:
		return "(unparsable, treated as late)"
	}

	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}

// RenderRosterCSV renders the grade sheet with a student,score,max_score header.
func RenderRosterCSV(rows []m.RosterRow) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"student", "score", "max_score"}); err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := w.Write([]string{row.Student, FormatMarks(row.Score), FormatMarks(row.MaxScore)}); err != nil {
			return nil, err
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}

	return buf.Bytes(), nil
}
