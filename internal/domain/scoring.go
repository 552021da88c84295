package domain

import (
	"fmt"
	"math"
	"strings"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

const (
	missingPrefix = "Missing: "

	unreadablePathPlaceholder = "{path}"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// PartialCredit discounts budget by an equal share for every failed
// requirement. The result is never negative. A set without requirements
// keeps its full budget.
func PartialCredit(budget float64, failed, total int) float64 {
	if failed <= 0 || total <= 0 {
		return budget
	}

	perItem := budget / float64(total)

	return math.Max(0, Round2(budget-perItem*float64(failed)))
}

// Evaluate checks every requirement of set against the same snapshot and
// scores the resulting checklist.
//
// When none of the set's files is available the task is not evaluated at
// all: it scores 0 with a single deduction explaining what is missing.
func Evaluate(set m.RequirementSet, snap Snapshot) m.TaskResult {
	if !hasAnySource(set, snap) {
		return FailTask(set.Task, missingReason(set, snap))
	}

	checklist := make([]m.Outcome, 0, requirementCount(set))

	for _, group := range set.Groups {
		text, ok := snap.Text(group.Role)
		if !ok {
			checklist = append(checklist, m.Outcome{Label: missingLabel(group), Passed: false})
			continue
		}

		for _, req := range group.Requirements {
			checklist = append(checklist, m.Outcome{
				Label:  req.Label,
				Passed: req.Check != nil && req.Check(text),
			})
		}
	}

	return Score(set.Task, checklist)
}

// Score turns a realized checklist into a task result.
func Score(task m.Task, checklist []m.Outcome) m.TaskResult {
	deductions := make([]string, 0)

	for _, outcome := range checklist {
		if !outcome.Passed {
			deductions = append(deductions, missingPrefix+outcome.Label)
		}
	}

	failed := len(deductions)

	return m.TaskResult{
		ID:   task.ID,
		Name: task.Name,
		Score: m.ScoreResult{
			Budget:      task.Marks,
			FailedCount: failed,
			TotalCount:  len(checklist),
			Awarded:     PartialCredit(task.Marks, failed, len(checklist)),
		},
		Checklist:  checklist,
		Deductions: deductions,
	}
}

// FailTask awards zero with a single deduction and no checklist.
func FailTask(task m.Task, reason string) m.TaskResult {
	return m.TaskResult{
		ID:   task.ID,
		Name: task.Name,
		Score: m.ScoreResult{
			Budget:      task.Marks,
			FailedCount: 0,
			TotalCount:  0,
			Awarded:     0,
		},
		Checklist:  []m.Outcome{},
		Deductions: []string{reason},
	}
}

// Aggregate folds task results and the submission score into totals.
func Aggregate(tasks []m.TaskResult, submission m.SubmissionResult) m.Totals {
	var steps, stepsMax float64

	for _, task := range tasks {
		steps += task.Score.Awarded
		stepsMax += task.Score.Budget
	}

	return m.Totals{
		StepsScore: Round2(steps),
		StepsMax:   stepsMax,
		Total:      Round2(steps + submission.Score),
		TotalMax:   stepsMax + submission.Max,
	}
}

func hasAnySource(set m.RequirementSet, snap Snapshot) bool {
	for _, group := range set.Groups {
		if _, ok := snap.Text(group.Role); ok {
			return true
		}
	}

	return false
}

func requirementCount(set m.RequirementSet) int {
	n := 0
	for _, group := range set.Groups {
		n += len(group.Requirements)
	}

	return n
}

func missingReason(set m.RequirementSet, snap Snapshot) string {
	if len(set.Groups) == 1 && set.UnreadableReason != "" {
		if path, ok := snap.Path(set.Groups[0].Role); ok {
			return strings.ReplaceAll(set.UnreadableReason, unreadablePathPlaceholder, string(path))
		}
	}

	if set.MissingReason != "" {
		return set.MissingReason
	}

	return fmt.Sprintf("No source file available for %s.", set.Task.Name)
}

func missingLabel(group m.RequirementGroup) string {
	if group.MissingLabel != "" {
		return group.MissingLabel
	}

	return fmt.Sprintf("%s file found/readable", group.Role)
}
