package model

import "time"

// ScoreResult is the immutable outcome of scoring one requirement set.
type ScoreResult struct {
	Budget      float64 `json:"budget"`
	FailedCount int     `json:"failed_count"`
	TotalCount  int     `json:"total_count"`
	Awarded     float64 `json:"awarded"`
}

// TaskResult holds the score, checklist and deductions of one task.
type TaskResult struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Score      ScoreResult `json:"score"`
	Checklist  []Outcome   `json:"checklist"`
	Deductions []string    `json:"deductions"`
}

// Passed returns the checklist items that passed, in order.
func (r TaskResult) Passed() []Outcome {
	return r.filter(true)
}

// Failed returns the checklist items that failed, in order.
func (r TaskResult) Failed() []Outcome {
	return r.filter(false)
}

func (r TaskResult) filter(passed bool) []Outcome {
	out := make([]Outcome, 0, len(r.Checklist))

	for _, o := range r.Checklist {
		if o.Passed == passed {
			out = append(out, o)
		}
	}

	return out
}

// CommitSource tells where the submission time came from.
type CommitSource string

const (
	// CommitFromGit means the time was read from the last commit.
	CommitFromGit CommitSource = "git"
	// CommitFallbackNow means git failed and the current time was used.
	CommitFallbackNow CommitSource = "fallback_now"
	// CommitFallbackLate means git failed and the submission is treated as late.
	CommitFallbackLate CommitSource = "fallback_late"
	// CommitUnparsable means git returned a value that is not a timestamp.
	CommitUnparsable CommitSource = "unparsable"
)

// CommitTime is the resolved submission time. Time is zero when unknown.
type CommitTime struct {
	Raw    string
	Time   time.Time
	Source CommitSource
}

// Known reports whether the commit time could be determined.
func (c CommitTime) Known() bool {
	return !c.Time.IsZero()
}

// SubmissionResult is the two-tier timing score.
type SubmissionResult struct {
	CommitTime   string       `json:"commit_time"`
	CommitSource CommitSource `json:"commit_source"`
	Deadline     string       `json:"deadline"`
	Late         bool         `json:"late"`
	Score        float64      `json:"score"`
	Max          float64      `json:"max"`
}

// Totals is the fold of all task scores plus the submission score.
type Totals struct {
	StepsScore float64 `json:"steps_score"`
	StepsMax   float64 `json:"steps_max"`
	Total      float64 `json:"total"`
	TotalMax   float64 `json:"total_max"`
}

// Report is the machine-readable grading record. Every rendering is derived
// from it.
type Report struct {
	Lab         string           `json:"lab"`
	RepoRoot    Path             `json:"repo_root"`
	ProjectRoot Path             `json:"project_root"`
	Files       []FileStatus     `json:"files"`
	Tasks       []TaskResult     `json:"tasks"`
	Submission  SubmissionResult `json:"submission"`
	Totals      Totals           `json:"totals"`
}

// RosterRow is one line of a merged grade sheet.
type RosterRow struct {
	Student  string  `json:"student"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}
