package model

// Predicate is a read-only check over comment-stripped source text.
type Predicate func(cleaned string) bool

// Requirement is a single named check. Requirements in a set are independent
// of each other and of evaluation order.
type Requirement struct {
	Label string
	Check Predicate
}

// RequirementGroup binds requirements to the file of one role.
type RequirementGroup struct {
	Role Role
	// MissingLabel replaces the whole group with one failed checklist item
	// when the role's file is absent and other groups of the set are present.
	MissingLabel string
	Requirements []Requirement
}

// Task is one gradable unit with a fixed point budget.
type Task struct {
	ID    string
	Name  string
	Marks float64
}

// RequirementSet is the ordered checklist for one task.
type RequirementSet struct {
	Task   Task
	Groups []RequirementGroup
	// MissingReason is the single deduction recorded when no group of the
	// set has a source to evaluate.
	MissingReason string
	// UnreadableReason is used instead of MissingReason for single-group sets
	// whose file was located but could not be read. Each {path} is replaced with the file path.
	UnreadableReason string
}

// Lab is a complete grading definition: where to look for files and which
// requirement sets to evaluate against them.
type Lab struct {
	Name  string
	Files []FileCandidates
	Sets  []RequirementSet
}

// Outcome is the realized pass/fail state of a requirement.
type Outcome struct {
	Label  string `json:"label"`
	Passed bool   `json:"passed"`
}
