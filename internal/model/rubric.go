package model

// RubricSpec is the YAML form of a custom lab.
type RubricSpec struct {
	Lab   string     `yaml:"lab"`
	Files []FileSpec `yaml:"files"`
	Tasks []TaskSpec `yaml:"tasks"`
}

// FileSpec declares the candidates for one role.
type FileSpec struct {
	Role      string   `yaml:"role"`
	Label     string   `yaml:"label"`
	Preferred []string `yaml:"preferred"`
	Names     []string `yaml:"names"`
	NotFound  string   `yaml:"not_found"`
}

// TaskSpec declares one task and its requirement groups.
type TaskSpec struct {
	ID               string      `yaml:"id"`
	Name             string      `yaml:"name"`
	Marks            float64     `yaml:"marks"`
	MissingReason    string      `yaml:"missing_reason"`
	UnreadableReason string      `yaml:"unreadable_reason"`
	Groups           []GroupSpec `yaml:"groups"`
}

// GroupSpec declares the requirements evaluated against one role's file.
type GroupSpec struct {
	Role         string            `yaml:"role"`
	MissingLabel string            `yaml:"missing_label"`
	Requirements []RequirementSpec `yaml:"requirements"`
}

// RequirementSpec declares one checklist item. All declared parts must hold;
// Any is satisfied by a single matching alternative.
type RequirementSpec struct {
	Label         string     `yaml:"label"`
	Any           []string   `yaml:"any"`
	All           []string   `yaml:"all"`
	Count         *CountSpec `yaml:"count"`
	Not           bool       `yaml:"not"`
	CaseSensitive bool       `yaml:"case_sensitive"`
}

// CountSpec requires at least Min non-overlapping matches of Pattern.
type CountSpec struct {
	Pattern string `yaml:"pattern"`
	Min     int    `yaml:"min"`
}
