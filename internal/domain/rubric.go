package domain

import (
	"errors"
	"fmt"
	"strings"

	c "labgrade.dev/pkg/labgrade/internal/domain/checks"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// ErrInvalidRubric wraps every rubric validation failure.
var ErrInvalidRubric = errors.New("invalid rubric")

const defaultRubricLab = "custom-lab"

// BuildLab validates a rubric and compiles its requirements into predicates.
func BuildLab(spec m.RubricSpec) (m.Lab, error) {
	files, roles, err := buildFiles(spec.Files)
	if err != nil {
		return m.Lab{}, err
	}

	if len(spec.Tasks) == 0 {
		return m.Lab{}, fmt.Errorf("%w: no tasks", ErrInvalidRubric)
	}

	sets := make([]m.RequirementSet, 0, len(spec.Tasks))
	seen := make(map[string]struct{}, len(spec.Tasks))

	for _, task := range spec.Tasks {
		set, err := buildSet(task, roles)
		if err != nil {
			return m.Lab{}, err
		}

		if _, dup := seen[task.ID]; dup {
			return m.Lab{}, fmt.Errorf("%w: duplicate task id %q", ErrInvalidRubric, task.ID)
		}

		seen[task.ID] = struct{}{}
		sets = append(sets, set)
	}

	name := strings.TrimSpace(spec.Lab)
	if name == "" {
		name = defaultRubricLab
	}

	return m.Lab{Name: name, Files: files, Sets: sets}, nil
}

func buildFiles(specs []m.FileSpec) ([]m.FileCandidates, map[m.Role]struct{}, error) {
	if len(specs) == 0 {
		return nil, nil, fmt.Errorf("%w: no files declared", ErrInvalidRubric)
	}

	files := make([]m.FileCandidates, 0, len(specs))
	roles := make(map[m.Role]struct{}, len(specs))

	for _, spec := range specs {
		role := m.Role(strings.TrimSpace(spec.Role))
		if role == "" {
			return nil, nil, fmt.Errorf("%w: file without role", ErrInvalidRubric)
		}

		if _, dup := roles[role]; dup {
			return nil, nil, fmt.Errorf("%w: role %q declared twice", ErrInvalidRubric, role)
		}

		if len(spec.Preferred) == 0 && len(spec.Names) == 0 {
			return nil, nil, fmt.Errorf("%w: role %q has no preferred paths or names", ErrInvalidRubric, role)
		}

		roles[role] = struct{}{}

		label := spec.Label
		if label == "" {
			label = string(role)
		}

		notFound := spec.NotFound
		if notFound == "" {
			notFound = label + " file not found"
		}

		preferred := make([]m.Path, 0, len(spec.Preferred))
		for _, p := range spec.Preferred {
			preferred = append(preferred, m.Path(p))
		}

		files = append(files, m.FileCandidates{
			Role:      role,
			Label:     label,
			Preferred: preferred,
			Names:     spec.Names,
			NotFound:  notFound,
		})
	}

	return files, roles, nil
}

func buildSet(task m.TaskSpec, roles map[m.Role]struct{}) (m.RequirementSet, error) {
	if task.ID == "" || task.Name == "" {
		return m.RequirementSet{}, fmt.Errorf("%w: task needs an id and a name", ErrInvalidRubric)
	}

	if task.Marks <= 0 {
		return m.RequirementSet{}, fmt.Errorf("%w: task %q: marks must be positive", ErrInvalidRubric, task.ID)
	}

	if len(task.Groups) == 0 {
		return m.RequirementSet{}, fmt.Errorf("%w: task %q has no groups", ErrInvalidRubric, task.ID)
	}

	groups := make([]m.RequirementGroup, 0, len(task.Groups))

	for _, group := range task.Groups {
		role := m.Role(group.Role)
		if _, ok := roles[role]; !ok {
			return m.RequirementSet{}, fmt.Errorf("%w: task %q uses undeclared role %q", ErrInvalidRubric, task.ID, group.Role)
		}

		if len(group.Requirements) == 0 {
			return m.RequirementSet{}, fmt.Errorf("%w: task %q role %q has no requirements", ErrInvalidRubric, task.ID, group.Role)
		}

		reqs := make([]m.Requirement, 0, len(group.Requirements))

		for _, spec := range group.Requirements {
			req, err := buildRequirement(spec)
			if err != nil {
				return m.RequirementSet{}, fmt.Errorf("%w: task %q: %w", ErrInvalidRubric, task.ID, err)
			}

			reqs = append(reqs, req)
		}

		groups = append(groups, m.RequirementGroup{
			Role:         role,
			MissingLabel: group.MissingLabel,
			Requirements: reqs,
		})
	}

	return m.RequirementSet{
		Task:             m.Task{ID: task.ID, Name: task.Name, Marks: task.Marks},
		Groups:           groups,
		MissingReason:    task.MissingReason,
		UnreadableReason: task.UnreadableReason,
	}, nil
}

func buildRequirement(spec m.RequirementSpec) (m.Requirement, error) {
	if spec.Label == "" {
		return m.Requirement{}, errors.New("requirement without label")
	}

	parts := make([]m.Predicate, 0, 3)

	if len(spec.Any) > 0 {
		alternatives, err := compileAll(spec.Any, spec.CaseSensitive)
		if err != nil {
			return m.Requirement{}, fmt.Errorf("requirement %q: %w", spec.Label, err)
		}

		parts = append(parts, c.AnyOf(alternatives...))
	}

	if len(spec.All) > 0 {
		preds, err := compileAll(spec.All, spec.CaseSensitive)
		if err != nil {
			return m.Requirement{}, fmt.Errorf("requirement %q: %w", spec.Label, err)
		}

		parts = append(parts, c.AllOf(preds...))
	}

	if spec.Count != nil {
		if spec.Count.Pattern == "" || spec.Count.Min < 1 {
			return m.Requirement{}, fmt.Errorf("requirement %q: count needs a pattern and min >= 1", spec.Label)
		}

		pred, err := c.CompileAtLeast(spec.Count.Pattern, spec.Count.Min, spec.CaseSensitive)
		if err != nil {
			return m.Requirement{}, fmt.Errorf("requirement %q: %w", spec.Label, err)
		}

		parts = append(parts, pred)
	}

	if len(parts) == 0 {
		return m.Requirement{}, fmt.Errorf("requirement %q: declare any, all or count", spec.Label)
	}

	check := c.AllOf(parts...)
	if spec.Not {
		check = c.Not(check)
	}

	return m.Requirement{Label: spec.Label, Check: check}, nil
}

func compileAll(exprs []string, caseSensitive bool) ([]m.Predicate, error) {
	preds := make([]m.Predicate, 0, len(exprs))

	for _, expr := range exprs {
		p, err := c.Compile(expr, caseSensitive)
		if err != nil {
			return nil, err
		}

		preds = append(preds, p)
	}

	return preds, nil
}
