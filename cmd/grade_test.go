package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"labgrade.dev/pkg/labgrade/internal/domain"
	"labgrade.dev/pkg/labgrade/internal/domain/labs"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

func TestGradeCmd_Defaults(t *testing.T) {
	t.Setenv(summaryEnv, "")

	wd, err := os.Getwd()
	require.NoError(t, err)

	cmd, mockWorkflow, _ := newTestRootCmd(t, newGradeCmd())

	deadline, err := time.Parse(time.RFC3339, defaultDeadline)
	require.NoError(t, err)

	mockWorkflow.On("Grade", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Output == m.Path(defaultOutputDir) &&
			args.SummaryFile == "" &&
			args.RepoRoot == m.Path(wd) &&
			args.ProjectRoot == m.Path(wd) &&
			args.Lab.Name == labs.ReactStarterName &&
			args.Policy.Deadline.Equal(deadline) &&
			args.Policy.Max == 20 &&
			args.Policy.Late == 10 &&
			args.Policy.Fallback == domain.FallbackNow
	})).Return(m.Report{}, nil)

	cmd.SetArgs([]string{"grade"})
	require.NoError(t, cmd.Execute())
}

func TestGradeCmd_ProjectArgumentAndSummary(t *testing.T) {
	summary := filepath.Join(t.TempDir(), "summary.md")
	t.Setenv(summaryEnv, summary)

	wd, err := os.Getwd()
	require.NoError(t, err)

	cmd, mockWorkflow, _ := newTestRootCmd(t, newGradeCmd())

	mockWorkflow.On("Grade", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.ProjectRoot == m.Path(filepath.Join(wd, "5-2-react-starter")) &&
			args.SummaryFile == m.Path(summary) &&
			args.Output == m.Path("./out")
	})).Return(m.Report{}, nil)

	cmd.SetArgs([]string{"grade", "5-2-react-starter", "--output", "./out"})
	require.NoError(t, cmd.Execute())
}

func TestGradeCmd_DeadlineAndFallbackFlags(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newGradeCmd())

	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockWorkflow.On("Grade", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Policy.Deadline.Equal(want) && args.Policy.Fallback == domain.FallbackLate
	})).Return(m.Report{}, nil)

	cmd.SetArgs([]string{"grade", "--deadline", "2026-03-01T12:00:00Z", "--fallback", "late"})
	require.NoError(t, cmd.Execute())
}

func TestGradeCmd_InvalidDeadline(t *testing.T) {
	cmd, _, _ := newTestRootCmd(t, newGradeCmd())

	cmd.SetArgs([]string{"grade", "--deadline", "next tuesday"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), deadlineKey)
}

func TestGradeCmd_InvalidFallback(t *testing.T) {
	cmd, _, _ := newTestRootCmd(t, newGradeCmd())

	cmd.SetArgs([]string{"grade", "--fallback", "sometimes"})
	require.Error(t, cmd.Execute())
}

func TestGradeCmd_RubricReplacesBuiltinLab(t *testing.T) {
	rubric := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(rubric, []byte(`lab: hello-lab
files:
  - role: entry
    preferred: [src/App.jsx]
tasks:
  - id: todo1
    name: Greeting
    marks: 10
    groups:
      - role: entry
        requirements:
          - label: Says hello
            any: ['hello']
`), 0o644))

	cmd, mockWorkflow, _ := newTestRootCmd(t, newGradeCmd())

	mockWorkflow.On("Grade", mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
		return args.Lab.Name == "hello-lab" && len(args.Lab.Sets) == 1 && args.Lab.Sets[0].Task.Marks == 10
	})).Return(m.Report{}, nil)

	cmd.SetArgs([]string{"grade", "--rubric", rubric})
	require.NoError(t, cmd.Execute())
}

func TestGradeCmd_InvalidRubricFails(t *testing.T) {
	rubric := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(rubric, []byte(`files:
  - role: entry
    names: [App.jsx]
tasks:
  - id: todo1
    name: Broken
    marks: 10
    groups:
      - role: entry
        requirements:
          - label: Bad pattern
            any: ['(unclosed']
`), 0o644))

	cmd, _, _ := newTestRootCmd(t, newGradeCmd())

	cmd.SetArgs([]string{"grade", "--rubric", rubric})
	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidRubric))
}

func TestGradeCmd_WorkflowErrorIsReturned(t *testing.T) {
	cmd, mockWorkflow, _ := newTestRootCmd(t, newGradeCmd())

	mockWorkflow.On("Grade", mock.Anything, mock.Anything).Return(m.Report{}, errors.New("disk full"))

	cmd.SetArgs([]string{"grade"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestGradeCmd_TooManyArgs(t *testing.T) {
	cmd, _, _ := newTestRootCmd(t, newGradeCmd())

	cmd.SetArgs([]string{"grade", "a", "b"})
	require.Error(t, cmd.Execute())
}
