package adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

const rubricYAML = `lab: greeting-lab
files:
  - role: entry
    label: Greeting
    preferred: [src/Greeting.jsx]
    names: [Greeting.jsx]
tasks:
  - id: todo1
    name: Greeting component
    marks: 50
    groups:
      - role: entry
        requirements:
          - label: Says hello
            any: ["hello", "hi there"]
          - label: Three list items
            count: {pattern: "<li", min: 3}
          - label: No alert
            all: ["alert\\("]
            not: true
`

func TestParseRubric(t *testing.T) {
	spec, err := ParseRubric([]byte("\xef\xbb\xbf" + rubricYAML))
	require.NoError(t, err)

	assert.Equal(t, "greeting-lab", spec.Lab)
	require.Len(t, spec.Files, 1)
	assert.Equal(t, []string{"src/Greeting.jsx"}, spec.Files[0].Preferred)

	require.Len(t, spec.Tasks, 1)
	task := spec.Tasks[0]
	assert.InDelta(t, 50, task.Marks, 1e-9)

	reqs := task.Groups[0].Requirements
	require.Len(t, reqs, 3)
	assert.Equal(t, []string{"hello", "hi there"}, reqs[0].Any)
	require.NotNil(t, reqs[1].Count)
	assert.Equal(t, 3, reqs[1].Count.Min)
	assert.Equal(t, []string{`alert\(`}, reqs[2].All)
	assert.True(t, reqs[2].Not)
}

func TestParseRubric_UnknownField(t *testing.T) {
	_, err := ParseRubric([]byte("lab: x\ntasks:\n  - id: a\n    mark: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mark")
}

func TestYAMLRubricLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	writeTestFile(t, path, rubricYAML)

	spec, err := NewYAMLRubricLoader(NewLocalSourceFSAdapter()).Load(context.Background(), m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, "greeting-lab", spec.Lab)
}

func TestYAMLRubricLoader_LoadMissing(t *testing.T) {
	_, err := NewYAMLRubricLoader(NewLocalSourceFSAdapter()).Load(context.Background(), m.Path(filepath.Join(t.TempDir(), "none.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read rubric")
}
