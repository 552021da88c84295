package adapter

import (
	"bytes"
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// RubricLoader reads custom lab definitions.
type RubricLoader interface {
	Load(ctx context.Context, path m.Path) (m.RubricSpec, error)
}

// YAMLRubricLoader decodes rubric files written in YAML.
type YAMLRubricLoader struct {
	fs SourceFSAdapter
}

// NewYAMLRubricLoader constructs a YAMLRubricLoader.
func NewYAMLRubricLoader(fsAdapter SourceFSAdapter) *YAMLRubricLoader {
	return &YAMLRubricLoader{fs: fsAdapter}
}

// Load reads and decodes path. Unknown keys are rejected so typos in a rubric
// do not silently drop requirements.
func (l *YAMLRubricLoader) Load(ctx context.Context, path m.Path) (m.RubricSpec, error) {
	data, err := l.fs.ReadFile(ctx, path)
	if err != nil {
		return m.RubricSpec{}, fmt.Errorf("read rubric %s: %w", path, err)
	}

	return ParseRubric(data)
}

// ParseRubric decodes a YAML rubric document.
func ParseRubric(data []byte) (m.RubricSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	dec.KnownFields(true)

	var spec m.RubricSpec
	if err := dec.Decode(&spec); err != nil {
		return m.RubricSpec{}, fmt.Errorf("decode rubric: %w", err)
	}

	return spec, nil
}
