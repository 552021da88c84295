package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

// Artifact file names, relative to the output directory.
const (
	ReportFileName   = "report.json"
	FeedbackFileName = "feedback/README.md"
	GradeFileName    = "grade.csv"

	// AllStudentsRow is the student label of a single-report grade sheet.
	AllStudentsRow = "all_students"
)

// ErrNoReport is returned by LoadReport when the directory holds no report.
var ErrNoReport = errors.New("no report found")

// ReportStore persists grading reports and the documents derived from them.
type ReportStore interface {
	// SaveReport writes report.json, feedback/README.md and grade.csv into dir.
	SaveReport(ctx context.Context, dir m.Path, report m.Report) error
	// LoadReport reads dir/report.json.
	LoadReport(ctx context.Context, dir m.Path) (m.Report, error)
	// AppendSummary appends the Markdown summary to file.
	AppendSummary(ctx context.Context, file m.Path, report m.Report) error
	// SaveRoster writes a merged grade sheet to path.
	SaveRoster(ctx context.Context, path m.Path, rows []m.RosterRow) error
}

// LocalReportStore stores reports on the local filesystem.
type LocalReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore constructs a LocalReportStore backed by fsAdapter.
func NewReportStore(fsAdapter SourceFSAdapter) *LocalReportStore {
	return &LocalReportStore{fs: fsAdapter}
}

// SaveReport writes every artifact rendered from report.
func (s *LocalReportStore) SaveReport(ctx context.Context, dir m.Path, report m.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	grade, err := RenderRosterCSV([]m.RosterRow{{
		Student:  AllStudentsRow,
		Score:    report.Totals.Total,
		MaxScore: report.Totals.TotalMax,
	}})
	if err != nil {
		return fmt.Errorf("render grade sheet: %w", err)
	}

	artifacts := []struct {
		name    string
		content []byte
	}{
		{ReportFileName, append(data, '\n')},
		{FeedbackFileName, []byte(RenderFeedback(report))},
		{GradeFileName, grade},
	}

	for _, artifact := range artifacts {
		path := s.fs.JoinPath(ctx, string(dir), artifact.name)
		if err := s.fs.WriteFile(ctx, path, artifact.content, 0o644); err != nil {
			slog.Error("Failed to write artifact", "path", path, "error", err)
			return fmt.Errorf("write %s: %w", path, err)
		}

		slog.Debug("Wrote artifact", "path", path)
	}

	return nil
}

// LoadReport reads a previously saved report.
func (s *LocalReportStore) LoadReport(ctx context.Context, dir m.Path) (m.Report, error) {
	path := s.fs.JoinPath(ctx, string(dir), ReportFileName)

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m.Report{}, fmt.Errorf("%s: %w", path, ErrNoReport)
		}

		return m.Report{}, fmt.Errorf("read %s: %w", path, err)
	}

	var report m.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode %s: %w", path, err)
	}

	return report, nil
}

// AppendSummary appends the rendered summary to file.
func (s *LocalReportStore) AppendSummary(ctx context.Context, file m.Path, report m.Report) error {
	if err := s.fs.AppendFile(ctx, file, []byte(RenderSummary(report))); err != nil {
		return fmt.Errorf("append summary to %s: %w", file, err)
	}

	return nil
}

// SaveRoster writes rows as CSV.
func (s *LocalReportStore) SaveRoster(ctx context.Context, path m.Path, rows []m.RosterRow) error {
	data, err := RenderRosterCSV(rows)
	if err != nil {
		return fmt.Errorf("render roster: %w", err)
	}

	if err := s.fs.WriteFile(ctx, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
