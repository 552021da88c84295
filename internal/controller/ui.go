// Package controller provides output adapters for displaying grading results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// UI defines the interface for displaying grading results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplaySources(ctx context.Context, files []m.FileStatus) error
	DisplayReport(ctx context.Context, report m.Report) error
	DisplayChanges(ctx context.Context, diff string) error
	DisplayRoster(ctx context.Context, rows []m.RosterRow) error
	DisplayWatching(ctx context.Context, root m.Path) error
	ViewReport(ctx context.Context, report m.Report) error
}

// NewUI picks the interactive UI when the command writes to a terminal.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	simple := NewSimpleUI(cmd)
	if !interactive {
		return simple
	}

	return NewTUI(cmd.OutOrStdout(), simple)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
