package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	domainmocks "labgrade.dev/pkg/labgrade/internal/domain/mocks"
)

// newTestRootCmd builds a root command with the given subcommands, swaps the
// workflow for a mock and keeps the log file out of the package directory.
func newTestRootCmd(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	t.Setenv("LABGRADE_LOG_FILENAME", filepath.Join(t.TempDir(), "labgrade.log"))

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(subcommands...)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, mockWorkflow, out
}
