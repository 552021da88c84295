package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	m "labgrade.dev/pkg/labgrade/internal/model"
)

// DefaultGitTimeout bounds the git invocation.
const DefaultGitTimeout = 10 * time.Second

// CommitAdapter retrieves submission timestamps from version control.
type CommitAdapter interface {
	// LastCommitTime returns the committer date of HEAD in strict ISO 8601.
	LastCommitTime(ctx context.Context, workDir m.Path) (string, error)
}

// LocalGitAdapter runs the git binary found on PATH.
type LocalGitAdapter struct {
	timeout time.Duration
}

// NewLocalGitAdapter constructs a LocalGitAdapter. A non-positive timeout
// selects DefaultGitTimeout.
func NewLocalGitAdapter(timeout time.Duration) *LocalGitAdapter {
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}

	return &LocalGitAdapter{timeout: timeout}
}

// LastCommitTime runs `git log -1 --format=%cI` in workDir.
func (a *LocalGitAdapter) LastCommitTime(ctx context.Context, workDir m.Path) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log", "-1", "--format=%cI")
	cmd.Dir = string(workDir)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git log in %s: %w: %s", workDir, err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", fmt.Errorf("git log in %s: no commits", workDir)
	}

	return out, nil
}
