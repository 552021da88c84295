package adapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

func TestNewLocalGitAdapter_DefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultGitTimeout, NewLocalGitAdapter(0).timeout)
	assert.Equal(t, DefaultGitTimeout, NewLocalGitAdapter(-time.Second).timeout)
	assert.Equal(t, 3*time.Second, NewLocalGitAdapter(3*time.Second).timeout)
}

func TestLocalGitAdapter_LastCommitTime_MissingWorkDir(t *testing.T) {
	adapter := NewLocalGitAdapter(5 * time.Second)

	workDir := m.Path(filepath.Join(t.TempDir(), "does_not_exist"))

	out, err := adapter.LastCommitTime(context.Background(), workDir)
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestLocalGitAdapter_LastCommitTime_CancelledContext(t *testing.T) {
	adapter := NewLocalGitAdapter(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.LastCommitTime(ctx, m.Path(t.TempDir()))
	require.Error(t, err)
}
