package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	adaptermocks "labgrade.dev/pkg/labgrade/internal/adapter/mocks"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

func testDeadline(t *testing.T) time.Time {
	t.Helper()

	deadline, err := time.Parse(time.RFC3339, "2026-02-18T13:59:00+03:00")
	require.NoError(t, err)

	return deadline
}

func testPolicy(t *testing.T) SubmissionPolicy {
	t.Helper()

	return SubmissionPolicy{Deadline: testDeadline(t), Max: 20, Late: 10, Fallback: FallbackNow}
}

func TestScoreSubmission(t *testing.T) {
	deadline := testDeadline(t)

	tests := []struct {
		name     string
		commit   m.CommitTime
		wantLate bool
		want     float64
	}{
		{"well before", m.CommitTime{Time: deadline.Add(-48 * time.Hour), Source: m.CommitFromGit}, false, 20},
		{"exactly at deadline", m.CommitTime{Time: deadline, Source: m.CommitFromGit}, false, 20},
		{"same instant in UTC", m.CommitTime{Time: deadline.UTC(), Source: m.CommitFromGit}, false, 20},
		{"one millisecond late", m.CommitTime{Time: deadline.Add(time.Millisecond), Source: m.CommitFromGit}, true, 10},
		{"unknown time is late", m.CommitTime{Source: m.CommitFallbackLate}, true, 10},
		{"unparsable is late", m.CommitTime{Raw: "yesterday", Source: m.CommitUnparsable}, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreSubmission(tt.commit, testPolicy(t))

			assert.Equal(t, tt.wantLate, got.Late)
			assert.InDelta(t, tt.want, got.Score, 1e-9)
			assert.InDelta(t, 20, got.Max, 1e-9)
			assert.Equal(t, "2026-02-18T13:59:00+03:00", got.Deadline)
			assert.Equal(t, tt.commit.Source, got.CommitSource)
		})
	}
}

func TestParseFallbackPolicy(t *testing.T) {
	tests := []struct {
		value   string
		want    FallbackPolicy
		wantErr bool
	}{
		{"", FallbackNow, false},
		{"now", FallbackNow, false},
		{" LATE ", FallbackLate, false},
		{"never", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseFallbackPolicy(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCommitTime_FromGit(t *testing.T) {
	commits := adaptermocks.NewMockCommitAdapter(t)
	commits.On("LastCommitTime", mock.Anything, m.Path("/repo")).Return("2026-02-18T10:00:00+03:00\n", nil)

	got := ResolveCommitTime(context.Background(), commits, clockwork.NewFakeClock(), "/repo", FallbackNow)

	assert.Equal(t, m.CommitFromGit, got.Source)
	assert.Equal(t, "2026-02-18T10:00:00+03:00", got.Raw)
	assert.True(t, got.Known())
	assert.True(t, got.Time.Before(testDeadline(t)))
}

func TestResolveCommitTime_FallbackNow(t *testing.T) {
	now := time.Date(2026, 2, 18, 11, 30, 0, 0, time.UTC)

	commits := adaptermocks.NewMockCommitAdapter(t)
	commits.On("LastCommitTime", mock.Anything, m.Path("/repo")).Return("", errors.New("not a git repository"))

	got := ResolveCommitTime(context.Background(), commits, clockwork.NewFakeClockAt(now), "/repo", FallbackNow)

	assert.Equal(t, m.CommitFallbackNow, got.Source)
	assert.Equal(t, "2026-02-18T11:30:00.000Z", got.Raw)
	assert.True(t, got.Time.Equal(now))

	// 11:30 UTC is 14:30 at +03:00, past the 13:59 deadline.
	assert.True(t, ScoreSubmission(got, testPolicy(t)).Late)
}

func TestResolveCommitTime_FallbackLate(t *testing.T) {
	commits := adaptermocks.NewMockCommitAdapter(t)
	commits.On("LastCommitTime", mock.Anything, m.Path("/repo")).Return("", errors.New("git not installed"))

	got := ResolveCommitTime(context.Background(), commits, clockwork.NewFakeClock(), "/repo", FallbackLate)

	assert.Equal(t, m.CommitFallbackLate, got.Source)
	assert.False(t, got.Known())
	assert.Empty(t, got.Raw)
}

func TestResolveCommitTime_Unparsable(t *testing.T) {
	commits := adaptermocks.NewMockCommitAdapter(t)
	commits.On("LastCommitTime", mock.Anything, m.Path("/repo")).Return("last tuesday", nil)

	got := ResolveCommitTime(context.Background(), commits, clockwork.NewFakeClock(), "/repo", FallbackNow)

	assert.Equal(t, m.CommitUnparsable, got.Source)
	assert.Equal(t, "last tuesday", got.Raw)
	assert.False(t, got.Known())
}
