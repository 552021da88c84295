package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"labgrade.dev/pkg/labgrade/internal/adapter"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// FallbackPolicy decides how a submission is scored when the commit time
// cannot be retrieved.
type FallbackPolicy string

const (
	// FallbackNow grades against the current time.
	FallbackNow FallbackPolicy = "now"
	// FallbackLate treats the submission as late.
	FallbackLate FallbackPolicy = "late"
)

// ParseFallbackPolicy validates a configured policy name.
func ParseFallbackPolicy(value string) (FallbackPolicy, error) {
	switch FallbackPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", FallbackNow:
		return FallbackNow, nil
	case FallbackLate:
		return FallbackLate, nil
	}

	return "", fmt.Errorf("unknown submission fallback %q (want %q or %q)", value, FallbackNow, FallbackLate)
}

// SubmissionPolicy is the two-tier timing rule.
type SubmissionPolicy struct {
	Deadline time.Time
	Max      float64
	Late     float64
	Fallback FallbackPolicy
}

// ScoreSubmission awards the full budget when the commit is at or before the
// deadline and the late budget otherwise. An unknown commit time is late.
func ScoreSubmission(commit m.CommitTime, policy SubmissionPolicy) m.SubmissionResult {
	late := !commit.Known() || commit.Time.After(policy.Deadline)

	score := policy.Max
	if late {
		score = policy.Late
	}

	return m.SubmissionResult{
		CommitTime:   commit.Raw,
		CommitSource: commit.Source,
		Deadline:     policy.Deadline.Format(time.RFC3339),
		Late:         late,
		Score:        score,
		Max:          policy.Max,
	}
}

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// ResolveCommitTime reads the last commit time through the commit adapter and
// applies the fallback policy when it cannot be retrieved. A retrieved value
// that does not parse is kept as raw text and scored late.
func ResolveCommitTime(ctx context.Context, commits adapter.CommitAdapter, clock clockwork.Clock, workDir m.Path, fallback FallbackPolicy) m.CommitTime {
	raw, err := commits.LastCommitTime(ctx, workDir)
	if err != nil {
		slog.Warn("Failed to read last commit time, using fallback", "workDir", workDir, "fallback", fallback, "error", err)

		if fallback == FallbackLate {
			return m.CommitTime{Source: m.CommitFallbackLate}
		}

		now := clock.Now().UTC()

		return m.CommitTime{Raw: now.Format(isoMillis), Time: now, Source: m.CommitFallbackNow}
	}

	raw = strings.TrimSpace(raw)

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		slog.Warn("Unparsable commit time, scoring as late", "raw", raw, "error", err)
		return m.CommitTime{Raw: raw, Source: m.CommitUnparsable}
	}

	return m.CommitTime{Raw: raw, Time: parsed, Source: m.CommitFromGit}
}
