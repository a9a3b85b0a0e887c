package domain

import "time"

const (
	DefaultDailyQuota      = 50
	DefaultRepeatCooldown  = 7 * 24 * time.Hour
	DefaultDismissCooldown = 30 * 24 * time.Hour
)

// FeedPolicy holds the windows and quota that drive feed selection.
// The same values feed both IsEligible and the storage pre-filter.
type FeedPolicy struct {
	DailyQuota      int
	RepeatCooldown  time.Duration
	DismissCooldown time.Duration
}

// DefaultFeedPolicy returns the 50 / 7d / 30d policy.
func DefaultFeedPolicy() FeedPolicy {
	return FeedPolicy{
		DailyQuota:      DefaultDailyQuota,
		RepeatCooldown:  DefaultRepeatCooldown,
		DismissCooldown: DefaultDismissCooldown,
	}
}

// Thresholds are the absolute cut-off instants derived from a policy at now.
type Thresholds struct {
	RepeatBefore  time.Time
	DismissBefore time.Time
}

// ThresholdsAt computes the cut-offs for now.
func (p FeedPolicy) ThresholdsAt(now time.Time) Thresholds {
	return Thresholds{
		RepeatBefore:  now.Add(-p.RepeatCooldown),
		DismissBefore: now.Add(-p.DismissCooldown),
	}
}

// IsEligible reports whether e may appear in a feed built at now:
//   - a dismissed extract stays out until it was last shown more than
//     DismissCooldown ago;
//   - any extract shown within RepeatCooldown stays out.
//
// Both comparisons are strict, so an extract shown exactly at a boundary is
// not eligible. A dismissed extract with no LastShownAt is never eligible.
func (p FeedPolicy) IsEligible(e *Extract, now time.Time) bool {
	t := p.ThresholdsAt(now)

	if e.Dismissed {
		if e.LastShownAt == nil || !e.LastShownAt.Before(t.DismissBefore) {
			return false
		}
	}
	if e.LastShownAt != nil && !e.LastShownAt.Before(t.RepeatBefore) {
		return false
	}
	return true
}
