// Package feed builds the reader's feed: eligible extracts, sampled uniformly
// up to the daily quota. Builds are re-rolled on every call and have no side
// effects.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

type extractRepo interface {
	ListFeedCandidates(ctx context.Context, th domain.Thresholds) ([]domain.ExtractWithSource, error)
}

// Service implements the feed selector.
type Service struct {
	extracts extractRepo
	policy   domain.FeedPolicy
	log      *slog.Logger

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

// NewService creates a feed service. A nil rnd seeds a fresh generator.
func NewService(log *slog.Logger, extracts extractRepo, policy domain.FeedPolicy, rnd *rand.Rand) *Service {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Service{
		extracts: extracts,
		policy:   policy,
		log:      log.With("service", "feed"),
		rnd:      rnd,
	}
}

// BuildFeed returns min(quota, eligible) extracts chosen uniformly at random
// from those eligible at now. AllCaughtUp is set only when nothing is eligible.
func (s *Service) BuildFeed(ctx context.Context, now time.Time) (domain.Feed, error) {
	candidates, err := s.extracts.ListFeedCandidates(ctx, s.policy.ThresholdsAt(now))
	if err != nil {
		return domain.Feed{}, fmt.Errorf("build feed: %w", err)
	}

	eligible := candidates[:0]
	for i := range candidates {
		if s.policy.IsEligible(&candidates[i].Extract, now) {
			eligible = append(eligible, candidates[i])
		}
	}

	posts := s.sample(eligible, s.policy.DailyQuota)

	s.log.DebugContext(ctx, "feed built",
		slog.Int("eligible", len(eligible)),
		slog.Int("count", len(posts)),
	)

	return domain.Feed{
		Posts:       posts,
		Count:       len(posts),
		Quota:       s.policy.DailyQuota,
		AllCaughtUp: len(eligible) == 0,
	}, nil
}

// sample draws k items without replacement using a partial Fisher-Yates
// shuffle. items is reordered in place.
func (s *Service) sample(items []domain.ExtractWithSource, k int) []domain.ExtractWithSource {
	n := len(items)
	if k > n {
		k = n
	}
	if k <= 0 {
		return []domain.ExtractWithSource{}
	}

	s.mu.Lock()
	for i := 0; i < k; i++ {
		j := i + s.rnd.IntN(n-i)
		items[i], items[j] = items[j], items[i]
	}
	s.mu.Unlock()

	out := make([]domain.ExtractWithSource, k)
	copy(out, items[:k])
	return out
}
