package extraction

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

// fakeAnalyzer scripts the submit/poll/fetch protocol.
type fakeAnalyzer struct {
	mu sync.Mutex

	submitErr  error
	submitGate chan struct{} // when set, Submit blocks until closed
	states     []domain.JobStatus
	pollErr    error
	candidates []domain.CandidateQuote
	fetchErr   error

	submitted []domain.Document
	polls     int
	fetches   int
}

func (f *fakeAnalyzer) Submit(ctx context.Context, doc domain.Document) (domain.JobHandle, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, doc)
	gate := f.submitGate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "job-1", nil
}

// Poll returns the scripted states in order and repeats the last one.
func (f *fakeAnalyzer) Poll(ctx context.Context, _ domain.JobHandle) (domain.JobStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return domain.JobStatus{}, err
	}
	if f.pollErr != nil {
		return domain.JobStatus{}, f.pollErr
	}

	i := f.polls
	f.polls++
	if len(f.states) == 0 {
		return domain.JobStatus{State: domain.JobStateReady}, nil
	}
	if i >= len(f.states) {
		i = len(f.states) - 1
	}
	return f.states[i], nil
}

func (f *fakeAnalyzer) Fetch(_ context.Context, _ domain.JobHandle) ([]domain.CandidateQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches++
	return f.candidates, f.fetchErr
}

func (f *fakeAnalyzer) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls
}
