package claude

import (
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

type job struct {
	state   domain.JobState
	message string
	quotes  []domain.CandidateQuote
	err     error
	created time.Time
}

// sweepLocked drops jobs nobody collected. Caller holds jobsMu.
func (a *Analyzer) sweepLocked() {
	cutoff := a.now().Add(-a.jobsTTL)
	for h, j := range a.jobs {
		if j.state != domain.JobStateProcessing && j.created.Before(cutoff) {
			delete(a.jobs, h)
		}
	}
}
