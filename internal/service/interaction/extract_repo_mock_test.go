package interaction

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

var _ extractRepo = &extractRepoMock{}

type extractRepoMock struct {
	SetBookmarkedFunc func(ctx context.Context, id int64, bookmarked bool) error
	MarkDismissedFunc func(ctx context.Context, id int64, now time.Time) error
	MarkViewedFunc    func(ctx context.Context, id int64, now time.Time) (domain.Extract, error)

	calls struct {
		SetBookmarked []struct {
			Ctx        context.Context
			ID         int64
			Bookmarked bool
		}
		MarkDismissed []struct {
			Ctx context.Context
			ID  int64
			Now time.Time
		}
		MarkViewed []struct {
			Ctx context.Context
			ID  int64
			Now time.Time
		}
	}
	lockSetBookmarked sync.RWMutex
	lockMarkDismissed sync.RWMutex
	lockMarkViewed    sync.RWMutex
}

func (mock *extractRepoMock) SetBookmarked(ctx context.Context, id int64, bookmarked bool) error {
	if mock.SetBookmarkedFunc == nil {
		panic("extractRepoMock.SetBookmarkedFunc: method is nil but extractRepo.SetBookmarked was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ID         int64
		Bookmarked bool
	}{
		Ctx:        ctx,
		ID:         id,
		Bookmarked: bookmarked,
	}
	mock.lockSetBookmarked.Lock()
	mock.calls.SetBookmarked = append(mock.calls.SetBookmarked, callInfo)
	mock.lockSetBookmarked.Unlock()
	return mock.SetBookmarkedFunc(ctx, id, bookmarked)
}

func (mock *extractRepoMock) SetBookmarkedCalls() []struct {
	Ctx        context.Context
	ID         int64
	Bookmarked bool
} {
	var calls []struct {
		Ctx        context.Context
		ID         int64
		Bookmarked bool
	}
	mock.lockSetBookmarked.RLock()
	calls = mock.calls.SetBookmarked
	mock.lockSetBookmarked.RUnlock()
	return calls
}

func (mock *extractRepoMock) MarkDismissed(ctx context.Context, id int64, now time.Time) error {
	if mock.MarkDismissedFunc == nil {
		panic("extractRepoMock.MarkDismissedFunc: method is nil but extractRepo.MarkDismissed was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
		Now time.Time
	}{
		Ctx: ctx,
		ID:  id,
		Now: now,
	}
	mock.lockMarkDismissed.Lock()
	mock.calls.MarkDismissed = append(mock.calls.MarkDismissed, callInfo)
	mock.lockMarkDismissed.Unlock()
	return mock.MarkDismissedFunc(ctx, id, now)
}

func (mock *extractRepoMock) MarkDismissedCalls() []struct {
	Ctx context.Context
	ID  int64
	Now time.Time
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
		Now time.Time
	}
	mock.lockMarkDismissed.RLock()
	calls = mock.calls.MarkDismissed
	mock.lockMarkDismissed.RUnlock()
	return calls
}

func (mock *extractRepoMock) MarkViewed(ctx context.Context, id int64, now time.Time) (domain.Extract, error) {
	if mock.MarkViewedFunc == nil {
		panic("extractRepoMock.MarkViewedFunc: method is nil but extractRepo.MarkViewed was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
		Now time.Time
	}{
		Ctx: ctx,
		ID:  id,
		Now: now,
	}
	mock.lockMarkViewed.Lock()
	mock.calls.MarkViewed = append(mock.calls.MarkViewed, callInfo)
	mock.lockMarkViewed.Unlock()
	return mock.MarkViewedFunc(ctx, id, now)
}

func (mock *extractRepoMock) MarkViewedCalls() []struct {
	Ctx context.Context
	ID  int64
	Now time.Time
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
		Now time.Time
	}
	mock.lockMarkViewed.RLock()
	calls = mock.calls.MarkViewed
	mock.lockMarkViewed.RUnlock()
	return calls
}
