package library

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

var _ extractRepo = &extractRepoMock{}

type extractRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id int64) (domain.ExtractWithSource, error)
	ListBySourceFunc   func(ctx context.Context, sourceID int64) ([]domain.Extract, error)
	ListBookmarkedFunc func(ctx context.Context) ([]domain.ExtractWithSource, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		ListBySource []struct {
			Ctx      context.Context
			SourceID int64
		}
		ListBookmarked []struct {
			Ctx context.Context
		}
	}
	lockGetByID        sync.RWMutex
	lockListBySource   sync.RWMutex
	lockListBookmarked sync.RWMutex
}

func (mock *extractRepoMock) GetByID(ctx context.Context, id int64) (domain.ExtractWithSource, error) {
	if mock.GetByIDFunc == nil {
		panic("extractRepoMock.GetByIDFunc: method is nil but extractRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *extractRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *extractRepoMock) ListBySource(ctx context.Context, sourceID int64) ([]domain.Extract, error) {
	if mock.ListBySourceFunc == nil {
		panic("extractRepoMock.ListBySourceFunc: method is nil but extractRepo.ListBySource was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		SourceID int64
	}{
		Ctx:      ctx,
		SourceID: sourceID,
	}
	mock.lockListBySource.Lock()
	mock.calls.ListBySource = append(mock.calls.ListBySource, callInfo)
	mock.lockListBySource.Unlock()
	return mock.ListBySourceFunc(ctx, sourceID)
}

func (mock *extractRepoMock) ListBySourceCalls() []struct {
	Ctx      context.Context
	SourceID int64
} {
	var calls []struct {
		Ctx      context.Context
		SourceID int64
	}
	mock.lockListBySource.RLock()
	calls = mock.calls.ListBySource
	mock.lockListBySource.RUnlock()
	return calls
}

func (mock *extractRepoMock) ListBookmarked(ctx context.Context) ([]domain.ExtractWithSource, error) {
	if mock.ListBookmarkedFunc == nil {
		panic("extractRepoMock.ListBookmarkedFunc: method is nil but extractRepo.ListBookmarked was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListBookmarked.Lock()
	mock.calls.ListBookmarked = append(mock.calls.ListBookmarked, callInfo)
	mock.lockListBookmarked.Unlock()
	return mock.ListBookmarkedFunc(ctx)
}

func (mock *extractRepoMock) ListBookmarkedCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListBookmarked.RLock()
	calls = mock.calls.ListBookmarked
	mock.lockListBookmarked.RUnlock()
	return calls
}
