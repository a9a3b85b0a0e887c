package library

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

var _ sourceRepo = &sourceRepoMock{}

type sourceRepoMock struct {
	InsertIfAbsentFunc func(ctx context.Context, in domain.NewSource) (domain.Source, bool, error)
	GetByIDFunc        func(ctx context.Context, id int64) (domain.Source, error)
	ListFunc           func(ctx context.Context, statuses ...domain.ProcessingStatus) ([]domain.Source, error)

	calls struct {
		InsertIfAbsent []struct {
			Ctx context.Context
			In  domain.NewSource
		}
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx      context.Context
			Statuses []domain.ProcessingStatus
		}
	}
	lockInsertIfAbsent sync.RWMutex
	lockGetByID        sync.RWMutex
	lockList           sync.RWMutex
}

func (mock *sourceRepoMock) InsertIfAbsent(ctx context.Context, in domain.NewSource) (domain.Source, bool, error) {
	if mock.InsertIfAbsentFunc == nil {
		panic("sourceRepoMock.InsertIfAbsentFunc: method is nil but sourceRepo.InsertIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  domain.NewSource
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockInsertIfAbsent.Lock()
	mock.calls.InsertIfAbsent = append(mock.calls.InsertIfAbsent, callInfo)
	mock.lockInsertIfAbsent.Unlock()
	return mock.InsertIfAbsentFunc(ctx, in)
}

func (mock *sourceRepoMock) InsertIfAbsentCalls() []struct {
	Ctx context.Context
	In  domain.NewSource
} {
	var calls []struct {
		Ctx context.Context
		In  domain.NewSource
	}
	mock.lockInsertIfAbsent.RLock()
	calls = mock.calls.InsertIfAbsent
	mock.lockInsertIfAbsent.RUnlock()
	return calls
}

func (mock *sourceRepoMock) GetByID(ctx context.Context, id int64) (domain.Source, error) {
	if mock.GetByIDFunc == nil {
		panic("sourceRepoMock.GetByIDFunc: method is nil but sourceRepo.GetByID was just called")
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

func (mock *sourceRepoMock) GetByIDCalls() []struct {
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

func (mock *sourceRepoMock) List(ctx context.Context, statuses ...domain.ProcessingStatus) ([]domain.Source, error) {
	if mock.ListFunc == nil {
		panic("sourceRepoMock.ListFunc: method is nil but sourceRepo.List was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Statuses []domain.ProcessingStatus
	}{
		Ctx:      ctx,
		Statuses: statuses,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, statuses...)
}

func (mock *sourceRepoMock) ListCalls() []struct {
	Ctx      context.Context
	Statuses []domain.ProcessingStatus
} {
	var calls []struct {
		Ctx      context.Context
		Statuses []domain.ProcessingStatus
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
