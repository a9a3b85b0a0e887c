package extraction

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

var _ sourceRepo = &sourceRepoMock{}

type sourceRepoMock struct {
	GetByIDFunc         func(ctx context.Context, id int64) (domain.Source, error)
	ListFunc            func(ctx context.Context, statuses ...domain.ProcessingStatus) ([]domain.Source, error)
	BeginProcessingFunc func(ctx context.Context, id int64) (domain.Source, error)
	MarkDoneFunc        func(ctx context.Context, id int64, inserted int) (domain.Source, error)
	MarkErrorFunc       func(ctx context.Context, id int64, message string) error
	ResetStuckFunc      func(ctx context.Context, olderThan time.Time) (int64, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  int64
		}
		List []struct {
			Ctx      context.Context
			Statuses []domain.ProcessingStatus
		}
		BeginProcessing []struct {
			Ctx context.Context
			ID  int64
		}
		MarkDone []struct {
			Ctx      context.Context
			ID       int64
			Inserted int
		}
		MarkError []struct {
			Ctx     context.Context
			ID      int64
			Message string
		}
		ResetStuck []struct {
			Ctx       context.Context
			OlderThan time.Time
		}
	}
	lockGetByID         sync.RWMutex
	lockList            sync.RWMutex
	lockBeginProcessing sync.RWMutex
	lockMarkDone        sync.RWMutex
	lockMarkError       sync.RWMutex
	lockResetStuck      sync.RWMutex
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

func (mock *sourceRepoMock) BeginProcessing(ctx context.Context, id int64) (domain.Source, error) {
	if mock.BeginProcessingFunc == nil {
		panic("sourceRepoMock.BeginProcessingFunc: method is nil but sourceRepo.BeginProcessing was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  int64
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockBeginProcessing.Lock()
	mock.calls.BeginProcessing = append(mock.calls.BeginProcessing, callInfo)
	mock.lockBeginProcessing.Unlock()
	return mock.BeginProcessingFunc(ctx, id)
}

func (mock *sourceRepoMock) BeginProcessingCalls() []struct {
	Ctx context.Context
	ID  int64
} {
	var calls []struct {
		Ctx context.Context
		ID  int64
	}
	mock.lockBeginProcessing.RLock()
	calls = mock.calls.BeginProcessing
	mock.lockBeginProcessing.RUnlock()
	return calls
}

func (mock *sourceRepoMock) MarkDone(ctx context.Context, id int64, inserted int) (domain.Source, error) {
	if mock.MarkDoneFunc == nil {
		panic("sourceRepoMock.MarkDoneFunc: method is nil but sourceRepo.MarkDone was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       int64
		Inserted int
	}{
		Ctx:      ctx,
		ID:       id,
		Inserted: inserted,
	}
	mock.lockMarkDone.Lock()
	mock.calls.MarkDone = append(mock.calls.MarkDone, callInfo)
	mock.lockMarkDone.Unlock()
	return mock.MarkDoneFunc(ctx, id, inserted)
}

func (mock *sourceRepoMock) MarkDoneCalls() []struct {
	Ctx      context.Context
	ID       int64
	Inserted int
} {
	var calls []struct {
		Ctx      context.Context
		ID       int64
		Inserted int
	}
	mock.lockMarkDone.RLock()
	calls = mock.calls.MarkDone
	mock.lockMarkDone.RUnlock()
	return calls
}

func (mock *sourceRepoMock) MarkError(ctx context.Context, id int64, message string) error {
	if mock.MarkErrorFunc == nil {
		panic("sourceRepoMock.MarkErrorFunc: method is nil but sourceRepo.MarkError was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      int64
		Message string
	}{
		Ctx:     ctx,
		ID:      id,
		Message: message,
	}
	mock.lockMarkError.Lock()
	mock.calls.MarkError = append(mock.calls.MarkError, callInfo)
	mock.lockMarkError.Unlock()
	return mock.MarkErrorFunc(ctx, id, message)
}

func (mock *sourceRepoMock) MarkErrorCalls() []struct {
	Ctx     context.Context
	ID      int64
	Message string
} {
	var calls []struct {
		Ctx     context.Context
		ID      int64
		Message string
	}
	mock.lockMarkError.RLock()
	calls = mock.calls.MarkError
	mock.lockMarkError.RUnlock()
	return calls
}

func (mock *sourceRepoMock) ResetStuck(ctx context.Context, olderThan time.Time) (int64, error) {
	if mock.ResetStuckFunc == nil {
		panic("sourceRepoMock.ResetStuckFunc: method is nil but sourceRepo.ResetStuck was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		OlderThan time.Time
	}{
		Ctx:       ctx,
		OlderThan: olderThan,
	}
	mock.lockResetStuck.Lock()
	mock.calls.ResetStuck = append(mock.calls.ResetStuck, callInfo)
	mock.lockResetStuck.Unlock()
	return mock.ResetStuckFunc(ctx, olderThan)
}

func (mock *sourceRepoMock) ResetStuckCalls() []struct {
	Ctx       context.Context
	OlderThan time.Time
} {
	var calls []struct {
		Ctx       context.Context
		OlderThan time.Time
	}
	mock.lockResetStuck.RLock()
	calls = mock.calls.ResetStuck
	mock.lockResetStuck.RUnlock()
	return calls
}
