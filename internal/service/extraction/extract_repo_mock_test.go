package extraction

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

var _ extractRepo = &extractRepoMock{}

type extractRepoMock struct {
	InsertIfAbsentFunc func(ctx context.Context, in domain.NewExtract) (bool, error)

	calls struct {
		InsertIfAbsent []struct {
			Ctx context.Context
			In  domain.NewExtract
		}
	}
	lockInsertIfAbsent sync.RWMutex
}

func (mock *extractRepoMock) InsertIfAbsent(ctx context.Context, in domain.NewExtract) (bool, error) {
	if mock.InsertIfAbsentFunc == nil {
		panic("extractRepoMock.InsertIfAbsentFunc: method is nil but extractRepo.InsertIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  domain.NewExtract
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockInsertIfAbsent.Lock()
	mock.calls.InsertIfAbsent = append(mock.calls.InsertIfAbsent, callInfo)
	mock.lockInsertIfAbsent.Unlock()
	return mock.InsertIfAbsentFunc(ctx, in)
}

func (mock *extractRepoMock) InsertIfAbsentCalls() []struct {
	Ctx context.Context
	In  domain.NewExtract
} {
	var calls []struct {
		Ctx context.Context
		In  domain.NewExtract
	}
	mock.lockInsertIfAbsent.RLock()
	calls = mock.calls.InsertIfAbsent
	mock.lockInsertIfAbsent.RUnlock()
	return calls
}
