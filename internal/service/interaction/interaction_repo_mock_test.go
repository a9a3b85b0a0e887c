package interaction

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookfeed-backend/internal/domain"
)

var _ interactionRepo = &interactionRepoMock{}

type interactionRepoMock struct {
	CreateFunc func(ctx context.Context, in domain.Interaction) (domain.Interaction, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			In  domain.Interaction
		}
	}
	lockCreate sync.RWMutex
}

func (mock *interactionRepoMock) Create(ctx context.Context, in domain.Interaction) (domain.Interaction, error) {
	if mock.CreateFunc == nil {
		panic("interactionRepoMock.CreateFunc: method is nil but interactionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  domain.Interaction
	}{
		Ctx: ctx,
		In:  in,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, in)
}

func (mock *interactionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	In  domain.Interaction
} {
	var calls []struct {
		Ctx context.Context
		In  domain.Interaction
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
