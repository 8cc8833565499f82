package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/persistence"
)

var _ persistence.Transactor = &TransactorMock{}

// TransactorMock runs callbacks inline and records each call.
// RunInTxFunc overrides the default behavior when set.
type TransactorMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	mu    sync.Mutex
	calls int
}

// RunInTx invokes fn directly unless RunInTxFunc is set.
func (mock *TransactorMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	mock.mu.Lock()
	mock.calls++
	mock.mu.Unlock()
	if mock.RunInTxFunc != nil {
		return mock.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// RunInTxCalls returns how many times RunInTx was called.
func (mock *TransactorMock) RunInTxCalls() int {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.calls
}
