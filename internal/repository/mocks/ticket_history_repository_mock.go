package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

var _ repository.TicketHistoryRepository = &TicketHistoryRepositoryMock{}

// TicketHistoryRepositoryMock is a mock implementation of repository.TicketHistoryRepository.
type TicketHistoryRepositoryMock struct {
	CreateFunc       func(ctx context.Context, history *domain.TicketHistory) error
	ListByTicketFunc func(ctx context.Context, ticketID string) ([]domain.TicketHistory, error)

	calls struct {
		Create []struct {
			Ctx     context.Context
			History *domain.TicketHistory
		}
		ListByTicket []struct {
			Ctx      context.Context
			TicketID string
		}
	}
	lockCreate       sync.RWMutex
	lockListByTicket sync.RWMutex
}

// Create calls CreateFunc.
func (mock *TicketHistoryRepositoryMock) Create(ctx context.Context, history *domain.TicketHistory) error {
	if mock.CreateFunc == nil {
		panic("TicketHistoryRepositoryMock.CreateFunc: method is nil but TicketHistoryRepository.Create was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		History *domain.TicketHistory
	}{Ctx: ctx, History: history}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, history)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *TicketHistoryRepositoryMock) CreateCalls() []struct {
		Ctx     context.Context
		History *domain.TicketHistory
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// ListByTicket calls ListByTicketFunc.
func (mock *TicketHistoryRepositoryMock) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketHistory, error) {
	if mock.ListByTicketFunc == nil {
		panic("TicketHistoryRepositoryMock.ListByTicketFunc: method is nil but TicketHistoryRepository.ListByTicket was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		TicketID string
	}{Ctx: ctx, TicketID: ticketID}
	mock.lockListByTicket.Lock()
	mock.calls.ListByTicket = append(mock.calls.ListByTicket, callInfo)
	mock.lockListByTicket.Unlock()
	return mock.ListByTicketFunc(ctx, ticketID)
}

// ListByTicketCalls gets all the calls that were made to ListByTicket.
func (mock *TicketHistoryRepositoryMock) ListByTicketCalls() []struct {
		Ctx      context.Context
		TicketID string
} {
	mock.lockListByTicket.RLock()
	calls := mock.calls.ListByTicket
	mock.lockListByTicket.RUnlock()
	return calls
}
