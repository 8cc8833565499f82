package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

var _ repository.CommunicationRepository = &CommunicationRepositoryMock{}

// CommunicationRepositoryMock is a mock implementation of repository.CommunicationRepository.
type CommunicationRepositoryMock struct {
	CreateFunc       func(ctx context.Context, msg *domain.Communication) error
	ListByTicketFunc func(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Communication, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Msg *domain.Communication
		}
		ListByTicket []struct {
			Ctx             context.Context
			TicketID        string
			IncludeInternal bool
		}
	}
	lockCreate       sync.RWMutex
	lockListByTicket sync.RWMutex
}

// Create calls CreateFunc.
func (mock *CommunicationRepositoryMock) Create(ctx context.Context, msg *domain.Communication) error {
	if mock.CreateFunc == nil {
		panic("CommunicationRepositoryMock.CreateFunc: method is nil but CommunicationRepository.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Msg *domain.Communication
	}{Ctx: ctx, Msg: msg}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, msg)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *CommunicationRepositoryMock) CreateCalls() []struct {
		Ctx context.Context
		Msg *domain.Communication
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// ListByTicket calls ListByTicketFunc.
func (mock *CommunicationRepositoryMock) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Communication, error) {
	if mock.ListByTicketFunc == nil {
		panic("CommunicationRepositoryMock.ListByTicketFunc: method is nil but CommunicationRepository.ListByTicket was just called")
	}
	callInfo := struct {
		Ctx             context.Context
		TicketID        string
		IncludeInternal bool
	}{Ctx: ctx, TicketID: ticketID, IncludeInternal: includeInternal}
	mock.lockListByTicket.Lock()
	mock.calls.ListByTicket = append(mock.calls.ListByTicket, callInfo)
	mock.lockListByTicket.Unlock()
	return mock.ListByTicketFunc(ctx, ticketID, includeInternal)
}

// ListByTicketCalls gets all the calls that were made to ListByTicket.
func (mock *CommunicationRepositoryMock) ListByTicketCalls() []struct {
		Ctx             context.Context
		TicketID        string
		IncludeInternal bool
} {
	mock.lockListByTicket.RLock()
	calls := mock.calls.ListByTicket
	mock.lockListByTicket.RUnlock()
	return calls
}
