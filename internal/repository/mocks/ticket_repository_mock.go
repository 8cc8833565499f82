package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

var _ repository.TicketRepository = &TicketRepositoryMock{}

// TicketRepositoryMock is a mock implementation of repository.TicketRepository.
type TicketRepositoryMock struct {
	CreateFunc  func(ctx context.Context, ticket *domain.Ticket) error
	UpdateFunc  func(ctx context.Context, ticket *domain.Ticket) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Ticket, error)
	ListFunc    func(ctx context.Context, filter repository.TicketFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Ticket, int64, error)

	calls struct {
		Create []struct {
			Ctx    context.Context
			Ticket *domain.Ticket
		}
		Update []struct {
			Ctx    context.Context
			Ticket *domain.Ticket
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		List []struct {
			Ctx    context.Context
			Filter repository.TicketFilter
			Page   domain.PageRequest
			Sort   domain.Sort
		}
	}
	lockCreate  sync.RWMutex
	lockUpdate  sync.RWMutex
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
}

// Create calls CreateFunc.
func (mock *TicketRepositoryMock) Create(ctx context.Context, ticket *domain.Ticket) error {
	if mock.CreateFunc == nil {
		panic("TicketRepositoryMock.CreateFunc: method is nil but TicketRepository.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Ticket *domain.Ticket
	}{Ctx: ctx, Ticket: ticket}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, ticket)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *TicketRepositoryMock) CreateCalls() []struct {
		Ctx    context.Context
		Ticket *domain.Ticket
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// Update calls UpdateFunc.
func (mock *TicketRepositoryMock) Update(ctx context.Context, ticket *domain.Ticket) error {
	if mock.UpdateFunc == nil {
		panic("TicketRepositoryMock.UpdateFunc: method is nil but TicketRepository.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Ticket *domain.Ticket
	}{Ctx: ctx, Ticket: ticket}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, ticket)
}

// UpdateCalls gets all the calls that were made to Update.
func (mock *TicketRepositoryMock) UpdateCalls() []struct {
		Ctx    context.Context
		Ticket *domain.Ticket
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

// GetByID calls GetByIDFunc.
func (mock *TicketRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if mock.GetByIDFunc == nil {
		panic("TicketRepositoryMock.GetByIDFunc: method is nil but TicketRepository.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

// GetByIDCalls gets all the calls that were made to GetByID.
func (mock *TicketRepositoryMock) GetByIDCalls() []struct {
		Ctx context.Context
		ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

// List calls ListFunc.
func (mock *TicketRepositoryMock) List(ctx context.Context, filter repository.TicketFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Ticket, int64, error) {
	if mock.ListFunc == nil {
		panic("TicketRepositoryMock.ListFunc: method is nil but TicketRepository.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter repository.TicketFilter
		Page   domain.PageRequest
		Sort   domain.Sort
	}{Ctx: ctx, Filter: filter, Page: page, Sort: sort}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter, page, sort)
}

// ListCalls gets all the calls that were made to List.
func (mock *TicketRepositoryMock) ListCalls() []struct {
		Ctx    context.Context
		Filter repository.TicketFilter
		Page   domain.PageRequest
		Sort   domain.Sort
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
