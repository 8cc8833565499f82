package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

var _ repository.AgencyRepository = &AgencyRepositoryMock{}

// AgencyRepositoryMock is a mock implementation of repository.AgencyRepository.
type AgencyRepositoryMock struct {
	CreateFunc     func(ctx context.Context, agency *domain.Agency) error
	UpdateFunc     func(ctx context.Context, agency *domain.Agency) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Agency, error)
	GetByNameFunc  func(ctx context.Context, name string) (*domain.Agency, error)
	ListFunc       func(ctx context.Context, filter repository.AgencyFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Agency, int64, error)
	ListActiveFunc func(ctx context.Context) ([]domain.Agency, error)

	calls struct {
		Create []struct {
			Ctx    context.Context
			Agency *domain.Agency
		}
		Update []struct {
			Ctx    context.Context
			Agency *domain.Agency
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		GetByName []struct {
			Ctx  context.Context
			Name string
		}
		List []struct {
			Ctx    context.Context
			Filter repository.AgencyFilter
			Page   domain.PageRequest
			Sort   domain.Sort
		}
		ListActive []struct {
			Ctx context.Context
		}
	}
	lockCreate     sync.RWMutex
	lockUpdate     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockGetByName  sync.RWMutex
	lockList       sync.RWMutex
	lockListActive sync.RWMutex
}

// Create calls CreateFunc.
func (mock *AgencyRepositoryMock) Create(ctx context.Context, agency *domain.Agency) error {
	if mock.CreateFunc == nil {
		panic("AgencyRepositoryMock.CreateFunc: method is nil but AgencyRepository.Create was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Agency *domain.Agency
	}{Ctx: ctx, Agency: agency}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, agency)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *AgencyRepositoryMock) CreateCalls() []struct {
		Ctx    context.Context
		Agency *domain.Agency
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// Update calls UpdateFunc.
func (mock *AgencyRepositoryMock) Update(ctx context.Context, agency *domain.Agency) error {
	if mock.UpdateFunc == nil {
		panic("AgencyRepositoryMock.UpdateFunc: method is nil but AgencyRepository.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Agency *domain.Agency
	}{Ctx: ctx, Agency: agency}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, agency)
}

// UpdateCalls gets all the calls that were made to Update.
func (mock *AgencyRepositoryMock) UpdateCalls() []struct {
		Ctx    context.Context
		Agency *domain.Agency
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

// GetByID calls GetByIDFunc.
func (mock *AgencyRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	if mock.GetByIDFunc == nil {
		panic("AgencyRepositoryMock.GetByIDFunc: method is nil but AgencyRepository.GetByID was just called")
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
func (mock *AgencyRepositoryMock) GetByIDCalls() []struct {
		Ctx context.Context
		ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

// GetByName calls GetByNameFunc.
func (mock *AgencyRepositoryMock) GetByName(ctx context.Context, name string) (*domain.Agency, error) {
	if mock.GetByNameFunc == nil {
		panic("AgencyRepositoryMock.GetByNameFunc: method is nil but AgencyRepository.GetByName was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockGetByName.Lock()
	mock.calls.GetByName = append(mock.calls.GetByName, callInfo)
	mock.lockGetByName.Unlock()
	return mock.GetByNameFunc(ctx, name)
}

// GetByNameCalls gets all the calls that were made to GetByName.
func (mock *AgencyRepositoryMock) GetByNameCalls() []struct {
		Ctx  context.Context
		Name string
} {
	mock.lockGetByName.RLock()
	calls := mock.calls.GetByName
	mock.lockGetByName.RUnlock()
	return calls
}

// List calls ListFunc.
func (mock *AgencyRepositoryMock) List(ctx context.Context, filter repository.AgencyFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Agency, int64, error) {
	if mock.ListFunc == nil {
		panic("AgencyRepositoryMock.ListFunc: method is nil but AgencyRepository.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter repository.AgencyFilter
		Page   domain.PageRequest
		Sort   domain.Sort
	}{Ctx: ctx, Filter: filter, Page: page, Sort: sort}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter, page, sort)
}

// ListCalls gets all the calls that were made to List.
func (mock *AgencyRepositoryMock) ListCalls() []struct {
		Ctx    context.Context
		Filter repository.AgencyFilter
		Page   domain.PageRequest
		Sort   domain.Sort
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

// ListActive calls ListActiveFunc.
func (mock *AgencyRepositoryMock) ListActive(ctx context.Context) ([]domain.Agency, error) {
	if mock.ListActiveFunc == nil {
		panic("AgencyRepositoryMock.ListActiveFunc: method is nil but AgencyRepository.ListActive was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListActive.Lock()
	mock.calls.ListActive = append(mock.calls.ListActive, callInfo)
	mock.lockListActive.Unlock()
	return mock.ListActiveFunc(ctx)
}

// ListActiveCalls gets all the calls that were made to ListActive.
func (mock *AgencyRepositoryMock) ListActiveCalls() []struct {
		Ctx context.Context
} {
	mock.lockListActive.RLock()
	calls := mock.calls.ListActive
	mock.lockListActive.RUnlock()
	return calls
}
