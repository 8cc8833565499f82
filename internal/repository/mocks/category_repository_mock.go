package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

var _ repository.CategoryRepository = &CategoryRepositoryMock{}

// CategoryRepositoryMock is a mock implementation of repository.CategoryRepository.
type CategoryRepositoryMock struct {
	CreateFunc    func(ctx context.Context, category *domain.Category) error
	UpdateFunc    func(ctx context.Context, category *domain.Category) error
	DeleteFunc    func(ctx context.Context, id string) error
	GetByIDFunc   func(ctx context.Context, id string) (*domain.Category, error)
	GetByNameFunc func(ctx context.Context, name string) (*domain.Category, error)
	ListFunc      func(ctx context.Context, filter repository.CategoryFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Category, int64, error)

	calls struct {
		Create []struct {
			Ctx      context.Context
			Category *domain.Category
		}
		Update []struct {
			Ctx      context.Context
			Category *domain.Category
		}
		Delete []struct {
			Ctx context.Context
			ID  string
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
			Filter repository.CategoryFilter
			Page   domain.PageRequest
			Sort   domain.Sort
		}
	}
	lockCreate    sync.RWMutex
	lockUpdate    sync.RWMutex
	lockDelete    sync.RWMutex
	lockGetByID   sync.RWMutex
	lockGetByName sync.RWMutex
	lockList      sync.RWMutex
}

// Create calls CreateFunc.
func (mock *CategoryRepositoryMock) Create(ctx context.Context, category *domain.Category) error {
	if mock.CreateFunc == nil {
		panic("CategoryRepositoryMock.CreateFunc: method is nil but CategoryRepository.Create was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Category *domain.Category
	}{Ctx: ctx, Category: category}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, category)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *CategoryRepositoryMock) CreateCalls() []struct {
		Ctx      context.Context
		Category *domain.Category
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// Update calls UpdateFunc.
func (mock *CategoryRepositoryMock) Update(ctx context.Context, category *domain.Category) error {
	if mock.UpdateFunc == nil {
		panic("CategoryRepositoryMock.UpdateFunc: method is nil but CategoryRepository.Update was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Category *domain.Category
	}{Ctx: ctx, Category: category}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, category)
}

// UpdateCalls gets all the calls that were made to Update.
func (mock *CategoryRepositoryMock) UpdateCalls() []struct {
		Ctx      context.Context
		Category *domain.Category
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

// Delete calls DeleteFunc.
func (mock *CategoryRepositoryMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("CategoryRepositoryMock.DeleteFunc: method is nil but CategoryRepository.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  string
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

// DeleteCalls gets all the calls that were made to Delete.
func (mock *CategoryRepositoryMock) DeleteCalls() []struct {
		Ctx context.Context
		ID  string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

// GetByID calls GetByIDFunc.
func (mock *CategoryRepositoryMock) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if mock.GetByIDFunc == nil {
		panic("CategoryRepositoryMock.GetByIDFunc: method is nil but CategoryRepository.GetByID was just called")
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
func (mock *CategoryRepositoryMock) GetByIDCalls() []struct {
		Ctx context.Context
		ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

// GetByName calls GetByNameFunc.
func (mock *CategoryRepositoryMock) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if mock.GetByNameFunc == nil {
		panic("CategoryRepositoryMock.GetByNameFunc: method is nil but CategoryRepository.GetByName was just called")
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
func (mock *CategoryRepositoryMock) GetByNameCalls() []struct {
		Ctx  context.Context
		Name string
} {
	mock.lockGetByName.RLock()
	calls := mock.calls.GetByName
	mock.lockGetByName.RUnlock()
	return calls
}

// List calls ListFunc.
func (mock *CategoryRepositoryMock) List(ctx context.Context, filter repository.CategoryFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Category, int64, error) {
	if mock.ListFunc == nil {
		panic("CategoryRepositoryMock.ListFunc: method is nil but CategoryRepository.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter repository.CategoryFilter
		Page   domain.PageRequest
		Sort   domain.Sort
	}{Ctx: ctx, Filter: filter, Page: page, Sort: sort}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter, page, sort)
}

// ListCalls gets all the calls that were made to List.
func (mock *CategoryRepositoryMock) ListCalls() []struct {
		Ctx    context.Context
		Filter repository.CategoryFilter
		Page   domain.PageRequest
		Sort   domain.Sort
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
