package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

var _ repository.RoutingRuleRepository = &RoutingRuleRepositoryMock{}

// RoutingRuleRepositoryMock is a mock implementation of repository.RoutingRuleRepository.
type RoutingRuleRepositoryMock struct {
	CreateFunc        func(ctx context.Context, rule *domain.RoutingRule) error
	UpdateFunc        func(ctx context.Context, rule *domain.RoutingRule) error
	DeleteFunc        func(ctx context.Context, id string) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.RoutingRule, error)
	GetByCategoryFunc func(ctx context.Context, categoryID string) (*domain.RoutingRule, error)
	ListFunc          func(ctx context.Context, filter repository.RoutingRuleFilter, page domain.PageRequest, sort domain.Sort) ([]domain.RoutingRule, int64, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			Rule *domain.RoutingRule
		}
		Update []struct {
			Ctx  context.Context
			Rule *domain.RoutingRule
		}
		Delete []struct {
			Ctx context.Context
			ID  string
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		GetByCategory []struct {
			Ctx        context.Context
			CategoryID string
		}
		List []struct {
			Ctx    context.Context
			Filter repository.RoutingRuleFilter
			Page   domain.PageRequest
			Sort   domain.Sort
		}
	}
	lockCreate        sync.RWMutex
	lockUpdate        sync.RWMutex
	lockDelete        sync.RWMutex
	lockGetByID       sync.RWMutex
	lockGetByCategory sync.RWMutex
	lockList          sync.RWMutex
}

// Create calls CreateFunc.
func (mock *RoutingRuleRepositoryMock) Create(ctx context.Context, rule *domain.RoutingRule) error {
	if mock.CreateFunc == nil {
		panic("RoutingRuleRepositoryMock.CreateFunc: method is nil but RoutingRuleRepository.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rule *domain.RoutingRule
	}{Ctx: ctx, Rule: rule}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rule)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *RoutingRuleRepositoryMock) CreateCalls() []struct {
		Ctx  context.Context
		Rule *domain.RoutingRule
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// Update calls UpdateFunc.
func (mock *RoutingRuleRepositoryMock) Update(ctx context.Context, rule *domain.RoutingRule) error {
	if mock.UpdateFunc == nil {
		panic("RoutingRuleRepositoryMock.UpdateFunc: method is nil but RoutingRuleRepository.Update was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Rule *domain.RoutingRule
	}{Ctx: ctx, Rule: rule}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, rule)
}

// UpdateCalls gets all the calls that were made to Update.
func (mock *RoutingRuleRepositoryMock) UpdateCalls() []struct {
		Ctx  context.Context
		Rule *domain.RoutingRule
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

// Delete calls DeleteFunc.
func (mock *RoutingRuleRepositoryMock) Delete(ctx context.Context, id string) error {
	if mock.DeleteFunc == nil {
		panic("RoutingRuleRepositoryMock.DeleteFunc: method is nil but RoutingRuleRepository.Delete was just called")
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
func (mock *RoutingRuleRepositoryMock) DeleteCalls() []struct {
		Ctx context.Context
		ID  string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

// GetByID calls GetByIDFunc.
func (mock *RoutingRuleRepositoryMock) GetByID(ctx context.Context, id string) (*domain.RoutingRule, error) {
	if mock.GetByIDFunc == nil {
		panic("RoutingRuleRepositoryMock.GetByIDFunc: method is nil but RoutingRuleRepository.GetByID was just called")
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
func (mock *RoutingRuleRepositoryMock) GetByIDCalls() []struct {
		Ctx context.Context
		ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

// GetByCategory calls GetByCategoryFunc.
func (mock *RoutingRuleRepositoryMock) GetByCategory(ctx context.Context, categoryID string) (*domain.RoutingRule, error) {
	if mock.GetByCategoryFunc == nil {
		panic("RoutingRuleRepositoryMock.GetByCategoryFunc: method is nil but RoutingRuleRepository.GetByCategory was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		CategoryID string
	}{Ctx: ctx, CategoryID: categoryID}
	mock.lockGetByCategory.Lock()
	mock.calls.GetByCategory = append(mock.calls.GetByCategory, callInfo)
	mock.lockGetByCategory.Unlock()
	return mock.GetByCategoryFunc(ctx, categoryID)
}

// GetByCategoryCalls gets all the calls that were made to GetByCategory.
func (mock *RoutingRuleRepositoryMock) GetByCategoryCalls() []struct {
		Ctx        context.Context
		CategoryID string
} {
	mock.lockGetByCategory.RLock()
	calls := mock.calls.GetByCategory
	mock.lockGetByCategory.RUnlock()
	return calls
}

// List calls ListFunc.
func (mock *RoutingRuleRepositoryMock) List(ctx context.Context, filter repository.RoutingRuleFilter, page domain.PageRequest, sort domain.Sort) ([]domain.RoutingRule, int64, error) {
	if mock.ListFunc == nil {
		panic("RoutingRuleRepositoryMock.ListFunc: method is nil but RoutingRuleRepository.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter repository.RoutingRuleFilter
		Page   domain.PageRequest
		Sort   domain.Sort
	}{Ctx: ctx, Filter: filter, Page: page, Sort: sort}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter, page, sort)
}

// ListCalls gets all the calls that were made to List.
func (mock *RoutingRuleRepositoryMock) ListCalls() []struct {
		Ctx    context.Context
		Filter repository.RoutingRuleFilter
		Page   domain.PageRequest
		Sort   domain.Sort
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
