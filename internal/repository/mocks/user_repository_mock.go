package mocks

import (
	"context"
	"sync"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

var _ repository.UserRepository = &UserRepositoryMock{}

// UserRepositoryMock is a mock implementation of repository.UserRepository.
type UserRepositoryMock struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	UpdateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	GetByPhoneFunc func(ctx context.Context, phone string) (*domain.User, error)
	ListFunc       func(ctx context.Context, filter repository.UserFilter, page domain.PageRequest, sort domain.Sort) ([]domain.User, int64, error)

	calls struct {
		Create []struct {
			Ctx  context.Context
			User *domain.User
		}
		Update []struct {
			Ctx  context.Context
			User *domain.User
		}
		GetByID []struct {
			Ctx context.Context
			ID  string
		}
		GetByEmail []struct {
			Ctx   context.Context
			Email string
		}
		GetByPhone []struct {
			Ctx   context.Context
			Phone string
		}
		List []struct {
			Ctx    context.Context
			Filter repository.UserFilter
			Page   domain.PageRequest
			Sort   domain.Sort
		}
	}
	lockCreate     sync.RWMutex
	lockUpdate     sync.RWMutex
	lockGetByID    sync.RWMutex
	lockGetByEmail sync.RWMutex
	lockGetByPhone sync.RWMutex
	lockList       sync.RWMutex
}

// Create calls CreateFunc.
func (mock *UserRepositoryMock) Create(ctx context.Context, user *domain.User) error {
	if mock.CreateFunc == nil {
		panic("UserRepositoryMock.CreateFunc: method is nil but UserRepository.Create was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		User *domain.User
	}{Ctx: ctx, User: user}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, user)
}

// CreateCalls gets all the calls that were made to Create.
func (mock *UserRepositoryMock) CreateCalls() []struct {
		Ctx  context.Context
		User *domain.User
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// Update calls UpdateFunc.
func (mock *UserRepositoryMock) Update(ctx context.Context, user *domain.User) error {
	if mock.UpdateFunc == nil {
		panic("UserRepositoryMock.UpdateFunc: method is nil but UserRepository.Update was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		User *domain.User
	}{Ctx: ctx, User: user}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, user)
}

// UpdateCalls gets all the calls that were made to Update.
func (mock *UserRepositoryMock) UpdateCalls() []struct {
		Ctx  context.Context
		User *domain.User
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

// GetByID calls GetByIDFunc.
func (mock *UserRepositoryMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("UserRepositoryMock.GetByIDFunc: method is nil but UserRepository.GetByID was just called")
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
func (mock *UserRepositoryMock) GetByIDCalls() []struct {
		Ctx context.Context
		ID  string
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

// GetByEmail calls GetByEmailFunc.
func (mock *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if mock.GetByEmailFunc == nil {
		panic("UserRepositoryMock.GetByEmailFunc: method is nil but UserRepository.GetByEmail was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Email string
	}{Ctx: ctx, Email: email}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, callInfo)
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

// GetByEmailCalls gets all the calls that were made to GetByEmail.
func (mock *UserRepositoryMock) GetByEmailCalls() []struct {
		Ctx   context.Context
		Email string
} {
	mock.lockGetByEmail.RLock()
	calls := mock.calls.GetByEmail
	mock.lockGetByEmail.RUnlock()
	return calls
}

// GetByPhone calls GetByPhoneFunc.
func (mock *UserRepositoryMock) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if mock.GetByPhoneFunc == nil {
		panic("UserRepositoryMock.GetByPhoneFunc: method is nil but UserRepository.GetByPhone was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Phone string
	}{Ctx: ctx, Phone: phone}
	mock.lockGetByPhone.Lock()
	mock.calls.GetByPhone = append(mock.calls.GetByPhone, callInfo)
	mock.lockGetByPhone.Unlock()
	return mock.GetByPhoneFunc(ctx, phone)
}

// GetByPhoneCalls gets all the calls that were made to GetByPhone.
func (mock *UserRepositoryMock) GetByPhoneCalls() []struct {
		Ctx   context.Context
		Phone string
} {
	mock.lockGetByPhone.RLock()
	calls := mock.calls.GetByPhone
	mock.lockGetByPhone.RUnlock()
	return calls
}

// List calls ListFunc.
func (mock *UserRepositoryMock) List(ctx context.Context, filter repository.UserFilter, page domain.PageRequest, sort domain.Sort) ([]domain.User, int64, error) {
	if mock.ListFunc == nil {
		panic("UserRepositoryMock.ListFunc: method is nil but UserRepository.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter repository.UserFilter
		Page   domain.PageRequest
		Sort   domain.Sort
	}{Ctx: ctx, Filter: filter, Page: page, Sort: sort}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter, page, sort)
}

// ListCalls gets all the calls that were made to List.
func (mock *UserRepositoryMock) ListCalls() []struct {
		Ctx    context.Context
		Filter repository.UserFilter
		Page   domain.PageRequest
		Sort   domain.Sort
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
