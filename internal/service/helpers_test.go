package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

func requireStatus(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, status, domainErr.HTTPStatus, domainErr.Message)
	return domainErr
}

func ptr[T any](v T) *T { return &v }

func admin() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.RoleAdmin, Status: domain.UserStatusActive}
}

func citizen(id string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleCitizen, Status: domain.UserStatusActive, Phone: "+250788" + id}
}

func staff(id string, agencyID *string) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleAgencyStaff, Status: domain.UserStatusActive, AgencyID: agencyID}
}
