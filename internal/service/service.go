// Package service holds business rules: uniqueness, ticket workflow,
// row-level access and routing.
package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/citizen-engagement/internal/auth"
	"github.com/spec-kit/citizen-engagement/internal/domain"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

// notFoundOr maps a missing row to a 404 for resource and any other failure
// through the persistence mapping.
func notFoundOr(err error, resource, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}

func requireUser(user *domain.User) error {
	if user == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return nil
}

func requireAdmin(user *domain.User) error {
	if err := requireUser(user); err != nil {
		return err
	}
	if user.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := auth.HashPassword(password, cost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError("validation failed", []apperrors.FieldError{
			{Field: "password", Message: "must be at most 72 bytes"},
		})
	}
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return hash, nil
}
