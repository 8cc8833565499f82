package errorutil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_Nil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestToDomainError_PassesDomainErrorThrough(t *testing.T) {
	t.Parallel()

	orig := NewConflict("agency name already exists", nil)
	wrapped := fmt.Errorf("create agency: %w", orig)

	got := ToDomainError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)
	assert.Equal(t, "agency name already exists", got.Message)
}

func TestToDomainError_Persistence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "unique", err: &pgconn.PgError{Code: "23505", ConstraintName: "agencies_name_key"}, status: http.StatusConflict, code: "CONFLICT"},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "check", err: &pgconn.PgError{Code: "23514"}, status: http.StatusBadRequest, code: "VALIDATION_FAILED"},
		{name: "bad uuid", err: &pgconn.PgError{Code: "22P02"}, status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "other pg error", err: &pgconn.PgError{Code: "40001"}, status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
		{name: "deadline", err: context.DeadlineExceeded, status: http.StatusServiceUnavailable, code: "TIMEOUT"},
		{name: "unclassified", err: errors.New("boom"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ToDomainError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.status, got.HTTPStatus)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("validation failed", []FieldError{{Field: "name", Message: "is required"}})
	got := ToDomainError(err)
	require.Len(t, got.Fields, 1)
	assert.Equal(t, "name", got.Fields[0].Field)
	assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
}
