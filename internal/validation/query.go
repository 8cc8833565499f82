package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	apperrors "github.com/spec-kit/citizen-engagement/pkg/util/errorutil"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// QueryFunc reads a raw query parameter; fiber's c.Query satisfies it.
type QueryFunc func(key string, defaultValue ...string) string

// PositiveInt applies def when raw is empty, then requires a positive integer.
func PositiveInt(name, raw string, def int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		raw = strconv.Itoa(def)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fieldError(name, "must be an integer")
	}
	if n <= 0 {
		return 0, fieldError(name, "must be a positive integer")
	}
	return n, nil
}

// Page parses page and limit. limit is capped at MaxLimit.
func Page(query QueryFunc) (domain.PageRequest, error) {
	page, err := PositiveInt("page", query("page"), DefaultPage)
	if err != nil {
		return domain.PageRequest{}, err
	}
	limit, err := PositiveInt("limit", query("limit"), DefaultLimit)
	if err != nil {
		return domain.PageRequest{}, err
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return domain.PageRequest{Page: page, Limit: limit}, nil
}

// Sort parses sortBy/sortOrder against the allowed field names.
func Sort(query QueryFunc, allowed []string, defaultBy string) (domain.Sort, error) {
	by := strings.TrimSpace(query("sortBy"))
	if by == "" {
		by = defaultBy
	}
	ok := false
	for _, a := range allowed {
		if a == by {
			ok = true
			break
		}
	}
	if !ok {
		return domain.Sort{}, fieldError("sortBy", "must be one of: "+strings.Join(allowed, ", "))
	}

	order := domain.SortOrder(strings.ToLower(strings.TrimSpace(query("sortOrder"))))
	switch order {
	case "":
		order = domain.SortDesc
	case domain.SortAsc, domain.SortDesc:
	default:
		return domain.Sort{}, fieldError("sortOrder", "must be one of: asc, desc")
	}
	return domain.Sort{By: by, Order: order}, nil
}

// StatusList splits a comma-separated status filter and checks each value.
func StatusList(raw string) ([]domain.TicketStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []domain.TicketStatus
	for _, part := range strings.Split(raw, ",") {
		s := domain.TicketStatus(strings.ToUpper(strings.TrimSpace(part)))
		if s == "" {
			continue
		}
		if !s.Valid() {
			return nil, fieldError("status", fmt.Sprintf("unknown status %q", part))
		}
		out = append(out, s)
	}
	return out, nil
}

// OptionalEnum returns nil for an empty value and validates otherwise.
func OptionalEnum[T ~string](name, raw string, valid func(T) bool) (*T, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v := T(strings.ToUpper(raw))
	if !valid(v) {
		return nil, fieldError(name, fmt.Sprintf("unknown value %q", raw))
	}
	return &v, nil
}

// OptionalString returns nil for an empty value.
func OptionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

func fieldError(field, msg string) error {
	return apperrors.NewValidationError("invalid query parameters", []apperrors.FieldError{{Field: field, Message: msg}})
}
