package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
)

// UserFilter narrows user listings.
type UserFilter struct {
	Role     *domain.UserRole
	Status   *domain.UserStatus
	AgencyID *string
	Search   string
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter, page domain.PageRequest, sort domain.Sort) ([]domain.User, int64, error)
}

var userColumns = []string{
	"id", "name", "email", "phone", "password_hash", "role", "status", "agency_id", "created_at", "updated_at",
}

var userSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"email":     "email",
	"role":      "role",
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, phone, password_hash, role, status, agency_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.AgencyID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, phone=$3, password_hash=$4, role=$5, status=$6, agency_id=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`

	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.AgencyID,
		user.ID,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, sq.Expr("LOWER(email) = LOWER(?)", email))
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"phone": phone})
}

func (r *userRepository) getOne(ctx context.Context, where sq.Sqlizer) (*domain.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}
	return scanUser(persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, args...))
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, page domain.PageRequest, sort domain.Sort) ([]domain.User, int64, error) {
	where := sq.And{}
	if filter.Role != nil {
		where = append(where, sq.Eq{"role": *filter.Role})
	}
	if filter.Status != nil {
		where = append(where, sq.Eq{"status": *filter.Status})
	}
	if filter.AgencyID != nil {
		where = append(where, sq.Eq{"agency_id": *filter.AgencyID})
	}
	if filter.Search != "" {
		where = append(where, searchAny(filter.Search, "name", "email", "phone"))
	}

	q := persistence.QuerierFromContext(ctx, r.pool)
	total, err := countWhere(ctx, q, "users", where)
	if err != nil {
		return nil, 0, err
	}

	builder := psql.Select(userColumns...).From("users").Where(where).
		OrderBy(orderBy(sort, userSortColumns, "created_at"))
	query, args, err := paginate(builder, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build user list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]domain.User, 0, page.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	return users, total, rows.Err()
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.AgencyID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
