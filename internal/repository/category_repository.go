package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
)

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	ParentCategoryID *string
	Search           string
}

// CategoryRepository manages ticket categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	// List returns every match when page.Limit is zero.
	List(ctx context.Context, filter CategoryFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Category, int64, error)
}

var categoryColumns = []string{"id", "name", "description", "parent_category_id", "created_at", "updated_at"}

var categorySortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
}

type categoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepository{pool: pool}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, description, parent_category_id)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		category.Name,
		category.Description,
		category.ParentCategoryID,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, description=$2, parent_category_id=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		category.Name,
		category.Description,
		category.ParentCategoryID,
		category.ID,
	).Scan(&category.UpdatedAt)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := persistence.QuerierFromContext(ctx, r.pool).Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

func (r *categoryRepository) getOne(ctx context.Context, where sq.Sqlizer) (*domain.Category, error) {
	query, args, err := psql.Select(categoryColumns...).From("categories").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}
	return scanCategory(persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, args...))
}

func (r *categoryRepository) List(ctx context.Context, filter CategoryFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Category, int64, error) {
	where := sq.And{}
	if filter.ParentCategoryID != nil {
		where = append(where, sq.Eq{"parent_category_id": *filter.ParentCategoryID})
	}
	if filter.Search != "" {
		where = append(where, searchAny(filter.Search, "name", "description"))
	}

	q := persistence.QuerierFromContext(ctx, r.pool)
	total, err := countWhere(ctx, q, "categories", where)
	if err != nil {
		return nil, 0, err
	}

	builder := psql.Select(categoryColumns...).From("categories").Where(where).
		OrderBy(orderBy(sort, categorySortColumns, "name"))
	query, args, err := paginate(builder, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build category list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, *category)
	}
	return categories, total, rows.Err()
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.ParentCategoryID,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}
