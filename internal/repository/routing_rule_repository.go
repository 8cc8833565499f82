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

// RoutingRuleFilter narrows routing rule listings.
type RoutingRuleFilter struct {
	Status           *domain.RoutingRuleStatus
	CategoryID       *string
	AssignedAgencyID *string
}

// RoutingRuleRepository persists category → agency routing rules.
type RoutingRuleRepository interface {
	Create(ctx context.Context, rule *domain.RoutingRule) error
	Update(ctx context.Context, rule *domain.RoutingRule) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.RoutingRule, error)
	GetByCategory(ctx context.Context, categoryID string) (*domain.RoutingRule, error)
	// List returns every match when page.Limit is zero.
	List(ctx context.Context, filter RoutingRuleFilter, page domain.PageRequest, sort domain.Sort) ([]domain.RoutingRule, int64, error)
}

var routingRuleColumns = []string{
	"id", "category_id", "assigned_agency_id", "description", "status", "created_at", "updated_at",
}

var routingRuleSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"status":    "status",
}

type routingRuleRepository struct {
	pool *pgxpool.Pool
}

// NewRoutingRuleRepository builds the repository.
func NewRoutingRuleRepository(pool *pgxpool.Pool) RoutingRuleRepository {
	return &routingRuleRepository{pool: pool}
}

func (r *routingRuleRepository) Create(ctx context.Context, rule *domain.RoutingRule) error {
	const query = `
        INSERT INTO routing_rules (category_id, assigned_agency_id, description, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		rule.CategoryID,
		rule.AssignedAgencyID,
		rule.Description,
		rule.Status,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *routingRuleRepository) Update(ctx context.Context, rule *domain.RoutingRule) error {
	const query = `
        UPDATE routing_rules SET category_id=$1, assigned_agency_id=$2, description=$3, status=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		rule.CategoryID,
		rule.AssignedAgencyID,
		rule.Description,
		rule.Status,
		rule.ID,
	).Scan(&rule.UpdatedAt)
}

func (r *routingRuleRepository) Delete(ctx context.Context, id string) error {
	cmd, err := persistence.QuerierFromContext(ctx, r.pool).Exec(ctx, `DELETE FROM routing_rules WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *routingRuleRepository) GetByID(ctx context.Context, id string) (*domain.RoutingRule, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *routingRuleRepository) GetByCategory(ctx context.Context, categoryID string) (*domain.RoutingRule, error) {
	return r.getOne(ctx, sq.Eq{"category_id": categoryID})
}

func (r *routingRuleRepository) getOne(ctx context.Context, where sq.Sqlizer) (*domain.RoutingRule, error) {
	query, args, err := psql.Select(routingRuleColumns...).From("routing_rules").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build routing rule query: %w", err)
	}
	return scanRoutingRule(persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, args...))
}

func (r *routingRuleRepository) List(ctx context.Context, filter RoutingRuleFilter, page domain.PageRequest, sort domain.Sort) ([]domain.RoutingRule, int64, error) {
	where := sq.And{}
	if filter.Status != nil {
		where = append(where, sq.Eq{"status": *filter.Status})
	}
	if filter.CategoryID != nil {
		where = append(where, sq.Eq{"category_id": *filter.CategoryID})
	}
	if filter.AssignedAgencyID != nil {
		where = append(where, sq.Eq{"assigned_agency_id": *filter.AssignedAgencyID})
	}

	q := persistence.QuerierFromContext(ctx, r.pool)
	total, err := countWhere(ctx, q, "routing_rules", where)
	if err != nil {
		return nil, 0, err
	}

	builder := psql.Select(routingRuleColumns...).From("routing_rules").Where(where).
		OrderBy(orderBy(sort, routingRuleSortColumns, "created_at"))
	query, args, err := paginate(builder, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build routing rule list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rules := []domain.RoutingRule{}
	for rows.Next() {
		rule, err := scanRoutingRule(rows)
		if err != nil {
			return nil, 0, err
		}
		rules = append(rules, *rule)
	}
	return rules, total, rows.Err()
}

func scanRoutingRule(row rowScanner) (*domain.RoutingRule, error) {
	var rule domain.RoutingRule
	if err := row.Scan(
		&rule.ID,
		&rule.CategoryID,
		&rule.AssignedAgencyID,
		&rule.Description,
		&rule.Status,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rule, nil
}
