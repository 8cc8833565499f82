package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
)

// AgencyFilter narrows agency listings.
type AgencyFilter struct {
	Status *domain.AgencyStatus
	Search string
}

// AgencyRepository manages agency persistence.
type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.Agency) error
	Update(ctx context.Context, agency *domain.Agency) error
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
	GetByName(ctx context.Context, name string) (*domain.Agency, error)
	List(ctx context.Context, filter AgencyFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Agency, int64, error)
	ListActive(ctx context.Context) ([]domain.Agency, error)
}

var agencyColumns = []string{
	"id", "name", "description", "contact_email", "contact_phone", "status", "created_at", "updated_at",
}

var agencySortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
}

type agencyRepository struct {
	pool *pgxpool.Pool
}

// NewAgencyRepository builds the repository.
func NewAgencyRepository(pool *pgxpool.Pool) AgencyRepository {
	return &agencyRepository{pool: pool}
}

func (r *agencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	const query = `
        INSERT INTO agencies (name, description, contact_email, contact_phone, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		agency.Name,
		agency.Description,
		agency.ContactEmail,
		agency.ContactPhone,
		agency.Status,
	).Scan(&agency.ID, &agency.CreatedAt, &agency.UpdatedAt)
}

func (r *agencyRepository) Update(ctx context.Context, agency *domain.Agency) error {
	const query = `
        UPDATE agencies SET name=$1, description=$2, contact_email=$3, contact_phone=$4, status=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		agency.Name,
		agency.Description,
		agency.ContactEmail,
		agency.ContactPhone,
		agency.Status,
		agency.ID,
	).Scan(&agency.UpdatedAt)
}

func (r *agencyRepository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *agencyRepository) GetByName(ctx context.Context, name string) (*domain.Agency, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

func (r *agencyRepository) getOne(ctx context.Context, where sq.Sqlizer) (*domain.Agency, error) {
	query, args, err := psql.Select(agencyColumns...).From("agencies").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build agency query: %w", err)
	}
	return scanAgency(persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, args...))
}

func (r *agencyRepository) List(ctx context.Context, filter AgencyFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Agency, int64, error) {
	where := sq.And{}
	if filter.Status != nil {
		where = append(where, sq.Eq{"status": *filter.Status})
	}
	if filter.Search != "" {
		where = append(where, searchAny(filter.Search, "name", "description"))
	}

	q := persistence.QuerierFromContext(ctx, r.pool)
	total, err := countWhere(ctx, q, "agencies", where)
	if err != nil {
		return nil, 0, err
	}

	builder := psql.Select(agencyColumns...).From("agencies").Where(where).
		OrderBy(orderBy(sort, agencySortColumns, "created_at"))
	agencies, err := r.query(ctx, paginate(builder, page))
	if err != nil {
		return nil, 0, err
	}
	return agencies, total, nil
}

func (r *agencyRepository) ListActive(ctx context.Context) ([]domain.Agency, error) {
	return r.query(ctx, psql.Select(agencyColumns...).From("agencies").
		Where(sq.Eq{"status": domain.AgencyStatusActive}).
		OrderBy("name ASC"))
}

func (r *agencyRepository) query(ctx context.Context, builder sq.SelectBuilder) ([]domain.Agency, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build agency list: %w", err)
	}
	rows, err := persistence.QuerierFromContext(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agencies := []domain.Agency{}
	for rows.Next() {
		agency, err := scanAgency(rows)
		if err != nil {
			return nil, err
		}
		agencies = append(agencies, *agency)
	}
	return agencies, rows.Err()
}

func scanAgency(row rowScanner) (*domain.Agency, error) {
	var agency domain.Agency
	if err := row.Scan(
		&agency.ID,
		&agency.Name,
		&agency.Description,
		&agency.ContactEmail,
		&agency.ContactPhone,
		&agency.Status,
		&agency.CreatedAt,
		&agency.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agency, nil
}
