package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
)

// TicketFilter captures list predicates. Access scoping is decided by the
// service and expressed through the same fields.
type TicketFilter struct {
	CitizenID        *string
	ExcludeAnonymous bool
	AssignedAgencyID *string
	AssignedAgentID  *string
	CategoryID       *string
	Statuses         []domain.TicketStatus
	Priority         *domain.TicketPriority
	Search           string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Ticket, int64, error)
}

var ticketColumns = []string{
	"id", "title", "detailed_description", "location", "priority", "status",
	"is_anonymous", "anonymous_creator_name", "anonymous_creator_contact",
	"citizen_id", "category_id", "assigned_agent_id", "assigned_agency_id",
	"created_at", "updated_at",
}

// Priority and status sort by rank, not alphabetically.
var ticketSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"priority":  "array_position(ARRAY['LOW','MEDIUM','HIGH','URGENT']::text[], priority)",
	"status": "array_position(ARRAY['NEW','ASSIGNED','IN_PROGRESS_PENDING_AGENT'," +
		"'IN_PROGRESS_PENDING_CITIZEN','RESOLVED','CLOSED']::text[], status)",
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, detailed_description, location, priority, status, is_anonymous,
            anonymous_creator_name, anonymous_creator_contact, citizen_id, category_id,
            assigned_agent_id, assigned_agency_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		ticket.Title,
		ticket.DetailedDescription,
		ticket.Location,
		ticket.Priority,
		ticket.Status,
		ticket.IsAnonymous,
		ticket.AnonymousCreatorName,
		ticket.AnonymousCreatorContact,
		ticket.CitizenID,
		ticket.CategoryID,
		ticket.AssignedAgentID,
		ticket.AssignedAgencyID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

// Update persists the mutable workflow fields. It reports pgx.ErrNoRows
// when the ticket does not exist.
func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, detailed_description=$2, location=$3, priority=$4, status=$5,
            category_id=$6, assigned_agent_id=$7, assigned_agency_id=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		ticket.Title,
		ticket.DetailedDescription,
		ticket.Location,
		ticket.Priority,
		ticket.Status,
		ticket.CategoryID,
		ticket.AssignedAgentID,
		ticket.AssignedAgencyID,
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query, args, err := psql.Select(ticketColumns...).From("tickets").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ticket query: %w", err)
	}
	return scanTicket(persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query, args...))
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Ticket, int64, error) {
	where := ticketWhere(filter)

	q := persistence.QuerierFromContext(ctx, r.pool)
	total, err := countWhere(ctx, q, "tickets", where)
	if err != nil {
		return nil, 0, err
	}

	builder := psql.Select(ticketColumns...).From("tickets").Where(where).
		OrderBy(orderBy(sort, ticketSortColumns, "created_at"))
	query, args, err := paginate(builder, page).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build ticket list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tickets := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, total, rows.Err()
}

func ticketWhere(filter TicketFilter) sq.And {
	where := sq.And{}
	if filter.CitizenID != nil {
		where = append(where, sq.Eq{"citizen_id": *filter.CitizenID})
	}
	if filter.ExcludeAnonymous {
		where = append(where, sq.Eq{"is_anonymous": false})
	}
	if filter.AssignedAgencyID != nil {
		where = append(where, sq.Eq{"assigned_agency_id": *filter.AssignedAgencyID})
	}
	if filter.AssignedAgentID != nil {
		where = append(where, sq.Eq{"assigned_agent_id": *filter.AssignedAgentID})
	}
	if filter.CategoryID != nil {
		where = append(where, sq.Eq{"category_id": *filter.CategoryID})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		where = append(where, sq.Eq{"status": statuses})
	}
	if filter.Priority != nil {
		where = append(where, sq.Eq{"priority": *filter.Priority})
	}
	if filter.Search != "" {
		where = append(where, searchAny(filter.Search, "title", "detailed_description", "location"))
	}
	return where
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.DetailedDescription,
		&ticket.Location,
		&ticket.Priority,
		&ticket.Status,
		&ticket.IsAnonymous,
		&ticket.AnonymousCreatorName,
		&ticket.AnonymousCreatorContact,
		&ticket.CitizenID,
		&ticket.CategoryID,
		&ticket.AssignedAgentID,
		&ticket.AssignedAgencyID,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
