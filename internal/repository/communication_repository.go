package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
)

// CommunicationRepository manages ticket thread messages.
type CommunicationRepository interface {
	Create(ctx context.Context, msg *domain.Communication) error
	// ListByTicket returns the thread oldest first. Internal notes are
	// omitted unless includeInternal is set.
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Communication, error)
}

type communicationRepository struct {
	pool *pgxpool.Pool
}

// NewCommunicationRepository builds repository.
func NewCommunicationRepository(pool *pgxpool.Pool) CommunicationRepository {
	return &communicationRepository{pool: pool}
}

func (r *communicationRepository) Create(ctx context.Context, msg *domain.Communication) error {
	const query = `
        INSERT INTO communications (ticket_id, sender_id, message, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return persistence.QuerierFromContext(ctx, r.pool).QueryRow(ctx, query,
		msg.TicketID,
		msg.SenderID,
		msg.Message,
		msg.IsInternal,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *communicationRepository) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Communication, error) {
	where := sq.And{sq.Eq{"ticket_id": ticketID}}
	if !includeInternal {
		where = append(where, sq.Eq{"is_internal": false})
	}
	query, args, err := psql.
		Select("id", "ticket_id", "sender_id", "message", "is_internal", "created_at").
		From("communications").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build communication list: %w", err)
	}

	rows, err := persistence.QuerierFromContext(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Communication{}
	for rows.Next() {
		var msg domain.Communication
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.SenderID,
			&msg.Message,
			&msg.IsInternal,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
