package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/persistence"
	"github.com/spec-kit/citizen-engagement/internal/persistence/testhelper"
	"github.com/spec-kit/citizen-engagement/internal/repository"
)

func strPtr(s string) *string { return &s }

func TestAgencyRepository_UniqueNameAndSearch(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := repository.NewAgencyRepository(pool)
	ctx := context.Background()

	water := &domain.Agency{Name: "Water Board", Description: "Pipes and leaks", ContactEmail: "w@city.gov", Status: domain.AgencyStatusActive}
	require.NoError(t, repo.Create(ctx, water))
	require.NotEmpty(t, water.ID)

	roads := &domain.Agency{Name: "Roads", Description: "Potholes", ContactEmail: "r@city.gov", Status: domain.AgencyStatusInactive}
	require.NoError(t, repo.Create(ctx, roads))

	err := repo.Create(ctx, &domain.Agency{Name: "Water Board", ContactEmail: "x@city.gov", Status: domain.AgencyStatusActive})
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)

	items, total, err := repo.List(ctx, repository.AgencyFilter{Search: "LEAK"}, domain.PageRequest{Page: 1, Limit: 10}, domain.Sort{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, water.ID, items[0].ID)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Water Board", active[0].Name)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepository_EmailLookupIsCaseInsensitive(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	user := &domain.User{
		Name: "Amina", Email: "Amina@Example.com", Phone: "+250788000001",
		PasswordHash: "hash", Role: domain.RoleCitizen, Status: domain.UserStatusActive,
	}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.GetByEmail(ctx, "amina@example.COM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = repo.Create(ctx, &domain.User{
		Name: "Dup", Email: "AMINA@example.com", Phone: "+250788000002",
		PasswordHash: "hash", Role: domain.RoleCitizen, Status: domain.UserStatusActive,
	})
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23505", pgErr.Code)
}

func TestTicketRepository_ListScopesAndTransactions(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(pool)
	tickets := repository.NewTicketRepository(pool)
	history := repository.NewTicketHistoryRepository(pool)
	comms := repository.NewCommunicationRepository(pool)
	tx := persistence.NewTxManager(pool)

	citizen := &domain.User{
		Name: "Jean", Email: "jean@example.com", Phone: "+250788000010",
		PasswordHash: "hash", Role: domain.RoleCitizen, Status: domain.UserStatusActive,
	}
	require.NoError(t, users.Create(ctx, citizen))

	mine := &domain.Ticket{
		Title: "Broken streetlight", DetailedDescription: "Dark corner", Location: "KN 5 Rd",
		Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusNew, CitizenID: &citizen.ID,
	}
	require.NoError(t, tickets.Create(ctx, mine))

	anon := &domain.Ticket{
		Title: "Overflowing bin", DetailedDescription: "Smells", Priority: domain.TicketPriorityLow,
		Status: domain.TicketStatusNew, IsAnonymous: true,
		AnonymousCreatorName: strPtr("Anon"), AnonymousCreatorContact: strPtr("+250788999999"),
	}
	require.NoError(t, tickets.Create(ctx, anon))

	items, total, err := tickets.List(ctx, repository.TicketFilter{CitizenID: &citizen.ID, ExcludeAnonymous: true},
		domain.PageRequest{Page: 1, Limit: 10}, domain.Sort{By: "priority", Order: domain.SortDesc})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)

	// an anonymous ticket bound to a citizen violates the check constraint
	bad := *anon
	bad.ID = ""
	bad.CitizenID = &citizen.ID
	err = tickets.Create(ctx, &bad)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23514", pgErr.Code)

	// a failing transaction leaves neither the status change nor the history entry behind
	sentinel := errors.New("boom")
	err = tx.RunInTx(ctx, func(ctx context.Context) error {
		mine.Status = domain.TicketStatusAssigned
		if err := tickets.Update(ctx, mine); err != nil {
			return err
		}
		if err := history.Create(ctx, &domain.TicketHistory{
			TicketID: mine.ID, ChangeType: domain.ChangeTypeStatus,
			OldValue: map[string]any{"status": "NEW"}, NewValue: map[string]any{"status": "ASSIGNED"},
		}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	reloaded, err := tickets.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusNew, reloaded.Status)
	entries, err := history.ListByTicket(ctx, mine.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, comms.Create(ctx, &domain.Communication{TicketID: mine.ID, SenderID: &citizen.ID, Message: "any news?"}))
	require.NoError(t, comms.Create(ctx, &domain.Communication{TicketID: mine.ID, Message: "crew booked", IsInternal: true}))

	public, err := comms.ListByTicket(ctx, mine.ID, false)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.False(t, public[0].IsInternal)

	all, err := comms.ListByTicket(ctx, mine.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
