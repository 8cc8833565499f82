package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/citizen-engagement/internal/domain"
	"github.com/spec-kit/citizen-engagement/internal/repository"
	"github.com/spec-kit/citizen-engagement/internal/repository/mocks"
)

// memoryAgencies is a map-backed agency repository mock.
func memoryAgencies() *mocks.AgencyRepositoryMock {
	byID := map[string]*domain.Agency{}
	return &mocks.AgencyRepositoryMock{
		CreateFunc: func(ctx context.Context, agency *domain.Agency) error {
			agency.ID = "agency-" + agency.Name
			stored := *agency
			byID[agency.ID] = &stored
			return nil
		},
		UpdateFunc: func(ctx context.Context, agency *domain.Agency) error {
			stored := *agency
			byID[agency.ID] = &stored
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Agency, error) {
			a, ok := byID[id]
			if !ok {
				return nil, pgx.ErrNoRows
			}
			cp := *a
			return &cp, nil
		},
		GetByNameFunc: func(ctx context.Context, name string) (*domain.Agency, error) {
			for _, a := range byID {
				if a.Name == name {
					cp := *a
					return &cp, nil
				}
			}
			return nil, pgx.ErrNoRows
		},
	}
}

func TestCreateAgency_RoundTripAndDuplicate(t *testing.T) {
	t.Parallel()

	repo := memoryAgencies()
	svc := NewAgencyService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateAgency(ctx, AgencyCreateInput{
		Name:         "Water Board",
		Description:  "Water supply and sanitation",
		ContactEmail: "info@water.example",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AgencyStatusActive, created.Status)

	fetched, err := svc.GetAgencyByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "Water Board", fetched.Name)
	assert.Equal(t, "Water supply and sanitation", fetched.Description)
	assert.Equal(t, "info@water.example", fetched.ContactEmail)

	_, err = svc.CreateAgency(ctx, AgencyCreateInput{Name: "Water Board", ContactEmail: "other@water.example"})
	requireStatus(t, err, http.StatusConflict)
	assert.Len(t, repo.CreateCalls(), 1)
}

func TestGetAgencyByID_MissingIsNil(t *testing.T) {
	t.Parallel()

	svc := NewAgencyService(memoryAgencies(), zap.NewNop())
	agency, err := svc.GetAgencyByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, agency)
}

func TestListAgencies_TotalPages(t *testing.T) {
	t.Parallel()

	repo := &mocks.AgencyRepositoryMock{
		ListFunc: func(ctx context.Context, filter repository.AgencyFilter, page domain.PageRequest, sort domain.Sort) ([]domain.Agency, int64, error) {
			assert.Equal(t, 10, page.Offset())
			return make([]domain.Agency, 5), 15, nil
		},
	}
	svc := NewAgencyService(repo, zap.NewNop())

	page, err := svc.ListAgencies(context.Background(), repository.AgencyFilter{}, domain.PageRequest{Page: 2, Limit: 10}, domain.Sort{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.EqualValues(t, 15, page.Total)
	assert.Equal(t, 2, page.TotalPages)
}

func TestUpdateAgency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty patch returns agency unchanged", func(t *testing.T) {
		t.Parallel()
		repo := memoryAgencies()
		svc := NewAgencyService(repo, zap.NewNop())
		created, err := svc.CreateAgency(ctx, AgencyCreateInput{Name: "Roads", ContactEmail: "roads@example.com"})
		require.NoError(t, err)

		updated, err := svc.UpdateAgency(ctx, created.ID, AgencyUpdateInput{})
		require.NoError(t, err)
		assert.Equal(t, created.Name, updated.Name)
		assert.Empty(t, repo.UpdateCalls())
	})

	t.Run("missing agency", func(t *testing.T) {
		t.Parallel()
		svc := NewAgencyService(memoryAgencies(), zap.NewNop())
		_, err := svc.UpdateAgency(ctx, "ghost", AgencyUpdateInput{Name: ptr("x")})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("name collision with another agency", func(t *testing.T) {
		t.Parallel()
		svc := NewAgencyService(memoryAgencies(), zap.NewNop())
		_, err := svc.CreateAgency(ctx, AgencyCreateInput{Name: "Roads", ContactEmail: "roads@example.com"})
		require.NoError(t, err)
		health, err := svc.CreateAgency(ctx, AgencyCreateInput{Name: "Health", ContactEmail: "health@example.com"})
		require.NoError(t, err)

		_, err = svc.UpdateAgency(ctx, health.ID, AgencyUpdateInput{Name: ptr("Roads")})
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("keeping own name is not a collision", func(t *testing.T) {
		t.Parallel()
		svc := NewAgencyService(memoryAgencies(), zap.NewNop())
		roads, err := svc.CreateAgency(ctx, AgencyCreateInput{Name: "Roads", ContactEmail: "roads@example.com"})
		require.NoError(t, err)

		updated, err := svc.UpdateAgency(ctx, roads.ID, AgencyUpdateInput{Name: ptr("Roads"), Description: ptr("potholes")})
		require.NoError(t, err)
		assert.Equal(t, "potholes", updated.Description)
	})
}

func TestDeleteAgency_SoftDeletes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := memoryAgencies()
	svc := NewAgencyService(repo, zap.NewNop())
	created, err := svc.CreateAgency(ctx, AgencyCreateInput{Name: "Parks", ContactEmail: "parks@example.com"})
	require.NoError(t, err)

	deleted, err := svc.DeleteAgency(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AgencyStatusInactive, deleted.Status)

	still, err := svc.GetAgencyByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, domain.AgencyStatusInactive, still.Status)

	_, err = svc.DeleteAgency(ctx, "ghost")
	requireStatus(t, err, http.StatusNotFound)
}
