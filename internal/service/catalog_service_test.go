package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
)

type catalogRepoSpy struct {
	fakeAccommodationRepo
	listActiveOnly []bool
	created        *domain.AccommodationReq
}

func (s *catalogRepoSpy) List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Accommodation, error) {
	s.listActiveOnly = append(s.listActiveOnly, activeOnly)
	var out []domain.Accommodation
	for _, a := range s.byID {
		if !activeOnly || a.Active {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *catalogRepoSpy) Create(ctx context.Context, req *domain.AccommodationReq) (*domain.Accommodation, error) {
	s.created = req
	return &domain.Accommodation{ID: 99, Name: req.Name, City: req.City, WeeklyRateCents: req.WeeklyRateCents, Currency: req.Currency, Active: true}, nil
}

func TestCatalogListActiveFiltersInactive(t *testing.T) {
	inactive := testAccommodation()
	inactive.ID = 2
	inactive.Active = false
	repo := &catalogRepoSpy{fakeAccommodationRepo: fakeAccommodationRepo{byID: map[int64]*domain.Accommodation{
		1: testAccommodation(),
		2: inactive,
	}}}

	// Nil cache client: straight repo passthrough
	svc := NewCatalogService(repo, nil)

	accommodations, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, accommodations, 1)
	assert.Equal(t, int64(1), accommodations[0].ID)
	assert.Equal(t, []bool{true}, repo.listActiveOnly)
}

func TestCatalogCreateDefaultsCurrency(t *testing.T) {
	repo := &catalogRepoSpy{fakeAccommodationRepo: fakeAccommodationRepo{byID: map[int64]*domain.Accommodation{}}}
	svc := NewCatalogService(repo, nil)

	created, err := svc.Create(context.Background(), &domain.AccommodationReq{
		Name:            "Casa Cork",
		City:            "Cork",
		WeeklyRateCents: 18000,
	})
	require.NoError(t, err)
	assert.Equal(t, "eur", created.Currency)
	require.NotNil(t, repo.created)
	assert.Equal(t, "eur", repo.created.Currency)
}

func TestCatalogCreateValidation(t *testing.T) {
	repo := &catalogRepoSpy{fakeAccommodationRepo: fakeAccommodationRepo{byID: map[int64]*domain.Accommodation{}}}
	svc := NewCatalogService(repo, nil)

	_, err := svc.Create(context.Background(), &domain.AccommodationReq{Name: "Sem cidade", WeeklyRateCents: 18000})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), &domain.AccommodationReq{Name: "Casa", City: "Galway", WeeklyRateCents: 0})
	require.Error(t, err)
}

func TestCatalogUpdateRejectsNonPositiveRate(t *testing.T) {
	repo := &catalogRepoSpy{fakeAccommodationRepo: fakeAccommodationRepo{byID: map[int64]*domain.Accommodation{}}}
	svc := NewCatalogService(repo, nil)

	rate := int64(0)
	_, err := svc.Update(context.Background(), 1, domain.AccommodationPatch{WeeklyRateCents: &rate})
	require.Error(t, err)
}
