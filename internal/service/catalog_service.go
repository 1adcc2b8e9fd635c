package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SamSantos7/irland-casa-estudantes/internal/domain"
	"github.com/SamSantos7/irland-casa-estudantes/internal/repo/postgres"
	"github.com/SamSantos7/irland-casa-estudantes/pkg/logger"
)

const (
	catalogCacheKey = "catalog:accommodations"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService serves the public accommodation listing (cached) and the
// admin catalog CRUD (cache-invalidating).
type CatalogService interface {
	ListActive(ctx context.Context) ([]domain.Accommodation, error)
	Get(ctx context.Context, id int64) (*domain.Accommodation, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Accommodation, error)
	Create(ctx context.Context, req *domain.AccommodationReq) (*domain.Accommodation, error)
	Update(ctx context.Context, id int64, patch domain.AccommodationPatch) (*domain.Accommodation, error)
	Delete(ctx context.Context, id int64) error
}

type catalogService struct {
	repo  postgres.AccommodationRepository
	cache *redis.Client
}

func NewCatalogService(repo postgres.AccommodationRepository, cache *redis.Client) CatalogService {
	return &catalogService{repo: repo, cache: cache}
}

func (s *catalogService) ListActive(ctx context.Context) ([]domain.Accommodation, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, catalogCacheKey).Result(); err == nil {
			var accommodations []domain.Accommodation
			if err := json.Unmarshal([]byte(cached), &accommodations); err == nil {
				return accommodations, nil
			}
		}
	}

	accommodations, err := s.repo.List(ctx, true, 100, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list accommodations: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(accommodations); err == nil {
			if err := s.cache.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
				logger.WarnContext(ctx, "Failed to cache accommodation list", "error", err)
			}
		}
	}

	return accommodations, nil
}

func (s *catalogService) Get(ctx context.Context, id int64) (*domain.Accommodation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) ListAll(ctx context.Context, limit, offset int) ([]domain.Accommodation, error) {
	return s.repo.List(ctx, false, limit, offset)
}

func (s *catalogService) Create(ctx context.Context, req *domain.AccommodationReq) (*domain.Accommodation, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create accommodation: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *catalogService) Update(ctx context.Context, id int64, patch domain.AccommodationPatch) (*domain.Accommodation, error) {
	if patch.WeeklyRateCents != nil && *patch.WeeklyRateCents <= 0 {
		return nil, fmt.Errorf("weekly rate must be positive")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update accommodation: %w", err)
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *catalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate accommodation cache", "error", err)
	}
}
