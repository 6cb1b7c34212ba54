package locations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"practipulse/internal/shared/constants"
	"practipulse/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error)
	GetLocationByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error)
	GetLocationBySlug(ctx context.Context, slug string) (*LocationResponse, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error
	GetAllLocations(ctx context.Context, query LocationListQuery) (*PaginatedLocations, error)
	GetActiveLocations(ctx context.Context) ([]LocationResponse, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// Helper function to generate slug from name
func generateSlug(name string) string {
	slug := strings.ToLower(name)

	reg := regexp.MustCompile(`[^\w\s-]`)
	slug = reg.ReplaceAllString(slug, "")

	reg = regexp.MustCompile(`[\s-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("location name cannot be empty")
	}

	slug := generateSlug(name)
	if slug == "" {
		return nil, errors.New("location name must contain at least one alphanumeric character")
	}

	existing, err := s.repo.GetBySlug(slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing location: %w", err)
	}
	if existing != nil {
		return nil, errors.New("a location with a similar name already exists")
	}

	location := &Location{
		ExternalID: strings.TrimSpace(req.ExternalID),
		Name:       name,
		Slug:       slug,
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		Zip:        strings.TrimSpace(req.Zip),
		Phone:      strings.TrimSpace(req.Phone),
		Timezone:   req.Timezone,
		IsActive:   true,
	}
	if location.Timezone == "" {
		location.Timezone = "America/Phoenix"
	}
	if location.ExternalID == "" {
		// Fall back to the slug so synced records that carry the display
		// name still resolve to this location.
		location.ExternalID = slug
	}

	if err := s.repo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.invalidateCache(ctx)

	response := location.ToResponse()
	return &response, nil
}

func (s *service) GetLocationByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	cacheKey := constants.BuildLocationDetailKey(id.String())

	if s.cacheService != nil {
		var cached LocationResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	location, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("location not found")
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	response := location.ToResponse()

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, response, constants.TTL_STATIC_SHORT)
	}

	return &response, nil
}

func (s *service) GetLocationBySlug(ctx context.Context, slug string) (*LocationResponse, error) {
	location, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("location not found")
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	response := location.ToResponse()
	return &response, nil
}

func (s *service) UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("location not found")
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.New("location name cannot be empty")
		}

		slug := generateSlug(name)
		if slug == "" {
			return nil, errors.New("location name must contain at least one alphanumeric character")
		}

		if slug != current.Slug {
			existing, err := s.repo.GetBySlug(slug)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check existing location: %w", err)
			}
			if existing != nil && existing.ID != current.ID {
				return nil, errors.New("a location with a similar name already exists")
			}
		}

		updates["name"] = name
		updates["slug"] = slug
	}

	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		updates["city"] = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		updates["state"] = strings.TrimSpace(*req.State)
	}
	if req.Zip != nil {
		updates["zip"] = strings.TrimSpace(*req.Zip)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	s.invalidateCache(ctx)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	location, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("location not found")
		}
		return fmt.Errorf("failed to get location: %w", err)
	}

	count, err := s.repo.CountSyncedRecords(location)
	if err != nil {
		return fmt.Errorf("failed to check location usage: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("cannot delete location as %d synced record(s) reference it. Consider deactivating it instead", count)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *service) GetAllLocations(ctx context.Context, query LocationListQuery) (*PaginatedLocations, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	locations, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get locations: %w", err)
	}

	responses := make([]LocationResponse, len(locations))
	for i, location := range locations {
		responses[i] = location.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedLocations{
		Locations:  responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) GetActiveLocations(ctx context.Context) ([]LocationResponse, error) {
	cacheKey := constants.CACHE_KEY_LOCATIONS_LIST

	if s.cacheService != nil {
		var cached []LocationResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	locations, err := s.repo.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to get active locations: %w", err)
	}

	responses := make([]LocationResponse, len(locations))
	for i, location := range locations {
		responses[i] = location.ToResponse()
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_STATIC_LONG)
	}

	return responses, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_LOCATION_PATTERN)
}
