package costs

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"practipulse/internal/shared/constants"
	"practipulse/pkg/cache"
	"practipulse/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateEntry(ctx context.Context, req CreateCostEntryRequest) (*CostEntryResponse, error)
	GetEntryByID(ctx context.Context, id uuid.UUID) (*CostEntryResponse, error)
	UpdateEntry(ctx context.Context, id uuid.UUID, req UpdateCostEntryRequest) (*CostEntryResponse, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	GetAllEntries(ctx context.Context, query CostListQuery) (*PaginatedCostEntries, error)
	GetSpendSummary(ctx context.Context, startDate, endDate string) (*SpendSummaryResponse, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{repo: repo, log: logger.GetDefault()}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateEntry(ctx context.Context, req CreateCostEntryRequest) (*CostEntryResponse, error) {
	incurredAt, err := time.Parse("2006-01-02", req.IncurredAt)
	if err != nil {
		return nil, fmt.Errorf("invalid incurred_at date: %w", err)
	}

	entry := &CostEntry{
		LocationID: strings.TrimSpace(req.LocationID),
		Category:   strings.ToLower(strings.TrimSpace(req.Category)),
		Amount:     req.Amount,
		Notes:      strings.TrimSpace(req.Notes),
		IncurredAt: incurredAt,
	}

	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create cost entry: %w", err)
	}

	// Spend feeds acquisition-cost math, so cached analytics are stale now.
	s.invalidateAnalyticsCache(ctx)
	s.log.LogCostEntryRecorded(ctx, entry.ID.String(), entry.LocationID, entry.Amount)

	response := entry.ToResponse()
	return &response, nil
}

func (s *service) GetEntryByID(ctx context.Context, id uuid.UUID) (*CostEntryResponse, error) {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cost entry not found")
		}
		return nil, fmt.Errorf("failed to get cost entry: %w", err)
	}

	response := entry.ToResponse()
	return &response, nil
}

func (s *service) UpdateEntry(ctx context.Context, id uuid.UUID, req UpdateCostEntryRequest) (*CostEntryResponse, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("cost entry not found")
		}
		return nil, fmt.Errorf("failed to get cost entry: %w", err)
	}

	updates := make(map[string]interface{})

	if req.LocationID != nil {
		locationID := strings.TrimSpace(*req.LocationID)
		if locationID == "" {
			return nil, errors.New("location_id cannot be empty")
		}
		updates["location_id"] = locationID
	}
	if req.Category != nil {
		updates["category"] = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return nil, errors.New("amount cannot be negative")
		}
		updates["amount"] = *req.Amount
	}
	if req.Notes != nil {
		updates["notes"] = strings.TrimSpace(*req.Notes)
	}
	if req.IncurredAt != nil {
		incurredAt, err := time.Parse("2006-01-02", *req.IncurredAt)
		if err != nil {
			return nil, fmt.Errorf("invalid incurred_at date: %w", err)
		}
		updates["incurred_at"] = incurredAt
	}

	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update cost entry: %w", err)
	}

	s.invalidateAnalyticsCache(ctx)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("cost entry not found")
		}
		return fmt.Errorf("failed to get cost entry: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete cost entry: %w", err)
	}

	s.invalidateAnalyticsCache(ctx)
	return nil
}

func (s *service) GetAllEntries(ctx context.Context, query CostListQuery) (*PaginatedCostEntries, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	entries, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost entries: %w", err)
	}

	responses := make([]CostEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = entry.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedCostEntries{
		Entries:    responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) GetSpendSummary(ctx context.Context, startDate, endDate string) (*SpendSummaryResponse, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date %s is before start_date %s", endDate, startDate)
	}

	end = end.Add(24*time.Hour - time.Nanosecond)

	totals, err := s.repo.TotalsByLocation(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get spend totals: %w", err)
	}

	summary := &SpendSummaryResponse{
		StartDate: startDate,
		EndDate:   endDate,
		Locations: totals,
	}
	for _, t := range totals {
		summary.TotalSpend += t.Total
	}

	return summary, nil
}

func (s *service) invalidateAnalyticsCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.CACHE_KEY_ANALYTICS_PATTERN)
}
