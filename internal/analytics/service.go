package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"practipulse/internal/shared/constants"
	"practipulse/pkg/cache"
	"practipulse/pkg/logger"
)

// Service defines the analytics service interface
type Service interface {
	GetPeriodMetrics(ctx context.Context, period PeriodDefinition) (*PeriodReport, error)
	GetLocationBreakdown(ctx context.Context, period PeriodDefinition) ([]LocationMetrics, error)
	GetTrends(ctx context.Context, period PeriodDefinition, granularity Granularity) ([]TrendPoint, error)
	ComparePeriods(ctx context.Context, periods []PeriodDefinition) (*ComparisonReport, error)
	SetCacheService(cacheService cache.Service)
	SetPublisher(publisher ReportPublisher)
}

// PeriodReport is the full payload for one period: the aggregate metrics,
// the per-location snapshots behind them, and the generated insights.
type PeriodReport struct {
	Metrics   PeriodMetrics     `json:"metrics"`
	Locations []LocationMetrics `json:"locations"`
	Insights  Insights          `json:"insights"`
}

// ComparisonReport is the multi-period comparison payload.
type ComparisonReport struct {
	Periods    []PeriodReport `json:"periods"`
	Comparison Insights       `json:"comparison"`
}

// ReportPublisher lets the service announce finished reports to downstream
// consumers (PDF workers, notification fans). Implemented by the ingest
// package's Kafka producer; nil means "don't publish".
type ReportPublisher interface {
	PublishReportGenerated(ctx context.Context, report *PeriodReport) error
}

// service implements the Service interface
type service struct {
	repo         Repository
	cacheService cache.Service
	publisher    ReportPublisher
	assumptions  Assumptions
	log          *logger.Logger
}

// NewService creates a new analytics service instance
func NewService(repo Repository, assumptions Assumptions) Service {
	return &service{
		repo:        repo,
		assumptions: assumptions,
		log:         logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetPublisher injects the report event publisher dependency
func (s *service) SetPublisher(publisher ReportPublisher) {
	s.publisher = publisher
}

func (s *service) GetPeriodMetrics(ctx context.Context, period PeriodDefinition) (*PeriodReport, error) {
	cacheKey := constants.BuildPeriodKey(constants.CACHE_KEY_ANALYTICS_PERIOD, dateKey(period.Start), dateKey(period.End), period.LocationIDs)

	if s.cacheService != nil {
		var cached PeriodReport
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	dataset, err := s.repo.FetchDataset(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	metrics := AggregatePeriod(dataset, period, s.assumptions)
	locations := LocationBreakdown(dataset, period, s.assumptions)
	report := &PeriodReport{
		Metrics:   metrics,
		Locations: locations,
		Insights:  GenerateInsights(metrics, locations),
	}
	s.log.LogReportGenerated(ctx, dateKey(period.Start), dateKey(period.End), len(locations))

	s.saveToCache(ctx, cacheKey, report, constants.TTL_ANALYTICS_PERIOD)

	if s.publisher != nil {
		if err := s.publisher.PublishReportGenerated(ctx, report); err != nil {
			// Publishing is best-effort; the report itself is already built.
			s.log.Warn("Failed to publish report event", slog.Any("error", err))
		}
	}

	return report, nil
}

func (s *service) GetLocationBreakdown(ctx context.Context, period PeriodDefinition) ([]LocationMetrics, error) {
	cacheKey := constants.BuildPeriodKey(constants.CACHE_KEY_ANALYTICS_BREAKDOWN, dateKey(period.Start), dateKey(period.End), period.LocationIDs)

	if s.cacheService != nil {
		var cached []LocationMetrics
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	dataset, err := s.repo.FetchDataset(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	locations := LocationBreakdown(dataset, period, s.assumptions)
	s.saveToCache(ctx, cacheKey, locations, constants.TTL_ANALYTICS_PERIOD)
	return locations, nil
}

func (s *service) GetTrends(ctx context.Context, period PeriodDefinition, granularity Granularity) ([]TrendPoint, error) {
	if granularity != GranularityWeek && granularity != GranularityMonth {
		granularity = GranularityMonth
	}
	cacheKey := constants.BuildTrendsKey(string(granularity), dateKey(period.Start), dateKey(period.End), period.LocationIDs)

	if s.cacheService != nil {
		var cached []TrendPoint
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	dataset, err := s.repo.FetchDataset(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	union := filterDataset(dataset, period)
	points := Bucketize(union.Appointments, granularity)
	s.saveToCache(ctx, cacheKey, points, constants.TTL_ANALYTICS_TRENDS)
	return points, nil
}

func (s *service) ComparePeriods(ctx context.Context, periods []PeriodDefinition) (*ComparisonReport, error) {
	cacheKey := compareCacheKey(periods)

	if s.cacheService != nil {
		var cached ComparisonReport
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	report := &ComparisonReport{Periods: make([]PeriodReport, 0, len(periods))}

	metrics := make([]PeriodMetrics, 0, len(periods))
	for _, period := range periods {
		// Each period is an independent aggregation; GetPeriodMetrics reuses
		// per-period cache entries across comparisons.
		periodReport, err := s.GetPeriodMetrics(ctx, period)
		if err != nil {
			return nil, err
		}
		report.Periods = append(report.Periods, *periodReport)
		metrics = append(metrics, periodReport.Metrics)
	}

	report.Comparison = CompareInsights(metrics)
	s.saveToCache(ctx, cacheKey, report, constants.TTL_ANALYTICS_COMPARE)
	return report, nil
}

// compareCacheKey chains one period segment per compared period onto the
// comparison prefix.
func compareCacheKey(periods []PeriodDefinition) string {
	key := constants.CACHE_KEY_ANALYTICS_COMPARE
	for _, period := range periods {
		key = constants.BuildPeriodKey(key, dateKey(period.Start), dateKey(period.End), period.LocationIDs)
	}
	return key
}

func (s *service) saveToCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, ttl); err != nil {
		s.log.Warn("Failed to cache analytics result", slog.String("key", key), slog.Any("error", err))
	}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
