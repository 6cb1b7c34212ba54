package analytics

import (
	"context"
	"strings"
	"testing"
	"time"

	"practipulse/internal/records"
	"practipulse/internal/shared/constants"
	"practipulse/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type stubRepository struct {
	dataset records.Dataset
	calls   int
}

func (s *stubRepository) FetchDataset(ctx context.Context, period PeriodDefinition) (records.Dataset, error) {
	s.calls++
	return s.dataset, nil
}

func newTestCache(t *testing.T) cache.Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewService(client)
}

func TestServiceGetPeriodMetrics(t *testing.T) {
	repo := &stubRepository{dataset: twoLocationDataset()}
	svc := NewService(repo, testAssumptions).(*service)

	report, err := svc.GetPeriodMetrics(context.Background(), marchPeriod())
	if err != nil {
		t.Fatalf("GetPeriodMetrics: %v", err)
	}

	if report.Metrics.Leads == 0 {
		t.Error("expected non-zero lead count from fixture dataset")
	}
	if len(report.Locations) == 0 {
		t.Error("expected per-location breakdown in report")
	}
	if report.Insights.Insights == nil || report.Insights.Recommendations == nil {
		t.Error("insights slices should be non-nil")
	}
}

func TestServiceCachesPeriodReport(t *testing.T) {
	repo := &stubRepository{dataset: twoLocationDataset()}
	svc := NewService(repo, testAssumptions).(*service)
	svc.SetCacheService(newTestCache(t))

	ctx := context.Background()
	period := marchPeriod()

	first, err := svc.GetPeriodMetrics(ctx, period)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetPeriodMetrics(ctx, period)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if repo.calls != 1 {
		t.Errorf("repository fetched %d times, want 1 (second call should hit cache)", repo.calls)
	}
	if first.Metrics.Leads != second.Metrics.Leads {
		t.Errorf("cached report diverged: %d vs %d leads", first.Metrics.Leads, second.Metrics.Leads)
	}
}

func TestServiceCacheKeyVariesByPeriod(t *testing.T) {
	repo := &stubRepository{dataset: twoLocationDataset()}
	svc := NewService(repo, testAssumptions).(*service)
	svc.SetCacheService(newTestCache(t))

	ctx := context.Background()
	if _, err := svc.GetPeriodMetrics(ctx, marchPeriod()); err != nil {
		t.Fatalf("march: %v", err)
	}

	april := PeriodDefinition{Start: day(2024, time.April, 1), End: day(2024, time.April, 30)}
	if _, err := svc.GetPeriodMetrics(ctx, april); err != nil {
		t.Fatalf("april: %v", err)
	}

	if repo.calls != 2 {
		t.Errorf("repository fetched %d times, want 2 (different periods must not share cache keys)", repo.calls)
	}
}

func TestServiceComparePeriods(t *testing.T) {
	repo := &stubRepository{dataset: twoLocationDataset()}
	svc := NewService(repo, testAssumptions)

	q1 := PeriodDefinition{Label: "Q1", Start: day(2024, time.January, 1), End: day(2024, time.March, 31)}
	q2 := PeriodDefinition{Label: "Q2", Start: day(2024, time.April, 1), End: day(2024, time.June, 30)}

	report, err := svc.ComparePeriods(context.Background(), []PeriodDefinition{q1, q2})
	if err != nil {
		t.Fatalf("ComparePeriods: %v", err)
	}

	if len(report.Periods) != 2 {
		t.Fatalf("got %d period reports, want 2", len(report.Periods))
	}
	if report.Comparison.Insights == nil {
		t.Error("comparison insights slice should be non-nil")
	}
}

func TestServiceCachesComparison(t *testing.T) {
	repo := &stubRepository{dataset: twoLocationDataset()}
	svc := NewService(repo, testAssumptions).(*service)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	svc.SetCacheService(cache.NewService(client))

	ctx := context.Background()
	q1 := PeriodDefinition{Label: "Q1", Start: day(2024, time.January, 1), End: day(2024, time.March, 31)}
	q2 := PeriodDefinition{Label: "Q2", Start: day(2024, time.April, 1), End: day(2024, time.June, 30)}
	periods := []PeriodDefinition{q1, q2}

	first, err := svc.ComparePeriods(ctx, periods)
	if err != nil {
		t.Fatalf("first ComparePeriods: %v", err)
	}

	cachedCompare := false
	for _, key := range mr.Keys() {
		if strings.HasPrefix(key, constants.CACHE_KEY_ANALYTICS_COMPARE) {
			cachedCompare = true
		}
	}
	if !cachedCompare {
		t.Error("expected comparison payload cached under the compare prefix")
	}

	second, err := svc.ComparePeriods(ctx, periods)
	if err != nil {
		t.Fatalf("second ComparePeriods: %v", err)
	}

	if repo.calls != 2 {
		t.Errorf("repository fetched %d times, want 2 (second comparison should hit the compare cache)", repo.calls)
	}
	if len(second.Periods) != len(first.Periods) {
		t.Errorf("cached comparison diverged: %d vs %d periods", len(second.Periods), len(first.Periods))
	}
}

func TestServiceGetTrends(t *testing.T) {
	repo := &stubRepository{dataset: twoLocationDataset()}
	svc := NewService(repo, testAssumptions)

	points, err := svc.GetTrends(context.Background(), marchPeriod(), GranularityMonth)
	if err != nil {
		t.Fatalf("GetTrends: %v", err)
	}
	for i := 1; i < len(points); i++ {
		if points[i-1].BucketKey >= points[i].BucketKey {
			t.Errorf("trend buckets out of order: %s >= %s", points[i-1].BucketKey, points[i].BucketKey)
		}
	}
}
