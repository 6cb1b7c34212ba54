package constants

import (
	"fmt"
	"strings"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the
// practipulse backend.
// Pattern: practipulse:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // location catalog
	TTL_STATIC_SHORT = 6 * time.Hour  // location detail
)

// Dynamic Data (Short TTL: recomputed on demand)
const (
	TTL_ANALYTICS_PERIOD  = 10 * time.Minute // period metrics and breakdowns
	TTL_ANALYTICS_TRENDS  = 10 * time.Minute // weekly/monthly trend series
	TTL_ANALYTICS_COMPARE = 5 * time.Minute  // multi-period comparisons
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "practipulse"
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_PERIOD    = CACHE_PREFIX + ":analytics:period"    // + :{start}:{end}:{locations}
	CACHE_KEY_ANALYTICS_BREAKDOWN = CACHE_PREFIX + ":analytics:breakdown" // + :{start}:{end}:{locations}
	CACHE_KEY_ANALYTICS_TRENDS    = CACHE_PREFIX + ":analytics:trends"    // + :{granularity}:{start}:{end}:{locations}
	CACHE_KEY_ANALYTICS_COMPARE   = CACHE_PREFIX + ":analytics:compare"   // + one :{start}:{end}:{locations} segment per period
	CACHE_KEY_ANALYTICS_PATTERN   = CACHE_PREFIX + ":analytics:*"         // invalidation pattern for cost-entry writes
)

// ================== LOCATIONS MODULE ==================

const (
	CACHE_KEY_LOCATIONS_LIST   = CACHE_PREFIX + ":locations:list"
	CACHE_KEY_LOCATION_DETAIL  = CACHE_PREFIX + ":locations:detail:uuid:" // + location-id
	CACHE_KEY_LOCATION_PATTERN = CACHE_PREFIX + ":locations:*"
)

// ================== KEY BUILDERS ==================

// BuildPeriodKey composes a cache key for one period definition. Location ids
// are joined in request order; callers normalize ordering if they want
// selection-order independence.
func BuildPeriodKey(base, start, end string, locationIDs []string) string {
	locs := "all"
	if len(locationIDs) > 0 {
		locs = strings.Join(locationIDs, ",")
	}
	return fmt.Sprintf("%s:%s:%s:%s", base, start, end, locs)
}

// BuildTrendsKey composes a cache key for a trend query.
func BuildTrendsKey(granularity, start, end string, locationIDs []string) string {
	return BuildPeriodKey(CACHE_KEY_ANALYTICS_TRENDS+":"+granularity, start, end, locationIDs)
}

// BuildLocationDetailKey composes the cache key for one location.
func BuildLocationDetailKey(id string) string {
	return CACHE_KEY_LOCATION_DETAIL + id
}
