package weather

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xaenox/weather-bot/internal/models"
	"github.com/xaenox/weather-bot/internal/observability"
)

// CachedGeocoder caches geocoding results in an LRU. Weather data passes
// through uncached.
type CachedGeocoder struct {
	inner   Provider
	cache   *lru.Cache[string, []Location]
	metrics *observability.Metrics
}

var _ Provider = (*CachedGeocoder)(nil)

// NewCachedGeocoder keeps at most maxEntries place names; values below one
// are raised to one.
func NewCachedGeocoder(inner Provider, maxEntries int, metrics *observability.Metrics) *CachedGeocoder {
	if maxEntries < 1 {
		maxEntries = 1
	}
	cache, _ := lru.New[string, []Location](maxEntries) // only fails for size <= 0

	return &CachedGeocoder{
		inner:   inner,
		cache:   cache,
		metrics: metrics,
	}
}

func (c *CachedGeocoder) GetCoordinates(ctx context.Context, name string) ([]Location, error) {
	key := cacheKey(name)
	if locations, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return append([]Location(nil), locations...), nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	locations, err := c.inner.GetCoordinates(ctx, name)
	if err != nil {
		return nil, err
	}
	// Unknown places are not cached so a typo fixed upstream is picked up.
	if len(locations) > 0 {
		c.cache.Add(key, append([]Location(nil), locations...))
	}
	return locations, nil
}

func (c *CachedGeocoder) GetCurrentWeatherData(ctx context.Context, lat, lon float64, units models.UnitSystem, lang string) (*OneCallResponse, error) {
	return c.inner.GetCurrentWeatherData(ctx, lat, lon, units, lang)
}

// Len returns the number of cached place names.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
