package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/weather-bot/internal/models"
	"github.com/xaenox/weather-bot/internal/observability"
)

// --- mock for decorator tests ---

type countingProvider struct {
	geocodeCalls int
	weatherCalls int
	locations    []Location
	err          error
}

func (m *countingProvider) GetCoordinates(_ context.Context, _ string) ([]Location, error) {
	m.geocodeCalls++
	return m.locations, m.err
}

func (m *countingProvider) GetCurrentWeatherData(_ context.Context, _, _ float64, _ models.UnitSystem, _ string) (*OneCallResponse, error) {
	m.weatherCalls++
	return &OneCallResponse{Timezone: "UTC"}, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingProvider{locations: []Location{{Name: "London", Country: "GB"}}}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(inner, 10, metrics)

	r1, err := cached.GetCoordinates(context.Background(), "London")
	require.NoError(t, err)
	require.Len(t, r1, 1)

	r2, err := cached.GetCoordinates(context.Background(), "  london ")
	require.NoError(t, err)
	assert.Equal(t, "London", r2[0].Name)

	assert.Equal(t, 1, inner.geocodeCalls, "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")))
}

func TestCachedGeocoder_EmptyResultsNotCached(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.GetCoordinates(context.Background(), "Nargothrond")
	_, _ = cached.GetCoordinates(context.Background(), "Nargothrond")

	assert.Equal(t, 2, inner.geocodeCalls)
}

func TestCachedGeocoder_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.GetCoordinates(context.Background(), "London")
	require.Error(t, err)
	_, err = cached.GetCoordinates(context.Background(), "London")
	require.Error(t, err)

	assert.Equal(t, 2, inner.geocodeCalls)
}

func TestCachedGeocoder_WeatherNeverCached(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	for i := 0; i < 3; i++ {
		_, err := cached.GetCurrentWeatherData(context.Background(), 1, 2, models.Metric, "de")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, inner.weatherCalls)
}

func TestCachedGeocoder_ReturnsCopies(t *testing.T) {
	inner := &countingProvider{locations: []Location{{Name: "London"}}}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	r1, _ := cached.GetCoordinates(context.Background(), "London")
	r1[0].Name = "mutated"

	r2, _ := cached.GetCoordinates(context.Background(), "London")
	assert.Equal(t, "London", r2[0].Name)
}

func TestCachedGeocoder_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingProvider{locations: []Location{{Name: "Somewhere"}}}
	cached := NewCachedGeocoder(inner, 2, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, _ = cached.GetCoordinates(ctx, "a")
	_, _ = cached.GetCoordinates(ctx, "b")
	_, _ = cached.GetCoordinates(ctx, "a") // hit, a becomes most recent
	_, _ = cached.GetCoordinates(ctx, "c") // evicts b
	assert.Equal(t, 3, inner.geocodeCalls)
	assert.Equal(t, 2, cached.Len())

	_, _ = cached.GetCoordinates(ctx, "a")
	assert.Equal(t, 3, inner.geocodeCalls, "a should still be cached")

	_, _ = cached.GetCoordinates(ctx, "b")
	assert.Equal(t, 4, inner.geocodeCalls, "b should have been evicted")
}

func TestCachedGeocoder_NonPositiveSizeKeepsOneEntry(t *testing.T) {
	inner := &countingProvider{locations: []Location{{Name: "London"}}}
	cached := NewCachedGeocoder(inner, 0, observability.NewMetricsForTesting())

	_, _ = cached.GetCoordinates(context.Background(), "London")
	_, _ = cached.GetCoordinates(context.Background(), "London")

	assert.Equal(t, 1, inner.geocodeCalls)
	assert.Equal(t, 1, cached.Len())
}

func TestCachedGeocoder_CallerMutationDoesNotLeakIntoCache(t *testing.T) {
	inner := &countingProvider{locations: []Location{{Name: "London"}}}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	first, _ := cached.GetCoordinates(context.Background(), "London")
	first[0].Name = "mutated"
	inner.locations[0].Name = "also mutated"

	got, _ := cached.GetCoordinates(context.Background(), "London")
	assert.Equal(t, "London", got[0].Name)
}
