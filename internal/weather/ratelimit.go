package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/xaenox/weather-bot/internal/models"
)

// RateLimitedProvider wraps a Provider with a token bucket shared by all
// endpoints, so one chat request (geocode + weather) consumes two tokens.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
}

var _ Provider = (*RateLimitedProvider)(nil)

// NewRateLimitedProvider allows rps requests per second with the given burst.
// rps may be fractional.
func NewRateLimitedProvider(provider Provider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimitedProvider) GetCoordinates(ctx context.Context, name string) ([]Location, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.GetCoordinates(ctx, name)
}

func (r *RateLimitedProvider) GetCurrentWeatherData(ctx context.Context, lat, lon float64, units models.UnitSystem, lang string) (*OneCallResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.GetCurrentWeatherData(ctx, lat, lon, units, lang)
}
