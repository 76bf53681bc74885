package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/models"
	"github.com/xaenox/weather-bot/internal/observability"
)

const (
	DefaultOneCallURL   = "https://api.openweathermap.org/data/2.5/onecall"
	DefaultGeocodingURL = "https://api.openweathermap.org/geo/1.0/direct"

	geocodingLimit = 5

	endpointGeocoding = "geocoding"
	endpointOneCall   = "onecall"
)

// ClientConfig configures the OpenWeather client.
type ClientConfig struct {
	APIKey       string
	OneCallURL   string
	GeocodingURL string
	Timeout      time.Duration
}

// Client implements Provider using the OpenWeather One Call and direct
// geocoding APIs.
type Client struct {
	apiKey       string
	oneCallURL   string
	geocodingURL string
	httpClient   *http.Client
	clock        clockwork.Clock
	metrics      *observability.Metrics
	logger       *zap.Logger
}

var _ Provider = (*Client)(nil)

func NewClient(cfg ClientConfig, metrics *observability.Metrics, logger *zap.Logger) *Client {
	if cfg.OneCallURL == "" {
		cfg.OneCallURL = DefaultOneCallURL
	}
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = DefaultGeocodingURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		apiKey:       cfg.APIKey,
		oneCallURL:   cfg.OneCallURL,
		geocodingURL: cfg.GeocodingURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		clock:        clockwork.NewRealClock(),
		metrics:      metrics,
		logger:       logger,
	}
}

// GetCoordinates returns up to five geocoding matches for name.
func (c *Client) GetCoordinates(ctx context.Context, name string) ([]Location, error) {
	params := url.Values{
		"q":     {name},
		"limit": {strconv.Itoa(geocodingLimit)},
		"appid": {c.apiKey},
	}

	var locations []Location
	if err := c.get(ctx, endpointGeocoding, c.geocodingURL, params, &locations); err != nil {
		return nil, err
	}

	outcome := "success"
	if len(locations) == 0 {
		outcome = "empty"
	}
	c.metrics.ProviderRequests.WithLabelValues(endpointGeocoding, outcome).Inc()

	if locations == nil {
		locations = []Location{}
	}
	return locations, nil
}

// GetCurrentWeatherData returns current conditions and the daily forecast
// for the coordinates. Minutely and hourly data are excluded.
func (c *Client) GetCurrentWeatherData(ctx context.Context, lat, lon float64, units models.UnitSystem, lang string) (*OneCallResponse, error) {
	params := url.Values{
		"lat":     {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"appid":   {c.apiKey},
		"exclude": {"minutely,hourly"},
		"units":   {string(units)},
		"lang":    {lang},
	}

	var resp OneCallResponse
	if err := c.get(ctx, endpointOneCall, c.oneCallURL, params, &resp); err != nil {
		return nil, err
	}

	c.metrics.ProviderRequests.WithLabelValues(endpointOneCall, "success").Inc()
	return &resp, nil
}

func (c *Client) get(ctx context.Context, endpoint, baseURL string, params url.Values, out any) error {
	start := c.clock.Now()
	defer func() {
		c.metrics.ProviderDuration.WithLabelValues(endpoint).Observe(c.clock.Since(start).Seconds())
	}()

	err := c.doRequest(ctx, endpoint, baseURL+"?"+params.Encode(), out)
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		c.logger.Error("OpenWeather request failed",
			zap.String("endpoint", endpoint),
			zap.Error(err))
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, endpoint, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
