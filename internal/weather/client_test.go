package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xaenox/weather-bot/internal/models"
	"github.com/xaenox/weather-bot/internal/observability"
)

const (
	testAPIKey        = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string, metrics *observability.Metrics) *Client {
	return &Client{
		apiKey:       testAPIKey,
		oneCallURL:   baseURL + "/onecall",
		geocodingURL: baseURL + "/geo",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		clock:        clockwork.NewFakeClock(),
		metrics:      metrics,
		logger:       zap.NewNop(),
	}
}

func TestClient_GetCoordinates_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo", r.URL.Path)
		assert.Equal(t, "Bad Tölz", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[{"name":"Bad Tölz","local_names":{"de":"Bad Tölz"},"lat":47.76,"lon":11.56,"country":"DE","state":"Bavaria"}]`))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	c := testClient(srv.URL, metrics)

	locations, err := c.GetCoordinates(context.Background(), "Bad Tölz")
	require.NoError(t, err)
	require.Len(t, locations, 1)

	assert.Equal(t, "Bad Tölz", locations[0].Name)
	assert.Equal(t, 47.76, locations[0].Lat)
	assert.Equal(t, 11.56, locations[0].Lon)
	assert.Equal(t, "DE", locations[0].Country)
	assert.Equal(t, "Bavaria", locations[0].State)
	assert.Equal(t, "Bad Tölz", locations[0].LocalNames["de"])
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProviderRequests.WithLabelValues(endpointGeocoding, "success")))
}

func TestClient_GetCoordinates_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	c := testClient(srv.URL, metrics)

	locations, err := c.GetCoordinates(context.Background(), "Nargothrond")
	require.NoError(t, err)
	assert.NotNil(t, locations)
	assert.Empty(t, locations)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProviderRequests.WithLabelValues(endpointGeocoding, "empty")))
}

func TestClient_GetCoordinates_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	metrics := observability.NewMetricsForTesting()
	c := testClient(srv.URL, metrics)

	_, err := c.GetCoordinates(context.Background(), "London")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProviderRequests.WithLabelValues(endpointGeocoding, "error")))
}

func TestClient_GetCoordinates_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.GetCoordinates(context.Background(), "London")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestClient_GetCurrentWeatherData_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/onecall", r.URL.Path)
		assert.Equal(t, "51.5073", q.Get("lat"))
		assert.Equal(t, "-0.1276", q.Get("lon"))
		assert.Equal(t, "metric", q.Get("units"))
		assert.Equal(t, "de", q.Get("lang"))
		assert.Equal(t, "minutely,hourly", q.Get("exclude"))
		assert.Equal(t, testAPIKey, q.Get("appid"))

		resp := OneCallResponse{
			Timezone: "Europe/London",
			Current: CurrentWeather{
				Dt:        1585742400,
				Temp:      11.6,
				FeelsLike: 9.2,
				WindSpeed: 4.1,
				Weather:   []Condition{{ID: 800, Main: "Clear", Description: "Klarer Himmel", Icon: "01d"}},
			},
			Daily: []DailyWeather{
				{
					Dt:      1585742400,
					Temp:    DailyTemperature{Min: 3.2, Max: 14.7, Morn: 4, Day: 13, Eve: 10, Night: 5},
					Weather: []Condition{{Description: "Leichter Regen", Icon: "10d"}},
				},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())

	data, err := c.GetCurrentWeatherData(context.Background(), 51.5073, -0.1276, models.Metric, "de")
	require.NoError(t, err)

	assert.Equal(t, "Europe/London", data.Timezone)
	assert.Equal(t, 11.6, data.Current.Temp)
	assert.Equal(t, 9.2, data.Current.FeelsLike)
	require.Len(t, data.Current.Weather, 1)
	assert.Equal(t, "01d", data.Current.Weather[0].Icon)
	require.Len(t, data.Daily, 1)
	assert.Equal(t, 14.7, data.Daily[0].Temp.Max)
	assert.Equal(t, "Leichter Regen", data.Daily[0].Weather[0].Description)
}

func TestClient_GetCurrentWeatherData_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"current":`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, observability.NewMetricsForTesting())

	_, err := c.GetCurrentWeatherData(context.Background(), 1, 2, models.Metric, "de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode onecall response")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(ClientConfig{APIKey: testAPIKey}, observability.NewMetricsForTesting(), zap.NewNop())

	assert.Equal(t, DefaultOneCallURL, c.oneCallURL)
	assert.Equal(t, DefaultGeocodingURL, c.geocodingURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}

func TestLocationNotFoundError(t *testing.T) {
	err := &LocationNotFoundError{Location: "Nargothrond"}
	assert.Contains(t, err.Error(), `"Nargothrond"`)
	assert.Contains(t, err.Error(), "vertippt")
}
