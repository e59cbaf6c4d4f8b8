package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func newWeatherStub(t *testing.T, usAqi float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/forecast":
			w.Write([]byte(`{
				"current": {
					"temperature_2m": 31.4, "relative_humidity_2m": 60,
					"apparent_temperature": 34.1, "precipitation": 0,
					"weather_code": 2, "surface_pressure": 1006,
					"wind_speed_10m": 12.5, "wind_direction_10m": 230, "uv_index": 7
				},
				"daily": {
					"temperature_2m_max": [33.0], "temperature_2m_min": [24.5],
					"sunrise": ["2026-08-31T06:12"], "sunset": ["2026-08-31T18:48"]
				}
			}`))
		case "/v1/air-quality":
			w.Write([]byte(`{
				"current": {
					"pm10": 80, "pm2_5": 45, "carbon_monoxide": 300,
					"nitrogen_dioxide": 20, "sulphur_dioxide": 8, "ozone": 60,
					"us_aqi": ` + strconv.FormatFloat(usAqi, 'f', -1, 64) + `, "european_aqi": 55
				}
			}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGetBuildsReport(t *testing.T) {
	srv := newWeatherStub(t, 120)
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)
	report, err := client.Get(context.Background(), 18.52, 73.85)
	require.NoError(t, err)

	require.Equal(t, 3, report.Aqi.Level)
	require.Equal(t, "Moderate", report.Aqi.Label)
	require.Equal(t, 45.0, report.Aqi.Pm25)
	require.Equal(t, 31.4, report.Weather.Temp)
	require.Equal(t, "Partly cloudy", report.Weather.Description)
	require.Equal(t, 33.0, report.Weather.MaxTemp)
	require.NotEmpty(t, report.Recommendations.Dos)
	require.NotEmpty(t, report.Timestamp)
}

func TestAqiLevelBuckets(t *testing.T) {
	cases := []struct {
		usAqi float64
		level int
		label string
	}{
		{30, 1, "Good"},
		{120, 3, "Moderate"},
		{260, 5, "Very Poor"},
	}
	for _, tc := range cases {
		srv := newWeatherStub(t, tc.usAqi)
		client := NewClient(srv.URL, srv.URL)
		report, err := client.Get(context.Background(), 18.52, 73.85)
		srv.Close()
		require.NoError(t, err)
		require.Equal(t, tc.level, report.Aqi.Level, "us_aqi %v", tc.usAqi)
		require.Equal(t, tc.label, report.Aqi.Label, "us_aqi %v", tc.usAqi)
	}
}

func TestGetPropagatesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL)
	_, err := client.Get(context.Background(), 18.52, 73.85)
	require.Error(t, err)
}
