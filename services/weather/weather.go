package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

// Client fans out to the open-meteo forecast and air-quality APIs and
// condenses both into one dashboard payload.
type Client struct {
	weatherBaseURL    string
	airQualityBaseURL string
	httpClient        *http.Client
}

func NewClient(weatherBaseURL, airQualityBaseURL string) *Client {
	return &Client{
		weatherBaseURL:    weatherBaseURL,
		airQualityBaseURL: airQualityBaseURL,
		httpClient:        &http.Client{Timeout: 10 * time.Second},
	}
}

type AirQuality struct {
	Level  int     `json:"level"`
	Label  string  `json:"label"`
	UsAqi  float64 `json:"us_aqi"`
	EuAqi  float64 `json:"eu_aqi"`
	Pm25   float64 `json:"pm25"`
	Pm10   float64 `json:"pm10"`
	Co     float64 `json:"co"`
	No2    float64 `json:"no2"`
	So2    float64 `json:"so2"`
	Ozone  float64 `json:"o3"`
}

type Conditions struct {
	Temp          float64 `json:"temp"`
	FeelsLike     float64 `json:"feels_like"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	UvIndex       float64 `json:"uv_index"`
	Precipitation float64 `json:"precipitation"`
	Description   string  `json:"description"`
	MaxTemp       float64 `json:"max_temp"`
	MinTemp       float64 `json:"min_temp"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
}

type Recommendations struct {
	Dos         []string `json:"dos"`
	Donts       []string `json:"donts"`
	Precautions []string `json:"precautions"`
}

type Report struct {
	Aqi             AirQuality      `json:"aqi"`
	Weather         Conditions      `json:"weather"`
	Recommendations Recommendations `json:"recommendations"`
	Timestamp       string          `json:"timestamp"`
}

type forecastResponse struct {
	Current struct {
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		Precipitation       float64 `json:"precipitation"`
		WeatherCode         int     `json:"weather_code"`
		SurfacePressure     float64 `json:"surface_pressure"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       float64 `json:"wind_direction_10m"`
		UvIndex             float64 `json:"uv_index"`
	} `json:"current"`
	Daily struct {
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		Sunrise          []string  `json:"sunrise"`
		Sunset           []string  `json:"sunset"`
	} `json:"daily"`
}

type airQualityResponse struct {
	Current struct {
		Pm10            float64 `json:"pm10"`
		Pm25            float64 `json:"pm2_5"`
		CarbonMonoxide  float64 `json:"carbon_monoxide"`
		NitrogenDioxide float64 `json:"nitrogen_dioxide"`
		SulphurDioxide  float64 `json:"sulphur_dioxide"`
		Ozone           float64 `json:"ozone"`
		UsAqi           float64 `json:"us_aqi"`
		EuropeanAqi     float64 `json:"european_aqi"`
	} `json:"current"`
}

var aqiLabels = []string{"Good", "Fair", "Moderate", "Poor", "Very Poor"}

var weatherCodes = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Foggy", 48: "Foggy", 51: "Light drizzle", 53: "Moderate drizzle",
	55: "Dense drizzle", 61: "Slight rain", 63: "Moderate rain", 65: "Heavy rain",
	71: "Slight snow", 73: "Moderate snow", 75: "Heavy snow", 95: "Thunderstorm",
}

// Get fetches current weather and air quality for the coordinates.
func (c *Client) Get(ctx context.Context, lat, lon float64) (*Report, error) {
	forecastURL := fmt.Sprintf("%s/v1/forecast?latitude=%f&longitude=%f&current=temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,surface_pressure,wind_speed_10m,wind_direction_10m,uv_index&daily=temperature_2m_max,temperature_2m_min,sunrise,sunset,uv_index_max,precipitation_sum&timezone=auto",
		c.weatherBaseURL, lat, lon)
	var forecast forecastResponse
	if err := c.getJSON(ctx, forecastURL, &forecast); err != nil {
		return nil, err
	}

	aqiURL := fmt.Sprintf("%s/v1/air-quality?latitude=%f&longitude=%f&current=pm10,pm2_5,carbon_monoxide,nitrogen_dioxide,sulphur_dioxide,ozone,us_aqi,european_aqi&timezone=auto",
		c.airQualityBaseURL, lat, lon)
	var aqi airQualityResponse
	if err := c.getJSON(ctx, aqiURL, &aqi); err != nil {
		return nil, err
	}

	level := int(math.Ceil(aqi.Current.UsAqi / 50))
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}

	description, ok := weatherCodes[forecast.Current.WeatherCode]
	if !ok {
		description = "Unknown"
	}

	report := &Report{
		Aqi: AirQuality{
			Level: level,
			Label: aqiLabels[level-1],
			UsAqi: aqi.Current.UsAqi,
			EuAqi: aqi.Current.EuropeanAqi,
			Pm25:  aqi.Current.Pm25,
			Pm10:  aqi.Current.Pm10,
			Co:    aqi.Current.CarbonMonoxide,
			No2:   aqi.Current.NitrogenDioxide,
			So2:   aqi.Current.SulphurDioxide,
			Ozone: aqi.Current.Ozone,
		},
		Weather: Conditions{
			Temp:          forecast.Current.Temperature,
			FeelsLike:     forecast.Current.ApparentTemperature,
			Humidity:      forecast.Current.RelativeHumidity,
			Pressure:      forecast.Current.SurfacePressure,
			WindSpeed:     forecast.Current.WindSpeed,
			WindDirection: forecast.Current.WindDirection,
			UvIndex:       forecast.Current.UvIndex,
			Precipitation: forecast.Current.Precipitation,
			Description:   description,
		},
		Recommendations: buildRecommendations(aqi.Current.UsAqi, forecast.Current.Temperature),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
	if len(forecast.Daily.TemperatureMax) > 0 {
		report.Weather.MaxTemp = forecast.Daily.TemperatureMax[0]
	}
	if len(forecast.Daily.TemperatureMin) > 0 {
		report.Weather.MinTemp = forecast.Daily.TemperatureMin[0]
	}
	if len(forecast.Daily.Sunrise) > 0 {
		report.Weather.Sunrise = forecast.Daily.Sunrise[0]
	}
	if len(forecast.Daily.Sunset) > 0 {
		report.Weather.Sunset = forecast.Daily.Sunset[0]
	}
	return report, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather service returned %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func buildRecommendations(usAqi, temp float64) Recommendations {
	var r Recommendations
	switch {
	case usAqi > 200:
		r.Dos = []string{"Stay indoors with air purifiers running", "Keep all windows and doors closed", "Use N95/N99 masks if you must go outside"}
		r.Donts = []string{"Avoid all outdoor physical activities", "Don't open windows even for ventilation", "Avoid using vehicles, carpool if necessary"}
		r.Precautions = []string{"Keep emergency medications accessible", "Monitor health symptoms closely", "Vulnerable groups should avoid going out"}
	case usAqi > 150:
		r.Dos = []string{"Limit outdoor exposure to essential activities only", "Use air purifiers indoors", "Wear N95 masks outdoors"}
		r.Donts = []string{"Avoid outdoor exercise and sports", "Don't spend extended time outside"}
		r.Precautions = []string{"Children and elderly should stay indoors", "Keep windows closed during peak hours"}
	case usAqi > 100:
		r.Dos = []string{"Reduce prolonged outdoor exertion", "Monitor air quality before outdoor activities"}
		r.Donts = []string{"Avoid heavy outdoor exercise", "Don't exercise near traffic areas"}
		r.Precautions = []string{"Sensitive groups should limit outdoor time", "Consider wearing masks in crowded areas"}
	case usAqi > 50:
		r.Dos = []string{"Enjoy outdoor activities with awareness", "Monitor air quality for sensitive groups"}
		r.Donts = []string{"Don't burn waste or leaves"}
		r.Precautions = []string{"Sensitive individuals should watch for symptoms"}
	default:
		r.Dos = []string{"Enjoy outdoor activities freely", "Keep windows open for fresh air", "Exercise outdoors"}
		r.Donts = []string{"Don't litter or pollute", "Don't burn waste materials"}
		r.Precautions = []string{"Stay hydrated during activities"}
	}

	if temp > 35 {
		r.Dos = append(r.Dos, "Drink plenty of water")
		r.Donts = append(r.Donts, "Avoid direct sunlight during noon")
		r.Precautions = append(r.Precautions, "Wear light-colored clothes")
	}
	return r
}
