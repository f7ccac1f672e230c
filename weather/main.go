package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

var (
	baseURL = "https://api.open-meteo.com/v1/forecast"

	// Hourly rows returned to the caller. Open-Meteo sends several days;
	// the tool only reports the next day.
	forecastHours = 24
)

type Input struct {
	Latitude  float64 `json:"latitude" jsonschema:"latitude of the location"`
	Longitude float64 `json:"longitude" jsonschema:"longitude of the location"`
}

type Output struct {
	Current CurrentWeather   `json:"current" jsonschema:"current weather conditions"`
	Hourly  []HourlyForecast `json:"hourly" jsonschema:"hourly forecast for the next 24 hours"`
}

type CurrentWeather struct {
	Time          string  `json:"time" jsonschema:"observation time"`
	Temperature   float64 `json:"temperature" jsonschema:"temperature in degrees Celsius"`
	WindSpeed     float64 `json:"wind_speed" jsonschema:"wind speed in km/h"`
	WindDirection float64 `json:"wind_direction" jsonschema:"wind direction in degrees"`
	WeatherCode   int     `json:"weather_code" jsonschema:"WMO weather interpretation code"`
}

type HourlyForecast struct {
	Time          string  `json:"time" jsonschema:"forecast hour"`
	Temperature   float64 `json:"temperature" jsonschema:"temperature in degrees Celsius"`
	Precipitation float64 `json:"precipitation" jsonschema:"precipitation in mm"`
	WeatherCode   int     `json:"weather_code" jsonschema:"WMO weather interpretation code"`
}

// openMeteoResponse mirrors the Open-Meteo forecast payload. Hourly series
// come back as parallel arrays keyed by the requested variable names.
type openMeteoResponse struct {
	CurrentWeather struct {
		Time          string  `json:"time"`
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature   []float64 `json:"temperature_2m"`
		Precipitation []float64 `json:"precipitation"`
		WeatherCode   []int     `json:"weather_code"`
	} `json:"hourly"`
}

func GetForecast(ctx context.Context, req *mcp.CallToolRequest, input Input) (
	*mcp.CallToolResult,
	Output,
	error,
) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(input.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(input.Longitude, 'f', -1, 64))
	params.Set("current_weather", "true")
	params.Set("hourly", "temperature_2m,precipitation,weather_code")

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, Output{}, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, Output{}, fmt.Errorf("failed to fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, Output{}, fmt.Errorf("forecast API returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Output{}, fmt.Errorf("failed to read response body: %w", err)
	}

	var forecast openMeteoResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, Output{}, fmt.Errorf("failed to parse forecast data: %w", err)
	}

	output := Output{
		Current: CurrentWeather{
			Time:          forecast.CurrentWeather.Time,
			Temperature:   forecast.CurrentWeather.Temperature,
			WindSpeed:     forecast.CurrentWeather.WindSpeed,
			WindDirection: forecast.CurrentWeather.WindDirection,
			WeatherCode:   forecast.CurrentWeather.WeatherCode,
		},
		Hourly: zipHourly(forecast, forecastHours),
	}

	return nil, output, nil
}

// zipHourly pairs up the parallel hourly arrays, stopping at the shortest
// series so a truncated payload never panics.
func zipHourly(forecast openMeteoResponse, limit int) []HourlyForecast {
	hourly := []HourlyForecast{}
	for i, t := range forecast.Hourly.Time {
		if i >= limit {
			break
		}
		entry := HourlyForecast{Time: t}
		if i < len(forecast.Hourly.Temperature) {
			entry.Temperature = forecast.Hourly.Temperature[i]
		}
		if i < len(forecast.Hourly.Precipitation) {
			entry.Precipitation = forecast.Hourly.Precipitation[i]
		}
		if i < len(forecast.Hourly.WeatherCode) {
			entry.WeatherCode = forecast.Hourly.WeatherCode[i]
		}
		hourly = append(hourly, entry)
	}
	return hourly
}

func main() {
	_ = godotenv.Load()

	if v := os.Getenv("OPEN_METEO_BASE_URL"); v != "" {
		baseURL = v
	}

	// Create a server with a single tool.
	server := mcp.NewServer(&mcp.Implementation{Name: "weather", Version: "v1.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "weather_forecast",
		Description: "Get current weather and a 24h hourly forecast for a latitude/longitude from Open-Meteo",
	}, GetForecast)

	if addr := os.Getenv("MCP_HTTP_ADDR"); addr != "" {
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
		log.Info().Str("addr", addr).Msg("serving weather MCP over HTTP")
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatal().Err(err).Msg("HTTP server exited")
		}
		return
	}

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
