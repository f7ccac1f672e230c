package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "https://airlabs.co/api/v9"
	defaultTimeout = 10 * time.Second

	// Flights delayed by fewer minutes than this are not worth reporting.
	delayCutoffMinutes = 30
)

// Config holds the AirLabs connection settings, built once in main.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

var (
	cfg        Config
	httpClient *http.Client
)

// Flight is the subset of AirLabs flight fields the tools report.
type Flight struct {
	FlightIATA   string `json:"flight_iata" jsonschema:"IATA flight number"`
	AirlineIATA  string `json:"airline_iata" jsonschema:"IATA airline code"`
	Status       string `json:"status" jsonschema:"flight status (scheduled, en-route, landed, cancelled)"`
	DepIATA      string `json:"dep_iata" jsonschema:"departure airport IATA code"`
	DepTime      string `json:"dep_time" jsonschema:"scheduled departure time"`
	DepEstimated string `json:"dep_estimated" jsonschema:"estimated departure time"`
	DepGate      string `json:"dep_gate" jsonschema:"departure gate"`
	ArrIATA      string `json:"arr_iata" jsonschema:"arrival airport IATA code"`
	ArrTime      string `json:"arr_time" jsonschema:"scheduled arrival time"`
	ArrEstimated string `json:"arr_estimated" jsonschema:"estimated arrival time"`
	Delayed      int    `json:"delayed" jsonschema:"delay in minutes"`
}

// Airport is one entry from the airport suggest endpoint.
type Airport struct {
	Name        string `json:"name" jsonschema:"airport name"`
	IATACode    string `json:"iata_code" jsonschema:"IATA airport code"`
	City        string `json:"city" jsonschema:"city the airport serves"`
	CountryCode string `json:"country_code" jsonschema:"ISO country code"`
}

// Input types

type FlightStatusInput struct {
	FlightIATA string `json:"flight_iata" jsonschema:"IATA flight number, e.g. KL601 or UA960"`
}

type SchedulesInput struct {
	DepIATA string `json:"dep_iata,omitempty" jsonschema:"optional departure airport IATA code, e.g. AMS"`
	ArrIATA string `json:"arr_iata,omitempty" jsonschema:"optional arrival airport IATA code, e.g. SFO"`
	Date    string `json:"date,omitempty" jsonschema:"optional date in YYYY-MM-DD format, defaults to today"`
}

type SearchAirportsInput struct {
	Query string `json:"query" jsonschema:"city or airport name, e.g. New York, Heathrow, Paris"`
}

type AirportDelaysInput struct {
	AirportIATA string `json:"airport_iata" jsonschema:"IATA airport code, e.g. AMS or JFK"`
}

// Output types

type FlightStatusOutput struct {
	Found   bool    `json:"found" jsonschema:"whether live tracking information was found"`
	Message string  `json:"message,omitempty" jsonschema:"explanation when no live data is available"`
	Flight  *Flight `json:"flight,omitempty" jsonschema:"live flight information"`
}

type SchedulesOutput struct {
	Flights []Flight `json:"flights" jsonschema:"scheduled flights"`
	Count   int      `json:"count" jsonschema:"number of scheduled flights"`
}

type SearchAirportsOutput struct {
	Airports []Airport `json:"airports" jsonschema:"matching airports"`
	Count    int       `json:"count" jsonschema:"number of matching airports"`
}

type AirportDelaysOutput struct {
	Flights []Flight `json:"flights" jsonschema:"delayed flights"`
	Count   int      `json:"count" jsonschema:"number of delayed flights"`
	Message string   `json:"message,omitempty" jsonschema:"set when no significant delays are reported"`
}

// apiGet issues a GET against an AirLabs endpoint with the API key attached
// and returns the raw body of a 2xx response.
func apiGet(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	params.Set("api_key", cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response for %s: %w", path, err)
	}
	return body, resp.StatusCode, nil
}

// parseFlightResponse unwraps the {"response": ...} envelope, which carries
// either a single flight object or a list with the best match first.
func parseFlightResponse(body []byte) (*Flight, error) {
	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse flight response: %w", err)
	}
	if len(envelope.Response) == 0 {
		return nil, nil
	}

	var single Flight
	if err := json.Unmarshal(envelope.Response, &single); err == nil {
		if single.FlightIATA != "" || single.Status != "" {
			return &single, nil
		}
		return nil, nil
	}

	var list []Flight
	if err := json.Unmarshal(envelope.Response, &list); err != nil {
		return nil, fmt.Errorf("failed to parse flight response: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// GetFlightStatus reports live status for a single flight.
func GetFlightStatus(ctx context.Context, req *mcp.CallToolRequest, input FlightStatusInput) (
	*mcp.CallToolResult,
	FlightStatusOutput,
	error,
) {
	if input.FlightIATA == "" {
		return nil, FlightStatusOutput{}, fmt.Errorf("flight_iata is required")
	}

	params := url.Values{}
	params.Set("flight_iata", input.FlightIATA)

	body, status, err := apiGet(ctx, "/flight", params)
	if err != nil {
		return nil, FlightStatusOutput{}, fmt.Errorf("error fetching flight status: %w", err)
	}

	switch {
	case status == http.StatusForbidden:
		return nil, FlightStatusOutput{}, fmt.Errorf("AirLabs API key is invalid or expired")
	case status == http.StatusNotFound:
		return nil, FlightStatusOutput{
			Found:   false,
			Message: fmt.Sprintf("Flight %s is not currently active or tracked live. Try checking the schedule.", input.FlightIATA),
		}, nil
	case status < 200 || status > 299:
		return nil, FlightStatusOutput{}, fmt.Errorf("AirLabs API returned status code %d", status)
	}

	flight, err := parseFlightResponse(body)
	if err != nil {
		return nil, FlightStatusOutput{}, err
	}
	if flight == nil {
		return nil, FlightStatusOutput{
			Found:   false,
			Message: fmt.Sprintf("No live tracking information found for flight %s.", input.FlightIATA),
		}, nil
	}

	return nil, FlightStatusOutput{Found: true, Flight: flight}, nil
}

// GetSchedules lists scheduled flights between airports.
func GetSchedules(ctx context.Context, req *mcp.CallToolRequest, input SchedulesInput) (
	*mcp.CallToolResult,
	SchedulesOutput,
	error,
) {
	params := url.Values{}
	if input.DepIATA != "" {
		params.Set("dep_iata", input.DepIATA)
	}
	if input.ArrIATA != "" {
		params.Set("arr_iata", input.ArrIATA)
	}
	if input.Date != "" {
		params.Set("date", input.Date)
	}

	body, status, err := apiGet(ctx, "/schedules", params)
	if err != nil {
		return nil, SchedulesOutput{}, fmt.Errorf("error fetching schedules: %w", err)
	}
	if status < 200 || status > 299 {
		return nil, SchedulesOutput{}, fmt.Errorf("AirLabs API returned status code %d", status)
	}

	var envelope struct {
		Response []Flight `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, SchedulesOutput{}, fmt.Errorf("failed to parse schedules response: %w", err)
	}

	output := SchedulesOutput{
		Flights: envelope.Response,
		Count:   len(envelope.Response),
	}
	return nil, output, nil
}

// SearchAirports suggests airports for a free-text query.
func SearchAirports(ctx context.Context, req *mcp.CallToolRequest, input SearchAirportsInput) (
	*mcp.CallToolResult,
	SearchAirportsOutput,
	error,
) {
	if input.Query == "" {
		return nil, SearchAirportsOutput{}, fmt.Errorf("query is required")
	}

	params := url.Values{}
	params.Set("q", input.Query)

	body, status, err := apiGet(ctx, "/suggest", params)
	if err != nil {
		return nil, SearchAirportsOutput{}, fmt.Errorf("error searching airports: %w", err)
	}
	if status < 200 || status > 299 {
		return nil, SearchAirportsOutput{}, fmt.Errorf("AirLabs API returned status code %d", status)
	}

	// The suggest endpoint also returns cities and countries; only the
	// airports slice is relevant here.
	var envelope struct {
		Response struct {
			Airports []Airport `json:"airports"`
		} `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, SearchAirportsOutput{}, fmt.Errorf("failed to parse suggest response: %w", err)
	}

	output := SearchAirportsOutput{
		Airports: envelope.Response.Airports,
		Count:    len(envelope.Response.Airports),
	}
	return nil, output, nil
}

// GetAirportDelays lists significantly delayed departures from an airport.
func GetAirportDelays(ctx context.Context, req *mcp.CallToolRequest, input AirportDelaysInput) (
	*mcp.CallToolResult,
	AirportDelaysOutput,
	error,
) {
	if input.AirportIATA == "" {
		return nil, AirportDelaysOutput{}, fmt.Errorf("airport_iata is required")
	}

	params := url.Values{}
	params.Set("dep_iata", input.AirportIATA)
	params.Set("delay", fmt.Sprintf("%d", delayCutoffMinutes))

	body, status, err := apiGet(ctx, "/delays", params)
	if err != nil {
		return nil, AirportDelaysOutput{}, fmt.Errorf("error fetching delays: %w", err)
	}
	if status < 200 || status > 299 {
		return nil, AirportDelaysOutput{}, fmt.Errorf("AirLabs API returned status code %d", status)
	}

	var envelope struct {
		Response []Flight `json:"response"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, AirportDelaysOutput{}, fmt.Errorf("failed to parse delays response: %w", err)
	}

	output := AirportDelaysOutput{
		Flights: envelope.Response,
		Count:   len(envelope.Response),
	}
	if len(envelope.Response) == 0 {
		output.Message = fmt.Sprintf("No significant delays (>%dmin) reported for departures from %s right now.", delayCutoffMinutes, input.AirportIATA)
	}
	return nil, output, nil
}

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("AIRLABS_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("AIRLABS_API_KEY environment variable is required")
	}

	cfg = Config{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		Timeout: defaultTimeout,
	}
	if v := os.Getenv("AIRLABS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	httpClient = &http.Client{Timeout: cfg.Timeout}

	server := mcp.NewServer(&mcp.Implementation{Name: "airlabs", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "airlabs_get_flight_status",
		Description: "Get real-time status, departure and arrival information for a specific flight by IATA number",
	}, GetFlightStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "airlabs_get_schedules",
		Description: "Get flight schedules between two airports, optionally on a specific date",
	}, GetSchedules)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "airlabs_search_airports",
		Description: "Search for an airport by name or city to find its IATA code, e.g. when the user says 'London' instead of 'LHR'",
	}, SearchAirports)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "airlabs_get_airport_delays",
		Description: "Get flights delayed by more than 30 minutes departing from an airport",
	}, GetAirportDelays)

	if addr := os.Getenv("MCP_HTTP_ADDR"); addr != "" {
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
		log.Info().Str("addr", addr).Msg("serving AirLabs MCP over HTTP")
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatal().Err(err).Msg("HTTP server exited")
		}
		return
	}

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
