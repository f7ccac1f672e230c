package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL       = "https://gateway.apiportal.ns.nl/reisinformatie-api/api"
	defaultPlacesBaseURL = "https://gateway.apiportal.ns.nl/places-api/v2"
	defaultTimeout       = 10 * time.Second
)

// Config holds everything the NS client and resolver need. It is built once
// in main and injected; nothing below reads the process environment.
type Config struct {
	BaseURL             string
	PlacesBaseURL       string
	APIKey              string
	Timeout             time.Duration
	FuzzyThreshold      float64
	PreferredCategories []string
}

// Client talks to the NS gateway APIs.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.PlacesBaseURL == "" {
		cfg.PlacesBaseURL = defaultPlacesBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// get issues an authenticated GET against one of the gateway APIs and
// returns the raw body of a 2xx response.
func (c *Client) get(ctx context.Context, base, path string, params url.Values) ([]byte, error) {
	endpoint := base + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("NS API returned status code %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", path, err)
	}
	return body, nil
}

// SearchStations queries the station directory. An empty query returns the
// full directory; a positive limit caps the number of results.
func (c *Client) SearchStations(ctx context.Context, query string, limit int) ([]Station, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, c.cfg.BaseURL, "/v2/stations", params)
	if err != nil {
		return nil, err
	}
	return decodeStations(body)
}

// decodeStations accepts both the documented {"payload": [...]} envelope and
// a bare array, since the directory endpoint has shipped both shapes.
func decodeStations(body []byte) ([]Station, error) {
	var envelope struct {
		Payload []Station `json:"payload"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Payload != nil {
		return envelope.Payload, nil
	}

	var bare []Station
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse station directory response: %w", err)
	}
	return bare, nil
}

// Departures lists upcoming departures for a resolved station code.
func (c *Client) Departures(ctx context.Context, stationCode string) ([]Departure, error) {
	params := url.Values{}
	params.Set("station", stationCode)

	body, err := c.get(ctx, c.cfg.BaseURL, "/v2/departures", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Payload struct {
			Departures []Departure `json:"departures"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse departures response: %w", err)
	}
	return envelope.Payload.Departures, nil
}

// Arrivals lists upcoming arrivals for a resolved station code.
func (c *Client) Arrivals(ctx context.Context, stationCode string) ([]Arrival, error) {
	params := url.Values{}
	params.Set("station", stationCode)

	body, err := c.get(ctx, c.cfg.BaseURL, "/v2/arrivals", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Payload struct {
			Arrivals []Arrival `json:"arrivals"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse arrivals response: %w", err)
	}
	return envelope.Payload.Arrivals, nil
}

// PlanTrip queries the trip planner between two resolved station codes.
// dateTime may be empty (the planner defaults to now); searchForArrival
// makes dateTime the desired arrival moment instead of departure.
func (c *Client) PlanTrip(ctx context.Context, fromCode, toCode, dateTime string, searchForArrival bool) ([]Trip, error) {
	params := url.Values{}
	params.Set("fromStation", fromCode)
	params.Set("toStation", toCode)
	if dateTime != "" {
		params.Set("dateTime", dateTime)
	}
	if searchForArrival {
		params.Set("searchForArrival", "true")
	}

	body, err := c.get(ctx, c.cfg.BaseURL, "/v3/trips", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Trips []Trip `json:"trips"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse trips response: %w", err)
	}
	return envelope.Trips, nil
}

// OvFiets lists OV-fiets rental locations for a resolved station code.
func (c *Client) OvFiets(ctx context.Context, stationCode string) ([]OvFietsLocation, error) {
	params := url.Values{}
	params.Set("station_code", stationCode)

	body, err := c.get(ctx, c.cfg.PlacesBaseURL, "/ovfiets", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Payload []OvFietsLocation `json:"payload"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse OV-fiets response: %w", err)
	}
	return envelope.Payload, nil
}

// Price lists fare options between two resolved station codes.
func (c *Client) Price(ctx context.Context, fromCode, toCode string) ([]PriceOption, error) {
	params := url.Values{}
	params.Set("fromStation", fromCode)
	params.Set("toStation", toCode)

	body, err := c.get(ctx, c.cfg.BaseURL, "/v2/price", params)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		PriceOptions []PriceOption `json:"priceOptions"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse price response: %w", err)
	}
	return envelope.PriceOptions, nil
}
