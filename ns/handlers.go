package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Set in main before the server starts.
var (
	cfg      Config
	client   *Client
	resolver *Resolver
)

// GetDepartures lists upcoming departures for a station.
func GetDepartures(ctx context.Context, req *mcp.CallToolRequest, input DeparturesInput) (
	*mcp.CallToolResult,
	DeparturesOutput,
	error,
) {
	code, err := resolver.Resolve(ctx, input.Station)
	if err != nil {
		return nil, DeparturesOutput{}, err
	}

	departures, err := client.Departures(ctx, code)
	if err != nil {
		return nil, DeparturesOutput{}, fmt.Errorf("failed to fetch departures for %s: %w", code, err)
	}

	output := DeparturesOutput{
		Station:    code,
		Departures: departures,
		Count:      len(departures),
	}
	return nil, output, nil
}

// GetArrivals lists upcoming arrivals for a station.
func GetArrivals(ctx context.Context, req *mcp.CallToolRequest, input ArrivalsInput) (
	*mcp.CallToolResult,
	ArrivalsOutput,
	error,
) {
	code, err := resolver.Resolve(ctx, input.Station)
	if err != nil {
		return nil, ArrivalsOutput{}, err
	}

	arrivals, err := client.Arrivals(ctx, code)
	if err != nil {
		return nil, ArrivalsOutput{}, fmt.Errorf("failed to fetch arrivals for %s: %w", code, err)
	}

	output := ArrivalsOutput{
		Station:  code,
		Arrivals: arrivals,
		Count:    len(arrivals),
	}
	return nil, output, nil
}

// GetStations searches the station directory, or lists all of it when the
// query is empty.
func GetStations(ctx context.Context, req *mcp.CallToolRequest, input StationsInput) (
	*mcp.CallToolResult,
	StationsOutput,
	error,
) {
	stations, err := client.SearchStations(ctx, input.Query, 0)
	if err != nil {
		return nil, StationsOutput{}, fmt.Errorf("failed to fetch stations: %w", err)
	}

	rows := []StationRow{}
	for _, station := range stations {
		rows = append(rows, StationRow{
			Code:    station.Code,
			Name:    station.Names.Long,
			Country: station.Country,
			UICCode: station.UICCode,
		})
	}

	output := StationsOutput{
		Stations: rows,
		Count:    len(rows),
	}
	return nil, output, nil
}

// PlanTrip plans itineraries between two stations and orders the options
// by preference.
func PlanTrip(ctx context.Context, req *mcp.CallToolRequest, input PlanTripInput) (
	*mcp.CallToolResult,
	PlanTripOutput,
	error,
) {
	fromCode, err := resolver.Resolve(ctx, input.From)
	if err != nil {
		return nil, PlanTripOutput{}, err
	}
	toCode, err := resolver.Resolve(ctx, input.To)
	if err != nil {
		return nil, PlanTripOutput{}, err
	}

	trips, err := client.PlanTrip(ctx, fromCode, toCode, input.DateTime, input.SearchForArrival)
	if err != nil {
		return nil, PlanTripOutput{}, fmt.Errorf("failed to plan trip from %s to %s: %w", fromCode, toCode, err)
	}

	output := PlanTripOutput{
		From:  fromCode,
		To:    toCode,
		Trips: RankTrips(trips, cfg.PreferredCategories),
		Count: len(trips),
	}
	return nil, output, nil
}

// GetOvFiets reports OV-fiets availability at a station.
func GetOvFiets(ctx context.Context, req *mcp.CallToolRequest, input OvFietsInput) (
	*mcp.CallToolResult,
	OvFietsOutput,
	error,
) {
	code, err := resolver.Resolve(ctx, input.Station)
	if err != nil {
		return nil, OvFietsOutput{}, err
	}

	locations, err := client.OvFiets(ctx, code)
	if err != nil {
		return nil, OvFietsOutput{}, fmt.Errorf("failed to fetch OV-fiets availability for %s: %w", code, err)
	}

	output := OvFietsOutput{
		Station:   code,
		Locations: locations,
		Count:     len(locations),
	}
	return nil, output, nil
}

// GetPrice lists fare options between two stations.
func GetPrice(ctx context.Context, req *mcp.CallToolRequest, input PriceInput) (
	*mcp.CallToolResult,
	PriceOutput,
	error,
) {
	fromCode, err := resolver.Resolve(ctx, input.From)
	if err != nil {
		return nil, PriceOutput{}, err
	}
	toCode, err := resolver.Resolve(ctx, input.To)
	if err != nil {
		return nil, PriceOutput{}, err
	}

	options, err := client.Price(ctx, fromCode, toCode)
	if err != nil {
		return nil, PriceOutput{}, fmt.Errorf("failed to fetch prices from %s to %s: %w", fromCode, toCode, err)
	}

	output := PriceOutput{
		From:    fromCode,
		To:      toCode,
		Options: options,
	}
	return nil, output, nil
}
