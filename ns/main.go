package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const defaultFuzzyThreshold = 0.6

// defaultPreferredCategories are the domestic high-speed and international
// product categories the trip ranker favors.
var defaultPreferredCategories = []string{"ICD", "ICE", "THA", "EST"}

func configFromEnv() Config {
	apiKey := os.Getenv("NS_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("NS_API_KEY environment variable is required")
	}

	config := Config{
		BaseURL:             os.Getenv("NS_BASE_URL"),
		PlacesBaseURL:       os.Getenv("NS_PLACES_BASE_URL"),
		APIKey:              apiKey,
		FuzzyThreshold:      defaultFuzzyThreshold,
		PreferredCategories: defaultPreferredCategories,
	}

	if v := os.Getenv("NS_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			log.Warn().Str("value", v).Msg("invalid NS_TIMEOUT, using default")
		} else {
			config.Timeout = time.Duration(seconds) * time.Second
		}
	}

	if v := os.Getenv("NS_FUZZY_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold <= 0 || threshold > 1 {
			log.Warn().Str("value", v).Msg("invalid NS_FUZZY_THRESHOLD, using default")
		} else {
			config.FuzzyThreshold = threshold
		}
	}

	if v := os.Getenv("NS_PREFERRED_CATEGORIES"); v != "" {
		categories := []string{}
		for _, category := range strings.Split(v, ",") {
			if category = strings.TrimSpace(category); category != "" {
				categories = append(categories, category)
			}
		}
		config.PreferredCategories = categories
	}

	return config
}

func main() {
	_ = godotenv.Load()

	cfg = configFromEnv()
	client = NewClient(cfg)
	resolver = NewResolver(client, cfg.FuzzyThreshold)

	server := mcp.NewServer(&mcp.Implementation{Name: "ns", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ns_get_departures",
		Description: "Get upcoming train departures for a Dutch railway station (name, station code or UIC code)",
	}, GetDepartures)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ns_get_arrivals",
		Description: "Get upcoming train arrivals for a Dutch railway station (name, station code or UIC code)",
	}, GetArrivals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ns_get_stations",
		Description: "Search the NS station directory by name, or list all stations when no query is given",
	}, GetStations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ns_plan_trip",
		Description: "Plan a train trip between two Dutch railway stations; the best itinerary options are listed first",
	}, PlanTrip)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ns_get_ovfiets",
		Description: "Get OV-fiets rental bike availability at a Dutch railway station",
	}, GetOvFiets)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ns_get_price",
		Description: "Get ticket prices for a journey between two Dutch railway stations",
	}, GetPrice)

	if addr := os.Getenv("MCP_HTTP_ADDR"); addr != "" {
		handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
		log.Info().Str("addr", addr).Msg("serving NS MCP over HTTP")
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatal().Err(err).Msg("HTTP server exited")
		}
		return
	}

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
