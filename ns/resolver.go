package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"
)

// maxStationCodeLen is the longest short station code NS hands out.
const maxStationCodeLen = 6

// StationDirectory is the slice of the NS client the resolver depends on.
type StationDirectory interface {
	SearchStations(ctx context.Context, query string, limit int) ([]Station, error)
}

// UnresolvedStationError reports that no resolution strategy produced a
// station code for the query.
type UnresolvedStationError struct {
	Query string
}

func (e *UnresolvedStationError) Error() string {
	return fmt.Sprintf("could not resolve station %q", e.Query)
}

// Resolver maps free-text station identifiers to canonical station codes.
// Strategies are tried in order: code passthrough, remote search, and a
// fuzzy match over the full station directory.
type Resolver struct {
	directory StationDirectory
	threshold float64
}

func NewResolver(directory StationDirectory, threshold float64) *Resolver {
	return &Resolver{
		directory: directory,
		threshold: threshold,
	}
}

// Resolve returns a canonical station code for the query, or an
// *UnresolvedStationError when every strategy comes up empty. The returned
// code is always either the query itself (verified UIC number or short
// code) or a code copied from a directory record, never synthesized.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", &UnresolvedStationError{Query: query}
	}

	// UIC numbers and short codes are already canonical; a remote lookup
	// would only add latency and the chance of a wrong fuzzy hit.
	if isUICCode(trimmed) {
		return trimmed, nil
	}
	if isStationCode(trimmed) {
		return trimmed, nil
	}

	if code, ok, err := r.remoteLookup(ctx, trimmed); err != nil {
		log.Warn().Err(err).Str("station", trimmed).Msg("station search failed, falling back to full directory")
	} else if ok {
		return code, nil
	}

	if code, ok, err := r.directoryLookup(ctx, trimmed); err != nil {
		log.Warn().Err(err).Str("station", trimmed).Msg("station directory fetch failed")
	} else if ok {
		return code, nil
	}

	return "", &UnresolvedStationError{Query: query}
}

// remoteLookup asks the directory search endpoint for a single best match.
// A non-nil error is transient; ok=false with nil error is a clean miss.
func (r *Resolver) remoteLookup(ctx context.Context, query string) (string, bool, error) {
	stations, err := r.directory.SearchStations(ctx, query, 1)
	if err != nil {
		return "", false, err
	}
	for _, station := range stations {
		if station.Code != "" {
			return station.Code, true, nil
		}
	}
	return "", false, nil
}

// directoryLookup fetches the full station directory and matches the query
// against every name and synonym locally.
func (r *Resolver) directoryLookup(ctx context.Context, query string) (string, bool, error) {
	stations, err := r.directory.SearchStations(ctx, "", 0)
	if err != nil {
		return "", false, err
	}
	code, ok := bestMatch(stations, query, r.threshold)
	return code, ok, nil
}

// bestMatch is a pure function from a station directory and a query to an
// optional station code. It tries an exact lookup over every lower-cased
// name and synonym first, then the closest fuzzy match with a similarity
// of at least threshold. Stations are scanned in directory order, so ties
// go to the earlier record.
func bestMatch(stations []Station, query string, threshold float64) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return "", false
	}

	index := make(map[string]string, len(stations)*4)
	for _, station := range stations {
		if station.Code == "" {
			continue
		}
		for _, label := range station.labels() {
			key := strings.ToLower(label)
			if key == "" {
				continue
			}
			if _, seen := index[key]; !seen {
				index[key] = station.Code
			}
		}
	}

	if code, ok := index[needle]; ok {
		return code, true
	}

	bestCode := ""
	bestScore := -1.0
	for _, station := range stations {
		if station.Code == "" {
			continue
		}
		for _, label := range station.labels() {
			key := strings.ToLower(label)
			if key == "" {
				continue
			}
			score := similarity(needle, key)
			if score >= threshold && score > bestScore {
				bestCode = station.Code
				bestScore = score
			}
		}
	}

	return bestCode, bestCode != ""
}

// similarity is a normalized edit-distance ratio in [0, 1].
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

func isUICCode(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isStationCode(s string) bool {
	if len(s) == 0 || len(s) > maxStationCodeLen {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
