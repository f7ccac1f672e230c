package main

import (
	"sort"
	"strings"
)

// tripStatusCancelled is the planner's cancellation sentinel. Any other
// status value, including an unknown one, counts as a running trip so a
// mislabeled itinerary is never buried.
const tripStatusCancelled = "CANCELLED"

// RankTrips orders itinerary options by preference: running trips with a
// preferred product first, cancelled trips without one last. The sort is
// stable, so options with equal scores keep the planner's chronological
// order. The input slice is not modified and no option is ever dropped.
func RankTrips(trips []Trip, preferredCategories []string) []Trip {
	scored := make([]scoredTrip, len(trips))
	for i, trip := range trips {
		scored[i] = scoredTrip{
			trip:  trip,
			score: tripScore(trip, preferredCategories),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]Trip, len(scored))
	for i, s := range scored {
		ranked[i] = s.trip
	}
	return ranked
}

type scoredTrip struct {
	trip  Trip
	score int
}

// tripScore computes the preference score for one itinerary:
//
//	preferred product, not cancelled  -> 3
//	no preferred product, not cancelled -> 2
//	preferred product, cancelled      -> 1
//	no preferred product, cancelled   -> 0
func tripScore(trip Trip, preferredCategories []string) int {
	score := 0
	if trip.Status != tripStatusCancelled {
		score += 2
	}
	if hasPreferredProduct(trip, preferredCategories) {
		score++
	}
	return score
}

// hasPreferredProduct reports whether any leg runs a preferred product
// category. A trip without legs has no preferred product.
func hasPreferredProduct(trip Trip, preferredCategories []string) bool {
	for _, leg := range trip.Legs {
		for _, category := range preferredCategories {
			if strings.EqualFold(leg.Product.CategoryCode, category) {
				return true
			}
		}
	}
	return false
}
