package main

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func trip(number, status string, categories ...string) Trip {
	legs := make([]TripLeg, 0, len(categories))
	for _, category := range categories {
		legs = append(legs, TripLeg{Product: TripProduct{CategoryCode: category, Number: number}})
	}
	return Trip{Status: status, Legs: legs}
}

var _ = Describe("RankTrips", func() {
	preferred := []string{"ICD", "ICE", "THA", "EST"}

	Context("scoring", func() {
		It("scores a running trip with a preferred product highest", func() {
			Expect(tripScore(trip("1", "NORMAL", "ICD"), preferred)).To(Equal(3))
		})

		It("scores a running trip without a preferred product above cancelled trips", func() {
			Expect(tripScore(trip("2", "NORMAL", "SPR"), preferred)).To(Equal(2))
		})

		It("scores a cancelled trip with a preferred product above one without", func() {
			Expect(tripScore(trip("3", "CANCELLED", "ICE"), preferred)).To(Equal(1))
			Expect(tripScore(trip("4", "CANCELLED", "SPR"), preferred)).To(Equal(0))
		})

		It("treats a trip without legs as having no preferred product", func() {
			Expect(tripScore(Trip{Status: "NORMAL"}, preferred)).To(Equal(2))
		})

		It("treats an unknown status as not cancelled", func() {
			Expect(tripScore(trip("5", "SOMETHING_NEW", "SPR"), preferred)).To(Equal(2))
		})

		It("matches product categories case-insensitively", func() {
			Expect(tripScore(trip("6", "NORMAL", "icd"), preferred)).To(Equal(3))
		})
	})

	Context("ordering", func() {
		It("sorts by descending score and keeps ties in input order", func() {
			a := trip("A", "NORMAL", "SPR")
			b := trip("B", "NORMAL", "ICD")
			c := trip("C", "NORMAL", "IC")

			ranked := RankTrips([]Trip{a, b, c}, preferred)
			Expect(ranked).To(HaveLen(3))
			Expect(ranked[0].Legs[0].Product.Number).To(Equal("B"))
			Expect(ranked[1].Legs[0].Product.Number).To(Equal("A"))
			Expect(ranked[2].Legs[0].Product.Number).To(Equal("C"))
		})

		It("returns a permutation of the input", func() {
			trips := []Trip{
				trip("A", "CANCELLED", "SPR"),
				trip("B", "NORMAL", "ICD"),
				trip("C", "CANCELLED", "THA"),
				trip("D", "NORMAL", "SPR"),
			}

			ranked := RankTrips(trips, preferred)
			Expect(ranked).To(HaveLen(len(trips)))

			numbers := []string{}
			for _, t := range ranked {
				numbers = append(numbers, t.Legs[0].Product.Number)
			}
			Expect(numbers).To(ConsistOf("A", "B", "C", "D"))
			Expect(numbers).To(Equal([]string{"B", "D", "C", "A"}))
		})

		It("does not mutate the input slice", func() {
			trips := []Trip{
				trip("A", "CANCELLED", "SPR"),
				trip("B", "NORMAL", "ICD"),
			}

			_ = RankTrips(trips, preferred)
			Expect(trips[0].Legs[0].Product.Number).To(Equal("A"))
			Expect(trips[1].Legs[0].Product.Number).To(Equal("B"))
		})

		It("handles an empty candidate list", func() {
			Expect(RankTrips(nil, preferred)).To(BeEmpty())
			Expect(RankTrips([]Trip{}, preferred)).To(BeEmpty())
		})

		It("keeps chronological order when no category is preferred", func() {
			trips := []Trip{
				trip("A", "NORMAL", "SPR"),
				trip("B", "NORMAL", "IC"),
				trip("C", "NORMAL", "SPR"),
			}

			ranked := RankTrips(trips, nil)
			Expect(ranked[0].Legs[0].Product.Number).To(Equal("A"))
			Expect(ranked[1].Legs[0].Product.Number).To(Equal("B"))
			Expect(ranked[2].Legs[0].Product.Number).To(Equal("C"))
		})
	})
})
