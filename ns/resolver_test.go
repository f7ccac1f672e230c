package main

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockDirectory is a hand-rolled StationDirectory for resolver tests.
type MockDirectory struct {
	searchResults []Station
	searchErr     error
	directory     []Station
	directoryErr  error
	searchCalls   int
	listCalls     int
}

func (m *MockDirectory) SearchStations(ctx context.Context, query string, limit int) ([]Station, error) {
	if query == "" {
		m.listCalls++
		if m.directoryErr != nil {
			return nil, m.directoryErr
		}
		return m.directory, nil
	}
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func station(code, long string, synonyms ...string) Station {
	return Station{
		Code:     code,
		Names:    StationNames{Long: long},
		Synonyms: synonyms,
	}
}

var _ = Describe("Resolver", func() {
	var mockDirectory *MockDirectory
	var resolver *Resolver
	ctx := context.Background()

	BeforeEach(func() {
		mockDirectory = &MockDirectory{}
		resolver = NewResolver(mockDirectory, defaultFuzzyThreshold)
	})

	Context("code passthrough", func() {
		It("returns numeric UIC codes unchanged without any network call", func() {
			code, err := resolver.Resolve(ctx, "123456")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("123456"))
			Expect(mockDirectory.searchCalls).To(BeZero())
			Expect(mockDirectory.listCalls).To(BeZero())
		})

		It("returns short upper-case codes unchanged without any network call", func() {
			code, err := resolver.Resolve(ctx, "ASD")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("ASD"))
			Expect(mockDirectory.searchCalls).To(BeZero())
			Expect(mockDirectory.listCalls).To(BeZero())
		})

		It("trims surrounding whitespace before classifying", func() {
			code, err := resolver.Resolve(ctx, "  8400058  ")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("8400058"))
		})

		It("does not treat long upper-case strings as codes", func() {
			mockDirectory.searchResults = []Station{station("ASD", "Amsterdam Centraal")}
			code, err := resolver.Resolve(ctx, "AMSTERDAM")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("ASD"))
			Expect(mockDirectory.searchCalls).To(Equal(1))
		})

		It("does not treat lower-case strings as codes", func() {
			mockDirectory.searchResults = []Station{station("RTD", "Rotterdam Centraal")}
			code, err := resolver.Resolve(ctx, "rtd")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("RTD"))
			Expect(mockDirectory.searchCalls).To(Equal(1))
		})
	})

	Context("remote search", func() {
		It("returns the code of the first search result", func() {
			mockDirectory.searchResults = []Station{station("RTD", "Rotterdam Centraal")}
			code, err := resolver.Resolve(ctx, "Rotterdam Centraal")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("RTD"))
			Expect(mockDirectory.listCalls).To(BeZero())
		})

		It("skips results without a code", func() {
			mockDirectory.searchResults = []Station{station("", "nameless"), station("UT", "Utrecht Centraal")}
			code, err := resolver.Resolve(ctx, "Utrecht")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("UT"))
		})
	})

	Context("local fallback", func() {
		BeforeEach(func() {
			mockDirectory.directory = []Station{
				station("ASD", "Amsterdam Centraal", "Amsterdam CS"),
				station("RTD", "Rotterdam Centraal", "Rotterdam C"),
			}
		})

		It("falls back to an exact directory match when the search is empty", func() {
			code, err := resolver.Resolve(ctx, "amsterdam centraal")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("ASD"))
			Expect(mockDirectory.listCalls).To(Equal(1))
		})

		It("matches synonyms fuzzily within the threshold", func() {
			code, err := resolver.Resolve(ctx, "rotterdamc")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("RTD"))
		})

		It("still resolves when the remote search fails", func() {
			mockDirectory.searchErr = errors.New("gateway timeout")
			code, err := resolver.Resolve(ctx, "Rotterdam C")
			Expect(err).NotTo(HaveOccurred())
			Expect(code).To(Equal("RTD"))
		})
	})

	Context("exhaustion", func() {
		It("reports an unresolved station when nothing matches", func() {
			mockDirectory.directory = []Station{station("ASD", "Amsterdam Centraal")}
			_, err := resolver.Resolve(ctx, "xyzzyplugh")
			Expect(err).To(HaveOccurred())

			var unresolved *UnresolvedStationError
			Expect(errors.As(err, &unresolved)).To(BeTrue())
			Expect(unresolved.Query).To(Equal("xyzzyplugh"))
			Expect(err.Error()).To(ContainSubstring("xyzzyplugh"))
		})

		It("reports an unresolved station when every tier errors", func() {
			mockDirectory.searchErr = errors.New("search down")
			mockDirectory.directoryErr = errors.New("directory down")

			_, err := resolver.Resolve(ctx, "Rotterdam")
			var unresolved *UnresolvedStationError
			Expect(errors.As(err, &unresolved)).To(BeTrue())
		})

		It("rejects empty input without any network call", func() {
			_, err := resolver.Resolve(ctx, "   ")
			var unresolved *UnresolvedStationError
			Expect(errors.As(err, &unresolved)).To(BeTrue())
			Expect(mockDirectory.searchCalls).To(BeZero())
			Expect(mockDirectory.listCalls).To(BeZero())
		})
	})
})

var _ = Describe("bestMatch", func() {
	stations := []Station{
		station("ASD", "Amsterdam Centraal", "Amsterdam CS"),
		station("RTD", "Rotterdam Centraal", "Rotterdam C"),
		station("GVC", "Den Haag Centraal", "The Hague"),
	}

	It("matches names case-insensitively", func() {
		code, ok := bestMatch(stations, "DEN HAAG CENTRAAL", 0.6)
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal("GVC"))
	})

	It("matches synonyms exactly", func() {
		code, ok := bestMatch(stations, "The Hague", 0.6)
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal("GVC"))
	})

	It("matches close misspellings", func() {
		code, ok := bestMatch(stations, "Amsterdm Centraal", 0.6)
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal("ASD"))
	})

	It("rejects matches below the threshold", func() {
		_, ok := bestMatch(stations, "qqqqqqqq", 0.6)
		Expect(ok).To(BeFalse())
	})

	It("rejects everything at an impossible threshold unless exact", func() {
		_, ok := bestMatch(stations, "Amsterdm Centraal", 1.0)
		Expect(ok).To(BeFalse())

		code, ok := bestMatch(stations, "amsterdam centraal", 1.0)
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal("ASD"))
	})

	It("prefers the earlier record on equal similarity", func() {
		twins := []Station{
			station("AAA", "Springfield Noord"),
			station("BBB", "Springfield Noorb"),
		}
		code, ok := bestMatch(twins, "Springfield Noort", 0.6)
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal("AAA"))
	})

	It("finds nothing in an empty directory", func() {
		_, ok := bestMatch(nil, "Amsterdam", 0.6)
		Expect(ok).To(BeFalse())
	})
})
