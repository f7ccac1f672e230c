package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handlers", func() {
	ctx := context.Background()
	var server *httptest.Server

	startServer := func(mux *http.ServeMux) {
		server = httptest.NewServer(mux)
		cfg = Config{
			BaseURL:             server.URL,
			PlacesBaseURL:       server.URL,
			APIKey:              "test-key",
			Timeout:             time.Second,
			FuzzyThreshold:      defaultFuzzyThreshold,
			PreferredCategories: defaultPreferredCategories,
		}
		client = NewClient(cfg)
		resolver = NewResolver(client, cfg.FuzzyThreshold)
	}

	AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	Context("GetDepartures", func() {
		It("resolves a station name before hitting the board", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/v2/stations", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("q")).To(Equal("Rotterdam Centraal"))
				w.Write([]byte(`{"payload":[{"code":"RTD","namen":{"lang":"Rotterdam Centraal"}}]}`))
			})
			mux.HandleFunc("/v2/departures", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("station")).To(Equal("RTD"))
				w.Write([]byte(`{"payload":{"departures":[{"direction":"Amsterdam Centraal"}]}}`))
			})
			startServer(mux)

			_, out, err := GetDepartures(ctx, nil, DeparturesInput{Station: "Rotterdam Centraal"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Station).To(Equal("RTD"))
			Expect(out.Count).To(Equal(1))
		})

		It("propagates an unresolved station as a typed error", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/v2/stations", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"payload":[]}`))
			})
			startServer(mux)

			_, _, err := GetDepartures(ctx, nil, DeparturesInput{Station: "nowhere at all"})
			var unresolved *UnresolvedStationError
			Expect(errors.As(err, &unresolved)).To(BeTrue())
			Expect(unresolved.Query).To(Equal("nowhere at all"))
		})
	})

	Context("PlanTrip", func() {
		It("ranks the planner's options before returning them", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/v3/trips", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("fromStation")).To(Equal("ASD"))
				Expect(r.URL.Query().Get("toStation")).To(Equal("RTD"))
				w.Write([]byte(`{"trips":[
					{"status":"CANCELLED","legs":[{"product":{"categoryCode":"ICD","number":"900"}}]},
					{"status":"NORMAL","legs":[{"product":{"categoryCode":"SPR","number":"5600"}}]},
					{"status":"NORMAL","legs":[{"product":{"categoryCode":"ICD","number":"1000"}}]}
				]}`))
			})
			startServer(mux)

			_, out, err := PlanTrip(ctx, nil, PlanTripInput{From: "ASD", To: "RTD"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.From).To(Equal("ASD"))
			Expect(out.To).To(Equal("RTD"))
			Expect(out.Count).To(Equal(3))
			Expect(out.Trips[0].Legs[0].Product.Number).To(Equal("1000"))
			Expect(out.Trips[1].Legs[0].Product.Number).To(Equal("5600"))
			Expect(out.Trips[2].Legs[0].Product.Number).To(Equal("900"))
		})
	})

	Context("GetOvFiets", func() {
		It("passes the resolved code to the places API", func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/ovfiets", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("station_code")).To(Equal("UT"))
				w.Write([]byte(`{"payload":[{"name":"Utrecht Centraal","stationCode":"UT","extra":{"rentalBikes":"12"}}]}`))
			})
			startServer(mux)

			_, out, err := GetOvFiets(ctx, nil, OvFietsInput{Station: "UT"})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(1))
			Expect(out.Locations[0].Extra.RentalBikes).To(Equal("12"))
		})
	})
})
