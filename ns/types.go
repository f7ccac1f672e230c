package main

// Station is one row of the NS station directory.
type Station struct {
	UICCode  string       `json:"UICCode"`
	Code     string       `json:"code"`
	Names    StationNames `json:"namen"`
	Synonyms []string     `json:"synoniemen"`
	Country  string       `json:"land"`
}

// StationNames carries the three label variants the directory publishes.
type StationNames struct {
	Long   string `json:"lang"`
	Medium string `json:"middel"`
	Short  string `json:"kort"`
}

// labels returns every name and synonym of the station, in directory order.
func (s Station) labels() []string {
	labels := make([]string, 0, 3+len(s.Synonyms))
	labels = append(labels, s.Names.Long, s.Names.Medium, s.Names.Short)
	return append(labels, s.Synonyms...)
}

// Trip is one itinerary option from the trip planner.
type Trip struct {
	Status          string    `json:"status"`
	PlannedDuration int       `json:"plannedDurationInMinutes"`
	ActualDuration  int       `json:"actualDurationInMinutes"`
	Transfers       int       `json:"transfers"`
	Legs            []TripLeg `json:"legs"`
}

type TripLeg struct {
	Origin      TripLocation `json:"origin"`
	Destination TripLocation `json:"destination"`
	Product     TripProduct  `json:"product"`
	Cancelled   bool         `json:"cancelled"`
}

type TripLocation struct {
	Name            string `json:"name"`
	PlannedDateTime string `json:"plannedDateTime"`
	ActualDateTime  string `json:"actualDateTime"`
	PlannedTrack    string `json:"plannedTrack"`
}

type TripProduct struct {
	DisplayName  string `json:"displayName"`
	CategoryCode string `json:"categoryCode"`
	Number       string `json:"number"`
}

// Departure is one board row from the departures endpoint.
type Departure struct {
	Direction       string `json:"direction"`
	Name            string `json:"name"`
	PlannedDateTime string `json:"plannedDateTime"`
	ActualDateTime  string `json:"actualDateTime"`
	PlannedTrack    string `json:"plannedTrack"`
	ActualTrack     string `json:"actualTrack"`
	TrainCategory   string `json:"trainCategory"`
	Cancelled       bool   `json:"cancelled"`
}

// Arrival is one board row from the arrivals endpoint.
type Arrival struct {
	Origin          string `json:"origin"`
	Name            string `json:"name"`
	PlannedDateTime string `json:"plannedDateTime"`
	ActualDateTime  string `json:"actualDateTime"`
	PlannedTrack    string `json:"plannedTrack"`
	ActualTrack     string `json:"actualTrack"`
	TrainCategory   string `json:"trainCategory"`
	Cancelled       bool   `json:"cancelled"`
}

// OvFietsLocation is an OV-fiets rental point attached to a station.
type OvFietsLocation struct {
	Name        string       `json:"name"`
	StationCode string       `json:"stationCode"`
	Open        string       `json:"open"`
	Extra       OvFietsExtra `json:"extra"`
}

type OvFietsExtra struct {
	RentalBikes string `json:"rentalBikes"`
}

// PriceOption is one fare option for a journey.
type PriceOption struct {
	Type   string         `json:"type"`
	Prices []ProductPrice `json:"prices"`
}

type ProductPrice struct {
	ClassType    string `json:"classType"`
	ProductType  string `json:"productType"`
	DiscountType string `json:"discountType"`
	Price        int    `json:"price"`
}

// Input types for the tools

type DeparturesInput struct {
	Station string `json:"station" jsonschema:"station name, station code or UIC code to list departures for"`
}

type ArrivalsInput struct {
	Station string `json:"station" jsonschema:"station name, station code or UIC code to list arrivals for"`
}

type StationsInput struct {
	Query string `json:"query,omitempty" jsonschema:"optional search term; when empty the full station directory is listed"`
}

type PlanTripInput struct {
	From             string `json:"from" jsonschema:"origin station name, station code or UIC code"`
	To               string `json:"to" jsonschema:"destination station name, station code or UIC code"`
	DateTime         string `json:"datetime,omitempty" jsonschema:"optional RFC3339 departure (or arrival) moment; defaults to now"`
	SearchForArrival bool   `json:"search_for_arrival,omitempty" jsonschema:"when true, datetime is the desired arrival moment"`
}

type OvFietsInput struct {
	Station string `json:"station" jsonschema:"station name, station code or UIC code to check OV-fiets availability for"`
}

type PriceInput struct {
	From string `json:"from" jsonschema:"origin station name, station code or UIC code"`
	To   string `json:"to" jsonschema:"destination station name, station code or UIC code"`
}

// Output types for the tools

type DeparturesOutput struct {
	Station    string      `json:"station" jsonschema:"resolved station code"`
	Departures []Departure `json:"departures" jsonschema:"upcoming departures in chronological order"`
	Count      int         `json:"count" jsonschema:"number of departures"`
}

type ArrivalsOutput struct {
	Station  string    `json:"station" jsonschema:"resolved station code"`
	Arrivals []Arrival `json:"arrivals" jsonschema:"upcoming arrivals in chronological order"`
	Count    int       `json:"count" jsonschema:"number of arrivals"`
}

type StationRow struct {
	Code    string `json:"code" jsonschema:"short station code"`
	Name    string `json:"name" jsonschema:"full station name"`
	Country string `json:"country" jsonschema:"country code"`
	UICCode string `json:"uic_code" jsonschema:"UIC station identifier"`
}

type StationsOutput struct {
	Stations []StationRow `json:"stations" jsonschema:"matching stations"`
	Count    int          `json:"count" jsonschema:"number of stations"`
}

type PlanTripOutput struct {
	From  string `json:"from" jsonschema:"resolved origin station code"`
	To    string `json:"to" jsonschema:"resolved destination station code"`
	Trips []Trip `json:"trips" jsonschema:"itinerary options, best options first"`
	Count int    `json:"count" jsonschema:"number of itinerary options"`
}

type OvFietsOutput struct {
	Station   string            `json:"station" jsonschema:"resolved station code"`
	Locations []OvFietsLocation `json:"locations" jsonschema:"OV-fiets rental locations at the station"`
	Count     int               `json:"count" jsonschema:"number of rental locations"`
}

type PriceOutput struct {
	From    string        `json:"from" jsonschema:"resolved origin station code"`
	To      string        `json:"to" jsonschema:"resolved destination station code"`
	Options []PriceOption `json:"options" jsonschema:"fare options, prices in eurocents"`
}
