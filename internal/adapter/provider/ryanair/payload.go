package ryanair

import (
	"encoding/json"
	"fmt"

	"github.com/wandrly/wandrly-api/internal/domain"
)

// routeDTO is one element of the routes feed.
type routeDTO struct {
	AirportFrom string `json:"airportFrom"`
	AirportTo   string `json:"airportTo"`
}

// commonPayload is the airport metadata feed.
type commonPayload struct {
	Airports  []airportDTO `json:"airports"`
	Countries []countryDTO `json:"countries"`
}

type airportDTO struct {
	IataCode    string `json:"iataCode"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

type countryDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// faresPayload is the cheapest-per-day response of the fare finder.
type faresPayload struct {
	Outbound struct {
		Fares []dayFareDTO `json:"fares"`
	} `json:"outbound"`
}

type dayFareDTO struct {
	Day         string    `json:"day"`
	Unavailable bool      `json:"unavailable"`
	Price       *priceDTO `json:"price"`
}

type priceDTO struct {
	Value        *float64 `json:"value"`
	CurrencyCode string   `json:"currencyCode"`
}

// ParseRoutes decodes a routes snapshot or response. Entries missing either
// airport are skipped.
func ParseRoutes(data []byte) ([]domain.Route, error) {
	var dtos []routeDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("%w: routes: %v", domain.ErrMalformedPayload, err)
	}
	return toRoutes(dtos), nil
}

// ParseAirports decodes an airport metadata snapshot or response.
func ParseAirports(data []byte) (*domain.AirportDirectory, error) {
	var payload commonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: airports: %v", domain.ErrMalformedPayload, err)
	}
	return toDirectory(payload), nil
}

func toRoutes(dtos []routeDTO) []domain.Route {
	routes := make([]domain.Route, 0, len(dtos))
	for _, r := range dtos {
		if r.AirportFrom == "" || r.AirportTo == "" {
			continue
		}
		routes = append(routes, domain.Route{Origin: r.AirportFrom, Destination: r.AirportTo})
	}
	return routes
}

func toDirectory(p commonPayload) *domain.AirportDirectory {
	airports := make([]domain.Airport, 0, len(p.Airports))
	for _, a := range p.Airports {
		airports = append(airports, domain.Airport{Code: a.IataCode, Name: a.Name, CountryCode: a.CountryCode})
	}
	countries := make([]domain.Country, 0, len(p.Countries))
	for _, c := range p.Countries {
		countries = append(countries, domain.Country{Code: c.Code, Name: c.Name})
	}
	return domain.NewAirportDirectory(airports, countries)
}

// toFareTable keeps the days that are available and carry a price.
func toFareTable(p faresPayload) domain.DailyFareTable {
	table := make(domain.DailyFareTable, len(p.Outbound.Fares))
	for _, f := range p.Outbound.Fares {
		if f.Unavailable || f.Price == nil || f.Price.Value == nil || f.Day == "" {
			continue
		}
		if *f.Price.Value < 0 {
			continue
		}
		table[f.Day] = *f.Price.Value
	}
	return table
}
