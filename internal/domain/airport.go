package domain

import "strings"

// Route is a scheduled city pair served by the carrier.
type Route struct {
	Origin      string
	Destination string
}

// Airport is one entry of the airport metadata feed.
type Airport struct {
	Code        string
	Name        string
	CountryCode string
}

// Country maps a country code to its display name.
type Country struct {
	Code string
	Name string
}

// AirportDirectory resolves airport codes to display names. It is immutable
// once built.
type AirportDirectory struct {
	displayNames map[string]string
}

// NewAirportDirectory builds a directory from the metadata feed. Airports missing
// a code, name or country code are skipped. A country code with no matching
// country record is used verbatim as the country name.
func NewAirportDirectory(airports []Airport, countries []Country) *AirportDirectory {
	countryNames := make(map[string]string, len(countries))
	for _, c := range countries {
		countryNames[c.Code] = c.Name
	}

	d := &AirportDirectory{
		displayNames: make(map[string]string, len(airports)),
	}
	for _, a := range airports {
		if a.Code == "" || a.Name == "" || a.CountryCode == "" {
			continue
		}
		country, ok := countryNames[a.CountryCode]
		if !ok || country == "" {
			country = a.CountryCode
		}
		d.displayNames[a.Code] = a.Name + ", " + country
	}
	return d
}

// Len returns the number of airports in the directory.
func (d *AirportDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.displayNames)
}

// DisplayName returns "City, Country" for code, or code itself when unknown.
func (d *AirportDirectory) DisplayName(code string) string {
	if d != nil {
		if name, ok := d.displayNames[code]; ok {
			return name
		}
	}
	return code
}

// City returns the part of the display name before the first comma.
func (d *AirportDirectory) City(code string) string {
	name := d.DisplayName(code)
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// Ref builds the AirportRef used in deals.
func (d *AirportDirectory) Ref(code string) AirportRef {
	return AirportRef{Code: code, City: d.City(code)}
}
