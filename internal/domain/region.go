package domain

// DefaultHomeAirports are the traveler's home-region airports. They are never
// destinations.
var DefaultHomeAirports = []string{"DUB", "SNN", "ORK", "NOC", "KIR"}

// DefaultExcludedAirports are United Kingdom airports, deliberately avoided as
// destinations.
var DefaultExcludedAirports = []string{
	"ABZ", "BFS", "BHD", "BHX", "BOH", "BRS", "CWL", "DSA", "DND",
	"EDI", "EMA", "EXT", "GLA", "HUY", "INV", "LBA", "LDY", "LGW",
	"LPL", "LTN", "MAN", "NCL", "NQY", "PIK", "SEN", "SOU", "STN",
}

// RegionPolicy decides which airports may be destinations.
type RegionPolicy struct {
	home     []string
	homeSet  map[string]struct{}
	excluded map[string]struct{}
}

// NewRegionPolicy builds a policy from home and excluded airport codes.
func NewRegionPolicy(home, excluded []string) RegionPolicy {
	p := RegionPolicy{
		home:     append([]string(nil), home...),
		homeSet:  make(map[string]struct{}, len(home)),
		excluded: make(map[string]struct{}, len(excluded)),
	}
	for _, c := range home {
		p.homeSet[c] = struct{}{}
	}
	for _, c := range excluded {
		p.excluded[c] = struct{}{}
	}
	return p
}

// DefaultRegionPolicy returns the Irish home region with UK airports excluded.
func DefaultRegionPolicy() RegionPolicy {
	return NewRegionPolicy(DefaultHomeAirports, DefaultExcludedAirports)
}

// HomeAirports returns a copy of the home-region codes in configured order.
func (p RegionPolicy) HomeAirports() []string {
	return append([]string(nil), p.home...)
}

// IsHome reports whether code belongs to the home region.
func (p RegionPolicy) IsHome(code string) bool {
	_, ok := p.homeSet[code]
	return ok
}

// IsExcluded reports whether code belongs to the excluded region.
func (p RegionPolicy) IsExcluded(code string) bool {
	_, ok := p.excluded[code]
	return ok
}

// AllowsDestination reports whether code may be a trip destination.
func (p RegionPolicy) AllowsDestination(code string) bool {
	return code != "" && !p.IsHome(code) && !p.IsExcluded(code)
}
