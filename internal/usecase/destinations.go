package usecase

import (
	"sort"

	"github.com/wandrly/wandrly-api/internal/domain"
)

// EligibleDestinations returns the sorted, de-duplicated destinations served
// from origin that the policy allows.
func EligibleDestinations(origin string, routes []domain.Route, policy domain.RegionPolicy) []string {
	seen := make(map[string]struct{})
	for _, r := range routes {
		if r.Origin != origin || !policy.AllowsDestination(r.Destination) {
			continue
		}
		seen[r.Destination] = struct{}{}
	}

	destinations := make([]string, 0, len(seen))
	for code := range seen {
		destinations = append(destinations, code)
	}
	sort.Strings(destinations)
	return destinations
}
