package usecase

import (
	"sort"

	"github.com/wandrly/wandrly-api/internal/domain"
)

// RankDeals returns a copy of deals sorted ascending by price. Ties keep
// discovery order.
func RankDeals(deals []domain.Deal) []domain.Deal {
	result := make([]domain.Deal, len(deals))
	copy(result, deals)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Price.Value < result[j].Price.Value
	})
	return result
}
