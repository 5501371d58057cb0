package http

import (
	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/timeutil"
)

// ToDomainCriteria converts a validated DealSearchRequest to domain.DealSearchCriteria.
func ToDomainCriteria(req *DealSearchRequest) domain.DealSearchCriteria {
	return domain.DealSearchCriteria{
		Origins:     append([]string(nil), req.Origins()...),
		Durations:   append([]int(nil), req.DurationDays()...),
		HorizonDays: req.HorizonDays,
		MaxPrice:    req.MaxPrice,
	}
}

// ToDealSearchResponseDTO converts a domain DealSearchResult to its wire form.
func ToDealSearchResponseDTO(result *domain.DealSearchResult) *DealSearchResponseDTO {
	if result == nil {
		return nil
	}

	dto := &DealSearchResponseDTO{
		Data:     make([]DealDTO, len(result.Deals)),
		Metadata: toMetadataDTO(result.Metadata),
	}
	for i := range result.Deals {
		dto.Data[i] = ToDealDTO(&result.Deals[i])
	}
	return dto
}

// ToDealDTO converts a domain Deal, rendering dates as YYYY-MM-DD.
func ToDealDTO(deal *domain.Deal) DealDTO {
	return DealDTO{
		ID:               deal.ID,
		DepartureAirport: AirportDTO{Code: deal.DepartureAirport.Code, City: deal.DepartureAirport.City},
		ArrivalAirport:   AirportDTO{Code: deal.ArrivalAirport.Code, City: deal.ArrivalAirport.City},
		DepartureDate:    timeutil.FormatDate(deal.DepartureDate),
		ReturnDate:       timeutil.FormatDate(deal.ReturnDate),
		DurationDays:     deal.DurationDays,
		Price: PriceDTO{
			Value:    deal.Price.Value,
			Currency: deal.Price.Currency,
		},
	}
}

func toMetadataDTO(md domain.SearchMetadata) MetadataDTO {
	return MetadataDTO{
		TotalResults:        md.TotalResults,
		OriginsSearched:     md.OriginsSearched,
		DestinationsScanned: md.DestinationsScanned,
		DatePairs:           md.DatePairs,
		FareLookups:         md.FareLookups,
		FareLookupsFailed:   md.FareLookupsFailed,
		CacheHits:           md.CacheHits,
		SearchTimeMs:        md.SearchTimeMs,
	}
}
