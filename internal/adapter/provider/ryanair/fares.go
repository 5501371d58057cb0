package ryanair

import (
	"context"
	"net/url"
	"strings"

	"github.com/wandrly/wandrly-api/internal/domain"
)

const opMonthlyFares = "monthly_fares"

// FareProvider implements domain.FareProvider over the fare finder's
// cheapest-per-day endpoint.
type FareProvider struct {
	client *Client
}

// NewFareProvider creates a FareProvider.
func NewFareProvider(client *Client) *FareProvider {
	return &FareProvider{client: client}
}

// Name implements domain.FareProvider.
func (p *FareProvider) Name() string {
	return ProviderName
}

// MonthlyFares implements domain.FareProvider. One request covers the whole month.
func (p *FareProvider) MonthlyFares(ctx context.Context, origin, destination string, month domain.YearMonth) (domain.DailyFareTable, error) {
	cfg := p.client.Config()
	endpoint := strings.TrimRight(cfg.FaresURL, "/") + "/" + url.PathEscape(origin) + "/" + url.PathEscape(destination) + "/cheapestPerDay"

	query := url.Values{}
	query.Set("outboundMonthOfDate", month.FirstDay().Format("2006-01-02"))
	query.Set("currency", cfg.Currency)

	var payload faresPayload
	if _, err := p.client.getJSON(ctx, opMonthlyFares, endpoint, query, cfg.FareTimeout, &payload); err != nil {
		return nil, err
	}
	return toFareTable(payload), nil
}

// Ensure FareProvider implements domain.FareProvider at compile time.
var _ domain.FareProvider = (*FareProvider)(nil)
