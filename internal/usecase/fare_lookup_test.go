package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
)

func TestFareLookupFunc_Statuses(t *testing.T) {
	key := testKey("DUB", "OPO")

	tests := []struct {
		name   string
		fares  domain.DailyFareTable
		err    error
		status domain.LookupStatus
	}{
		{name: "found", fares: domain.DailyFareTable{"2026-10-19": 9.99}, status: domain.LookupFound},
		{name: "empty", fares: domain.DailyFareTable{}, status: domain.LookupEmpty},
		{name: "error", err: errors.New("bad gateway"), status: domain.LookupUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := domain.NewMockFareProvider(ctrl)
			provider.EXPECT().MonthlyFares(gomock.Any(), "DUB", "OPO", october).Return(tt.fares, tt.err)

			rec := &recordingMetrics{}
			lookup := NewFareLookupFunc(provider, time.Second, nil, rec)(context.Background(), key)

			assert.Equal(t, tt.status, lookup.Status)
			assert.Equal(t, key, lookup.Key)
			assert.Equal(t, []string{string(tt.status)}, rec.lookups)
		})
	}
}

func TestFareLookupFunc_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFareProvider(ctrl)
	provider.EXPECT().
		MonthlyFares(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, _ domain.YearMonth) (domain.DailyFareTable, error) {
			<-ctx.Done()
			return nil, domain.NewProviderTimeoutError("mock", "monthly_fares")
		})

	start := time.Now()
	lookup := NewFareLookupFunc(provider, 30*time.Millisecond, nil, nil)(context.Background(), testKey("DUB", "OPO"))

	assert.Equal(t, domain.LookupUnavailable, lookup.Status)
	assert.True(t, domain.IsProviderTimeout(lookup.Err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestFareLookupFunc_LogsFailureReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFareProvider(ctrl)
	provider.EXPECT().
		MonthlyFares(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.NewProviderTimeoutError("ryanair", "monthly_fares"))

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "debug"}, &buf)
	NewFareLookupFunc(provider, time.Second, log, nil)(context.Background(), testKey("DUB", "OPO"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "timeout", entry["reason"])
	assert.Equal(t, testKey("DUB", "OPO").String(), entry["fare_key"])
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", domain.NewProviderTimeoutError("ryanair", "monthly_fares"), "timeout"},
		{"malformed", domain.NewProviderError("ryanair", "monthly_fares", fmt.Errorf("%w: eof", domain.ErrMalformedPayload)), "malformed_payload"},
		{"status", domain.NewProviderStatusError("ryanair", "monthly_fares", 503), "upstream_status"},
		{"other", errors.New("fare provider panic: boom"), "error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureReason(tt.err))
		})
	}
}

func TestFareLookupFunc_LateSuccessCountsAsTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFareProvider(ctrl)
	provider.EXPECT().
		MonthlyFares(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, _ domain.YearMonth) (domain.DailyFareTable, error) {
			<-ctx.Done()
			return domain.DailyFareTable{"2026-10-19": 1}, nil
		})

	lookup := NewFareLookupFunc(provider, 10*time.Millisecond, nil, nil)(context.Background(), testKey("DUB", "OPO"))

	assert.Equal(t, domain.LookupUnavailable, lookup.Status)
	assert.Empty(t, lookup.Fares)
}

func TestFareLookupFunc_RecoversPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := domain.NewMockFareProvider(ctrl)
	provider.EXPECT().
		MonthlyFares(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, domain.YearMonth) (domain.DailyFareTable, error) {
			panic("nil map")
		})

	lookup := NewFareLookupFunc(provider, time.Second, nil, nil)(context.Background(), testKey("DUB", "OPO"))

	assert.Equal(t, domain.LookupUnavailable, lookup.Status)
	assert.Contains(t, lookup.Err.Error(), "panic")
}
