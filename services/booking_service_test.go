package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/config"
	"travel_planner/models"
)

func TestSearchFlightsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var params BookingParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, 3, params.Days)
		assert.Equal(t, 2, params.Travelers)

		json.NewEncoder(w).Encode(bookingResp{
			Offers: []models.Offer{
				{ID: "f1", Provider: "mock-air", Price: 1200, Currency: "CNY"},
			},
			Providers: []string{"mock-air"},
		})
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Booking.FlightsURL = server.URL
	cfg.Booking.APIKey = "test-key"

	offers, err := SearchFlights(context.Background(), cfg, BookingParams{Days: 3, Travelers: 2})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "mock-air", offers[0].Provider)
	assert.InDelta(t, 1200.0, offers[0].Price, 1e-9)
}

func TestSearchFlightsMissingConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Booking.FlightsURL = ""

	_, err := SearchFlights(context.Background(), cfg, BookingParams{Days: 1, Travelers: 1})
	assert.Error(t, err)
}

func TestSearchHotelsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Booking.HotelsURL = server.URL

	_, err := SearchHotels(context.Background(), cfg, BookingParams{Days: 2, Travelers: 1})
	assert.Error(t, err)
}

func TestSearchOffersContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(bookingResp{})
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Booking.HotelsURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := SearchHotels(ctx, cfg, BookingParams{Days: 1, Travelers: 1})
	assert.Error(t, err)
}

// 预订服务不可用时行程照常生成，失败记录为警告
func TestFetchOffersDegradesToWarnings(t *testing.T) {
	cfg := config.Default()
	cfg.Booking.FlightsURL = "http://127.0.0.1:1/flights"
	cfg.Booking.HotelsURL = ""
	cfg.Booking.TimeoutSec = 1

	cost := 100.0
	analyses := []models.ContentAnalysis{
		{
			ContentID:    "c1",
			QualityScore: 0.6,
			Activities: []models.Activity{
				{Name: "逛夜市", Category: "food", EstimatedCost: &cost},
			},
		},
	}

	opts := (&models.PlanOptions{IncludeFlights: true}).Resolve()
	plan, err := GenerateItinerary(context.Background(), cfg, analyses, planRequirements(1, nil), opts)
	require.NoError(t, err)

	assert.Empty(t, plan.Flights)
	assert.NotEmpty(t, plan.Warnings)
	// 机票搜索失败不影响活动预算
	assert.InDelta(t, 100.0, plan.EstimatedBudget, 1e-9)
}
