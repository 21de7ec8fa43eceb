package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
	"github.com/kaancelik05/swimago-api-sub000/pkg/ptr"
)

func poolVenue(hourlyRate float64) *venueservice.Venue {
	return &venueservice.Venue{
		ID:               1,
		Type:             string(domain.VenuePool),
		BasePricePerHour: hourlyRate,
		BasePricePerDay:  hourlyRate * 8,
		Currency:         "EUR",
	}
}

func beachVenue(hourlyRate, dailyRate float64) *venueservice.Venue {
	return &venueservice.Venue{
		ID:               2,
		Type:             string(domain.VenueBeach),
		BasePricePerHour: hourlyRate,
		BasePricePerDay:  dailyRate,
		Currency:         "EUR",
	}
}

func yachtVenue(dailyRate float64) *venueservice.Venue {
	return &venueservice.Venue{
		ID:              3,
		Type:            string(domain.VenueYacht),
		BasePricePerDay: dailyRate,
		Currency:        "EUR",
	}
}

func at(day, hour int) time.Time {
	return time.Date(2026, 7, day, hour, 0, 0, 0, time.UTC)
}

func TestCalculate_PoolHourlyWithCeilRounding(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	// 2.5 часа по 10 за час: округление вверх до 3 часов
	start := at(15, 10)
	end := start.Add(150 * time.Minute)

	quote, err := calc.Calculate(poolVenue(10), start, end, 1, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingHourly, quote.BookingType)
	assert.Equal(t, 3, quote.UnitCount)
	assert.Equal(t, 10.0, quote.UnitPrice)
	assert.Equal(t, 30.0, quote.TotalPrice)
	assert.Equal(t, "EUR", quote.Currency)
}

func TestCalculate_BeachShortStayIsHourly(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	quote, err := calc.Calculate(beachVenue(15, 100), at(15, 9), at(15, 13), 1, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingHourly, quote.BookingType)
	assert.Equal(t, 4, quote.UnitCount)
	assert.Equal(t, 60.0, quote.TotalPrice)
}

func TestCalculate_BeachLongStayIsDailyWithCeilRounding(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	// 36 часов по 100 за день: округление вверх до 2 дней
	start := at(15, 10)
	end := start.Add(36 * time.Hour)

	quote, err := calc.Calculate(beachVenue(15, 100), start, end, 1, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingDaily, quote.BookingType)
	assert.Equal(t, 2, quote.UnitCount)
	assert.Equal(t, 200.0, quote.TotalPrice)
}

func TestCalculate_ExactDayBoundaryIsDaily(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	quote, err := calc.Calculate(beachVenue(15, 100), at(15, 0), at(16, 0), 1, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingDaily, quote.BookingType)
	assert.Equal(t, 1, quote.UnitCount)
	assert.Equal(t, 100.0, quote.TotalPrice)
}

func TestCalculate_YachtAlwaysDaily(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	// Даже короткая прогулка на яхте тарифицируется как день
	quote, err := calc.Calculate(yachtVenue(500), at(15, 10), at(15, 14), 1, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingDaily, quote.BookingType)
	assert.Equal(t, 1, quote.UnitCount)
	assert.Equal(t, 500.0, quote.TotalPrice)
}

func TestCalculate_HourlyOverrideFromStartDate(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	start := at(15, 10)
	overrides := map[time.Time]*domain.DailyOverride{
		domain.DayKey(start): {
			ListingID:   1,
			Date:        domain.DayKey(start),
			Price:       120,
			HourlyPrice: ptr.Ptr(25.0),
			IsAvailable: true,
		},
	}

	quote, err := calc.Calculate(poolVenue(10), start, start.Add(2*time.Hour), 1, overrides)

	require.NoError(t, err)
	assert.Equal(t, 25.0, quote.UnitPrice)
	assert.Equal(t, 50.0, quote.TotalPrice)
}

func TestCalculate_PerDayOverridesPolicy(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	// 3 дня: первый по 230, второй по базовой 100, третий по 150
	start := at(15, 0)
	end := at(18, 0)
	overrides := map[time.Time]*domain.DailyOverride{
		domain.DayKey(at(15, 0)): {Date: domain.DayKey(at(15, 0)), Price: 230, IsAvailable: true},
		domain.DayKey(at(17, 0)): {Date: domain.DayKey(at(17, 0)), Price: 150, IsAvailable: true},
	}

	quote, err := calc.Calculate(yachtVenue(100), start, end, 1, overrides)

	require.NoError(t, err)
	assert.Equal(t, 3, quote.UnitCount)
	assert.Equal(t, 480.0, quote.TotalPrice)
}

func TestCalculate_FlatBasePolicyIgnoresOverrides(t *testing.T) {
	calc := NewCalculator(PolicyFlatBase, 1.0)

	start := at(15, 0)
	end := at(18, 0)
	overrides := map[time.Time]*domain.DailyOverride{
		domain.DayKey(start): {Date: domain.DayKey(start), Price: 230, IsAvailable: true},
	}

	quote, err := calc.Calculate(yachtVenue(100), start, end, 1, overrides)

	require.NoError(t, err)
	assert.Equal(t, 300.0, quote.TotalPrice)
}

func TestCalculate_GuestSurcharge(t *testing.T) {
	// Множитель 1.1: +10% за каждого гостя сверх первого
	calc := NewCalculator(PolicyPerDayOverrides, 1.1)

	quote, err := calc.Calculate(poolVenue(10), at(15, 10), at(15, 12), 3, nil)

	require.NoError(t, err)
	assert.InDelta(t, 24.0, quote.TotalPrice, 1e-9)
}

func TestCalculate_GuestSurchargeDisabledByDefaultMultiplier(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	quote, err := calc.Calculate(poolVenue(10), at(15, 10), at(15, 12), 10, nil)

	require.NoError(t, err)
	assert.Equal(t, 20.0, quote.TotalPrice)
}

func TestCalculate_InvalidTimeRange(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)

	_, err := calc.Calculate(poolVenue(10), at(15, 12), at(15, 12), 1, nil)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = calc.Calculate(poolVenue(10), at(15, 12), at(15, 10), 1, nil)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCalculate_UnknownVenueType(t *testing.T) {
	calc := NewCalculator(PolicyPerDayOverrides, 1.0)
	venue := &venueservice.Venue{Type: "villa", Currency: "EUR"}

	_, err := calc.Calculate(venue, at(15, 10), at(15, 12), 1, nil)
	assert.ErrorIs(t, err, ErrUnknownVenueType)
}

func TestParsePolicy(t *testing.T) {
	policy, err := ParsePolicy("flat_base")
	require.NoError(t, err)
	assert.Equal(t, PolicyFlatBase, policy)

	policy, err = ParsePolicy("per_day_overrides")
	require.NoError(t, err)
	assert.Equal(t, PolicyPerDayOverrides, policy)

	_, err = ParsePolicy("dynamic")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
