package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/kaancelik05/swimago-api-sub000/internal/domain"
	"github.com/kaancelik05/swimago-api-sub000/internal/integrations/venueservice"
)

// Policy политика тарификации многодневных бронирований.
//
// Переопределения цен в календаре заданы по датам, а многодневное бронирование
// покрывает несколько дат. PolicyFlatBase игнорирует переопределения и считает
// всё по базовому тарифу площадки; PolicyPerDayOverrides тарифицирует каждый
// оплачиваемый день по цене его календарной даты.
type Policy string

const (
	PolicyFlatBase        Policy = "flat_base"
	PolicyPerDayOverrides Policy = "per_day_overrides"
)

// ParsePolicy конвертирует строку конфигурации в Policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyFlatBase, PolicyPerDayOverrides:
		return Policy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// Quote результат расчета стоимости бронирования
type Quote struct {
	BookingType domain.BookingType
	UnitPrice   float64 // базовая ставка за час или за день
	UnitCount   int     // количество оплачиваемых часов или дней
	TotalPrice  float64
	Currency    string
}

// Calculator калькулятор стоимости бронирования.
// Чистый компонент: не ходит в БД, переопределения передаются картой по датам.
type Calculator struct {
	policy               Policy
	guestCountMultiplier float64
}

// NewCalculator создает калькулятор с заданной политикой.
// guestCountMultiplier = 1.0 отключает доплату за гостей.
func NewCalculator(policy Policy, guestCountMultiplier float64) *Calculator {
	if guestCountMultiplier <= 0 {
		guestCountMultiplier = domain.DefaultGuestCountMultiplier
	}
	return &Calculator{
		policy:               policy,
		guestCountMultiplier: guestCountMultiplier,
	}
}

// Calculate считает стоимость интервала [start, end) для площадки.
//
// Почасовая тарификация: бассейны всегда, пляжи при длительности меньше суток.
// Всё остальное тарифицируется посуточно. Неполный час и неполный день
// округляются вверх: бронирование на 1.5 часа оплачивается как 2 часа.
//
// overrides - карта переопределений по UTC-дате (domain.DayKey).
func (c *Calculator) Calculate(
	venue *venueservice.Venue,
	start, end time.Time,
	guestCount int,
	overrides map[time.Time]*domain.DailyOverride,
) (*Quote, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	venueType, err := domain.ParseVenueType(venue.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownVenueType, err)
	}

	duration := end.Sub(start)

	var quote *Quote
	if useHourlyBilling(venueType, duration) {
		quote = c.calculateHourly(venue, start, duration, overrides)
	} else {
		quote = c.calculateDaily(venue, start, duration, overrides)
	}

	quote.TotalPrice *= c.guestSurchargeFactor(guestCount)
	quote.Currency = venue.Currency

	return quote, nil
}

// useHourlyBilling определяет почасовую тарификацию:
// бассейн всегда почасовой, пляж почасовой при длительности меньше суток
func useHourlyBilling(venueType domain.VenueType, duration time.Duration) bool {
	if venueType == domain.VenuePool {
		return true
	}
	return venueType == domain.VenueBeach && duration < domain.HoursPerBillableDay*time.Hour
}

func (c *Calculator) calculateHourly(
	venue *venueservice.Venue,
	start time.Time,
	duration time.Duration,
	overrides map[time.Time]*domain.DailyOverride,
) *Quote {
	hours := int(math.Ceil(duration.Hours()))

	// Почасовое бронирование лежит в пределах одной-двух дат; применяем
	// почасовое переопределение даты начала, если оно задано
	rate := venue.BasePricePerHour
	if override, ok := overrides[domain.DayKey(start)]; ok && override.HourlyPrice != nil {
		rate = *override.HourlyPrice
	}

	return &Quote{
		BookingType: domain.BookingHourly,
		UnitPrice:   rate,
		UnitCount:   hours,
		TotalPrice:  float64(hours) * rate,
	}
}

func (c *Calculator) calculateDaily(
	venue *venueservice.Venue,
	start time.Time,
	duration time.Duration,
	overrides map[time.Time]*domain.DailyOverride,
) *Quote {
	days := int(math.Ceil(duration.Hours() / domain.HoursPerBillableDay))

	quote := &Quote{
		BookingType: domain.BookingDaily,
		UnitPrice:   venue.BasePricePerDay,
		UnitCount:   days,
	}

	if c.policy == PolicyFlatBase {
		quote.TotalPrice = float64(days) * venue.BasePricePerDay
		return quote
	}

	// PolicyPerDayOverrides: каждый оплачиваемый день по цене своей даты
	total := 0.0
	for i := 0; i < days; i++ {
		day := domain.DayKey(start).AddDate(0, 0, i)
		rate := venue.BasePricePerDay
		if override, ok := overrides[day]; ok {
			rate = override.Price
		}
		total += rate
	}
	quote.TotalPrice = total

	return quote
}

// guestSurchargeFactor линейная доплата за каждого гостя сверх первого.
// При множителе 1.0 фактор всегда 1: стоимость не зависит от числа гостей.
func (c *Calculator) guestSurchargeFactor(guestCount int) float64 {
	if guestCount <= 1 || c.guestCountMultiplier == 1.0 {
		return 1.0
	}
	return 1.0 + (c.guestCountMultiplier-1.0)*float64(guestCount-1)
}
