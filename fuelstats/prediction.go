package fuelstats

import (
	"sort"

	"github.com/OpenFuelLog/gofuel-lib/models"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

// CalcDailyUsageRate calculates the average km driven per day over the whole
// fuel-history. Returns 0 when the history is too short or inconsistent.
func CalcDailyUsageRate(history []*models.FuelRecord) (kmPerDay float64) {
	if len(history) < 2 {
		return 0
	}
	sorted := make([]*models.FuelRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DateMillis < sorted[j].DateMillis
	})

	first := sorted[0]
	last := sorted[len(sorted)-1]
	deltaKm := int64(last.Km) - int64(first.Km)
	deltaDays := tools.DaysBetween(int64(first.DateMillis), int64(last.DateMillis))
	if deltaDays <= 0 || deltaKm <= 0 {
		return 0
	}
	return float64(deltaKm) / float64(deltaDays)
}

// PredictReachDateMillis estimates the date (Millisecond-Unix-Timestamp) at which
// targetKm will be reached, starting from nowMillis at currentKm with the given
// daily usage rate. Returns 0 when no sensible prediction is possible.
func PredictReachDateMillis(nowMillis int64, currentKm int64, targetKm int64, dailyRate float64) (reachMillis int64) {
	if dailyRate <= 0 || targetKm <= currentKm {
		return 0
	}
	daysToGo := int64(float64(targetKm-currentKm) / dailyRate)
	return nowMillis + daysToGo*tools.MillisPerDay
}
