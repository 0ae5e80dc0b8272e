package fuelstats

import (
	"sort"
	"time"

	"github.com/OpenFuelLog/gofuel-lib/models"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

// YearKpis holds the aggregated fuel-KPIs of one calendar year.
type YearKpis struct {
	TotalCost   float64
	TotalLiters float64
	AvgPrice    float64
	KmEstimate  int64
	MinEff      float64
	MaxEff      float64
	RecordCount int
}

// YearlyKpis aggregates the in-period records of the given year.
// Efficiency figures are computed against the FULL history, not the period-filtered
// subset - an anchor-record just before the period boundary must still be found.
func YearlyKpis(year int, history []*models.FuelRecord) (kpis YearKpis) {
	view := make([]*models.FuelRecord, 0)
	for _, r := range history {
		if tools.GetTimeFromMillis(int64(r.DateMillis)).Year() == year {
			view = append(view, r)
		}
	}
	kpis.RecordCount = len(view)

	var minKm, maxKm int64
	for i, r := range view {
		kpis.TotalCost += float64(r.TotalCost)
		kpis.TotalLiters += float64(r.Liters)
		if i == 0 || int64(r.Km) < minKm {
			minKm = int64(r.Km)
		}
		if i == 0 || int64(r.Km) > maxKm {
			maxKm = int64(r.Km)
		}
	}
	if kpis.TotalLiters > 0 {
		kpis.AvgPrice = kpis.TotalCost / kpis.TotalLiters
	}
	if len(view) > 1 {
		kpis.KmEstimate = maxKm - minKm
	}

	first := true
	for _, r := range view {
		stats := ComputeStats(r, history)
		if stats.KmPerLiter == nil {
			continue
		}
		eff := *stats.KmPerLiter
		if first || eff < kpis.MinEff {
			kpis.MinEff = eff
		}
		if first || eff > kpis.MaxEff {
			kpis.MaxEff = eff
		}
		first = false
	}
	return
}

// AvailableYears returns the distinct years present in the history, most recent
// first. An empty history yields just the current year.
func AvailableYears(dateMillis []int64) (years []int) {
	seen := make(map[int]bool)
	for _, d := range dateMillis {
		seen[tools.GetTimeFromMillis(d).Year()] = true
	}
	if len(seen) == 0 {
		return []int{time.Now().UTC().Year()}
	}
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return
}

// FilterFuelByYear returns the fuel-records of the given year.
// year 0 means "all years".
func FilterFuelByYear(records []*models.FuelRecord, year int) (filtered []*models.FuelRecord) {
	if year == 0 {
		return records
	}
	filtered = make([]*models.FuelRecord, 0)
	for _, r := range records {
		if tools.GetTimeFromMillis(int64(r.DateMillis)).Year() == year {
			filtered = append(filtered, r)
		}
	}
	return
}

// FilterMaintenanceByYear returns the maintenance-records of the given year.
// year 0 means "all years".
func FilterMaintenanceByYear(records []*models.MaintenanceRecord, year int) (filtered []*models.MaintenanceRecord) {
	if year == 0 {
		return records
	}
	filtered = make([]*models.MaintenanceRecord, 0)
	for _, r := range records {
		if tools.GetTimeFromMillis(int64(r.DateMillis)).Year() == year {
			filtered = append(filtered, r)
		}
	}
	return
}

// FilterMaintenanceByCategories returns the records whose expenseType is in the
// given set. An empty set filters nothing.
func FilterMaintenanceByCategories(records []*models.MaintenanceRecord, categories []string) (filtered []*models.MaintenanceRecord) {
	if len(categories) == 0 {
		return records
	}
	wanted := make(map[string]bool)
	for _, c := range categories {
		wanted[c] = true
	}
	filtered = make([]*models.MaintenanceRecord, 0)
	for _, r := range records {
		if wanted[string(r.ExpenseType)] {
			filtered = append(filtered, r)
		}
	}
	return
}

// AllCategories returns the distinct expenseTypes present in the records, sorted.
func AllCategories(records []*models.MaintenanceRecord) (categories []string) {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[string(r.ExpenseType)] = true
	}
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return
}
