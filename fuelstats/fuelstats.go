// Package fuelstats is responsible for deriving consumption-metrics from the fuel-ledger
// (Full-to-Full-algorithm), for odometer-consistency-validation and for aggregated KPIs.
package fuelstats

import (
	"sort"

	"github.com/OpenFuelLog/gofuel-lib/models"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

const TAG = "gofuel-lib/fuelstats"

// Stats holds the derived metrics for one fuel-record.
// KmPerLiter is nil when no Full-to-Full-interval could be closed
// (partial fill-up, no anchor in history, first record).
type Stats struct {
	DeltaKm       int64
	DaysSinceLast int64
	KmPerLiter    *float64
}

// PartialAccumulation describes the open (not yet anchored) tail of the ledger:
// everything refueled since the last full tank.
type PartialAccumulation struct {
	AccumulatedCost float64
	PartialsCount   int
}

// ComputeStats calculates DeltaKm, DaysSinceLast and KmPerLiter for the given record
// against the full history of the same owner.
//
// KmPerLiter uses the Full-to-Full-algorithm: it is only computable for a full-tank
// record, and accumulates the liters of all partial fill-ups back to the nearest
// preceding full-tank record (the anchor). Missing predecessor, missing anchor or
// non-positive accumulated liters are expected data-states, not errors.
func ComputeStats(current *models.FuelRecord, history []*models.FuelRecord) (stats Stats) {
	if current == nil {
		return
	}

	past := pastRecordsDesc(int64(current.DateMillis), history)
	if len(past) == 0 {
		return
	}

	prev := past[0]
	stats.DeltaKm = int64(current.Km) - int64(prev.Km)
	stats.DaysSinceLast = tools.DaysBetween(int64(prev.DateMillis), int64(current.DateMillis))

	if !bool(current.FullTank) {
		return
	}

	liters := float64(current.Liters)
	var anchor *models.FuelRecord
	for _, r := range past {
		if bool(r.FullTank) {
			anchor = r
			break
		}
		liters += float64(r.Liters)
	}

	if anchor != nil && liters > 0 {
		eff := float64(int64(current.Km)-int64(anchor.Km)) / liters
		stats.KmPerLiter = &eff
	}
	return
}

// CheckPartialAccumulation sums cost & count of the partial fill-ups entered since
// the most recent full tank. Used to warn when too many partials pile up without
// a closing full-tank entry.
func CheckPartialAccumulation(history []*models.FuelRecord) (acc PartialAccumulation) {
	sorted := make([]*models.FuelRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DateMillis != sorted[j].DateMillis {
			return sorted[i].DateMillis > sorted[j].DateMillis
		}
		return sorted[i].Km > sorted[j].Km
	})

	for _, r := range sorted {
		if bool(r.FullTank) {
			break
		}
		acc.AccumulatedCost += float64(r.TotalCost)
		acc.PartialsCount++
	}
	return
}

// pastRecordsDesc returns all records dated strictly before dateMillis,
// most recent first. Same-day records are not predecessors.
func pastRecordsDesc(dateMillis int64, history []*models.FuelRecord) []*models.FuelRecord {
	past := make([]*models.FuelRecord, 0, len(history))
	for _, r := range history {
		if int64(r.DateMillis) < dateMillis {
			past = append(past, r)
		}
	}
	sort.Slice(past, func(i, j int) bool {
		if past[i].DateMillis != past[j].DateMillis {
			return past[i].DateMillis > past[j].DateMillis
		}
		return past[i].Km > past[j].Km
	})
	return past
}
