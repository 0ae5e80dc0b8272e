package fuelstats

import (
	"fmt"
	"sort"

	"github.com/OpenFuelLog/gofuel-lib/models"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

// The sandwich-check: a candidate odometer value must lie between the odometer
// values of its chronological neighbours. Same-date entries are not ordered
// against each other, so only strictly earlier/later records are compared.

// CheckFuelOdometer validates the candidate (dateMillis, km) against the fuel-history.
// excludeId skips the record currently being edited (0 = nothing to exclude).
// ok==false comes with a human-readable violation naming the blocking record.
func CheckFuelOdometer(dateMillis int64, km int64, history []*models.FuelRecord, excludeId int64) (ok bool, violation string) {
	type rec struct {
		dateMillis int64
		km         int64
	}
	recs := make([]rec, 0, len(history))
	for _, r := range history {
		if excludeId != 0 && int64(r.Id) == excludeId {
			continue
		}
		recs = append(recs, rec{int64(r.DateMillis), int64(r.Km)})
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].dateMillis != recs[j].dateMillis {
			return recs[i].dateMillis < recs[j].dateMillis
		}
		return recs[i].km < recs[j].km
	})

	var prev, next *rec
	for i := range recs {
		if recs[i].dateMillis < dateMillis {
			prev = &recs[i]
		} else if recs[i].dateMillis > dateMillis {
			next = &recs[i]
			break
		}
	}

	if prev != nil && km < prev.km {
		return false, fmt.Sprintf("odometer %d below the record of %s (%d)", km, tools.GetDateOnlyForText(prev.dateMillis), prev.km)
	}
	if next != nil && km > next.km {
		return false, fmt.Sprintf("odometer %d above the record of %s (%d)", km, tools.GetDateOnlyForText(next.dateMillis), next.km)
	}
	return true, ""
}

// CheckMaintenanceOdometer validates the candidate (dateMillis, km) against the
// maintenance-history, analogous to CheckFuelOdometer.
func CheckMaintenanceOdometer(dateMillis int64, km int64, history []*models.MaintenanceRecord, excludeId int64) (ok bool, violation string) {
	fuelLike := make([]*models.FuelRecord, 0, len(history))
	for _, m := range history {
		fuelLike = append(fuelLike, &models.FuelRecord{
			Id:         m.Id,
			DateMillis: m.DateMillis,
			Km:         m.Km,
		})
	}
	return CheckFuelOdometer(dateMillis, km, fuelLike, excludeId)
}
