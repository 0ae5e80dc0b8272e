// maps all api-relevant golang-objects to JSON-objects
package jsonapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/importManager"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/maintenanceManager"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/reminderManager"
	"github.com/OpenFuelLog/gofuel-lib/tools"
	"github.com/OpenFuelLog/gofuel-lib/translate"
)

const jaTag = "gofuel-lib/jsonapi/jsonApi.go"

// InvalidateFunc is fired after every committing write, so the caller can drop
// derived views (KPI-charts, ledgers) from its cache. The core holds no cache
// state itself.
type InvalidateFunc func()

func fireInvalidate(invalidate InvalidateFunc) {
	if invalidate != nil {
		invalidate()
	}
}

// GetLedger returns the owners fuel-ledger with the Full-to-Full-metrics of every
// entry, marshaled.
func GetLedger(ownerId string, dbCon *sql.DB) (marshaled []byte, err error) {
	defer func() { // Error handling, if this panics (should not happen)
		if errr := recover(); errr != nil {
			marshaled = []byte("unable to get ledger")
			err = errors.New(fmt.Sprintf("%s", errr))
		}
	}()
	entries, err := fuelManager.GetLedgerWithStats(dbCon, ownerId)
	if err != nil {
		marshaled = []byte("unable to convert ledger to JSON")
		dbg.E(jaTag, "unable to get ledger : ", err)
		return
	}
	marshaled, err = json.Marshal(struct {
		Entries []*fuelManager.LedgerEntry `json:"entries"`
	}{entries})
	return
}

// GetYearlyOverview returns the KPIs of the given year (0 = current year)
// together with the available years and the partial-fill-accumulation since the
// last full tank, marshaled.
func GetYearlyOverview(ownerId string, year int, dbCon *sql.DB) (marshaled []byte, err error) {
	defer func() {
		if errr := recover(); errr != nil {
			marshaled = []byte("unable to get yearly overview")
			err = errors.New(fmt.Sprintf("%s", errr))
		}
	}()
	history, err := fuelManager.GetFuelRecords(dbCon, ownerId)
	if err != nil {
		dbg.E(jaTag, "unable to get fuel-records : ", err)
		return
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	dates := make([]int64, 0, len(history))
	for _, r := range history {
		dates = append(dates, int64(r.DateMillis))
	}
	marshaled, err = json.Marshal(struct {
		Year     int                          `json:"year"`
		Years    []int                        `json:"years"`
		Kpis     fuelstats.YearKpis           `json:"kpis"`
		Partials fuelstats.PartialAccumulation `json:"partials"`
	}{year, fuelstats.AvailableYears(dates), fuelstats.YearlyKpis(year, history), fuelstats.CheckPartialAccumulation(history)})
	return
}

// GetCarOverview returns the health-score, the overdue items, the due reminder
// notices and the projected date of reaching the next km-deadline, marshaled.
// The current odometer is taken from the newest fuel-record.
func GetCarOverview(ownerId string, T *translate.Translater, dbCon *sql.DB) (marshaled []byte, err error) {
	defer func() {
		if errr := recover(); errr != nil {
			marshaled = []byte("unable to get car overview")
			err = errors.New(fmt.Sprintf("%s", errr))
		}
	}()
	history, err := fuelManager.GetFuelRecords(dbCon, ownerId)
	if err != nil {
		dbg.E(jaTag, "unable to get fuel-records : ", err)
		return
	}
	var currentKm int64
	if len(history) > 0 {
		currentKm = int64(history[0].Km)
	}
	nowMillis := tools.GetDateMillis(time.Now().UTC())

	deadlines, err := maintenanceManager.GetActiveDeadlines(dbCon, ownerId)
	if err != nil {
		dbg.E(jaTag, "unable to get deadlines : ", err)
		return
	}
	reminders, err := reminderManager.GetActiveReminders(dbCon, ownerId)
	if err != nil {
		dbg.E(jaTag, "unable to get reminders : ", err)
		return
	}
	score, overdue := fuelstats.CalcCarHealthScore(currentKm, nowMillis, deadlines, reminders)
	notices, err := reminderManager.GetDueNotices(dbCon, ownerId, currentKm, nowMillis, T)
	if err != nil {
		dbg.E(jaTag, "unable to get due-notices : ", err)
		return
	}

	// Projected date of hitting the nearest km-deadline, 0 when not predictable.
	var nextDeadlineKm int64
	for _, d := range deadlines {
		if int64(d.ExpiryKm) > currentKm && (nextDeadlineKm == 0 || int64(d.ExpiryKm) < nextDeadlineKm) {
			nextDeadlineKm = int64(d.ExpiryKm)
		}
	}
	var reachMillis int64
	if nextDeadlineKm > 0 {
		rate := fuelstats.CalcDailyUsageRate(history)
		reachMillis = fuelstats.PredictReachDateMillis(nowMillis, currentKm, nextDeadlineKm, rate)
	}

	marshaled, err = json.Marshal(struct {
		CurrentKm      int64                        `json:"currentKm"`
		HealthScore    int                          `json:"healthScore"`
		OverdueItems   []string                     `json:"overdueItems"`
		DueNotices     []*reminderManager.DueNotice `json:"dueNotices"`
		NextDeadlineKm int64                        `json:"nextDeadlineKm"`
		ReachDate      int64                        `json:"reachDate"`
	}{currentKm, score, overdue, notices, nextDeadlineKm, reachMillis})
	return
}

// CreateFuelRecord creates a fuel-record and fires the cache-invalidation on success.
func CreateFuelRecord(ownerId string, recordJson string, invalidate InvalidateFunc, dbCon *sql.DB) (marshaled []byte, err error) {
	res, err := fuelManager.JSONCreateFuelRecord(ownerId, recordJson, dbCon)
	if err != nil {
		return
	}
	if res.Success {
		fireInvalidate(invalidate)
	}
	return json.Marshal(res)
}

// UpdateFuelRecord updates a fuel-record and fires the cache-invalidation on success.
func UpdateFuelRecord(ownerId string, recordJson string, invalidate InvalidateFunc, dbCon *sql.DB) (marshaled []byte, err error) {
	res, err := fuelManager.JSONUpdateFuelRecord(ownerId, recordJson, dbCon)
	if err != nil {
		return
	}
	if res.Success {
		fireInvalidate(invalidate)
	}
	return json.Marshal(res)
}

// DeleteFuelRecord deletes a fuel-record and fires the cache-invalidation on success.
func DeleteFuelRecord(ownerId string, recordJson string, invalidate InvalidateFunc, dbCon *sql.DB) (marshaled []byte, err error) {
	res, err := fuelManager.JSONDeleteFuelRecord(ownerId, recordJson, dbCon)
	if err != nil {
		return
	}
	if res.Success {
		fireInvalidate(invalidate)
	}
	return json.Marshal(res)
}

// CommitFuelImport commits a re-validated fuel-review-table and fires the
// cache-invalidation when at least one row was written.
func CommitFuelImport(ownerId string, rowsJson string, invalidate InvalidateFunc, dbCon *sql.DB) (marshaled []byte, err error) {
	res, err := importManager.JSONCommitFuel(ownerId, rowsJson, dbCon)
	if err != nil {
		return
	}
	if res.Created+res.Updated > 0 {
		fireInvalidate(invalidate)
	}
	return json.Marshal(res)
}

// CommitMaintenanceImport commits a re-validated maintenance-review-table and
// fires the cache-invalidation when at least one row was written.
func CommitMaintenanceImport(ownerId string, rowsJson string, invalidate InvalidateFunc, dbCon *sql.DB) (marshaled []byte, err error) {
	res, err := importManager.JSONCommitMaintenance(ownerId, rowsJson, dbCon)
	if err != nil {
		return
	}
	if res.Created+res.Updated > 0 {
		fireInvalidate(invalidate)
	}
	return json.Marshal(res)
}
