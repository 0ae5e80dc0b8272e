// Package importManager is responsible for reconciling bulk-edits (workbook-imports,
// grid-edits) against the ledger: every incoming row gets classified as
// New/Modified/Unchanged/Error/Warning, and an approved review-table gets committed
// best-effort, row by row.
package importManager

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/Compufreak345/dbg"
	"github.com/google/uuid"
	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/settingsManager"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

const TAG = "gofuel-lib/jsonApi/importManager"

type fuelKey struct {
	dateMillis int64
	km         int64
}

// ReconcileFuel classifies every row of the given fuel-table against the owners
// ledger. The pass is read-only & idempotent: re-running it on untouched data
// reproduces identical classifications.
func ReconcileFuel(ownerId string, table *RawTable, dbCon *sql.DB) (reviewRows []*FuelReviewRow, err error) {
	rows, err := NormalizeFuelTable(table)
	if err != nil {
		return
	}
	settings, err := settingsManager.GetSettings(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting settings in ReconcileFuel : ", err)
		return
	}
	history, err := fuelManager.GetFuelRecords(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting ledger in ReconcileFuel : ", err)
		return
	}

	refById := make(map[int64]*models.FuelRecord)
	refByKey := make(map[fuelKey]*models.FuelRecord)
	refByDate := make(map[int64]*models.FuelRecord)
	for _, r := range history {
		refById[int64(r.Id)] = r
		refByKey[fuelKey{int64(r.DateMillis), int64(r.Km)}] = r
		refByDate[int64(r.DateMillis)] = r
	}

	// Any composite key appearing twice in the batch poisons every row carrying it.
	// Rows that failed parsing stay out of the count, their key carries no date.
	keyCount := make(map[fuelKey]int)
	for _, row := range rows {
		if len(row.ParseErrors) > 0 {
			continue
		}
		keyCount[fuelKey{row.DateMillis, row.Km}]++
	}

	batchId := uuid.New().String()
	reviewRows = make([]*FuelReviewRow, 0, len(rows))
	for i, row := range rows {
		review := &FuelReviewRow{BatchId: batchId, RowNum: i, Row: row}
		classifyFuelRow(review, settings, history, refById, refByKey, refByDate)
		if keyCount[fuelKey{row.DateMillis, row.Km}] > 1 {
			review.Status = StatusError
			review.Reasons = append(review.Reasons, fmt.Sprintf("duplicate row for %s at odometer %d within this batch",
				tools.GetDateOnlyForText(row.DateMillis), row.Km))
		}
		reviewRows = append(reviewRows, review)
	}
	return
}

func classifyFuelRow(review *FuelReviewRow, settings *models.Settings, history []*models.FuelRecord,
	refById map[int64]*models.FuelRecord, refByKey map[fuelKey]*models.FuelRecord, refByDate map[int64]*models.FuelRecord) {

	row := review.Row
	if len(row.ParseErrors) > 0 {
		review.Status = StatusError
		review.Reasons = append(review.Reasons, row.ParseErrors...)
		return
	}
	if row.Km <= 0 {
		review.Status = StatusError
		review.Reasons = append(review.Reasons, "odometer missing or not positive")
		return
	}
	if row.Liters == 0 && row.Cost > 0 && row.Price > 0 {
		row.Liters = row.Cost / row.Price
	}

	// Match by carried DB-id first, composite key (date, odometer) second.
	matched := refById[row.Id]
	if matched != nil && (int64(matched.DateMillis) != row.DateMillis || int64(matched.Km) != row.Km) {
		review.Status = StatusError
		review.Reasons = append(review.Reasons,
			fmt.Sprintf("date & odometer of record %d are fixed, delete & re-create it instead", row.Id))
		return
	}
	if matched == nil {
		matched = refByKey[fuelKey{row.DateMillis, row.Km}]
	}

	if matched != nil {
		review.MatchedId = int64(matched.Id)
		diffs := diffFuelFields(row, matched, settings)
		if len(diffs) == 0 {
			review.Status = StatusUnchanged
			return
		}
		review.Status = StatusModified
		review.Reasons = append(review.Reasons, "changed: "+strings.Join(diffs, ", "))
		if row.Cost > float64(settings.MaxTotalCost) {
			review.Reasons = append(review.Reasons, fmt.Sprintf("cost %.2f above the configured ceiling of %.2f",
				row.Cost, float64(settings.MaxTotalCost)))
		}
		return
	}

	// New entry: one record per day, and the odometer has to fit between its
	// chronological neighbours.
	if blocking := refByDate[row.DateMillis]; blocking != nil {
		review.Status = StatusError
		review.Reasons = append(review.Reasons, fmt.Sprintf("record %d already exists for %s at a different odometer (%d)",
			int64(blocking.Id), tools.GetDateOnlyForText(row.DateMillis), int64(blocking.Km)))
		return
	}
	ok, violation := fuelstats.CheckFuelOdometer(row.DateMillis, row.Km, history, 0)
	if !ok {
		review.Status = StatusError
		review.Reasons = append(review.Reasons, violation)
		return
	}

	review.Status = StatusNew
	if row.Cost > float64(settings.MaxTotalCost) {
		review.Status = StatusWarning
		review.Reasons = append(review.Reasons, fmt.Sprintf("cost %.2f above the configured ceiling of %.2f",
			row.Cost, float64(settings.MaxTotalCost)))
	}
}

// diffFuelFields returns the names of the tracked fields differing beyond the
// configured tolerances.
func diffFuelFields(row *FuelRow, existing *models.FuelRecord, settings *models.Settings) (diffs []string) {
	if math.Abs(row.Price-float64(existing.PricePerLiter)) > float64(settings.PriceTolerance) {
		diffs = append(diffs, "price")
	}
	if math.Abs(row.Cost-float64(existing.TotalCost)) > float64(settings.CostTolerance) {
		diffs = append(diffs, "cost")
	}
	if math.Abs(row.Liters-float64(existing.Liters)) > float64(settings.PriceTolerance) {
		diffs = append(diffs, "liters")
	}
	if row.FullTank != bool(existing.FullTank) {
		diffs = append(diffs, "fullTank")
	}
	if row.Notes != string(existing.Notes) {
		diffs = append(diffs, "notes")
	}
	return
}

// CommitFuel writes an approved fuel-review-table to the ledger: Error & Unchanged
// rows are skipped, Modified rows update their matched record, New & Warning rows
// create one. Failures on single rows are logged & counted, the batch continues.
func CommitFuel(ownerId string, reviewRows []*FuelReviewRow, dbCon *sql.DB) (result CommitResult, err error) {
	for _, review := range reviewRows {
		switch review.Status {
		case StatusError, StatusUnchanged:
			result.Skipped++
			continue
		case StatusModified:
			record := fuelRecordFromRow(ownerId, review.Row)
			record.Id = S.NInt64(review.MatchedId)
			rowCount, uErr := fuelManager.UpdateFuelRecord(record, dbCon)
			if uErr == nil && rowCount == 0 {
				// Matched record vanished between reconcile & commit.
				uErr = sql.ErrNoRows
			}
			if uErr != nil {
				dbg.E(TAG, "Error committing fuel-row %v of batch %v : ", review.RowNum, review.BatchId, uErr)
				result.Failed++
				continue
			}
			result.Updated++
		case StatusNew, StatusWarning:
			record := fuelRecordFromRow(ownerId, review.Row)
			_, cErr := fuelManager.CreateFuelRecord(record, dbCon)
			if cErr != nil {
				dbg.E(TAG, "Error committing fuel-row %v of batch %v : ", review.RowNum, review.BatchId, cErr)
				result.Failed++
				continue
			}
			result.Created++
		default:
			result.Skipped++
		}
	}
	return
}

func fuelRecordFromRow(ownerId string, row *FuelRow) *models.FuelRecord {
	return &models.FuelRecord{
		OwnerId:       S.NString(ownerId),
		DateMillis:    S.NInt64(row.DateMillis),
		Km:            S.NInt64(row.Km),
		PricePerLiter: S.NFloat64(row.Price),
		TotalCost:     S.NFloat64(row.Cost),
		Liters:        S.NFloat64(row.Liters),
		FullTank:      S.NBool(row.FullTank),
		Notes:         S.NString(row.Notes),
	}
}
