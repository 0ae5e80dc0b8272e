package importManager

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/Compufreak345/dbg"
	"github.com/google/uuid"
	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/maintenanceManager"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/settingsManager"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

// DefaultCategory is assigned to maintenance-rows without a category-cell,
// matching the table-default.
const DefaultCategory = "Altro"

type maintenanceKey struct {
	dateMillis int64
	km         int64
	category   string
}

// ReconcileMaintenance classifies every row of the given maintenance-table
// against the owners maintenance-ledger, analogous to ReconcileFuel. The
// composite key additionally carries the category, so two same-day expenses of
// different kinds at the same odometer stay distinct.
func ReconcileMaintenance(ownerId string, table *RawTable, dbCon *sql.DB) (reviewRows []*MaintenanceReviewRow, err error) {
	rows, err := NormalizeMaintenanceTable(table)
	if err != nil {
		return
	}
	settings, err := settingsManager.GetSettings(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting settings in ReconcileMaintenance : ", err)
		return
	}
	history, err := maintenanceManager.GetMaintenanceRecords(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting maintenance-ledger in ReconcileMaintenance : ", err)
		return
	}

	refById := make(map[int64]*models.MaintenanceRecord)
	refByKey := make(map[maintenanceKey]*models.MaintenanceRecord)
	for _, r := range history {
		refById[int64(r.Id)] = r
		refByKey[maintenanceKeyOf(int64(r.DateMillis), int64(r.Km), string(r.ExpenseType))] = r
	}

	keyCount := make(map[maintenanceKey]int)
	for _, row := range rows {
		if len(row.ParseErrors) > 0 {
			continue
		}
		keyCount[maintenanceKeyOf(row.DateMillis, row.Km, row.Category)]++
	}

	batchId := uuid.New().String()
	reviewRows = make([]*MaintenanceReviewRow, 0, len(rows))
	for i, row := range rows {
		review := &MaintenanceReviewRow{BatchId: batchId, RowNum: i, Row: row}
		classifyMaintenanceRow(review, settings, history, refById, refByKey)
		if keyCount[maintenanceKeyOf(row.DateMillis, row.Km, row.Category)] > 1 {
			review.Status = StatusError
			review.Reasons = append(review.Reasons, fmt.Sprintf("duplicate %s-row for %s at odometer %d within this batch",
				row.Category, tools.GetDateOnlyForText(row.DateMillis), row.Km))
		}
		reviewRows = append(reviewRows, review)
	}
	return
}

func maintenanceKeyOf(dateMillis int64, km int64, category string) maintenanceKey {
	return maintenanceKey{dateMillis, km, strings.ToLower(strings.TrimSpace(category))}
}

func classifyMaintenanceRow(review *MaintenanceReviewRow, settings *models.Settings, history []*models.MaintenanceRecord,
	refById map[int64]*models.MaintenanceRecord, refByKey map[maintenanceKey]*models.MaintenanceRecord) {

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
	if row.Cost < 0 {
		review.Status = StatusError
		review.Reasons = append(review.Reasons, "cost negative")
		return
	}

	matched := refById[row.Id]
	if matched != nil && (int64(matched.DateMillis) != row.DateMillis || int64(matched.Km) != row.Km) {
		review.Status = StatusError
		review.Reasons = append(review.Reasons,
			fmt.Sprintf("date & odometer of record %d are fixed, delete & re-create it instead", row.Id))
		return
	}
	if matched == nil {
		matched = refByKey[maintenanceKeyOf(row.DateMillis, row.Km, row.Category)]
	}

	if matched != nil {
		review.MatchedId = int64(matched.Id)
		diffs := diffMaintenanceFields(row, matched, settings)
		if len(diffs) == 0 {
			review.Status = StatusUnchanged
			return
		}
		review.Status = StatusModified
		review.Reasons = append(review.Reasons, "changed: "+strings.Join(diffs, ", "))
		return
	}

	ok, violation := fuelstats.CheckMaintenanceOdometer(row.DateMillis, row.Km, history, 0)
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

func diffMaintenanceFields(row *MaintenanceRow, existing *models.MaintenanceRecord, settings *models.Settings) (diffs []string) {
	if math.Abs(row.Cost-float64(existing.Cost)) > float64(settings.CostTolerance) {
		diffs = append(diffs, "cost")
	}
	if !strings.EqualFold(row.Category, string(existing.ExpenseType)) {
		diffs = append(diffs, "category")
	}
	if row.Description != string(existing.Description) {
		diffs = append(diffs, "description")
	}
	return
}

// CommitMaintenance writes an approved maintenance-review-table to the ledger,
// with the same skip/update/create/continue-semantics as CommitFuel.
func CommitMaintenance(ownerId string, reviewRows []*MaintenanceReviewRow, dbCon *sql.DB) (result CommitResult, err error) {
	for _, review := range reviewRows {
		switch review.Status {
		case StatusError, StatusUnchanged:
			result.Skipped++
			continue
		case StatusModified:
			// Update on the loaded record, so deadline-fields not carried by the
			// import-table survive the commit.
			record, uErr := maintenanceManager.GetMaintenanceRecordById(dbCon, ownerId, review.MatchedId)
			if uErr == nil {
				record.ExpenseType = S.NString(review.Row.Category)
				record.Cost = S.NFloat64(review.Row.Cost)
				record.Description = S.NString(review.Row.Description)
				var rowCount int64
				rowCount, uErr = maintenanceManager.UpdateMaintenanceRecord(record, dbCon)
				if uErr == nil && rowCount == 0 {
					uErr = sql.ErrNoRows
				}
			}
			if uErr != nil {
				dbg.E(TAG, "Error committing maintenance-row %v of batch %v : ", review.RowNum, review.BatchId, uErr)
				result.Failed++
				continue
			}
			result.Updated++
		case StatusNew, StatusWarning:
			record := maintenanceRecordFromRow(ownerId, review.Row)
			_, cErr := maintenanceManager.CreateMaintenanceRecord(record, dbCon)
			if cErr != nil {
				dbg.E(TAG, "Error committing maintenance-row %v of batch %v : ", review.RowNum, review.BatchId, cErr)
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

func maintenanceRecordFromRow(ownerId string, row *MaintenanceRow) *models.MaintenanceRecord {
	return &models.MaintenanceRecord{
		OwnerId:     S.NString(ownerId),
		DateMillis:  S.NInt64(row.DateMillis),
		Km:          S.NInt64(row.Km),
		ExpenseType: S.NString(row.Category),
		Cost:        S.NFloat64(row.Cost),
		Description: S.NString(row.Description),
	}
}
