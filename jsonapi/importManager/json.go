package importManager

import (
	"database/sql"
	"encoding/json"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/models"
	. "github.com/OpenFuelLog/gofuel-lib/tools"
)

const NoDataGiven = "Please fill at least one entry."

// JSONReconcileFuel classifies the given fuel-table against the ledger and
// returns the review-table as JSON.
func JSONReconcileFuel(ownerId string, tableJson string, dbCon *sql.DB) (res JSONFuelReviewAnswer, err error) {
	table := &RawTable{}
	if tableJson == "" {
		res.JSONAnswer = models.GetBadJSONAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(tableJson), table)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONReconcileFuel : ", tableJson, err)
		res.JSONAnswer = models.GetBadJSONAnswer("Invalid format")
		err = nil
		return
	}
	res.Rows, err = ReconcileFuel(ownerId, table, dbCon)
	if err != nil {
		if err == ErrMissingColumns {
			err = nil
			res.JSONAnswer = models.GetBadJSONAnswer("Table needs at least a date- and an odometer-column")
			return
		}
		dbg.E(TAG, "Error in JSONReconcileFuel ReconcileFuel: ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
		return
	}
	if len(res.Rows) > 0 {
		res.BatchId = res.Rows[0].BatchId
	}
	res.Success = true
	return
}

// JSONCommitFuel commits the given (re-validated) fuel-review-table.
func JSONCommitFuel(ownerId string, rowsJson string, dbCon *sql.DB) (res models.JSONCommitAnswer, err error) {
	reviewRows := make([]*FuelReviewRow, 0)
	if rowsJson == "" {
		res.JSONAnswer = models.GetBadJSONAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(rowsJson), &reviewRows)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONCommitFuel : ", rowsJson, err)
		res.JSONAnswer = models.GetBadJSONAnswer("Invalid format")
		err = nil
		return
	}
	result, err := CommitFuel(ownerId, reviewRows, dbCon)
	if err != nil {
		dbg.E(TAG, "Error in JSONCommitFuel CommitFuel: ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
		return
	}
	res.Created = result.Created
	res.Updated = result.Updated
	res.Skipped = result.Skipped
	res.Failed = result.Failed
	res.Success = true
	return
}

// JSONReconcileMaintenance classifies the given maintenance-table against the
// maintenance-ledger and returns the review-table as JSON.
func JSONReconcileMaintenance(ownerId string, tableJson string, dbCon *sql.DB) (res JSONMaintenanceReviewAnswer, err error) {
	table := &RawTable{}
	if tableJson == "" {
		res.JSONAnswer = models.GetBadJSONAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(tableJson), table)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONReconcileMaintenance : ", tableJson, err)
		res.JSONAnswer = models.GetBadJSONAnswer("Invalid format")
		err = nil
		return
	}
	res.Rows, err = ReconcileMaintenance(ownerId, table, dbCon)
	if err != nil {
		if err == ErrMissingColumns {
			err = nil
			res.JSONAnswer = models.GetBadJSONAnswer("Table needs at least a date- and an odometer-column")
			return
		}
		dbg.E(TAG, "Error in JSONReconcileMaintenance ReconcileMaintenance: ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
		return
	}
	if len(res.Rows) > 0 {
		res.BatchId = res.Rows[0].BatchId
	}
	res.Success = true
	return
}

// JSONCommitMaintenance commits the given (re-validated) maintenance-review-table.
func JSONCommitMaintenance(ownerId string, rowsJson string, dbCon *sql.DB) (res models.JSONCommitAnswer, err error) {
	reviewRows := make([]*MaintenanceReviewRow, 0)
	if rowsJson == "" {
		res.JSONAnswer = models.GetBadJSONAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(rowsJson), &reviewRows)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONCommitMaintenance : ", rowsJson, err)
		res.JSONAnswer = models.GetBadJSONAnswer("Invalid format")
		err = nil
		return
	}
	result, err := CommitMaintenance(ownerId, reviewRows, dbCon)
	if err != nil {
		dbg.E(TAG, "Error in JSONCommitMaintenance CommitMaintenance: ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
		return
	}
	res.Created = result.Created
	res.Updated = result.Updated
	res.Skipped = result.Skipped
	res.Failed = result.Failed
	res.Success = true
	return
}

// JSONReconcileWorkbook reads an uploaded two-sheet-workbook and classifies both
// sheets in one pass. fileName is resolved inside uploadDir, rejecting
// path-traversal.
func JSONReconcileWorkbook(ownerId string, fileName string, uploadDir string, dbCon *sql.DB) (res JSONWorkbookReviewAnswer, err error) {
	fPath, err := GetCleanFilePath(fileName, uploadDir)
	if err != nil {
		dbg.W(TAG, "Bad workbook-path %v in JSONReconcileWorkbook : ", fileName, err)
		res.JSONAnswer = models.GetBadJSONAnswer("Invalid file-path")
		err = nil
		return
	}
	fuelTable, maintenanceTable, err := ReadWorkbook(fPath)
	if err != nil {
		dbg.E(TAG, "Error reading workbook in JSONReconcileWorkbook : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Could not read the workbook")
		return
	}
	res.FuelRows, err = ReconcileFuel(ownerId, fuelTable, dbCon)
	if err != nil {
		if err == ErrMissingColumns {
			err = nil
			res.JSONAnswer = models.GetBadJSONAnswer("Fuel-sheet needs at least a date- and an odometer-column")
			return
		}
		dbg.E(TAG, "Error in JSONReconcileWorkbook ReconcileFuel: ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
		return
	}
	if maintenanceTable != nil {
		res.MaintenanceRows, err = ReconcileMaintenance(ownerId, maintenanceTable, dbCon)
		if err != nil {
			if err == ErrMissingColumns {
				err = nil
				res.JSONAnswer = models.GetBadJSONAnswer("Maintenance-sheet needs at least a date- and an odometer-column")
				return
			}
			dbg.E(TAG, "Error in JSONReconcileWorkbook ReconcileMaintenance: ", err)
			err = nil
			res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
			return
		}
	}
	if len(res.FuelRows) > 0 {
		res.BatchId = res.FuelRows[0].BatchId
	}
	res.Success = true
	return
}
