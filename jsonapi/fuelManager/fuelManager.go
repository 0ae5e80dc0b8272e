// Package fuelManager is responsible for CRUD fuel-records, guarding the
// odometer-monotonicity-invariant on every write.
package fuelManager

import (
	"database/sql"
	"errors"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/models"
	. "github.com/OpenFuelLog/gofuel-lib/tools"
)

const TAG = "gofuel-lib/jsonApi/fuelManager"

const SelectColumns = "_fuelRecordId,ownerId,dateMillis,km,pricePerLiter,totalCost,liters,fullTank,notes"

var ErrInvalidValues = errors.New("Km, price or cost zero or negative")

// ConsistencyError is returned when a write would break the
// odometer-monotonicity-invariant.
type ConsistencyError struct {
	Violation string
}

func (e *ConsistencyError) Error() string {
	return "odometer inconsistent: " + e.Violation
}

// ValidateRefueling checks the positive-value-constraints of a directly entered
// fuel-record (km, price & cost all positive). Import-committed rows are not
// routed through this, a cost-less workbook-row stays legal.
func ValidateRefueling(record *models.FuelRecord) (err error) {
	if record.Km <= 0 || record.PricePerLiter <= 0 || record.TotalCost <= 0 {
		err = ErrInvalidValues
	}
	return
}

// GetFuelRecordById gets a fuel-record by its ID.
func GetFuelRecordById(dbCon *sql.DB, ownerId string, id int64) (record *models.FuelRecord, err error) {
	records, err := GetFuelRecordsByWhere(dbCon, ownerId, "_fuelRecordId=?", id)
	if err != nil {
		return
	}
	if len(records) == 0 {
		err = sql.ErrNoRows
		return
	}
	record = records[0]
	return
}

// GetFuelRecords returns all fuel-records of the given owner, newest first.
func GetFuelRecords(dbCon *sql.DB, ownerId string) (records []*models.FuelRecord, err error) {
	return GetFuelRecordsByWhere(dbCon, ownerId, "")
}

// GetFuelRecordsByWhere gets fuel-records by given where-string / params,
// always scoped by the ownerId.
func GetFuelRecordsByWhere(dbCon *sql.DB, ownerId string, where string, params ...interface{}) (records []*models.FuelRecord, err error) {
	records = make([]*models.FuelRecord, 0)
	q := "SELECT " + SelectColumns + " FROM FuelRecords WHERE ownerId=?"
	if where != "" {
		q += " AND " + where
	}
	q += " ORDER BY dateMillis DESC, km DESC"
	args := append([]interface{}{ownerId}, params...)
	res, err := dbCon.Query(q, args...)
	if err != nil {
		dbg.E(TAG, "unable to get FuelRecords", err)
		return
	}
	defer res.Close()

	for res.Next() {
		record := &models.FuelRecord{}
		err = res.Scan(&record.Id, &record.OwnerId, &record.DateMillis, &record.Km, &record.PricePerLiter,
			&record.TotalCost, &record.Liters, &record.FullTank, &record.Notes)
		if err != nil {
			dbg.E(TAG, "Unable to scan fuel-record!", err)
			return
		}
		records = append(records, record)
	}
	return
}

// GetLedgerWithStats returns the owners fuel-ledger with the Full-to-Full-metrics
// attached to every entry.
func GetLedgerWithStats(dbCon *sql.DB, ownerId string) (entries []*LedgerEntry, err error) {
	records, err := GetFuelRecords(dbCon, ownerId)
	if err != nil {
		return
	}
	entries = make([]*LedgerEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, &LedgerEntry{
			FuelRecord: r,
			Stats:      fuelstats.ComputeStats(r, records),
		})
	}
	return
}

// CreateFuelRecord creates a new fuel-record after checking the
// odometer-consistency against the owners history.
func CreateFuelRecord(record *models.FuelRecord, dbCon *sql.DB) (key int64, err error) {
	if record.Km <= 0 {
		err = ErrInvalidValues
		return
	}
	history, err := GetFuelRecords(dbCon, string(record.OwnerId))
	if err != nil {
		dbg.E(TAG, "Error getting history for consistency-check : ", err)
		return
	}
	ok, violation := fuelstats.CheckFuelOdometer(int64(record.DateMillis), int64(record.Km), history, 0)
	if !ok {
		err = &ConsistencyError{Violation: violation}
		return
	}

	var res sql.Result
	res, err = dbCon.Exec(`INSERT INTO FuelRecords(ownerId,dateMillis,km,pricePerLiter,totalCost,liters,fullTank,notes)
		VALUES(?,?,?,?,?,?,?,?)`,
		record.OwnerId, record.DateMillis, record.Km, record.PricePerLiter,
		record.TotalCost, record.Liters, record.FullTank, record.Notes)
	if err != nil {
		dbg.E(TAG, "Error in dbCon.Exec for CreateFuelRecord: %v ", err)
		return
	}

	key, err = res.LastInsertId()
	return
}

// UpdateFuelRecord updates the mutable fields of a fuel-record (price, cost,
// liters, full-tank-flag, notes). Date & km are part of the records identity and
// are never changed here, so the monotonicity-invariant is preserved.
func UpdateFuelRecord(record *models.FuelRecord, dbCon *sql.DB) (rowCount int64, err error) {
	if record.Id == 0 {
		err = ErrNoChanges
		return
	}
	var res sql.Result
	res, err = dbCon.Exec(`UPDATE FuelRecords SET pricePerLiter=?,totalCost=?,liters=?,fullTank=?,notes=?
		WHERE _fuelRecordId=? AND ownerId=?`,
		record.PricePerLiter, record.TotalCost, record.Liters, record.FullTank, record.Notes,
		record.Id, record.OwnerId)
	if err != nil {
		dbg.E(TAG, "Error in dbCon.Exec for UpdateFuelRecord: %v ", err)
		return
	}
	rowCount, err = res.RowsAffected()

	return
}

// DeleteFuelRecord deletes the fuel-record with the given ID.
func DeleteFuelRecord(dbCon *sql.DB, ownerId string, id int64) (rowCount int64, err error) {
	var res sql.Result
	res, err = dbCon.Exec("DELETE FROM FuelRecords WHERE _fuelRecordId=? AND ownerId=?", id, ownerId)
	if err != nil {
		dbg.E(TAG, "Error in DeleteFuelRecord : ", err)
	} else {
		rowCount, err = res.RowsAffected()
		if err != nil {
			dbg.E(TAG, "Error in DeleteFuelRecord get RowsAffected : ", err)
		}
	}

	return
}

// GetEmptyFuelRecord returns an empty fuel-record-object
func GetEmptyFuelRecord() (record *models.FuelRecord, err error) {
	record = &models.FuelRecord{FullTank: true}
	return
}
