// Package maintenanceManager is responsible for CRUD maintenance-records,
// their forward-looking deadlines and the deadline-rollover.
package maintenanceManager

import (
	"database/sql"
	"errors"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
)

const TAG = "gofuel-lib/jsonApi/maintenanceManager"

const SelectColumns = "_maintenanceRecordId,ownerId,dateMillis,km,expenseType,cost,description,expiryKm,expiryDateMillis"

var ErrInvalidValues = errors.New("Km zero/negative or cost negative")

// GetMaintenanceRecordById gets a maintenance-record by its ID.
func GetMaintenanceRecordById(dbCon *sql.DB, ownerId string, id int64) (record *models.MaintenanceRecord, err error) {
	records, err := GetMaintenanceRecordsByWhere(dbCon, ownerId, "_maintenanceRecordId=?", id)
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

// GetMaintenanceRecords returns all maintenance-records of the given owner, newest first.
func GetMaintenanceRecords(dbCon *sql.DB, ownerId string) (records []*models.MaintenanceRecord, err error) {
	return GetMaintenanceRecordsByWhere(dbCon, ownerId, "")
}

// GetActiveDeadlines returns the maintenance-records that still carry a
// forward-looking deadline (km and/or date).
func GetActiveDeadlines(dbCon *sql.DB, ownerId string) (records []*models.MaintenanceRecord, err error) {
	return GetMaintenanceRecordsByWhere(dbCon, ownerId, "(IFNULL(expiryKm,0)>0 OR IFNULL(expiryDateMillis,0)>0)")
}

// GetMaintenanceRecordsByWhere gets maintenance-records by given where-string / params,
// always scoped by the ownerId.
func GetMaintenanceRecordsByWhere(dbCon *sql.DB, ownerId string, where string, params ...interface{}) (records []*models.MaintenanceRecord, err error) {
	records = make([]*models.MaintenanceRecord, 0)
	q := "SELECT " + SelectColumns + " FROM MaintenanceRecords WHERE ownerId=?"
	if where != "" {
		q += " AND " + where
	}
	q += " ORDER BY dateMillis DESC, km DESC"
	args := append([]interface{}{ownerId}, params...)
	res, err := dbCon.Query(q, args...)
	if err != nil {
		dbg.E(TAG, "unable to get MaintenanceRecords", err)
		return
	}
	defer res.Close()

	for res.Next() {
		record := &models.MaintenanceRecord{}
		err = res.Scan(&record.Id, &record.OwnerId, &record.DateMillis, &record.Km, &record.ExpenseType,
			&record.Cost, &record.Description, &record.ExpiryKm, &record.ExpiryDateMillis)
		if err != nil {
			dbg.E(TAG, "Unable to scan maintenance-record!", err)
			return
		}
		records = append(records, record)
	}
	return
}

// CreateMaintenanceRecord creates a new maintenance-record after checking the
// odometer-consistency against the owners maintenance-history.
func CreateMaintenanceRecord(record *models.MaintenanceRecord, dbCon *sql.DB) (key int64, err error) {
	if record.Km <= 0 || record.Cost < 0 {
		err = ErrInvalidValues
		return
	}
	history, err := GetMaintenanceRecords(dbCon, string(record.OwnerId))
	if err != nil {
		dbg.E(TAG, "Error getting history for consistency-check : ", err)
		return
	}
	ok, violation := fuelstats.CheckMaintenanceOdometer(int64(record.DateMillis), int64(record.Km), history, 0)
	if !ok {
		err = &fuelManager.ConsistencyError{Violation: violation}
		return
	}
	if record.ExpenseType == "" {
		record.ExpenseType = "Altro"
	}

	var res sql.Result
	res, err = dbCon.Exec(`INSERT INTO MaintenanceRecords(ownerId,dateMillis,km,expenseType,cost,description,expiryKm,expiryDateMillis)
		VALUES(?,?,?,?,?,?,?,?)`,
		record.OwnerId, record.DateMillis, record.Km, record.ExpenseType,
		record.Cost, record.Description, record.ExpiryKm, record.ExpiryDateMillis)
	if err != nil {
		dbg.E(TAG, "Error in dbCon.Exec for CreateMaintenanceRecord: %v ", err)
		return
	}
	key, err = res.LastInsertId()
	return
}

// UpdateMaintenanceRecord updates all fields of a maintenance-record. Since date &
// km may change, the sandwich-check runs again with the record itself excluded.
func UpdateMaintenanceRecord(record *models.MaintenanceRecord, dbCon *sql.DB) (rowCount int64, err error) {
	if record.Km <= 0 || record.Cost < 0 {
		err = ErrInvalidValues
		return
	}
	history, err := GetMaintenanceRecords(dbCon, string(record.OwnerId))
	if err != nil {
		dbg.E(TAG, "Error getting history for consistency-check : ", err)
		return
	}
	ok, violation := fuelstats.CheckMaintenanceOdometer(int64(record.DateMillis), int64(record.Km), history, int64(record.Id))
	if !ok {
		err = &fuelManager.ConsistencyError{Violation: violation}
		return
	}

	var res sql.Result
	res, err = dbCon.Exec(`UPDATE MaintenanceRecords SET dateMillis=?,km=?,expenseType=?,cost=?,description=?,expiryKm=?,expiryDateMillis=?
		WHERE _maintenanceRecordId=? AND ownerId=?`,
		record.DateMillis, record.Km, record.ExpenseType, record.Cost, record.Description,
		record.ExpiryKm, record.ExpiryDateMillis, record.Id, record.OwnerId)
	if err != nil {
		dbg.E(TAG, "Error in dbCon.Exec for UpdateMaintenanceRecord: %v ", err)
		return
	}
	rowCount, err = res.RowsAffected()

	return
}

// DeleteMaintenanceRecord deletes the maintenance-record with the given ID.
func DeleteMaintenanceRecord(dbCon *sql.DB, ownerId string, id int64) (rowCount int64, err error) {
	var res sql.Result
	res, err = dbCon.Exec("DELETE FROM MaintenanceRecords WHERE _maintenanceRecordId=? AND ownerId=?", id, ownerId)
	if err != nil {
		dbg.E(TAG, "Error in DeleteMaintenanceRecord : ", err)
	} else {
		rowCount, err = res.RowsAffected()
		if err != nil {
			dbg.E(TAG, "Error in DeleteMaintenanceRecord get RowsAffected : ", err)
		}
	}

	return
}

// ResolveDeadline clears the deadline-fields of the given record and - if a
// follow-up record is supplied - creates it with a fresh deadline ("rollover").
// A record may carry at most one forward-looking deadline, so resolving always
// clears both expiry-fields.
func ResolveDeadline(dbCon *sql.DB, ownerId string, id int64, followUp *models.MaintenanceRecord) (followUpKey int64, err error) {
	_, err = dbCon.Exec(`UPDATE MaintenanceRecords SET expiryKm=NULL, expiryDateMillis=NULL
		WHERE _maintenanceRecordId=? AND ownerId=?`, id, ownerId)
	if err != nil {
		dbg.E(TAG, "Error clearing deadline in ResolveDeadline : ", err)
		return
	}
	if followUp == nil {
		return
	}
	followUp.OwnerId = S.NString(ownerId)
	followUpKey, err = CreateMaintenanceRecord(followUp, dbCon)
	if err != nil {
		dbg.E(TAG, "Error creating follow-up record in ResolveDeadline : ", err)
	}
	return
}

// GetEmptyMaintenanceRecord returns an empty maintenance-record-object
func GetEmptyMaintenanceRecord() (record *models.MaintenanceRecord, err error) {
	record = &models.MaintenanceRecord{ExpenseType: "Altro"}
	return
}
