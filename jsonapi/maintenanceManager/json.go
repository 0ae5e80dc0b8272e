package maintenanceManager

import (
	"database/sql"
	"encoding/json"
	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
)

const NoDataGiven = "Please fill at least one entry."

// JSONGetMaintenanceRecords gets all maintenance-records of the owner as JSON
func JSONGetMaintenanceRecords(ownerId string, dbCon *sql.DB) (res JSONMaintenanceRecordsAnswer, err error) {
	res = JSONMaintenanceRecordsAnswer{}
	res.MaintenanceRecords, err = GetMaintenanceRecords(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting GetMaintenanceRecords : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Unknown error while getting maintenance-records")
		return
	}
	res.Success = true
	return
}

// JSONCreateMaintenanceRecord creates the given maintenance-record.
func JSONCreateMaintenanceRecord(ownerId string, recordJson string, dbCon *sql.DB) (res models.JSONInsertAnswer, err error) {
	r := &models.MaintenanceRecord{}
	if recordJson == "" {
		res = models.GetBadJSONInsertAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(recordJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONCreateMaintenanceRecord : ", recordJson, err)
		res = models.GetBadJSONInsertAnswer("Invalid format")
		err = nil
		return
	}
	r.OwnerId = S.NString(ownerId)
	var key int64
	key, err = CreateMaintenanceRecord(r, dbCon)
	if err != nil {
		if cErr, isConsistency := err.(*fuelManager.ConsistencyError); isConsistency {
			err = nil
			res = models.GetBadJSONInsertAnswer(cErr.Violation)
			return
		}
		if err == ErrInvalidValues {
			err = nil
			res = models.GetBadJSONInsertAnswer("Invalid values (km or cost)")
			return
		}
		dbg.E(TAG, "Error in JSONCreateMaintenanceRecord CreateMaintenanceRecord: ", err)
		err = nil
		res = models.GetBadJSONInsertAnswer("Internal server error")
		return
	}
	res.LastKey = key
	res.Success = true
	return

}

// JSONUpdateMaintenanceRecord updates the given maintenance-record.
func JSONUpdateMaintenanceRecord(ownerId string, recordJson string, dbCon *sql.DB) (res models.JSONUpdateAnswer, err error) {
	r := &models.MaintenanceRecord{}
	if recordJson == "" {
		res = models.GetBadJSONUpdateAnswer(NoDataGiven, -1)
		return
	}
	err = json.Unmarshal([]byte(recordJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONUpdateMaintenanceRecord : ", recordJson, err)
		res = models.GetBadJSONUpdateAnswer("Invalid format", -1)
		err = nil
		return
	}
	r.OwnerId = S.NString(ownerId)
	var rowCount int64
	rowCount, err = UpdateMaintenanceRecord(r, dbCon)
	if err != nil {
		if cErr, isConsistency := err.(*fuelManager.ConsistencyError); isConsistency {
			err = nil
			res = models.GetBadJSONUpdateAnswer(cErr.Violation, int64(r.Id))
			return
		}
		if err == ErrInvalidValues {
			err = nil
			res = models.GetBadJSONUpdateAnswer("Invalid values (km or cost)", int64(r.Id))
			return
		}
		dbg.E(TAG, "Error in JSONUpdateMaintenanceRecord UpdateMaintenanceRecord: ", err)
		err = nil
		res = models.GetBadJSONUpdateAnswer("Internal server error", int64(r.Id))
		return
	}
	res.RowCount = rowCount
	res.Id = int64(r.Id)
	res.Success = true
	return

}

// JSONDeleteMaintenanceRecord deletes the given maintenance-record.
func JSONDeleteMaintenanceRecord(ownerId string, recordJson string, dbCon *sql.DB) (res models.JSONDeleteAnswer, err error) {
	r := &models.MaintenanceRecord{}
	if recordJson == "" {
		res = models.GetBadJSONDeleteAnswer(NoDataGiven, -1)
		return
	}
	err = json.Unmarshal([]byte(recordJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONDeleteMaintenanceRecord : ", recordJson, err)
		res = models.GetBadJSONDeleteAnswer("Invalid format", -1)
		err = nil
		return
	}
	var rowCount int64
	rowCount, err = DeleteMaintenanceRecord(dbCon, ownerId, int64(r.Id))
	if err != nil {
		dbg.E(TAG, "Error in JSONDeleteMaintenanceRecord DeleteMaintenanceRecord: ", err)
		err = nil
		res = models.GetBadJSONDeleteAnswer("Internal server error", int64(r.Id))
		return
	}
	res.RowCount = rowCount
	res.Id = int64(r.Id)
	res.Success = true
	return

}

// JSONResolveDeadline resolves the deadline of the given record, optionally
// creating the rollover-follow-up.
func JSONResolveDeadline(ownerId string, requestJson string, dbCon *sql.DB) (res JSONResolveAnswer, err error) {
	req := &ResolveRequest{}
	if requestJson == "" {
		res.JSONAnswer = models.GetBadJSONAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(requestJson), req)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONResolveDeadline : ", requestJson, err)
		res.JSONAnswer = models.GetBadJSONAnswer("Invalid format")
		err = nil
		return
	}
	var followUpKey int64
	followUpKey, err = ResolveDeadline(dbCon, ownerId, req.Id, req.FollowUp)
	if err != nil {
		if cErr, isConsistency := err.(*fuelManager.ConsistencyError); isConsistency {
			err = nil
			res.JSONAnswer = models.GetBadJSONAnswer(cErr.Violation)
			return
		}
		dbg.E(TAG, "Error in JSONResolveDeadline ResolveDeadline: ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
		return
	}
	res.Id = req.Id
	res.FollowUpKey = followUpKey
	res.Success = true
	return
}
