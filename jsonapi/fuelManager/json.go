package fuelManager

import (
	"database/sql"
	"encoding/json"
	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	. "github.com/OpenFuelLog/gofuel-lib/tools"
)

const NoDataGiven = "Please fill at least one entry."

// JSONGetFuelRecords gets all fuel-records of the owner as JSON
func JSONGetFuelRecords(ownerId string, dbCon *sql.DB) (res JSONFuelRecordsAnswer, err error) {
	res = JSONFuelRecordsAnswer{}
	res.FuelRecords, err = GetFuelRecords(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting GetFuelRecords : ", err)
		err = nil
		res = GetBadJSONFuelRecordsAnswer("Unknown error while getting fuel-records")
		return
	}
	res.Success = true
	return
}

// JSONGetLedger gets the fuel-ledger with stats attached as JSON
func JSONGetLedger(ownerId string, dbCon *sql.DB) (res JSONLedgerAnswer, err error) {
	res = JSONLedgerAnswer{}
	res.Entries, err = GetLedgerWithStats(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting GetLedgerWithStats : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Unknown error while getting ledger")
		return
	}
	res.Success = true
	return
}

// GetBadJSONFuelRecordsAnswer returns a bad JSONFuelRecordsAnswer if an error occured.
func GetBadJSONFuelRecordsAnswer(message string) JSONFuelRecordsAnswer {
	return JSONFuelRecordsAnswer{
		JSONAnswer: models.GetBadJSONAnswer(message),
	}
}

// JSONCreateFuelRecord creates the given fuel-record.
func JSONCreateFuelRecord(ownerId string, recordJson string, dbCon *sql.DB) (res models.JSONInsertAnswer, err error) {
	r := &models.FuelRecord{}
	if recordJson == "" {
		res = models.GetBadJSONInsertAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(recordJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONCreateFuelRecord : ", recordJson, err)
		res = models.GetBadJSONInsertAnswer("Invalid format")
		err = nil
		return
	}
	r.OwnerId = S.NString(ownerId)
	if ValidateRefueling(r) != nil {
		res = models.GetBadJSONInsertAnswer("Invalid values (km, price or cost)")
		return
	}
	var key int64
	key, err = CreateFuelRecord(r, dbCon)
	if err != nil {
		if cErr, isConsistency := err.(*ConsistencyError); isConsistency {
			err = nil
			res = models.GetBadJSONInsertAnswer(cErr.Violation)
			return
		}
		if err == ErrInvalidValues {
			err = nil
			res = models.GetBadJSONInsertAnswer("Invalid values (km, price or cost)")
			return
		}
		dbg.E(TAG, "Error in JSONCreateFuelRecord CreateFuelRecord: ", err)
		err = nil
		res = models.GetBadJSONInsertAnswer("Internal server error")
		return
	}
	res.LastKey = key
	res.Success = true
	return

}

// JSONUpdateFuelRecord updates the given fuel-record.
func JSONUpdateFuelRecord(ownerId string, recordJson string, dbCon *sql.DB) (res models.JSONUpdateAnswer, err error) {
	r := &models.FuelRecord{}
	if recordJson == "" {
		res = models.GetBadJSONUpdateAnswer(NoDataGiven, -1)
		return
	}
	err = json.Unmarshal([]byte(recordJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONUpdateFuelRecord : ", recordJson, err)
		res = models.GetBadJSONUpdateAnswer("Invalid format", -1)
		err = nil
		return
	}
	r.OwnerId = S.NString(ownerId)
	if r.PricePerLiter <= 0 || r.TotalCost <= 0 {
		res = models.GetBadJSONUpdateAnswer("Invalid values (price or cost)", int64(r.Id))
		return
	}
	var rowCount int64
	rowCount, err = UpdateFuelRecord(r, dbCon)
	if err != nil {
		if err == ErrNoChanges {
			err = nil
			res = models.GetBadJSONUpdateAnswer(NoDataGiven, int64(r.Id))
			return
		}
		dbg.E(TAG, "Error in JSONUpdateFuelRecord UpdateFuelRecord: ", err)
		err = nil
		res = models.GetBadJSONUpdateAnswer("Internal server error", int64(r.Id))
		return
	}
	res.RowCount = rowCount
	res.Id = int64(r.Id)
	res.Success = true
	return

}

// JSONDeleteFuelRecord deletes the given fuel-record.
func JSONDeleteFuelRecord(ownerId string, recordJson string, dbCon *sql.DB) (res models.JSONDeleteAnswer, err error) {
	r := &models.FuelRecord{}
	if recordJson == "" {
		res = models.GetBadJSONDeleteAnswer(NoDataGiven, -1)
		return
	}
	err = json.Unmarshal([]byte(recordJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONDeleteFuelRecord : ", recordJson, err)
		res = models.GetBadJSONDeleteAnswer("Invalid format", -1)
		err = nil
		return
	}
	var rowCount int64
	rowCount, err = DeleteFuelRecord(dbCon, ownerId, int64(r.Id))
	if err != nil {
		dbg.E(TAG, "Error in JSONDeleteFuelRecord DeleteFuelRecord: ", err)
		err = nil
		res = models.GetBadJSONDeleteAnswer("Internal server error", int64(r.Id))
		return
	}
	res.RowCount = rowCount
	res.Id = int64(r.Id)
	res.Success = true
	return

}

// JSONGetEmptyFuelRecord returns goodJsonAnswer with empty fuel-record-object
func JSONGetEmptyFuelRecord() (res models.JSONSelectAnswer, err error) {
	emptyRecord, err := GetEmptyFuelRecord()
	if err != nil {
		dbg.E(TAG, "Error in GetEmptyFuelRecord: ", err)
	}
	res = models.GetGoodJSONSelectAnswer(emptyRecord)
	return
}
