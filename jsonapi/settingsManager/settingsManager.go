// Package settingsManager is responsible for the per-owner thresholds used by
// validation & reconciliation (warning-ceiling, diff-tolerances).
package settingsManager

import (
	"database/sql"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	. "github.com/OpenFuelLog/gofuel-lib/tools"
)

const TAG = "gofuel-lib/jsonApi/settingsManager"

// Defaults for a fresh owner. The tolerances mirror the reconciliation-diff
// behaviour and are deliberately configurable, not business-rules.
const (
	DefaultMaxTotalCost   = 200.0
	DefaultCostTolerance  = 0.01
	DefaultPriceTolerance = 0.001
)

// GetSettings returns the settings of the given owner, creating the row with
// defaults on first access.
func GetSettings(dbCon *sql.DB, ownerId string) (settings *models.Settings, err error) {
	settings = &models.Settings{}
	err = dbCon.QueryRow("SELECT _settingsId,ownerId,maxTotalCost,costTolerance,priceTolerance FROM Settings WHERE ownerId=?", ownerId).
		Scan(&settings.Id, &settings.OwnerId, &settings.MaxTotalCost, &settings.CostTolerance, &settings.PriceTolerance)
	if err == sql.ErrNoRows {
		settings = &models.Settings{
			OwnerId:        S.NString(ownerId),
			MaxTotalCost:   DefaultMaxTotalCost,
			CostTolerance:  DefaultCostTolerance,
			PriceTolerance: DefaultPriceTolerance,
		}
		var res sql.Result
		res, err = dbCon.Exec("INSERT INTO Settings(ownerId,maxTotalCost,costTolerance,priceTolerance) VALUES(?,?,?,?)",
			settings.OwnerId, settings.MaxTotalCost, settings.CostTolerance, settings.PriceTolerance)
		if err != nil {
			dbg.E(TAG, "Error creating default settings : ", err)
			return
		}
		var key int64
		key, err = res.LastInsertId()
		settings.Id = S.NInt64(key)
		return
	}
	if err != nil {
		dbg.E(TAG, "Error getting settings : ", err)
	}
	return
}

// UpdateSettings updates the given (non-zero) settings-fields.
func UpdateSettings(settings *models.Settings, dbCon *sql.DB) (rowCount int64, err error) {

	vals := []interface{}{}
	firstVal := true
	valString := ""

	if settings.MaxTotalCost != 0 {
		AppendNFloat64UpdateField("maxTotalCost", &settings.MaxTotalCost, &firstVal, &vals, &valString)
	}
	if settings.CostTolerance != 0 {
		AppendNFloat64UpdateField("costTolerance", &settings.CostTolerance, &firstVal, &vals, &valString)
	}
	if settings.PriceTolerance != 0 {
		AppendNFloat64UpdateField("priceTolerance", &settings.PriceTolerance, &firstVal, &vals, &valString)
	}

	if firstVal {
		err = ErrNoChanges
		return
	}
	q := "UPDATE Settings SET " + valString + " WHERE ownerId=?"
	vals = append(vals, settings.OwnerId)
	var res sql.Result
	res, err = dbCon.Exec(q, vals...)
	if err != nil {
		dbg.E(TAG, "Error in dbCon.Exec for UpdateSettings: %v ", err)
		return
	}
	rowCount, err = res.RowsAffected()

	return
}

// JSONGetSettings gets the owners settings as JSON.
func JSONGetSettings(ownerId string, dbCon *sql.DB) (res JSONSettingsAnswer, err error) {
	res = JSONSettingsAnswer{}
	res.Settings, err = GetSettings(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting GetSettings : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Unknown error while getting settings")
		return
	}
	res.Success = true
	return
}
