package reminderManager

import (
	"database/sql"
	"encoding/json"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	. "github.com/OpenFuelLog/gofuel-lib/tools"
	"github.com/OpenFuelLog/gofuel-lib/translate"
)

const NoDataGiven = "Please fill at least one entry."

// JSONGetReminders gets all reminders of the owner as JSON
func JSONGetReminders(ownerId string, dbCon *sql.DB) (res JSONRemindersAnswer, err error) {
	res = JSONRemindersAnswer{}
	res.Reminders, err = GetRemindersByWhere(dbCon, ownerId, "")
	if err != nil {
		dbg.E(TAG, "Error getting GetRemindersByWhere : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Unknown error while getting reminders")
		return
	}
	res.Success = true
	return
}

// JSONCreateReminder creates the given reminder.
func JSONCreateReminder(ownerId string, reminderJson string, dbCon *sql.DB) (res models.JSONInsertAnswer, err error) {
	r := &models.Reminder{}
	if reminderJson == "" {
		res = models.GetBadJSONInsertAnswer(NoDataGiven)
		return
	}
	err = json.Unmarshal([]byte(reminderJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONCreateReminder : ", reminderJson, err)
		res = models.GetBadJSONInsertAnswer("Invalid format")
		err = nil
		return
	}
	if r.Title == "" {
		res = models.GetBadJSONInsertAnswer("Please give the reminder a title")
		return
	}
	r.OwnerId = S.NString(ownerId)
	var key int64
	key, err = CreateReminder(r, dbCon)
	if err != nil {
		dbg.E(TAG, "Error in JSONCreateReminder CreateReminder: ", err)
		err = nil
		res = models.GetBadJSONInsertAnswer("Internal server error")
		return
	}
	res.LastKey = key
	res.Success = true
	return

}

// JSONUpdateReminder updates the given reminder.
func JSONUpdateReminder(ownerId string, reminderJson string, dbCon *sql.DB) (res models.JSONUpdateAnswer, err error) {
	r := &models.Reminder{}
	if reminderJson == "" {
		res = models.GetBadJSONUpdateAnswer(NoDataGiven, -1)
		return
	}
	err = json.Unmarshal([]byte(reminderJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONUpdateReminder : ", reminderJson, err)
		res = models.GetBadJSONUpdateAnswer("Invalid format", -1)
		err = nil
		return
	}
	r.OwnerId = S.NString(ownerId)
	var rowCount int64
	rowCount, err = UpdateReminder(r, dbCon)
	if err != nil {
		if err == ErrNoChanges {
			err = nil
			res = models.GetBadJSONUpdateAnswer("No changes given", int64(r.Id))
			return
		}
		dbg.E(TAG, "Error in JSONUpdateReminder UpdateReminder: ", err)
		err = nil
		res = models.GetBadJSONUpdateAnswer("Internal server error", int64(r.Id))
		return
	}
	res.RowCount = rowCount
	res.Id = int64(r.Id)
	res.Success = true
	return

}

// JSONDeleteReminder deletes the given reminder.
func JSONDeleteReminder(ownerId string, reminderJson string, dbCon *sql.DB) (res models.JSONDeleteAnswer, err error) {
	r := &models.Reminder{}
	if reminderJson == "" {
		res = models.GetBadJSONDeleteAnswer(NoDataGiven, -1)
		return
	}
	err = json.Unmarshal([]byte(reminderJson), r)
	if err != nil {
		dbg.W(TAG, "Could not read JSON %v in JSONDeleteReminder : ", reminderJson, err)
		res = models.GetBadJSONDeleteAnswer("Invalid format", -1)
		err = nil
		return
	}
	var rowCount int64
	rowCount, err = DeleteReminder(dbCon, ownerId, int64(r.Id))
	if err != nil {
		dbg.E(TAG, "Error in JSONDeleteReminder DeleteReminder: ", err)
		err = nil
		res = models.GetBadJSONDeleteAnswer("Internal server error", int64(r.Id))
		return
	}
	res.RowCount = rowCount
	res.Id = int64(r.Id)
	res.Success = true
	return

}

// JSONGetDueNotices gets the due-notices of the owner relative to the given
// odometer & date as JSON.
func JSONGetDueNotices(ownerId string, currentKm int64, nowMillis int64, T *translate.Translater, dbCon *sql.DB) (res JSONDueNoticesAnswer, err error) {
	res = JSONDueNoticesAnswer{}
	res.Notices, err = GetDueNotices(dbCon, ownerId, currentKm, nowMillis, T)
	if err != nil {
		dbg.E(TAG, "Error getting GetDueNotices : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Unknown error while getting due-notices")
		return
	}
	res.Success = true
	return
}
