// Package reminderManager is responsible for creating & getting routine-reminders
// ("check tyre pressure every 5000 km") and for building their due-notices.
package reminderManager

import (
	"database/sql"
	"fmt"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/models"
	. "github.com/OpenFuelLog/gofuel-lib/tools"
	"github.com/OpenFuelLog/gofuel-lib/translate"
)

const TAG = "gofuel-lib/jsonApi/reminderManager"

const SelectColumns = "_reminderId,ownerId,title,frequencyKm,frequencyDays,lastKmCheck,lastDateCheckMillis,disabled"

// GetRemindersByWhere returns all reminders matching the given where-string,
// always scoped by the ownerId.
func GetRemindersByWhere(dbCon *sql.DB, ownerId string, where string, params ...interface{}) (reminders []*models.Reminder, err error) {
	reminders = make([]*models.Reminder, 0)
	q := "SELECT " + SelectColumns + " FROM Reminders WHERE ownerId=?"
	if where != "" {
		q += " AND " + where
	}
	args := append([]interface{}{ownerId}, params...)
	res, err := dbCon.Query(q, args...)
	if err != nil {
		dbg.E(TAG, "unable to get Reminders", err)
		return
	}
	defer res.Close()

	for res.Next() {
		reminder := &models.Reminder{}
		err = res.Scan(&reminder.Id, &reminder.OwnerId, &reminder.Title, &reminder.FrequencyKm,
			&reminder.FrequencyDays, &reminder.LastKmCheck, &reminder.LastDateCheckMillis, &reminder.Disabled)
		if err != nil {
			dbg.E(TAG, "Unable to scan reminder!", err)
			return
		}
		reminders = append(reminders, reminder)
	}
	return
}

// GetActiveReminders returns all reminders that are not disabled.
func GetActiveReminders(dbCon *sql.DB, ownerId string) (reminders []*models.Reminder, err error) {
	return GetRemindersByWhere(dbCon, ownerId, "disabled=0")
}

// CreateReminder creates a new reminder.
func CreateReminder(reminder *models.Reminder, dbCon *sql.DB) (key int64, err error) {

	vals := []interface{}{reminder.OwnerId, reminder.Title}
	valString := "?,?"

	insFields := "ownerId,title"
	if reminder.FrequencyKm != 0 {
		insFields += ",frequencyKm"
		valString += ",?"
		vals = append(vals, reminder.FrequencyKm)
	}
	if reminder.FrequencyDays != 0 {
		insFields += ",frequencyDays"
		valString += ",?"
		vals = append(vals, reminder.FrequencyDays)
	}
	if reminder.LastKmCheck != 0 {
		insFields += ",lastKmCheck"
		valString += ",?"
		vals = append(vals, reminder.LastKmCheck)
	}
	if reminder.LastDateCheckMillis != 0 {
		insFields += ",lastDateCheckMillis"
		valString += ",?"
		vals = append(vals, reminder.LastDateCheckMillis)
	}
	q := "INSERT INTO Reminders(" + insFields + ") VALUES(" + valString + ")"
	var res sql.Result
	res, err = dbCon.Exec(q, vals...)
	if err != nil {
		dbg.E(TAG, "Error in dbCon.Exec for CreateReminder: %v ", err)
		return
	}

	key, err = res.LastInsertId()
	return
}

// UpdateReminder updates a reminder
func UpdateReminder(r *models.Reminder, dbCon *sql.DB) (rowCount int64, err error) {

	vals := []interface{}{}
	firstVal := true
	valString := ""

	if r.Title != "" {
		AppendNStringUpdateField("title", &r.Title, &firstVal, &vals, &valString)
	}
	if r.FrequencyKm != 0 {
		AppendNInt64UpdateField("frequencyKm", &r.FrequencyKm, &firstVal, &vals, &valString)
	}
	if r.FrequencyDays != 0 {
		AppendNInt64UpdateField("frequencyDays", &r.FrequencyDays, &firstVal, &vals, &valString)
	}
	if r.LastKmCheck != 0 {
		AppendNInt64UpdateField("lastKmCheck", &r.LastKmCheck, &firstVal, &vals, &valString)
	}
	if r.LastDateCheckMillis != 0 {
		AppendNInt64UpdateField("lastDateCheckMillis", &r.LastDateCheckMillis, &firstVal, &vals, &valString)
	}
	if r.Disabled != 0 {
		AppendNInt64UpdateField("disabled", &r.Disabled, &firstVal, &vals, &valString)
	}

	if firstVal {
		err = ErrNoChanges
		return
	}
	q := "UPDATE Reminders SET " + valString + " WHERE _reminderId=? AND ownerId=?"
	vals = append(vals, r.Id, r.OwnerId)
	var res sql.Result
	res, err = dbCon.Exec(q, vals...)
	if err != nil {
		dbg.E(TAG, "Error in dbCon.Exec for UpdateReminder: %v ", err)

		return
	}
	rowCount, err = res.RowsAffected()

	return
}

// DeleteReminder deletes the reminder with the given ID.
func DeleteReminder(dbCon *sql.DB, ownerId string, id int64) (rowCount int64, err error) {
	var res sql.Result
	res, err = dbCon.Exec("DELETE FROM Reminders WHERE _reminderId=? AND ownerId=?", id, ownerId)
	if err != nil {
		dbg.E(TAG, "Error in DeleteReminder : ", err)
	} else {
		rowCount, err = res.RowsAffected()
		if err != nil {
			dbg.E(TAG, "Error in DeleteReminder get RowsAffected : ", err)
		}
	}

	return
}

// MarkReminderChecked resets the km/date-marks of a reminder after the routine
// was carried out.
func MarkReminderChecked(dbCon *sql.DB, ownerId string, id int64, currentKm int64, nowMillis int64) (rowCount int64, err error) {
	var res sql.Result
	res, err = dbCon.Exec("UPDATE Reminders SET lastKmCheck=?, lastDateCheckMillis=? WHERE _reminderId=? AND ownerId=?",
		currentKm, nowMillis, id, ownerId)
	if err != nil {
		dbg.E(TAG, "Error in MarkReminderChecked : ", err)
		return
	}
	rowCount, err = res.RowsAffected()
	return
}

// GetDueNotices builds the user-facing notices for every overdue reminder of the
// owner, relative to the given odometer & date.
func GetDueNotices(dbCon *sql.DB, ownerId string, currentKm int64, nowMillis int64, T *translate.Translater) (notices []*DueNotice, err error) {
	notices = make([]*DueNotice, 0)
	reminders, err := GetActiveReminders(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting reminders for due-notices : ", err)
		return
	}
	for _, r := range reminders {
		kmDue := r.FrequencyKm != 0 && currentKm-int64(r.LastKmCheck) >= int64(r.FrequencyKm)
		daysDue := r.FrequencyDays != 0 && DaysBetween(int64(r.LastDateCheckMillis), nowMillis) >= int64(r.FrequencyDays)
		if !kmDue && !daysDue {
			continue
		}
		notice := &DueNotice{
			Reminder: r,
			Subject:  T.T("ReminderDueSubject"),
		}
		if kmDue {
			notice.Message = fmt.Sprintf("%s: %s (%d km)", T.T("ReminderDueMessage"), r.Title, currentKm-int64(r.LastKmCheck))
		} else {
			notice.Message = fmt.Sprintf("%s: %s (%d %s)", T.T("ReminderDueMessage"), r.Title,
				DaysBetween(int64(r.LastDateCheckMillis), nowMillis), T.T("Days"))
		}
		notices = append(notices, notice)
	}
	return
}

// GetEmptyReminder returns an empty reminder-object
func GetEmptyReminder() (reminder *models.Reminder, err error) {
	reminder = &models.Reminder{}
	return
}
