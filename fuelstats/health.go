package fuelstats

import (
	"fmt"

	"github.com/OpenFuelLog/gofuel-lib/models"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

// Penalties for the vehicle-health-score. Km-based deadlines weigh more than
// date-based ones, routine reminders less than real maintenance deadlines.
const (
	penaltyDeadlineKm   = 20
	penaltyDeadlineDate = 15
	penaltyReminderKm   = 10
	penaltyReminderDays = 5
)

// CalcCarHealthScore calculates a 0-100 score for the vehicle: 100 minus a
// penalty per overdue maintenance-deadline and per overdue routine-reminder.
// Returns the score and the labels of everything found overdue.
func CalcCarHealthScore(currentKm int64, nowMillis int64, deadlines []*models.MaintenanceRecord, reminders []*models.Reminder) (score int, overdueItems []string) {
	score = 100
	overdueItems = make([]string, 0)

	for _, m := range deadlines {
		if m.ExpiryKm != 0 && currentKm > int64(m.ExpiryKm) {
			score -= penaltyDeadlineKm
			overdueItems = append(overdueItems, fmt.Sprintf("overdue: %s (km)", m.ExpenseType))
		} else if m.ExpiryDateMillis != 0 && nowMillis > int64(m.ExpiryDateMillis) {
			score -= penaltyDeadlineDate
			overdueItems = append(overdueItems, fmt.Sprintf("overdue: %s (date)", m.ExpenseType))
		}
	}

	for _, r := range reminders {
		if r.Disabled != 0 {
			continue
		}
		if r.FrequencyKm != 0 && currentKm-int64(r.LastKmCheck) >= int64(r.FrequencyKm) {
			score -= penaltyReminderKm
			overdueItems = append(overdueItems, fmt.Sprintf("routine: %s (km)", r.Title))
		} else if r.FrequencyDays != 0 && tools.DaysBetween(int64(r.LastDateCheckMillis), nowMillis) >= int64(r.FrequencyDays) {
			score -= penaltyReminderDays
			overdueItems = append(overdueItems, fmt.Sprintf("routine: %s (time)", r.Title))
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return
}
