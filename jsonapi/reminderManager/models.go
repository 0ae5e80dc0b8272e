package reminderManager

import (
	"github.com/OpenFuelLog/gofuel-lib/models"
)

// DueNotice is a user-facing notice for an overdue routine-reminder.
type DueNotice struct {
	Reminder *models.Reminder
	Subject  string
	Message  string
}

type JSONRemindersAnswer struct {
	models.JSONAnswer
	Reminders []*models.Reminder
}

type JSONDueNoticesAnswer struct {
	models.JSONAnswer
	Notices []*DueNotice
}
