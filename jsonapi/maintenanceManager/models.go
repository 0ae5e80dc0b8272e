package maintenanceManager

import (
	"github.com/OpenFuelLog/gofuel-lib/models"
)

type JSONMaintenanceRecordsAnswer struct {
	models.JSONAnswer
	MaintenanceRecords []*models.MaintenanceRecord
}

// ResolveRequest describes the resolution of a maintenance-deadline: the record
// whose deadline is done, plus an optional follow-up record carrying the next
// deadline ("rollover").
type ResolveRequest struct {
	Id       int64
	FollowUp *models.MaintenanceRecord
}

type JSONResolveAnswer struct {
	models.JSONAnswer
	Id          int64
	FollowUpKey int64
}
