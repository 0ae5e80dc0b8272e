package fuelManager

import (
	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/models"
)

// LedgerEntry is a FuelRecord enriched with its derived consumption-metrics,
// as shown in the ledger-grid.
type LedgerEntry struct {
	*models.FuelRecord
	Stats fuelstats.Stats
}

type JSONFuelRecordsAnswer struct {
	models.JSONAnswer
	FuelRecords []*models.FuelRecord
}

type JSONLedgerAnswer struct {
	models.JSONAnswer
	Entries []*LedgerEntry
}
