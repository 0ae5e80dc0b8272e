package importManager

import (
	"github.com/OpenFuelLog/gofuel-lib/models"
)

// Review-row-states. Error blocks the commit of the row, Warning does not.
const (
	StatusNew       = "New"
	StatusModified  = "Modified"
	StatusUnchanged = "Unchanged"
	StatusError     = "Error"
	StatusWarning   = "Warning"
)

// RawTable is the untyped tabular input of a reconciliation-pass, as it comes
// out of the workbook-reader or the interactive grid. First class citizen of the
// JSON-interface, so the front-end can send hand-edited tables back.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// FuelRow is a fuel-import-row after normalization. Missing cells keep their
// zero-value; unparseable dates are collected in ParseErrors instead of crashing.
type FuelRow struct {
	Id         int64
	DateMillis int64
	Km         int64
	Price      float64
	Cost       float64
	Liters     float64
	FullTank   bool
	Notes      string

	ParseErrors []string
}

// MaintenanceRow is a maintenance-import-row after normalization.
type MaintenanceRow struct {
	Id          int64
	DateMillis  int64
	Km          int64
	Category    string
	Cost        float64
	Description string

	ParseErrors []string
}

// FuelReviewRow is the classification of one fuel-import-row against the ledger.
type FuelReviewRow struct {
	BatchId   string
	RowNum    int
	Status    string
	Reasons   []string
	MatchedId int64
	Row       *FuelRow
}

// MaintenanceReviewRow is the classification of one maintenance-import-row
// against the ledger.
type MaintenanceReviewRow struct {
	BatchId   string
	RowNum    int
	Status    string
	Reasons   []string
	MatchedId int64
	Row       *MaintenanceRow
}

// CommitResult sums up a best-effort batch-commit.
type CommitResult struct {
	Created int64
	Updated int64
	Skipped int64
	Failed  int64
}

type JSONFuelReviewAnswer struct {
	models.JSONAnswer
	BatchId string
	Rows    []*FuelReviewRow
}

type JSONMaintenanceReviewAnswer struct {
	models.JSONAnswer
	BatchId string
	Rows    []*MaintenanceReviewRow
}

type JSONWorkbookReviewAnswer struct {
	models.JSONAnswer
	BatchId         string
	FuelRows        []*FuelReviewRow
	MaintenanceRows []*MaintenanceReviewRow
}
