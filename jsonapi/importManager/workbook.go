package importManager

import (
	"errors"

	"github.com/Compufreak345/dbg"
	"github.com/xuri/excelize/v2"
)

// Sheet-name-aliases of the two logical sheets of the bulk-import-workbook.
var fuelSheetNames = []string{"Fuel", "Rifornimenti", "Carburante"}
var maintenanceSheetNames = []string{"Maintenance", "Manutenzione", "Spese"}

var ErrNoSheets = errors.New("Workbook contains no usable sheet")

// ReadWorkbook reads the two-sheet import-workbook into raw tables. Sheets are
// found by their alias-names, falling back to sheet-order (first = fuel,
// second = maintenance). A missing maintenance-sheet yields a nil table, not an
// error.
func ReadWorkbook(fPath string) (fuelTable *RawTable, maintenanceTable *RawTable, err error) {
	f, err := excelize.OpenFile(fPath)
	if err != nil {
		dbg.E(TAG, "Error opening workbook %v : ", fPath, err)
		return
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			dbg.W(TAG, "Error closing workbook %v : ", fPath, cErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		err = ErrNoSheets
		return
	}
	fuelSheet := findSheet(sheets, fuelSheetNames)
	maintenanceSheet := findSheet(sheets, maintenanceSheetNames)
	if fuelSheet == "" {
		fuelSheet = sheets[0]
	}
	if maintenanceSheet == "" && len(sheets) > 1 && sheets[1] != fuelSheet {
		maintenanceSheet = sheets[1]
	}

	fuelTable, err = readSheet(f, fuelSheet)
	if err != nil {
		return
	}
	if maintenanceSheet != "" {
		maintenanceTable, err = readSheet(f, maintenanceSheet)
	}
	return
}

func findSheet(sheets []string, names []string) string {
	for _, sheet := range sheets {
		for _, name := range names {
			if CleanHeader(sheet) == CleanHeader(name) {
				return sheet
			}
		}
	}
	return ""
}

func readSheet(f *excelize.File, sheet string) (table *RawTable, err error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		dbg.E(TAG, "Error reading sheet %v : ", sheet, err)
		return
	}
	table = &RawTable{}
	if len(rows) == 0 {
		return
	}
	table.Headers = rows[0]
	table.Rows = rows[1:]
	return
}
