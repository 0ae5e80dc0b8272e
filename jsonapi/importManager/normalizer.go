package importManager

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/OpenFuelLog/gofuel-lib/tools"
)

// The normalizer maps heterogeneous spreadsheet-headers & cell-encodings onto the
// canonical row-shape. It is pure & never fails: bad numbers fall back to 0, bad
// booleans to true, only unparseable dates are kept as per-row parse-errors so the
// classification can flag the row.

var ErrMissingColumns = errors.New("Table misses the date- or odometer-column")

// Canonical column-names. Aliases are matched case-insensitive & trimmed,
// unknown headers are dropped.
const (
	colId          = "id"
	colDate        = "date"
	colOdometer    = "odometer"
	colPrice       = "price"
	colCost        = "cost"
	colLiters      = "liters"
	colFullTank    = "fulltank"
	colNotes       = "notes"
	colCategory    = "category"
	colDescription = "description"
)

var fuelAliases = map[string][]string{
	colId:       {"id", "recordid", "_fuelrecordid"},
	colDate:     {"date", "data", "giorno"},
	colOdometer: {"odometer", "km", "chilometri", "kilometri", "odo"},
	colPrice:    {"price", "unit price", "prezzo", "prezzo/litro", "prezzo al litro"},
	colCost:     {"cost", "total cost", "spesa", "costo", "totale", "importo"},
	colLiters:   {"liters", "litres", "volume", "litri"},
	colFullTank: {"full tank", "fulltank", "full", "pieno"},
	colNotes:    {"notes", "note", "descrizione", "description", "commento"},
}

var maintenanceAliases = map[string][]string{
	colId:          {"id", "recordid", "_maintenancerecordid"},
	colDate:        {"date", "data", "giorno"},
	colOdometer:    {"odometer", "km", "chilometri", "kilometri", "odo"},
	colCategory:    {"category", "categoria", "type", "tipo"},
	colCost:        {"cost", "total cost", "spesa", "costo", "totale", "importo"},
	colDescription: {"description", "descrizione", "note", "notes", "commento"},
}

var dateFormats = []string{"2006-01-02", "02/01/2006", "02-01-2006"}

// CleanHeader lower-cases & trims a header-cell for the alias-lookup.
func CleanHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// resolveColumns maps each header-index onto its canonical column-name.
func resolveColumns(headers []string, aliases map[string][]string) (byIndex map[int]string) {
	byIndex = make(map[int]string)
	for i, h := range headers {
		cleaned := CleanHeader(h)
		for canonical, names := range aliases {
			for _, name := range names {
				if cleaned == name {
					byIndex[i] = canonical
				}
			}
		}
	}
	return
}

func hasColumns(byIndex map[int]string, required ...string) bool {
	for _, want := range required {
		found := false
		for _, canonical := range byIndex {
			if canonical == want {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ParseDateMillis parses a date-cell into the UTC-midnight-millis-representation.
// Time-of-day-suffixes ("2024-03-01 14:22", "...T14:22:00") are stripped first.
func ParseDateMillis(val string) (millis int64, err error) {
	s := strings.TrimSpace(val)
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	for _, format := range dateFormats {
		var t time.Time
		t, err = time.Parse(format, s)
		if err == nil {
			millis = tools.GetDateMillis(t)
			return
		}
	}
	err = errors.New("Unknown date-format : " + val)
	return
}

// ParseFloat parses a decimal-cell, accepting both "." and "," as separator.
// Missing or non-numeric values normalize to 0.
func ParseFloat(val string) float64 {
	s := strings.Replace(strings.TrimSpace(val), ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseInt parses an integer-cell, tolerating decimal-notation ("1200.0").
// Missing or non-numeric values normalize to 0.
func ParseInt(val string) int64 {
	return int64(ParseFloat(val))
}

// ParseBool maps the negative token-set (no/false/0/n) to false, anything
// else - including an empty cell - to true.
func ParseBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "no", "false", "0", "n":
		return false
	}
	return true
}

// NormalizeFuelTable turns a raw fuel-table into normalized rows.
func NormalizeFuelTable(table *RawTable) (rows []*FuelRow, err error) {
	byIndex := resolveColumns(table.Headers, fuelAliases)
	if !hasColumns(byIndex, colDate, colOdometer) {
		err = ErrMissingColumns
		return
	}
	rows = make([]*FuelRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		row := &FuelRow{FullTank: true}
		for i, cell := range cells {
			canonical, known := byIndex[i]
			if !known {
				continue
			}
			switch canonical {
			case colId:
				row.Id = ParseInt(cell)
			case colDate:
				if strings.TrimSpace(cell) == "" {
					continue
				}
				var dErr error
				row.DateMillis, dErr = ParseDateMillis(cell)
				if dErr != nil {
					row.ParseErrors = append(row.ParseErrors, dErr.Error())
				}
			case colOdometer:
				row.Km = ParseInt(cell)
			case colPrice:
				row.Price = ParseFloat(cell)
			case colCost:
				row.Cost = ParseFloat(cell)
			case colLiters:
				row.Liters = ParseFloat(cell)
			case colFullTank:
				row.FullTank = ParseBool(cell)
			case colNotes:
				row.Notes = strings.TrimSpace(cell)
			}
		}
		if row.DateMillis == 0 && len(row.ParseErrors) == 0 {
			row.ParseErrors = append(row.ParseErrors, "Missing date")
		}
		rows = append(rows, row)
	}
	return
}

// NormalizeMaintenanceTable turns a raw maintenance-table into normalized rows.
func NormalizeMaintenanceTable(table *RawTable) (rows []*MaintenanceRow, err error) {
	byIndex := resolveColumns(table.Headers, maintenanceAliases)
	if !hasColumns(byIndex, colDate, colOdometer) {
		err = ErrMissingColumns
		return
	}
	rows = make([]*MaintenanceRow, 0, len(table.Rows))
	for _, cells := range table.Rows {
		row := &MaintenanceRow{}
		for i, cell := range cells {
			canonical, known := byIndex[i]
			if !known {
				continue
			}
			switch canonical {
			case colId:
				row.Id = ParseInt(cell)
			case colDate:
				if strings.TrimSpace(cell) == "" {
					continue
				}
				var dErr error
				row.DateMillis, dErr = ParseDateMillis(cell)
				if dErr != nil {
					row.ParseErrors = append(row.ParseErrors, dErr.Error())
				}
			case colOdometer:
				row.Km = ParseInt(cell)
			case colCategory:
				row.Category = strings.TrimSpace(cell)
			case colCost:
				row.Cost = ParseFloat(cell)
			case colDescription:
				row.Description = strings.TrimSpace(cell)
			}
		}
		if row.DateMillis == 0 && len(row.ParseErrors) == 0 {
			row.ParseErrors = append(row.ParseErrors, "Missing date")
		}
		if row.Category == "" {
			row.Category = DefaultCategory
		}
		rows = append(rows, row)
	}
	return
}
