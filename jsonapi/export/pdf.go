// Package export is responsible for exporting the yearly fuel-report to pdf-format.
package export

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/Compufreak345/dbg"
	"github.com/jung-kurt/gofpdf"
	"github.com/qiniu/iconv"
	"github.com/shopspring/decimal"

	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

var TAG = dbg.Tag("gofuel-lib/jsonApi/export")

type Row struct {
	H     float64
	Cells []*Cell
}

type Cell struct {
	W   float64
	H   float64
	Val string
}

// ExportYearToPdf exports the owners fuel-ledger of the given year to a file in
// the given directory, returning the path of the result file. The KPI-header sums
// cost & liters with exact decimals, the table shows the Full-to-Full-metrics of
// every entry.
func ExportYearToPdf(dir string, ownerId string, year int, dbCon *sql.DB) (resPath string, err error) {
	if dir == "" {
		dbg.E(TAG, "Error path for pdf was empty : ", err)
		return
	}

	os.MkdirAll(dir, 0755)
	fName := "Tankbuch_" + strconv.Itoa(year) + ".pdf"
	resPath, err = tools.GetCleanFilePath(fName, dir)
	if err != nil {
		dbg.E(TAG, "Error getting pdf file path : ", err)
		return
	}

	history, err := fuelManager.GetFuelRecords(dbCon, ownerId)
	if err != nil {
		dbg.E(TAG, "Error getting fuel-records for pdf : ", err)
		return
	}
	view := fuelstats.FilterFuelByYear(history, year)
	kpis := fuelstats.YearlyKpis(year, history)

	totalCost := decimal.Zero
	totalLiters := decimal.Zero
	for _, r := range view {
		totalCost = totalCost.Add(decimal.NewFromFloat(float64(r.TotalCost)))
		totalLiters = totalLiters.Add(decimal.NewFromFloat(float64(r.Liters)))
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Column widths
	w := []float64{25.0, 25.0, 25.0, 25.0, 20.0, 15.0, 20.0, 35.0}
	header := []string{"Datum", "km", "Preis/l", "Kosten", "Liter", "Voll", "km/l", "Notizen"}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 20, convertUtfToIso("Tankbuch "+strconv.Itoa(year)))
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(200, 8, convertUtfToIso(fmt.Sprintf("Gesamtkosten: %s    Liter: %s    Ø-Preis: %.3f",
		totalCost.StringFixed(2), totalLiters.StringFixed(2), kpis.AvgPrice)))
	pdf.Ln(-1)
	pdf.Cell(200, 8, convertUtfToIso(fmt.Sprintf("Strecke: %d km    Verbrauch min/max: %.2f / %.2f km/l",
		kpis.KmEstimate, kpis.MinEff, kpis.MaxEff)))
	pdf.Ln(-1)

	if len(view) == 0 {
		pdf.SetFont("Arial", "", 14)
		pdf.Cell(200, 15, convertUtfToIso("Keine Betankungen im gewählten Jahr."))
		err = pdf.OutputFileAndClose(resPath)
		if err != nil {
			dbg.E(TAG, "Error writing pdf file : ", err)
		}
		return
	}

	rows := make([]*Row, 0)
	for _, rec := range view {
		maxH := 0.0
		r := Row{Cells: make([]*Cell, 0)}
		stats := fuelstats.ComputeStats(rec, history)

		eff := "-"
		if stats.KmPerLiter != nil {
			eff = fmt.Sprintf("%.2f", *stats.KmPerLiter)
		}
		full := "Ja"
		if !bool(rec.FullTank) {
			full = "Nein"
		}
		vals := []string{
			tools.GetDateOnlyForText(int64(rec.DateMillis)),
			strconv.FormatInt(int64(rec.Km), 10),
			fmt.Sprintf("%.3f", float64(rec.PricePerLiter)),
			fmt.Sprintf("%.2f", float64(rec.TotalCost)),
			fmt.Sprintf("%.2f", float64(rec.Liters)),
			full,
			eff,
			string(rec.Notes),
		}
		for j, val := range vals {
			r.Cells = append(r.Cells, calcMultiCell(w[j], val, pdf, &maxH))
		}
		r.H = maxH
		rows = append(rows, &r)
	}

	pdf.SetFont("Arial", "", 11)
	y := 0.0
	firstPage := true
	for _, r := range rows {
		if firstPage || y+r.H > 270.0 {
			if !firstPage {
				pdf.AddPage()
			} else {
				firstPage = false
			}
			pdf.SetFont("Arial", "B", 11)
			for j, str := range header {
				pdf.CellFormat(w[j], 7, convertUtfToIso(str), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont("Arial", "", 11)
			y = pdf.GetY()
		}
		pdf.SetY(y)
		wSum := pdf.GetX()
		for k := 0; k < len(r.Cells); k++ {
			addMultiCell(w[k], r.Cells[k].Val, &wSum, pdf)
		}
		y += r.H
	}

	err = pdf.OutputFileAndClose(resPath)
	if err != nil {
		dbg.E(TAG, "Error writing pdf file : ", err)
		return
	}
	return
}

// addMultiCell adds a multiline cell to the pdf, automatically splitting the text into lines to fit.
func addMultiCell(width float64, txt string, wSum *float64, pdf *gofpdf.Fpdf) {

	y := pdf.GetY()
	startY := y

	splitted := pdf.SplitLines([]byte(txt), width)

	for _, v := range splitted {
		pdf.SetXY(*wSum, y)
		pdf.CellFormat(width, 4, convertUtfToIso(string(v)), "", 0, "LB", false, 0, "")
		y += 4
	}

	*wSum += width
	pdf.SetXY(*wSum, startY)
	return
}

// calcMultiCell calculates the height of a multiline cell resulting of the given text & width.
func calcMultiCell(width float64, txt string, pdf *gofpdf.Fpdf, maxH *float64) *Cell {
	h := float64(4*len(pdf.SplitLines([]byte(txt), width))) + 2
	if *maxH < h {
		*maxH = h
	}

	return &Cell{
		H:   h,
		W:   width,
		Val: txt,
	}
}

// convertUtfToIso Converts an UTF-8-String to an ISO-8859-1-string.
func convertUtfToIso(s string) (cs string) {
	cd, err := iconv.Open("ISO-8859-1", "utf-8")
	if err != nil {
		dbg.E(TAG, "iconv.Open failed!")
		return s
	}
	defer cd.Close()

	cs = cd.ConvString(s)

	return
}
