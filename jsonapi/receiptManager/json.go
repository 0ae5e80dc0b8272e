package receiptManager

import (
	"database/sql"
	"strconv"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/importManager"
	"github.com/OpenFuelLog/gofuel-lib/models"
	. "github.com/OpenFuelLog/gofuel-lib/tools"
)

type JSONReceiptAnswer struct {
	models.JSONAnswer
	Guess *ReceiptGuess
	Rows  []*importManager.FuelReviewRow
}

// JSONExtractReceipt extracts field-guesses from an uploaded receipt-image and
// stages them as a one-row fuel-import, so the caller reviews the guesses exactly
// like a workbook-row before anything is written.
func JSONExtractReceipt(ownerId string, fileName string, uploadDir string, extractor Extractor, dbCon *sql.DB) (res JSONReceiptAnswer, err error) {
	imgPath, err := GetCleanFilePath(fileName, uploadDir)
	if err != nil {
		dbg.W(TAG, "Bad receipt-path %v in JSONExtractReceipt : ", fileName, err)
		res.JSONAnswer = models.GetBadJSONAnswer("Invalid file-path")
		err = nil
		return
	}
	guess, err := extractor.ExtractReceipt(imgPath)
	if err != nil {
		dbg.E(TAG, "Error extracting receipt in JSONExtractReceipt : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Could not read the receipt")
		return
	}
	res.Guess = guess

	table := &importManager.RawTable{
		Headers: []string{"date", "odometer", "price", "cost", "liters"},
		Rows: [][]string{{
			guess.Date,
			strconv.FormatInt(guess.Km, 10),
			strconv.FormatFloat(guess.Price, 'f', -1, 64),
			strconv.FormatFloat(guess.Cost, 'f', -1, 64),
			strconv.FormatFloat(guess.Liters, 'f', -1, 64),
		}},
	}
	res.Rows, err = importManager.ReconcileFuel(ownerId, table, dbCon)
	if err != nil {
		dbg.E(TAG, "Error staging receipt-guess in JSONExtractReceipt : ", err)
		err = nil
		res.JSONAnswer = models.GetBadJSONAnswer("Internal server error")
		return
	}
	res.Success = true
	return
}
