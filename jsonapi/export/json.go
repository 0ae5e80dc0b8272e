package export

import (
	"database/sql"
	"path/filepath"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/models"
)

type JSONExportAnswer struct {
	models.JSONAnswer
	ResPath string
}

// JSONExport exports the owners fuel-report of the given year into a file in the
// given directory.
// format : currently only pdf
func JSONExport(format string, targetDir string, ownerId string, year int, dbCon *sql.DB) (answer JSONExportAnswer, err error) {
	answer.Success = false

	if format == "pdf" {
		var resPath string
		resPath, err = ExportYearToPdf(targetDir+"/exported/pdfs/", ownerId, year, dbCon)
		resPath = "./protectedDownload/exported/pdfs/" + filepath.Base(resPath)
		if err != nil {
			dbg.E(TAG, "Error JSONExport/exporting to pdf : ", err)
			err = nil
			answer.ErrorMessage = "Internal server error"
			answer.Error = true
			return
		}
		answer.Success = true
		answer.ResPath = resPath
		return
	}

	answer.ErrorMessage = "Format not supported"
	answer.Error = true
	return
}
