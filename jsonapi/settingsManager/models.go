package settingsManager

import (
	"github.com/OpenFuelLog/gofuel-lib/models"
)

type JSONSettingsAnswer struct {
	models.JSONAnswer
	Settings *models.Settings
}
