// manages DBconnections, validation & migrations for the fuel-&maintenance-ledger
package dbMan

import (
	"bytes"
	"database/sql"
	"fmt"
	"os"

	"github.com/Compufreak345/dbg"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

const dTag = "gofuel-lib/dbMan.go"

// GetVehicleDb creates the vehicle-ledger-DB if not existent and returns a connection to the db
func GetVehicleDb(dbPath string) (db *sql.DB, err error) {

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		err = CreateNewVehicleDb(dbPath)
		if err != nil {
			return nil, err
		}
	}
	db, err = openDbCon(dbPath)
	if err != nil {
		dbg.E(dTag, "Failed to get connection to available database() : ", err)
		return nil, err
	}

	_, err = ExecMigrations(db)
	if err != nil {
		dbg.E(dTag, "Failed to migrate vehicle db : ", err)
		return nil, err
	}

	return
}

// openDbCon tries to open database connection AND validates
func openDbCon(dbPath string) (database *sql.DB, err error) {

	tools.RegisterSqlite("SQLITE")
	database, err = sql.Open("SQLITE", "file:"+dbPath+"?Pooling=true")

	if err != nil {
		dbg.E(dTag, "Failed to create DB handle at openDbCon() : ", err)
		return
	}
	if err = database.Ping(); err != nil {
		dbg.E(dTag, "Failed to keep connection alive at openDbCon() : ", err)
		return
	}
	var timeout int64
	err = database.QueryRow("PRAGMA busy_timeout").Scan(&timeout)
	if err != nil {
		dbg.E(dTag, "Error getting busy_timeout!", err)
	} else if timeout < 10000 {
		_, err = database.Exec(`PRAGMA journal_mode=WAL;
		PRAGMA automatic_index = 1;
		PRAGMA busy_timeout = 10000;
		PRAGMA temp_store=2;
		`)
		if err != nil {
			dbg.E(dTag, "Error setting pragmas!", err)
		}
	}
	_, err = database.Exec("PRAGMA foreign_keys=ON;")
	if err != nil {
		dbg.E(dTag, "Error enabling foreign keys!", err)
	}
	dbg.D(dTag, "Databaseconnection established", dbPath)

	return
}

// CreateNewVehicleDb creates a new vehicle-ledger-DB with newest db-schema
func CreateNewVehicleDb(dbPath string) (err error) {
	dbCon, err := openDbCon(dbPath)
	if err != nil {
		return
	}
	defer dbCon.Close()
	dbg.I(dTag, "Creating new vehicle-DB at ", dbPath)

	numExec, err := ExecMigrations(dbCon)

	if err != nil {
		dbg.E(dTag, "Failed to create vehicle-DB. That is bad : ", err)
		return err
	}
	dbg.I(dTag, "Vehicle DB created with %d migrations executed", numExec)
	return
}

// GetVehicleDbNumbers returns numbers of rows for all ledger tables
func GetVehicleDbNumbers(dbPath string) (latestMigration string, fuelRecords int64, maintenances int64, reminders int64, err error) {
	dbCon, err := openDbCon(dbPath)
	if err != nil {
		return
	}
	defer dbCon.Close()
	r, err := dbCon.Query(`SELECT Count(1) FROM FuelRecords UNION ALL
		SELECT Count(1) FROM MaintenanceRecords UNION ALL
		SELECT Count(1) FROM Reminders UNION ALL
		SELECT id FROM gorp_migrations WHERE applied_at = (SELECT MAX(applied_at) FROM gorp_migrations)`)
	if err != nil {
		dbg.E(dTag, "Error getting vehicle db numbers : ", err)
		return
	}
	defer r.Close()
	r.Next()
	r.Scan(&fuelRecords)
	r.Next()
	r.Scan(&maintenances)
	r.Next()
	r.Scan(&reminders)
	r.Next()
	r.Scan(&latestMigration)
	return
}

// GetDbCSV returns CSV of the fuel-ledger for the given owner in timerange
func GetDbCSV(dbPath string, ownerId string, sinceTimeMillis int64, beforeTimeMillis int64) (csv string, err error) {

	var buf bytes.Buffer
	buf.WriteString("date,km,pricePerLiter,totalCost,liters,fullTank,notes")

	dbCon, err := GetVehicleDb(dbPath)
	if err != nil {
		dbg.E(dTag, "Error getting vehicle Db for CSV : %+v", err)
		return "", err
	}
	defer dbCon.Close()

	rows, err := dbCon.Query(`SELECT dateMillis,km,pricePerLiter,totalCost,liters,fullTank,notes
		FROM FuelRecords WHERE ownerId=? AND dateMillis>=? AND dateMillis<? ORDER BY dateMillis,km`,
		ownerId, sinceTimeMillis, beforeTimeMillis)
	if err != nil {
		dbg.E(dTag, "Error querying FuelRecords for CSV : ", err)
		return "", err
	}
	defer rows.Close()
	for rows.Next() {
		var dateMillis, km sql.NullInt64
		var price, cost, liters sql.NullFloat64
		var fullTank sql.NullBool
		var notes sql.NullString
		err = rows.Scan(&dateMillis, &km, &price, &cost, &liters, &fullTank, &notes)
		if err != nil {
			dbg.E(dTag, "Error scanning FuelRecord for CSV : ", err)
			return "", err
		}
		full := 0
		if fullTank.Bool {
			full = 1
		}
		buf.WriteString(fmt.Sprintf("\r\n%s,%d,%.3f,%.2f,%.2f,%d,%s",
			tools.GetTimeFromMillis(dateMillis.Int64).Format("2006-01-02"),
			km.Int64, price.Float64, cost.Float64, liters.Float64, full, notes.String))
	}

	return buf.String(), err
}
