package dbMan_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/OpenFuelLog/gofuel-lib/dbMan"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

var _ = Describe("DbMan", func() {

	var (
		tmpDir string
		dbPath string
	)

	BeforeEach(func() {
		defer GinkgoRecover()
		var err error
		tmpDir, err = ioutil.TempDir("", "gofuel-dbman")
		Expect(err).ToNot(HaveOccurred())
		dbPath = filepath.Join(tmpDir, "vehicle.db")
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("creates a fresh database with all migrations applied", func() {
		defer GinkgoRecover()
		dbCon, err := dbMan.GetVehicleDb(dbPath)
		Expect(err).ToNot(HaveOccurred())
		dbCon.Close()

		latestMigration, fuelRecords, maintenances, reminders, err := dbMan.GetVehicleDbNumbers(dbPath)
		Expect(err).ToNot(HaveOccurred())
		Expect(latestMigration).To(ContainSubstring("settings"))
		Expect(fuelRecords).To(Equal(int64(0)))
		Expect(maintenances).To(Equal(int64(0)))
		Expect(reminders).To(Equal(int64(0)))
	})

	It("opens an existing database without re-creating it", func() {
		defer GinkgoRecover()
		dbCon, err := dbMan.GetVehicleDb(dbPath)
		Expect(err).ToNot(HaveOccurred())
		_, err = dbCon.Exec("INSERT INTO FuelRecords(ownerId,dateMillis,km) VALUES('tester',1,1000)")
		Expect(err).ToNot(HaveOccurred())
		dbCon.Close()

		dbCon, err = dbMan.GetVehicleDb(dbPath)
		Expect(err).ToNot(HaveOccurred())
		defer dbCon.Close()
		var count int64
		err = dbCon.QueryRow("SELECT Count(1) FROM FuelRecords").Scan(&count)
		Expect(err).ToNot(HaveOccurred())
		Expect(count).To(Equal(int64(1)))
	})

	It("exports the fuel-ledger of a timerange as CSV", func() {
		defer GinkgoRecover()
		dbCon, err := dbMan.GetVehicleDb(dbPath)
		Expect(err).ToNot(HaveOccurred())

		day, err := time.Parse("2006-01-02", "2024-01-05")
		Expect(err).ToNot(HaveOccurred())
		_, err = fuelManager.CreateFuelRecord(&models.FuelRecord{
			OwnerId:       S.NString("tester"),
			DateMillis:    S.NInt64(tools.GetDateMillis(day)),
			Km:            S.NInt64(1200),
			PricePerLiter: S.NFloat64(1.8),
			TotalCost:     S.NFloat64(90),
			Liters:        S.NFloat64(50),
			FullTank:      S.NBool(true),
			Notes:         S.NString("pieno"),
		}, dbCon)
		Expect(err).ToNot(HaveOccurred())
		dbCon.Close()

		csv, err := dbMan.GetDbCSV(dbPath, "tester", 0, tools.GetDateMillis(day)+tools.MillisPerDay)
		Expect(err).ToNot(HaveOccurred())
		lines := strings.Split(csv, "\r\n")
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HavePrefix("date,km"))
		Expect(lines[1]).To(ContainSubstring("2024-01-05,1200"))
		Expect(lines[1]).To(ContainSubstring("pieno"))

		empty, err := dbMan.GetDbCSV(dbPath, "someone-else", 0, tools.GetDateMillis(day)+tools.MillisPerDay)
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.Split(empty, "\r\n")).To(HaveLen(1))
	})
})
