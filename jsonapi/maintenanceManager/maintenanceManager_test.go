package maintenanceManager_test

import (
	"database/sql"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/OpenFuelLog/gofuel-lib/dbMan"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/maintenanceManager"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

const owner = "tester"

func dateMillisOf(date string) int64 {
	t, err := time.Parse("2006-01-02", date)
	Expect(err).ToNot(HaveOccurred())
	return tools.GetDateMillis(t)
}

var _ = Describe("MaintenanceManager", func() {

	var (
		tmpDir string
		dbCon  *sql.DB
	)

	BeforeEach(func() {
		defer GinkgoRecover()
		var err error
		tmpDir, err = ioutil.TempDir("", "gofuel-maintenance")
		Expect(err).ToNot(HaveOccurred())
		dbCon, err = dbMan.GetVehicleDb(filepath.Join(tmpDir, "vehicle.db"))
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		dbCon.Close()
		os.RemoveAll(tmpDir)
	})

	newRecord := func(date string, km int64, category string, cost float64) *models.MaintenanceRecord {
		return &models.MaintenanceRecord{
			OwnerId:     S.NString(owner),
			DateMillis:  S.NInt64(dateMillisOf(date)),
			Km:          S.NInt64(km),
			ExpenseType: S.NString(category),
			Cost:        S.NFloat64(cost),
		}
	}

	Describe("CreateMaintenanceRecord", func() {

		It("creates and reads back a record", func() {
			defer GinkgoRecover()
			key, err := maintenanceManager.CreateMaintenanceRecord(newRecord("2024-01-05", 1200, "Tagliando", 150), dbCon)
			Expect(err).ToNot(HaveOccurred())

			record, err := maintenanceManager.GetMaintenanceRecordById(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(record.ExpenseType)).To(Equal("Tagliando"))
		})

		It("defaults the category", func() {
			defer GinkgoRecover()
			key, err := maintenanceManager.CreateMaintenanceRecord(newRecord("2024-01-05", 1200, "", 150), dbCon)
			Expect(err).ToNot(HaveOccurred())

			record, err := maintenanceManager.GetMaintenanceRecordById(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(record.ExpenseType)).To(Equal("Altro"))
		})

		It("rejects negative costs", func() {
			defer GinkgoRecover()
			_, err := maintenanceManager.CreateMaintenanceRecord(newRecord("2024-01-05", 1200, "Tagliando", -1), dbCon)
			Expect(err).To(Equal(maintenanceManager.ErrInvalidValues))
		})

		It("rejects a write that breaks the odometer-order", func() {
			defer GinkgoRecover()
			_, err := maintenanceManager.CreateMaintenanceRecord(newRecord("2024-01-05", 1200, "Tagliando", 150), dbCon)
			Expect(err).ToNot(HaveOccurred())

			_, err = maintenanceManager.CreateMaintenanceRecord(newRecord("2024-01-09", 1100, "Gomme", 300), dbCon)
			Expect(err).To(HaveOccurred())
			_, isConsistency := err.(*fuelManager.ConsistencyError)
			Expect(isConsistency).To(BeTrue())
		})
	})

	Describe("UpdateMaintenanceRecord", func() {

		It("re-runs the sandwich-check with the record itself excluded", func() {
			defer GinkgoRecover()
			key, err := maintenanceManager.CreateMaintenanceRecord(newRecord("2024-01-05", 1200, "Tagliando", 150), dbCon)
			Expect(err).ToNot(HaveOccurred())

			record, err := maintenanceManager.GetMaintenanceRecordById(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			record.Km = 1250
			_, err = maintenanceManager.UpdateMaintenanceRecord(record, dbCon)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Deadlines", func() {

		It("lists only records with a live deadline", func() {
			defer GinkgoRecover()
			withDeadline := newRecord("2024-01-05", 1200, "Tagliando", 150)
			withDeadline.ExpiryKm = S.NInt64(16200)
			key, err := maintenanceManager.CreateMaintenanceRecord(withDeadline, dbCon)
			Expect(err).ToNot(HaveOccurred())
			_, err = maintenanceManager.CreateMaintenanceRecord(newRecord("2024-01-09", 1300, "Gomme", 300), dbCon)
			Expect(err).ToNot(HaveOccurred())

			deadlines, err := maintenanceManager.GetActiveDeadlines(dbCon, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(deadlines).To(HaveLen(1))
			Expect(int64(deadlines[0].Id)).To(Equal(key))
		})

		It("resolves a deadline and rolls over into a follow-up", func() {
			defer GinkgoRecover()
			withDeadline := newRecord("2024-01-05", 1200, "Tagliando", 150)
			withDeadline.ExpiryKm = S.NInt64(16200)
			key, err := maintenanceManager.CreateMaintenanceRecord(withDeadline, dbCon)
			Expect(err).ToNot(HaveOccurred())

			followUp := newRecord("2024-02-01", 16250, "Tagliando", 175)
			followUp.ExpiryKm = S.NInt64(31250)
			followUpKey, err := maintenanceManager.ResolveDeadline(dbCon, owner, key, followUp)
			Expect(err).ToNot(HaveOccurred())
			Expect(followUpKey).ToNot(BeZero())

			deadlines, err := maintenanceManager.GetActiveDeadlines(dbCon, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(deadlines).To(HaveLen(1))
			Expect(int64(deadlines[0].Id)).To(Equal(followUpKey))
		})

		It("resolves without a follow-up", func() {
			defer GinkgoRecover()
			withDeadline := newRecord("2024-01-05", 1200, "Tagliando", 150)
			withDeadline.ExpiryDateMillis = S.NInt64(dateMillisOf("2024-07-01"))
			key, err := maintenanceManager.CreateMaintenanceRecord(withDeadline, dbCon)
			Expect(err).ToNot(HaveOccurred())

			followUpKey, err := maintenanceManager.ResolveDeadline(dbCon, owner, key, nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(followUpKey).To(BeZero())

			deadlines, err := maintenanceManager.GetActiveDeadlines(dbCon, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(deadlines).To(BeEmpty())
		})
	})
})
