package fuelManager_test

import (
	"database/sql"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/OpenFuelLog/gofuel-lib/dbMan"
	"github.com/OpenFuelLog/gofuel-lib/jsonapi/fuelManager"
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

func int64String(v int64) string {
	return strconv.FormatInt(v, 10)
}

var _ = Describe("FuelManager", func() {

	var (
		tmpDir string
		dbCon  *sql.DB
	)

	BeforeEach(func() {
		defer GinkgoRecover()
		var err error
		tmpDir, err = ioutil.TempDir("", "gofuel-fuel")
		Expect(err).ToNot(HaveOccurred())
		dbCon, err = dbMan.GetVehicleDb(filepath.Join(tmpDir, "vehicle.db"))
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		dbCon.Close()
		os.RemoveAll(tmpDir)
	})

	newRecord := func(date string, km int64, full bool) *models.FuelRecord {
		return &models.FuelRecord{
			OwnerId:       S.NString(owner),
			DateMillis:    S.NInt64(dateMillisOf(date)),
			Km:            S.NInt64(km),
			PricePerLiter: S.NFloat64(1.8),
			TotalCost:     S.NFloat64(90),
			Liters:        S.NFloat64(50),
			FullTank:      S.NBool(full),
		}
	}

	Describe("CreateFuelRecord", func() {

		It("creates and reads back a record", func() {
			defer GinkgoRecover()
			key, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())
			Expect(key).ToNot(BeZero())

			record, err := fuelManager.GetFuelRecordById(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			Expect(int64(record.Km)).To(Equal(int64(1000)))
			Expect(bool(record.FullTank)).To(BeTrue())
		})

		It("rejects a non-positive odometer", func() {
			defer GinkgoRecover()
			_, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 0, true), dbCon)
			Expect(err).To(Equal(fuelManager.ErrInvalidValues))
		})

		It("rejects a write that breaks the odometer-order", func() {
			defer GinkgoRecover()
			_, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())

			_, err = fuelManager.CreateFuelRecord(newRecord("2024-01-05", 900, true), dbCon)
			Expect(err).To(HaveOccurred())
			_, isConsistency := err.(*fuelManager.ConsistencyError)
			Expect(isConsistency).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("1000"))
		})

		It("does not leak records across owners", func() {
			defer GinkgoRecover()
			_, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())

			records, err := fuelManager.GetFuelRecords(dbCon, "someone-else")
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(BeEmpty())
		})
	})

	Describe("UpdateFuelRecord", func() {

		It("updates the mutable fields only", func() {
			defer GinkgoRecover()
			key, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())

			record, err := fuelManager.GetFuelRecordById(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			record.TotalCost = 95
			record.Notes = "autostrada"
			rowCount, err := fuelManager.UpdateFuelRecord(record, dbCon)
			Expect(err).ToNot(HaveOccurred())
			Expect(rowCount).To(Equal(int64(1)))

			record, err = fuelManager.GetFuelRecordById(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			Expect(float64(record.TotalCost)).To(BeNumerically("~", 95.0, 0.0001))
			Expect(string(record.Notes)).To(Equal("autostrada"))
		})
	})

	Describe("DeleteFuelRecord", func() {

		It("deletes by id", func() {
			defer GinkgoRecover()
			key, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())

			rowCount, err := fuelManager.DeleteFuelRecord(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			Expect(rowCount).To(Equal(int64(1)))

			_, err = fuelManager.GetFuelRecordById(dbCon, owner, key)
			Expect(err).To(Equal(sql.ErrNoRows))
		})
	})

	Describe("GetLedgerWithStats", func() {

		It("attaches the Full-to-Full-metrics to every entry, newest first", func() {
			defer GinkgoRecover()
			_, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())
			partial := newRecord("2024-01-05", 1200, false)
			partial.Liters = 10
			_, err = fuelManager.CreateFuelRecord(partial, dbCon)
			Expect(err).ToNot(HaveOccurred())
			closing := newRecord("2024-01-09", 1500, true)
			closing.Liters = 30
			_, err = fuelManager.CreateFuelRecord(closing, dbCon)
			Expect(err).ToNot(HaveOccurred())

			entries, err := fuelManager.GetLedgerWithStats(dbCon, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(3))

			Expect(int64(entries[0].Km)).To(Equal(int64(1500)))
			Expect(entries[0].Stats.DeltaKm).To(Equal(int64(300)))
			Expect(entries[0].Stats.KmPerLiter).ToNot(BeNil())
			Expect(*entries[0].Stats.KmPerLiter).To(BeNumerically("~", 12.5, 0.0001))

			Expect(entries[1].Stats.KmPerLiter).To(BeNil())
			Expect(entries[2].Stats.DeltaKm).To(Equal(int64(0)))
		})
	})

	Describe("JSONCreateFuelRecord", func() {

		It("absorbs consistency-violations into a bad answer", func() {
			defer GinkgoRecover()
			_, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())

			res, err := fuelManager.JSONCreateFuelRecord(owner,
				`{"DateMillis":`+int64String(dateMillisOf("2024-01-05"))+`,"Km":900,"PricePerLiter":1.8,"TotalCost":45,"Liters":25,"FullTank":true}`, dbCon)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Success).To(BeFalse())
			Expect(res.ErrorMessage).To(ContainSubstring("1000"))
		})

		It("rejects a non-positive price or cost without touching the database", func() {
			defer GinkgoRecover()
			res, err := fuelManager.JSONCreateFuelRecord(owner,
				`{"DateMillis":`+int64String(dateMillisOf("2024-01-05"))+`,"Km":1000,"PricePerLiter":-1,"TotalCost":-5,"Liters":50,"FullTank":true}`, dbCon)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Success).To(BeFalse())
			Expect(res.ErrorMessage).To(ContainSubstring("Invalid values"))

			records, err := fuelManager.GetFuelRecords(dbCon, owner)
			Expect(err).ToNot(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("rejects empty input without touching the database", func() {
			defer GinkgoRecover()
			res, err := fuelManager.JSONCreateFuelRecord(owner, "", dbCon)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Success).To(BeFalse())
		})
	})

	Describe("JSONUpdateFuelRecord", func() {

		It("rejects a non-positive cost, leaving the record untouched", func() {
			defer GinkgoRecover()
			key, err := fuelManager.CreateFuelRecord(newRecord("2024-01-01", 1000, true), dbCon)
			Expect(err).ToNot(HaveOccurred())

			res, err := fuelManager.JSONUpdateFuelRecord(owner,
				`{"Id":`+int64String(key)+`,"PricePerLiter":1.8,"TotalCost":-5,"Liters":50,"FullTank":true}`, dbCon)
			Expect(err).ToNot(HaveOccurred())
			Expect(res.Success).To(BeFalse())
			Expect(res.ErrorMessage).To(ContainSubstring("Invalid values"))

			record, err := fuelManager.GetFuelRecordById(dbCon, owner, key)
			Expect(err).ToNot(HaveOccurred())
			Expect(float64(record.TotalCost)).To(BeNumerically("~", 90.0, 0.0001))
		})
	})
})
