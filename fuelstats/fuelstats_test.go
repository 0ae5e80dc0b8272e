package fuelstats_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/OpenFuelLog/gofuel-lib/fuelstats"
	"github.com/OpenFuelLog/gofuel-lib/models"
	S "github.com/OpenFuelLog/gofuel-lib/models/SQLite"
	"github.com/OpenFuelLog/gofuel-lib/tools"
)

func dateMillis(date string) int64 {
	t, err := time.Parse("2006-01-02", date)
	Expect(err).ToNot(HaveOccurred())
	return tools.GetDateMillis(t)
}

func fuelRec(id int64, date string, km int64, liters float64, full bool) *models.FuelRecord {
	return &models.FuelRecord{
		Id:         S.NInt64(id),
		DateMillis: S.NInt64(dateMillis(date)),
		Km:         S.NInt64(km),
		Liters:     S.NFloat64(liters),
		FullTank:   S.NBool(full),
	}
}

var _ = Describe("ComputeStats", func() {

	It("closes a Full-to-Full-interval without partials", func() {
		defer GinkgoRecover()
		anchor := fuelRec(1, "2024-01-01", 1000, 50, true)
		current := fuelRec(2, "2024-01-11", 1800, 40, true)

		stats := fuelstats.ComputeStats(current, []*models.FuelRecord{anchor, current})
		Expect(stats.DeltaKm).To(Equal(int64(800)))
		Expect(stats.DaysSinceLast).To(Equal(int64(10)))
		Expect(stats.KmPerLiter).ToNot(BeNil())
		Expect(*stats.KmPerLiter).To(BeNumerically("~", 20.0, 0.0001))
	})

	It("accumulates partial fill-ups back to the anchor", func() {
		defer GinkgoRecover()
		history := []*models.FuelRecord{
			fuelRec(1, "2024-01-01", 1000, 50, true),
			fuelRec(2, "2024-01-05", 1200, 10, false),
			fuelRec(3, "2024-01-09", 1500, 30, true),
		}

		stats := fuelstats.ComputeStats(history[2], history)
		Expect(stats.DeltaKm).To(Equal(int64(300)))
		Expect(stats.KmPerLiter).ToNot(BeNil())
		Expect(*stats.KmPerLiter).To(BeNumerically("~", 12.5, 0.0001))
	})

	It("returns zeroed stats for the first-ever record", func() {
		defer GinkgoRecover()
		only := fuelRec(1, "2024-01-01", 1000, 50, true)

		stats := fuelstats.ComputeStats(only, []*models.FuelRecord{only})
		Expect(stats.DeltaKm).To(Equal(int64(0)))
		Expect(stats.DaysSinceLast).To(Equal(int64(0)))
		Expect(stats.KmPerLiter).To(BeNil())
	})

	It("gives no efficiency for a partial fill-up", func() {
		defer GinkgoRecover()
		history := []*models.FuelRecord{
			fuelRec(1, "2024-01-01", 1000, 50, true),
			fuelRec(2, "2024-01-05", 1200, 10, false),
		}

		stats := fuelstats.ComputeStats(history[1], history)
		Expect(stats.DeltaKm).To(Equal(int64(200)))
		Expect(stats.KmPerLiter).To(BeNil())
	})

	It("gives no efficiency when no anchor exists in history", func() {
		defer GinkgoRecover()
		history := []*models.FuelRecord{
			fuelRec(1, "2024-01-01", 1000, 20, false),
			fuelRec(2, "2024-01-05", 1200, 10, false),
			fuelRec(3, "2024-01-09", 1500, 30, true),
		}

		stats := fuelstats.ComputeStats(history[2], history)
		Expect(stats.KmPerLiter).To(BeNil())
	})
})

var _ = Describe("CheckPartialAccumulation", func() {

	It("sums the partials entered since the last full tank", func() {
		defer GinkgoRecover()
		full := fuelRec(1, "2024-01-01", 1000, 50, true)
		p1 := fuelRec(2, "2024-01-05", 1200, 10, false)
		p1.TotalCost = 18.5
		p2 := fuelRec(3, "2024-01-09", 1400, 12, false)
		p2.TotalCost = 21.5

		acc := fuelstats.CheckPartialAccumulation([]*models.FuelRecord{full, p1, p2})
		Expect(acc.PartialsCount).To(Equal(2))
		Expect(acc.AccumulatedCost).To(BeNumerically("~", 40.0, 0.0001))
	})

	It("is empty directly after a full tank", func() {
		defer GinkgoRecover()
		history := []*models.FuelRecord{
			fuelRec(1, "2024-01-05", 1200, 10, false),
			fuelRec(2, "2024-01-09", 1500, 30, true),
		}

		acc := fuelstats.CheckPartialAccumulation(history)
		Expect(acc.PartialsCount).To(Equal(0))
	})
})

var _ = Describe("CheckFuelOdometer", func() {

	history := []*models.FuelRecord{
		fuelRec(1, "2024-01-01", 1000, 50, true),
		fuelRec(2, "2024-01-10", 1500, 40, true),
	}

	It("accepts a candidate between its neighbours", func() {
		defer GinkgoRecover()
		ok, violation := fuelstats.CheckFuelOdometer(dateMillis("2024-01-05"), 1200, history, 0)
		Expect(ok).To(BeTrue())
		Expect(violation).To(BeEmpty())
	})

	It("rejects an odometer below the previous record", func() {
		defer GinkgoRecover()
		ok, violation := fuelstats.CheckFuelOdometer(dateMillis("2024-01-05"), 900, history, 0)
		Expect(ok).To(BeFalse())
		Expect(violation).To(ContainSubstring("1000"))
	})

	It("rejects an odometer above the next record", func() {
		defer GinkgoRecover()
		ok, violation := fuelstats.CheckFuelOdometer(dateMillis("2024-01-05"), 1600, history, 0)
		Expect(ok).To(BeFalse())
		Expect(violation).To(ContainSubstring("1500"))
	})

	It("does not order same-day entries against each other", func() {
		defer GinkgoRecover()
		ok, _ := fuelstats.CheckFuelOdometer(dateMillis("2024-01-10"), 1400, history, 0)
		Expect(ok).To(BeTrue())
	})

	It("excludes the record being edited from the comparison", func() {
		defer GinkgoRecover()
		ok, _ := fuelstats.CheckFuelOdometer(dateMillis("2024-01-12"), 1450, history, 2)
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("YearlyKpis", func() {

	It("aggregates in-period records but anchors against the full history", func() {
		defer GinkgoRecover()
		anchor := fuelRec(1, "2023-12-28", 9000, 45, true)
		r1 := fuelRec(2, "2024-01-10", 9500, 25, true)
		r1.PricePerLiter = 1.8
		r1.TotalCost = 45
		r2 := fuelRec(3, "2024-02-10", 10000, 25, true)
		r2.PricePerLiter = 1.8
		r2.TotalCost = 45
		history := []*models.FuelRecord{anchor, r1, r2}

		kpis := fuelstats.YearlyKpis(2024, history)
		Expect(kpis.RecordCount).To(Equal(2))
		Expect(kpis.TotalCost).To(BeNumerically("~", 90.0, 0.0001))
		Expect(kpis.TotalLiters).To(BeNumerically("~", 50.0, 0.0001))
		Expect(kpis.AvgPrice).To(BeNumerically("~", 1.8, 0.0001))
		Expect(kpis.KmEstimate).To(Equal(int64(500)))
		Expect(kpis.MinEff).To(BeNumerically("~", 20.0, 0.0001))
		Expect(kpis.MaxEff).To(BeNumerically("~", 20.0, 0.0001))
	})

	It("returns zero KPIs for an empty year", func() {
		defer GinkgoRecover()
		history := []*models.FuelRecord{fuelRec(1, "2023-12-28", 9000, 45, true)}

		kpis := fuelstats.YearlyKpis(2024, history)
		Expect(kpis.RecordCount).To(Equal(0))
		Expect(kpis.KmEstimate).To(Equal(int64(0)))
		Expect(kpis.AvgPrice).To(Equal(0.0))
	})
})

var _ = Describe("AvailableYears", func() {

	It("returns the distinct years, most recent first", func() {
		defer GinkgoRecover()
		years := fuelstats.AvailableYears([]int64{
			dateMillis("2022-05-01"), dateMillis("2024-01-01"), dateMillis("2022-09-01"),
		})
		Expect(years).To(Equal([]int{2024, 2022}))
	})

	It("falls back to the current year for an empty history", func() {
		defer GinkgoRecover()
		years := fuelstats.AvailableYears(nil)
		Expect(years).To(HaveLen(1))
		Expect(years[0]).To(Equal(time.Now().UTC().Year()))
	})
})

var _ = Describe("Prediction", func() {

	It("derives the daily usage rate from first & last record", func() {
		defer GinkgoRecover()
		history := []*models.FuelRecord{
			fuelRec(1, "2024-01-01", 1000, 50, true),
			fuelRec(2, "2024-01-11", 1500, 40, true),
		}
		Expect(fuelstats.CalcDailyUsageRate(history)).To(BeNumerically("~", 50.0, 0.0001))
	})

	It("projects the date of reaching a target odometer", func() {
		defer GinkgoRecover()
		now := dateMillis("2024-01-11")
		reach := fuelstats.PredictReachDateMillis(now, 1500, 2000, 50.0)
		Expect(reach).To(Equal(now + 10*tools.MillisPerDay))
	})

	It("gives no prediction without a usable rate or target", func() {
		defer GinkgoRecover()
		Expect(fuelstats.CalcDailyUsageRate(nil)).To(Equal(0.0))
		Expect(fuelstats.PredictReachDateMillis(dateMillis("2024-01-11"), 1500, 1400, 50.0)).To(Equal(int64(0)))
		Expect(fuelstats.PredictReachDateMillis(dateMillis("2024-01-11"), 1500, 2000, 0)).To(Equal(int64(0)))
	})
})

var _ = Describe("CalcCarHealthScore", func() {

	It("subtracts weighted penalties for overdue items", func() {
		defer GinkgoRecover()
		deadlines := []*models.MaintenanceRecord{
			{ExpenseType: "Tagliando", ExpiryKm: S.NInt64(10000)},
			{ExpenseType: "Assicurazione", ExpiryDateMillis: S.NInt64(dateMillis("2024-01-01"))},
		}
		reminders := []*models.Reminder{
			{Title: S.NString("Gomme"), FrequencyDays: S.NInt64(30), LastDateCheckMillis: S.NInt64(dateMillis("2024-01-01"))},
		}

		score, overdue := fuelstats.CalcCarHealthScore(10500, dateMillis("2024-03-01"), deadlines, reminders)
		Expect(score).To(Equal(100 - 20 - 15 - 5))
		Expect(overdue).To(HaveLen(3))
		Expect(overdue[0]).To(ContainSubstring("Tagliando"))
	})

	It("stays at 100 when nothing is overdue", func() {
		defer GinkgoRecover()
		score, overdue := fuelstats.CalcCarHealthScore(5000, dateMillis("2024-03-01"), nil, nil)
		Expect(score).To(Equal(100))
		Expect(overdue).To(BeEmpty())
	})

	It("clamps the score at 0", func() {
		defer GinkgoRecover()
		deadlines := make([]*models.MaintenanceRecord, 0)
		for i := 0; i < 6; i++ {
			deadlines = append(deadlines, &models.MaintenanceRecord{ExpenseType: "Tagliando", ExpiryKm: S.NInt64(1000)})
		}
		score, _ := fuelstats.CalcCarHealthScore(5000, dateMillis("2024-03-01"), deadlines, nil)
		Expect(score).To(Equal(0))
	})
})
