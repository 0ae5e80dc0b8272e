package importManager_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/OpenFuelLog/gofuel-lib/jsonapi/importManager"
)

var _ = Describe("ReadWorkbook", func() {

	var tmpDir string

	BeforeEach(func() {
		defer GinkgoRecover()
		var err error
		tmpDir, err = ioutil.TempDir("", "gofuel-workbook")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	writeWorkbook := func(fName string, sheets []string, content map[string][][]string) string {
		f := excelize.NewFile()
		defer f.Close()
		for i, name := range sheets {
			if i == 0 {
				Expect(f.SetSheetName("Sheet1", name)).To(Succeed())
			} else {
				_, err := f.NewSheet(name)
				Expect(err).ToNot(HaveOccurred())
			}
			for rowIdx, cells := range content[name] {
				cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
				Expect(err).ToNot(HaveOccurred())
				row := cells
				Expect(f.SetSheetRow(name, cell, &row)).To(Succeed())
			}
		}
		fPath := filepath.Join(tmpDir, fName)
		Expect(f.SaveAs(fPath)).To(Succeed())
		return fPath
	}

	It("finds the aliased sheets regardless of their order", func() {
		defer GinkgoRecover()
		fPath := writeWorkbook("import.xlsx", []string{"Manutenzione", "Rifornimenti"}, map[string][][]string{
			"Rifornimenti": {
				{"date", "odometer", "price", "cost", "liters"},
				{"2024-01-05", "1200", "1.8", "90", "50"},
			},
			"Manutenzione": {
				{"data", "km", "categoria", "spesa"},
				{"2024-01-05", "1200", "Gomme", "300"},
			},
		})

		fuelTable, maintenanceTable, err := importManager.ReadWorkbook(fPath)
		Expect(err).ToNot(HaveOccurred())
		Expect(fuelTable.Headers[0]).To(Equal("date"))
		Expect(fuelTable.Rows).To(HaveLen(1))
		Expect(fuelTable.Rows[0][1]).To(Equal("1200"))
		Expect(maintenanceTable).ToNot(BeNil())
		Expect(maintenanceTable.Rows[0][2]).To(Equal("Gomme"))
	})

	It("falls back to sheet-order for unknown names", func() {
		defer GinkgoRecover()
		fPath := writeWorkbook("import.xlsx", []string{"Foglio1", "Foglio2"}, map[string][][]string{
			"Foglio1": {
				{"date", "odometer"},
				{"2024-01-05", "1200"},
			},
			"Foglio2": {
				{"data", "km", "categoria"},
				{"2024-01-05", "1200", "Tagliando"},
			},
		})

		fuelTable, maintenanceTable, err := importManager.ReadWorkbook(fPath)
		Expect(err).ToNot(HaveOccurred())
		Expect(fuelTable.Headers).To(Equal([]string{"date", "odometer"}))
		Expect(maintenanceTable).ToNot(BeNil())
		Expect(maintenanceTable.Headers[2]).To(Equal("categoria"))
	})

	It("yields a nil maintenance-table for a single-sheet workbook", func() {
		defer GinkgoRecover()
		fPath := writeWorkbook("import.xlsx", []string{"Rifornimenti"}, map[string][][]string{
			"Rifornimenti": {
				{"date", "odometer"},
				{"2024-01-05", "1200"},
			},
		})

		fuelTable, maintenanceTable, err := importManager.ReadWorkbook(fPath)
		Expect(err).ToNot(HaveOccurred())
		Expect(fuelTable.Rows).To(HaveLen(1))
		Expect(maintenanceTable).To(BeNil())
	})
})
