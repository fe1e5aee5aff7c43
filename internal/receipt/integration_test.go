package receipt

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Integration", func() {
	var (
		tempDir    string
		receiptDir string
		db         *BoltDB
		store      Storage
		service    *Service
	)

	writeReceipt := func(name, text string) {
		Expect(os.WriteFile(filepath.Join(receiptDir, name), []byte(text), 0644)).To(Succeed())
	}

	listDir := func() []string {
		entries, err := os.ReadDir(receiptDir)
		Expect(err).NotTo(HaveOccurred())
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		return names
	}

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
		receiptDir = filepath.Join(tempDir, "receipts")
		Expect(os.Mkdir(receiptDir, 0755)).To(Succeed())

		var err error
		db, err = NewBoltDB(filepath.Join(tempDir, "journal.db"))
		Expect(err).NotTo(HaveOccurred())

		store, err = NewLocalStorage(receiptDir)
		Expect(err).NotTo(HaveOccurred())

		service = NewService(db, newMockExtractor(), store, nil)

		writeReceipt("scan001.pdf", pixReceipt)
		writeReceipt("scan002.PDF", darfReceipt)
		writeReceipt("scan003.pdf", "Cupom fiscal\nPadaria")
		writeReceipt("readme.txt", "not a receipt")
	})

	AfterEach(func() {
		db.Close()
	})

	It("renames, reruns idempotently and undoes a run", func() {
		By("renaming the recognised receipts")
		summary, err := service.ProcessDirectory(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.Total).To(Equal(3))
		Expect(summary.Processed).To(Equal(2))
		Expect(summary.Failed).To(Equal(1))
		Expect(listDir()).To(ConsistOf(
			"DARF_123456789_1.234,56_15_mar.pdf",
			"Pensao_Alimenticia_AP511704_613,54_09_jun.pdf",
			"scan003.pdf",
			"readme.txt",
		))

		By("journaling the renames")
		records, err := service.ListRenames()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))

		By("skipping renamed files on a second run")
		second, err := service.ProcessDirectory(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Skipped).To(Equal(2))
		Expect(second.Processed).To(BeZero())
		Expect(second.Failed).To(Equal(1))

		By("writing a report")
		reportPath := filepath.Join(tempDir, "run.xlsx")
		Expect(WriteReport(summary, reportPath)).To(Succeed())
		Expect(reportPath).To(BeAnExistingFile())

		By("undoing the first run")
		restored, err := service.UndoRun(summary.RunID)
		Expect(err).NotTo(HaveOccurred())
		Expect(restored).To(Equal(2))
		Expect(listDir()).To(ConsistOf("scan001.pdf", "scan002.PDF", "scan003.pdf", "readme.txt"))

		records, err = service.ListRenames()
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})
})
