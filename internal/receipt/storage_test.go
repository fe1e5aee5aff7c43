package receipt

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	writeFile := func(name, content string) {
		Expect(os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644)).To(Succeed())
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewLocalStorage", func() {
		When("the directory does not exist", func() {
			It("should return an error", func() {
				_, err := NewLocalStorage(filepath.Join(tmpDir, "missing"))
				Expect(err).To(HaveOccurred())
			})
		})

		When("the path is a file", func() {
			It("should return an error", func() {
				writeFile("a.pdf", "x")
				_, err := NewLocalStorage(filepath.Join(tmpDir, "a.pdf"))
				Expect(err).To(MatchError(ContainSubstring("not a directory")))
			})
		})

		It("resolves the directory to an absolute path", func() {
			Expect(filepath.IsAbs(storage.Dir())).To(BeTrue())
		})
	})

	Describe("List", func() {
		var (
			names []string
			err   error
		)

		BeforeEach(func() {
			writeFile("b.pdf", "b")
			writeFile("A.PDF", "a")
			writeFile("notes.txt", "n")
			Expect(os.Mkdir(filepath.Join(tmpDir, "sub.pdf"), 0755)).To(Succeed())
			writeFile(filepath.Join("sub.pdf", "nested.pdf"), "n")
		})

		JustBeforeEach(func() {
			names, err = storage.List()
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the PDF files of the directory only, sorted", func() {
			Expect(names).To(Equal([]string{"A.PDF", "b.pdf"}))
		})
	})

	Describe("Get", func() {
		When("the file exists", func() {
			It("returns its content", func() {
				writeFile("a.pdf", "content")
				data, err := storage.Get("a.pdf")
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("content"))
			})
		})

		When("the file does not exist", func() {
			It("should return an error", func() {
				_, err := storage.Get("missing.pdf")
				Expect(err).To(HaveOccurred())
			})
		})

		When("the name tries to leave the directory", func() {
			It("stays inside it", func() {
				writeFile("a.pdf", "inside")
				data, err := storage.Get("../../a.pdf")
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("inside"))
			})
		})
	})

	Describe("Exists", func() {
		It("reports present files", func() {
			writeFile("a.pdf", "x")
			Expect(storage.Exists("a.pdf")).To(BeTrue())
			Expect(storage.Exists("b.pdf")).To(BeFalse())
		})
	})

	Describe("Rename", func() {
		BeforeEach(func() {
			writeFile("a.pdf", "a")
		})

		When("the target is free", func() {
			It("moves the file", func() {
				Expect(storage.Rename("a.pdf", "X_1,00_01_jan.pdf")).To(Succeed())
				Expect(filepath.Join(tmpDir, "X_1,00_01_jan.pdf")).To(BeAnExistingFile())
				Expect(filepath.Join(tmpDir, "a.pdf")).NotTo(BeAnExistingFile())
			})
		})

		When("the target exists", func() {
			It("refuses to overwrite it", func() {
				writeFile("b.pdf", "b")
				Expect(storage.Rename("a.pdf", "b.pdf")).To(MatchError(ContainSubstring("already exists")))
				data, err := os.ReadFile(filepath.Join(tmpDir, "b.pdf"))
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("b"))
			})
		})
	})
})
