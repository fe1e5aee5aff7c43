package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Synthesize", func() {
	var (
		fields RawFields
		name   string
		err    error
	)

	BeforeEach(func() {
		fields = RawFields{Description: "CONTA_LUZ_MAIO", Amount: "150.30", Date: "15_mai"}
	})

	JustBeforeEach(func() {
		name, err = Synthesize(fields, BRLAmounts{})
	})

	When("every field is present", func() {
		It("builds the filename", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("CONTA_LUZ_MAIO_150,30_15_mai.pdf"))
		})
	})

	When("the description is the sentinel", func() {
		BeforeEach(func() {
			fields.Description = DescriptionNotFound
		})

		It("fails with ErrMissingDescription", func() {
			Expect(err).To(MatchError(ErrMissingDescription))
			Expect(name).To(BeEmpty())
		})
	})

	When("the description sanitized to nothing", func() {
		BeforeEach(func() {
			fields.Description = ""
		})

		It("fails with ErrMissingDescription", func() {
			Expect(err).To(MatchError(ErrMissingDescription))
		})
	})

	When("both description and date are missing", func() {
		BeforeEach(func() {
			fields.Description = DescriptionNotFound
			fields.Date = ""
		})

		It("reports the description first", func() {
			Expect(err).To(MatchError(ErrMissingDescription))
		})
	})

	When("the date is missing", func() {
		BeforeEach(func() {
			fields.Date = ""
		})

		It("fails with ErrMissingDate", func() {
			Expect(err).To(MatchError(ErrMissingDate))
		})
	})

	When("the amount is the sentinel", func() {
		BeforeEach(func() {
			fields.Amount = AmountNotFound
		})

		It("accepts the receipt with a zero amount", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("CONTA_LUZ_MAIO_0,00_15_mai.pdf"))
		})
	})
})

var _ = Describe("IsProcessedName", func() {
	DescribeTable("filenames",
		func(name string, processed bool) {
			Expect(IsProcessedName(name)).To(Equal(processed))
		},
		Entry("canonical name", "FOO_1.234,56_09_jun.pdf", true),
		Entry("upper-case extension", "FOO_1,00_01_JAN.PDF", true),
		Entry("collision suffix", "X_1,00_01_jan_1.pdf", true),
		Entry("scanner export", "scan0001.pdf", false),
		Entry("bank export", "comprovante-pix-2024.pdf", false),
		Entry("missing month", "FOO_1,00_01.pdf", false),
		Entry("other extension", "FOO_1,00_01_jan.txt", false),
	)
})

var _ = Describe("Collisions", func() {
	It("starts with the name itself", func() {
		Expect(CollisionName("X_1,00_01_jan.pdf", 0)).To(Equal("X_1,00_01_jan.pdf"))
	})

	It("inserts the counter before the extension", func() {
		Expect(CollisionName("X_1,00_01_jan.pdf", 1)).To(Equal("X_1,00_01_jan_1.pdf"))
		Expect(CollisionName("X_1,00_01_jan.pdf", 2)).To(Equal("X_1,00_01_jan_2.pdf"))
	})

	Describe("ResolveCollision", func() {
		var taken map[string]bool

		exists := func(name string) bool { return taken[name] }

		BeforeEach(func() {
			taken = map[string]bool{}
		})

		It("keeps a free name", func() {
			Expect(ResolveCollision("X_1,00_01_jan.pdf", exists)).To(Equal("X_1,00_01_jan.pdf"))
		})

		It("proposes _1 when the name exists", func() {
			taken["X_1,00_01_jan.pdf"] = true
			Expect(ResolveCollision("X_1,00_01_jan.pdf", exists)).To(Equal("X_1,00_01_jan_1.pdf"))
		})

		It("keeps counting until a name is free", func() {
			taken["X_1,00_01_jan.pdf"] = true
			taken["X_1,00_01_jan_1.pdf"] = true
			taken["X_1,00_01_jan_2.pdf"] = true
			Expect(ResolveCollision("X_1,00_01_jan.pdf", exists)).To(Equal("X_1,00_01_jan_3.pdf"))
		})
	})
})
