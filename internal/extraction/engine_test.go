package extraction

import (
	"bytes"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingTracer struct {
	events []Event
}

func (r *recordingTracer) Trace(ev Event) {
	r.events = append(r.events, ev)
}

func (r *recordingTracer) stages() []Stage {
	stages := make([]Stage, 0, len(r.events))
	for _, ev := range r.events {
		stages = append(stages, ev.Stage)
	}
	return stages
}

// upperAmounts is a stand-in normalizer that marks its output
type upperAmounts struct{}

func (upperAmounts) Normalize(raw string) string     { return "N" + raw }
func (upperAmounts) Display(canonical string) string { return "D" + canonical }

var _ = Describe("Engine", func() {
	var (
		engine *Engine
		tracer *recordingTracer
		text   string
		result *Result
		err    error
	)

	BeforeEach(func() {
		tracer = &recordingTracer{}
		engine = NewEngine(WithTracer(tracer))
	})

	JustBeforeEach(func() {
		result, err = engine.Process(text)
	})

	When("processing a Pix receipt", func() {
		BeforeEach(func() {
			text = strings.Join([]string{
				"Sicredi",
				"Comprovante de Pagamento Pix",
				"Pensao Alimenticia AP511704",
				"Valor: R$ 613,54",
				"Realizado em: 09/06/2024 14:32",
			}, "\n")
		})

		It("builds the filename", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Layout).To(Equal(LayoutPix))
			Expect(result.Filename).To(Equal("Pensao_Alimenticia_AP511704_613,54_09_jun.pdf"))
		})

		It("keeps the sanitized fields", func() {
			Expect(result.Fields).To(Equal(RawFields{
				Description: "Pensao_Alimenticia_AP511704",
				Amount:      "613.54",
				Date:        "09_jun",
			}))
		})

		It("emits trace events for every stage", func() {
			Expect(tracer.stages()).To(ContainElements(StageClassify, StageLine, StageLabel, StageField, StageResult))
			Expect(tracer.events[0].Stage).To(Equal(StageClassify))
			Expect(tracer.events[0].Value).To(Equal("PIX"))
		})
	})

	When("processing a DARF receipt", func() {
		BeforeEach(func() {
			text = strings.Join([]string{
				"Sicredi",
				"Comprovante de Pagamento de DARF",
				"123456789",
				"Número do Documento:",
				"1.234,56",
				"Valor Total (R$):",
				"15/03/2024",
				"Data do Pagamento:",
			}, "\n")
		})

		It("builds the filename", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Filename).To(Equal("DARF_123456789_1.234,56_15_mar.pdf"))
		})
	})

	When("the payee name is accented", func() {
		receiptText := func(payee string) string {
			return "Comprovante de Pagamento Pix\n" + payee + "\nValor: R$ 613,54\nRealizado em: 09/06/2024"
		}

		BeforeEach(func() {
			text = receiptText("Pensão Alimentícia")
		})

		It("names the file in plain ASCII", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Filename).To(Equal("Pensao_Alimenticia_613,54_09_jun.pdf"))
		})

		It("gives decomposed text the same name", func() {
			decomposed, decErr := engine.Process(receiptText("Pensa\u0303o Alimenti\u0301cia"))
			Expect(decErr).NotTo(HaveOccurred())
			Expect(decomposed.Filename).To(Equal(result.Filename))
		})
	})

	When("a boleto ends with its beneficiary label", func() {
		BeforeEach(func() {
			text = "Valor R$ 10,00\nVencimento 01/01/2024\nRazão Social do Beneficiário\n"
		})

		It("fails with ErrMissingDescription", func() {
			Expect(err).To(MatchError(ErrMissingDescription))
			Expect(result.Layout).To(Equal(LayoutBoleto))
			Expect(result.Filename).To(BeEmpty())
		})
	})

	When("a consumption bill has no date", func() {
		BeforeEach(func() {
			text = "Nome da Empresa\nCEMIG\nTotal R$ 99,90"
		})

		It("fails with ErrMissingDate", func() {
			Expect(err).To(MatchError(ErrMissingDate))
			Expect(result.Fields.Description).To(Equal("CEMIG"))
		})
	})

	When("the layout is unknown", func() {
		BeforeEach(func() {
			text = "Cupom fiscal\nPadaria"
		})

		It("fails with ErrUnknownLayout", func() {
			Expect(err).To(MatchError(ErrUnknownLayout))
			Expect(result.Layout).To(Equal(LayoutUnknown))
		})

		It("does not run an extractor", func() {
			Expect(tracer.stages()).To(Equal([]Stage{StageClassify}))
		})
	})

	When("a different amount normalizer is configured", func() {
		BeforeEach(func() {
			engine = NewEngine(WithAmountNormalizer(upperAmounts{}))
			text = "Nome da Empresa\nCEMIG\nTotal R$ 99,90\nVencimento 10/10/2024"
		})

		It("uses it for both normalizing and display", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Fields.Amount).To(Equal("N99,90"))
			Expect(result.Filename).To(Equal("CEMIG_DN99,90_10_out.pdf"))
		})
	})
})

var _ = Describe("SlogTracer", func() {
	It("logs events at debug level", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		SlogTracer{Logger: logger}.Trace(Event{Layout: LayoutPix, Stage: StageField, Line: 3, Field: "date", Value: "09_jun"})

		Expect(buf.String()).To(ContainSubstring("layout=PIX"))
		Expect(buf.String()).To(ContainSubstring("field=date"))
		Expect(buf.String()).To(ContainSubstring("value=09_jun"))
	})
})
