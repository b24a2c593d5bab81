package paymentterm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/pradiptamal/crm-management/internal/paymentterm"
)

func pct(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func fixed(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

var _ = Describe("Term", func() {
	Describe("Calculate", func() {
		It("resolves a percentage against the base value, rounded to cents", func() {
			term := paymentterm.Term{InstallmentNumber: 1, Percentage: pct("33.33")}
			amount := term.Calculate(decimal.NewFromInt(10000))
			Expect(amount.String()).To(Equal("3333"))
		})

		It("rounds fractional cents", func() {
			term := paymentterm.Term{InstallmentNumber: 1, Percentage: pct("33.33")}
			amount := term.Calculate(decimal.NewFromInt(100))
			Expect(amount.String()).To(Equal("33.33"))
		})

		It("passes fixed amounts through untouched", func() {
			term := paymentterm.Term{InstallmentNumber: 1, FixedAmount: fixed("1250.50")}
			amount := term.Calculate(decimal.NewFromInt(10000))
			Expect(amount.String()).To(Equal("1250.5"))
		})

		It("returns zero when neither is set", func() {
			term := paymentterm.Term{InstallmentNumber: 1}
			Expect(term.Calculate(decimal.NewFromInt(10000)).IsZero()).To(BeTrue())
		})
	})

	Describe("ValidateTerms", func() {
		It("accepts a split percentage schedule", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 1, Percentage: pct("30")},
				{InstallmentNumber: 2, Percentage: pct("70")},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("accepts mixed percentage and fixed terms", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 1, Percentage: pct("50")},
				{InstallmentNumber: 2, FixedAmount: fixed("2000")},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects duplicate installment numbers", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 1, Percentage: pct("50")},
				{InstallmentNumber: 1, Percentage: pct("50")},
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects non-positive installment numbers", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 0, Percentage: pct("50")},
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a term carrying both percentage and fixed amount", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 1, Percentage: pct("50"), FixedAmount: fixed("100")},
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a term carrying neither", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 1},
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects percentages summing past 100", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 1, Percentage: pct("60")},
				{InstallmentNumber: 2, Percentage: pct("50")},
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects negative fixed amounts", func() {
			err := paymentterm.ValidateTerms([]paymentterm.Term{
				{InstallmentNumber: 1, FixedAmount: fixed("-5")},
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CalculateAll", func() {
		It("fills the calculated amount on every term", func() {
			terms := []paymentterm.Term{
				{InstallmentNumber: 1, Percentage: pct("30")},
				{InstallmentNumber: 2, FixedAmount: fixed("500")},
			}

			paymentterm.CalculateAll(terms, decimal.NewFromInt(10000))

			Expect(terms[0].CalculatedAmount.String()).To(Equal("3000"))
			Expect(terms[1].CalculatedAmount.String()).To(Equal("500"))
		})
	})
})
