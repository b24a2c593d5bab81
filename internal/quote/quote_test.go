package quote_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/pradiptamal/crm-management/internal/quote"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

var _ = Describe("QuoteItem", func() {
	Describe("Calculate", func() {
		It("multiplies quantity by unit price", func() {
			item := quote.QuoteItem{
				Quantity:  dec("3"),
				UnitPrice: dec("150.50"),
			}
			item.Calculate()
			Expect(item.LineTotal.String()).To(Equal("451.5"))
		})

		It("applies the line discount", func() {
			item := quote.QuoteItem{
				Quantity:    dec("2"),
				UnitPrice:   dec("100"),
				DiscountPct: dec("10"),
			}
			item.Calculate()
			Expect(item.LineTotal.String()).To(Equal("180"))
		})

		It("rounds to cents", func() {
			item := quote.QuoteItem{
				Quantity:    dec("1"),
				UnitPrice:   dec("99.99"),
				DiscountPct: dec("33.33"),
			}
			item.Calculate()
			Expect(item.LineTotal.String()).To(Equal("66.66"))
		})
	})
})

var _ = Describe("Quote", func() {
	Describe("Recalculate", func() {
		It("sums subtotal before discounts and total after", func() {
			q := &quote.Quote{
				Items: []quote.QuoteItem{
					{Quantity: dec("2"), UnitPrice: dec("100"), DiscountPct: dec("10")},
					{Quantity: dec("1"), UnitPrice: dec("300")},
				},
			}

			q.Recalculate()

			Expect(q.Subtotal.String()).To(Equal("500"))
			Expect(q.Total.String()).To(Equal("480"))
			Expect(q.Discount.String()).To(Equal("20"))
		})

		It("zeroes out for an empty quote", func() {
			q := &quote.Quote{}
			q.Recalculate()
			Expect(q.Subtotal.IsZero()).To(BeTrue())
			Expect(q.Total.IsZero()).To(BeTrue())
			Expect(q.Discount.IsZero()).To(BeTrue())
		})
	})
})

var _ = Describe("Exports", func() {
	var (
		q    *quote.Quote
		info quote.ProjectInfo
	)

	BeforeEach(func() {
		validUntil := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		q = &quote.Quote{
			Name:        "Rollout Phase 1",
			QuoteNumber: "Q-2026-0042",
			Currency:    "EUR",
			ValidUntil:  &validUntil,
			Items: []quote.QuoteItem{
				{Description: "Acme Controller X1", Quantity: dec("4"), UnitPrice: dec("250")},
				{Description: "Installation", Quantity: dec("1"), UnitPrice: dec("800"), DiscountPct: dec("25")},
			},
		}
		q.Recalculate()

		info = quote.ProjectInfo{
			TenantName:  "Demo GmbH",
			ProjectName: "North Campus",
			Currency:    "EUR",
			GeneratedAt: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		}
	})

	Describe("WriteCSV", func() {
		It("writes the project header, items, and totals", func() {
			var buf bytes.Buffer
			Expect(quote.WriteCSV(&buf, q, info)).To(Succeed())

			out := buf.String()
			Expect(out).To(ContainSubstring("Project,North Campus"))
			Expect(out).To(ContainSubstring("Tenant,Demo GmbH"))
			Expect(out).To(ContainSubstring("Quote Number,Q-2026-0042"))
			Expect(out).To(ContainSubstring("Valid Until,2026-10-01"))
			Expect(out).To(ContainSubstring("Pos,Description,Quantity,Unit Price,Discount %,Line Total"))
			Expect(out).To(ContainSubstring("1,Acme Controller X1,4,250.00,0.00,1000.00"))
			Expect(out).To(ContainSubstring("2,Installation,1,800.00,25.00,600.00"))
			Expect(out).To(ContainSubstring("Subtotal,,,,1800.00"))
			Expect(out).To(ContainSubstring("Discount,,,,200.00"))
			Expect(out).To(ContainSubstring("Total,,,,1600.00"))
		})
	})

	Describe("RenderPrintHTML", func() {
		It("renders the printable document with totals and the print trigger", func() {
			var buf bytes.Buffer
			Expect(quote.RenderPrintHTML(&buf, q, info)).To(Succeed())

			out := buf.String()
			Expect(out).To(ContainSubstring("<h1>Rollout Phase 1</h1>"))
			Expect(out).To(ContainSubstring("Demo GmbH"))
			Expect(out).To(ContainSubstring("Acme Controller X1"))
			Expect(out).To(ContainSubstring("1600.00"))
			Expect(out).To(ContainSubstring("window.print()"))
		})

		It("escapes markup in descriptions", func() {
			q.Items[0].Description = `<script>alert("x")</script>`
			q.Recalculate()

			var buf bytes.Buffer
			Expect(quote.RenderPrintHTML(&buf, q, info)).To(Succeed())
			Expect(buf.String()).NotTo(ContainSubstring(`<script>alert`))
		})
	})
})
