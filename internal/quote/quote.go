package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a tenant-scoped bill of quantities attached to a deal or site.
type Quote struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	TenantID    int64           `json:"tenant_id" gorm:"column:tenant_id;not null"`
	DealID      *int64          `json:"deal_id,omitempty" gorm:"column:deal_id"`
	SiteID      *int64          `json:"site_id,omitempty" gorm:"column:site_id"`
	QuoteNumber string          `json:"quote_number" gorm:"column:quote_number"`
	Name        string          `json:"name" gorm:"not null"`
	Currency    string          `json:"currency" gorm:"default:EUR"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:numeric(14,2)"`
	Discount    decimal.Decimal `json:"discount" gorm:"type:numeric(14,2)"`
	Total       decimal.Decimal `json:"total" gorm:"type:numeric(14,2)"`
	ValidUntil  *time.Time      `json:"valid_until,omitempty" gorm:"column:valid_until;type:date"`
	CreatedBy   int64           `json:"created_by" gorm:"column:created_by"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`

	Items []QuoteItem `json:"items,omitempty" gorm:"-"`
}

func (Quote) TableName() string {
	return "quotes"
}

// QuoteItem is one line: either a catalog device reference or a free-text
// line. LineTotal is qty × unit price less the line discount.
type QuoteItem struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	QuoteID     int64           `json:"quote_id" gorm:"column:quote_id;not null"`
	DeviceID    *int64          `json:"device_id,omitempty" gorm:"column:device_id"`
	Description string          `json:"description" gorm:"not null"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:numeric(10,2)"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"column:unit_price;type:numeric(12,2)"`
	DiscountPct decimal.Decimal `json:"discount_pct" gorm:"column:discount_pct;type:numeric(5,2)"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"column:line_total;type:numeric(14,2)"`
	SortOrder   int             `json:"sort_order" gorm:"column:sort_order"`
}

func (QuoteItem) TableName() string {
	return "quote_items"
}

// Calculate fills LineTotal from quantity, unit price, and discount.
func (i *QuoteItem) Calculate() {
	gross := i.Quantity.Mul(i.UnitPrice)
	if i.DiscountPct.IsPositive() {
		discount := gross.Mul(i.DiscountPct).Div(decimal.NewFromInt(100))
		gross = gross.Sub(discount)
	}
	i.LineTotal = gross.Round(2)
}

// Recalculate fills every line total and the quote totals. Subtotal is the sum
// before line discounts; Discount is the amount discounted; Total is what
// remains.
func (q *Quote) Recalculate() {
	subtotal := decimal.Zero
	total := decimal.Zero
	for idx := range q.Items {
		q.Items[idx].Calculate()
		subtotal = subtotal.Add(q.Items[idx].Quantity.Mul(q.Items[idx].UnitPrice))
		total = total.Add(q.Items[idx].LineTotal)
	}
	q.Subtotal = subtotal.Round(2)
	q.Total = total.Round(2)
	q.Discount = q.Subtotal.Sub(q.Total)
}
