package quote

import (
	"time"

	"github.com/shopspring/decimal"
	internal "github.com/pradiptamal/crm-management/internal"
)

type QuoteItemDTO struct {
	DeviceID    *int64          `json:"device_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
}

func (d QuoteItemDTO) Validate() error {
	if d.Description == "" && d.DeviceID == nil {
		return internal.NewValidationFieldError("description", "a description or device reference is required", internal.ErrCodeMissingField)
	}
	if !d.Quantity.IsPositive() {
		return internal.NewValidationFieldError("quantity", "quantity must be positive", internal.ErrCodeValidationFailed)
	}
	if d.UnitPrice.IsNegative() {
		return internal.NewValidationFieldError("unit_price", "unit price cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.DiscountPct.IsNegative() || d.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
		return internal.NewValidationFieldError("discount_pct", "discount must be between 0 and 100", internal.ErrCodeValidationFailed)
	}
	return nil
}

type CreateQuoteDTO struct {
	DealID      *int64         `json:"deal_id,omitempty"`
	SiteID      *int64         `json:"site_id,omitempty"`
	QuoteNumber string         `json:"quote_number,omitempty"`
	Name        string         `json:"name"`
	Currency    string         `json:"currency,omitempty"`
	ValidUntil  *time.Time     `json:"valid_until,omitempty"`
	Items       []QuoteItemDTO `json:"items"`
}

func (d CreateQuoteDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	for _, item := range d.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}
