package catalog

import (
	"github.com/shopspring/decimal"
	internal "github.com/pradiptamal/crm-management/internal"
)

type DeviceDTO struct {
	Model        string          `json:"model"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Currency     string          `json:"currency,omitempty"`
}

func (d DeviceDTO) Validate() error {
	if d.Model == "" {
		return internal.NewValidationFieldError("model", "model is required", internal.ErrCodeMissingField)
	}
	if d.UnitPrice.IsNegative() {
		return internal.NewValidationFieldError("unit_price", "unit price cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ProjectDeviceDTO struct {
	DeviceID int64  `json:"device_id"`
	SiteID   *int64 `json:"site_id,omitempty"`
	DealID   *int64 `json:"deal_id,omitempty"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

func (d ProjectDeviceDTO) Validate() error {
	if d.DeviceID == 0 {
		return internal.NewValidationFieldError("device_id", "device_id is required", internal.ErrCodeMissingField)
	}
	if d.SiteID == nil && d.DealID == nil {
		return internal.NewValidationFieldError("site_id", "a site or deal must be referenced", internal.ErrCodeMissingField)
	}
	if d.Quantity <= 0 {
		return internal.NewValidationFieldError("quantity", "quantity must be positive", internal.ErrCodeValidationFailed)
	}
	return nil
}
