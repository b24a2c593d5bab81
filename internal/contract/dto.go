package contract

import (
	"time"

	"github.com/shopspring/decimal"
	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/paymentterm"
)

type CreateContractDTO struct {
	DealID      *int64          `json:"deal_id,omitempty"`
	CompanyID   *int64          `json:"company_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Value       decimal.Decimal `json:"value"`
	Currency    string          `json:"currency,omitempty"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
}

func (d CreateContractDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	if d.Value.IsNegative() {
		return internal.NewValidationFieldError("value", "value cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return internal.NewValidationFieldError("end_date", "end date cannot precede start date", internal.ErrCodeInvalidDate)
	}
	return nil
}

type UpdateContractDTO struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	SignedAt    *time.Time       `json:"signed_at,omitempty"`
}

type SetPaymentTermsDTO struct {
	Terms []paymentterm.Term `json:"terms"`
}
