package deal

import (
	"time"

	"github.com/shopspring/decimal"
	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/paymentterm"
)

type CreateDealDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	StatusID    int64           `json:"status_id"`
	Value       decimal.Decimal `json:"value"`
	Currency    string          `json:"currency"`
	CompanyIDs  []int64         `json:"company_ids,omitempty"`
	ContactIDs  []int64         `json:"contact_ids,omitempty"`
}

func (d CreateDealDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	if d.Value.IsNegative() {
		return internal.NewValidationFieldError("value", "value cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateDealDTO struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
}

type ChangeStatusDTO struct {
	StatusID   int64      `json:"status_id"`
	Reason     string     `json:"reason,omitempty"`
	ResumeDate *time.Time `json:"resume_date,omitempty"`
}

func (d ChangeStatusDTO) Validate() error {
	if d.StatusID == 0 {
		return internal.NewValidationFieldError("status_id", "status_id is required", internal.ErrCodeMissingField)
	}
	return nil
}

type SetPaymentTermsDTO struct {
	Terms []paymentterm.Term `json:"terms"`
}

type StatusDTO struct {
	Name           string `json:"name"`
	Color          string `json:"color"`
	SortOrder      int    `json:"sort_order"`
	RequiresReason bool   `json:"requires_reason"`
	IsPauseStatus  bool   `json:"is_pause_status"`
}

func (d StatusDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	return nil
}
