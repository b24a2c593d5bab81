package customer

import (
	internal "github.com/pradiptamal/crm-management/internal"
)

type CustomerDTO struct {
	CompanyID      int64  `json:"company_id"`
	CustomerNumber string `json:"customer_number,omitempty"`
	BillingEmail   string `json:"billing_email,omitempty"`
	BillingStreet  string `json:"billing_street,omitempty"`
	BillingCity    string `json:"billing_city,omitempty"`
	PaymentDays    int    `json:"payment_days,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func (d CustomerDTO) Validate() error {
	if d.CompanyID == 0 {
		return internal.NewValidationFieldError("company_id", "company_id is required", internal.ErrCodeMissingField)
	}
	if d.PaymentDays < 0 {
		return internal.NewValidationFieldError("payment_days", "payment days cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}
