package contact

import (
	internal "github.com/pradiptamal/crm-management/internal"
)

type ContactDTO struct {
	CompanyID *int64 `json:"company_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (d ContactDTO) Validate() error {
	if d.FirstName == "" {
		return internal.NewValidationFieldError("first_name", "first name is required", internal.ErrCodeMissingField)
	}
	return nil
}
