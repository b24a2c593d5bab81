package company

import (
	internal "github.com/pradiptamal/crm-management/internal"
)

type CompanyDTO struct {
	Name       string `json:"name"`
	VATNumber  string `json:"vat_number,omitempty"`
	Website    string `json:"website,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func (d CompanyDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	return nil
}
