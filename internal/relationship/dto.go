package relationship

import (
	internal "github.com/pradiptamal/crm-management/internal"
)

type CreateRelationshipDTO struct {
	HostType  HostType `json:"host_type"`
	HostID    int64    `json:"host_id"`
	CompanyID *int64   `json:"company_id,omitempty"`
	ContactID *int64   `json:"contact_id,omitempty"`
	RoleID    int64    `json:"role_id"`
	Notes     string   `json:"notes"`
}

func (d CreateRelationshipDTO) Validate() error {
	if !ValidHostType(d.HostType) {
		return internal.NewValidationFieldError("host_type", "invalid host type", internal.ErrCodeValidationFailed)
	}
	if d.HostID == 0 {
		return internal.NewValidationFieldError("host_id", "host_id is required", internal.ErrCodeMissingField)
	}
	if d.RoleID == 0 {
		return internal.ErrRelationshipRole
	}
	// Exactly one of company/contact.
	hasCompany := d.CompanyID != nil && *d.CompanyID != 0
	hasContact := d.ContactID != nil && *d.ContactID != 0
	if hasCompany == hasContact {
		return internal.ErrRelationshipParty
	}
	return nil
}

type RoleDTO struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (d RoleDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	return nil
}
