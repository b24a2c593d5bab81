package relationship

import "time"

// HostType identifies which business record a relationship hangs off.
type HostType string

const (
	HostDeal        HostType = "deal"
	HostSite        HostType = "site"
	HostContract    HostType = "contract"
	HostLeadCompany HostType = "lead_company"
	HostLeadContact HostType = "lead_contact"
)

func ValidHostType(t HostType) bool {
	switch t {
	case HostDeal, HostSite, HostContract, HostLeadCompany, HostLeadContact:
		return true
	}
	return false
}

// RelationshipRole is a tenant-defined catalog entry classifying a link.
// Categories map to display colors only; no behavior hangs off them.
type RelationshipRole struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	TenantID    int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (RelationshipRole) TableName() string {
	return "relationship_roles"
}

// EntityRelationship links a host record to exactly one of company/contact.
// History is kept by flipping is_active, never by deleting; within one
// (host, party) pair at most one row is active at a time.
type EntityRelationship struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	TenantID  int64      `json:"tenant_id" gorm:"column:tenant_id;not null"`
	HostType  HostType   `json:"host_type" gorm:"column:host_type;not null"`
	HostID    int64      `json:"host_id" gorm:"column:host_id;not null"`
	CompanyID *int64     `json:"company_id,omitempty" gorm:"column:company_id"`
	ContactID *int64     `json:"contact_id,omitempty" gorm:"column:contact_id"`
	RoleID    int64      `json:"role_id" gorm:"column:role_id;not null"`
	Notes     string     `json:"notes"`
	StartDate time.Time  `json:"start_date" gorm:"column:start_date;not null"`
	EndDate   *time.Time `json:"end_date,omitempty" gorm:"column:end_date"`
	IsActive  bool       `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (EntityRelationship) TableName() string {
	return "entity_relationships"
}

// SameParty reports whether the other relationship points at the same
// company-or-contact.
func (r *EntityRelationship) SameParty(companyID, contactID *int64) bool {
	if r.CompanyID != nil && companyID != nil {
		return *r.CompanyID == *companyID
	}
	if r.ContactID != nil && contactID != nil {
		return *r.ContactID == *contactID
	}
	return false
}
