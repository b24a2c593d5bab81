package tenant

import "time"

// Role labels carried by a membership. Custom roles normalize the base label
// to member and carry their own permission matrix.
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleMember     = "member"
	RoleSuperAdmin = "super_admin"
)

type Tenant struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	Slug            string    `json:"slug" gorm:"uniqueIndex;not null"`
	IsActive        bool      `json:"is_active" gorm:"column:is_active;default:true"`
	DefaultCurrency string    `json:"default_currency" gorm:"column:default_currency;default:EUR"`
	ContactEmail    string    `json:"contact_email" gorm:"column:contact_email"`
	ContactPhone    string    `json:"contact_phone" gorm:"column:contact_phone"`
	LegalName       string    `json:"legal_name" gorm:"column:legal_name"`
	VATNumber       string    `json:"vat_number" gorm:"column:vat_number"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Tenant) TableName() string {
	return "tenants"
}

type UserTenantMembership struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	UserID       int64     `json:"user_id" gorm:"column:user_id;not null"`
	TenantID     int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Role         string    `json:"role" gorm:"not null;default:member"`
	CustomRoleID *int64    `json:"custom_role_id,omitempty" gorm:"column:custom_role_id"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (UserTenantMembership) TableName() string {
	return "user_tenant_memberships"
}

func (m *UserTenantMembership) IsAdminRole() bool {
	return m.Role == RoleAdmin || m.Role == RoleSuperAdmin
}

func (m *UserTenantMembership) IsSuperAdmin() bool {
	return m.Role == RoleSuperAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleMember, RoleSuperAdmin:
		return true
	}
	return false
}
