package contact

import (
	"time"
)

// Contact is a tenant-scoped person record and a relationship party. A contact
// may optionally belong to a company.
type Contact struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TenantID  int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	CompanyID *int64    `json:"company_id,omitempty" gorm:"column:company_id"`
	FirstName string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName  string    `json:"last_name" gorm:"column:last_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	JobTitle  string    `json:"job_title,omitempty" gorm:"column:job_title"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
