package company

import (
	"time"
)

// Company is a tenant-scoped organization record and a relationship party.
type Company struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	TenantID   int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Name       string    `json:"name" gorm:"not null"`
	VATNumber  string    `json:"vat_number,omitempty" gorm:"column:vat_number"`
	Website    string    `json:"website,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Street     string    `json:"street,omitempty"`
	City       string    `json:"city,omitempty"`
	PostalCode string    `json:"postal_code,omitempty" gorm:"column:postal_code"`
	Country    string    `json:"country,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	IsActive   bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Company) TableName() string {
	return "companies"
}
