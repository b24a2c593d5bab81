package site

import (
	"time"
)

// Site is a tenant-scoped installation location and a relationship host.
type Site struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	TenantID   int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	CompanyID  *int64    `json:"company_id,omitempty" gorm:"column:company_id"`
	Name       string    `json:"name" gorm:"not null"`
	Street     string    `json:"street,omitempty"`
	City       string    `json:"city,omitempty"`
	PostalCode string    `json:"postal_code,omitempty" gorm:"column:postal_code"`
	Country    string    `json:"country,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	IsActive   bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Site) TableName() string {
	return "sites"
}
