package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Device is a tenant-scoped catalog entry priced per unit.
type Device struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	TenantID     int64           `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Model        string          `json:"model" gorm:"not null"`
	Manufacturer string          `json:"manufacturer"`
	Description  string          `json:"description,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"column:unit_price;type:numeric(12,2)"`
	Currency     string          `json:"currency" gorm:"default:EUR"`
	IsActive     bool            `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Device) TableName() string {
	return "devices"
}

// ProjectDevice places a catalog device on a site or deal with a quantity.
type ProjectDevice struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TenantID  int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	DeviceID  int64     `json:"device_id" gorm:"column:device_id;not null"`
	SiteID    *int64    `json:"site_id,omitempty" gorm:"column:site_id"`
	DealID    *int64    `json:"deal_id,omitempty" gorm:"column:deal_id"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (ProjectDevice) TableName() string {
	return "project_devices"
}
