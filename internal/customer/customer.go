package customer

import (
	"time"
)

// Customer is a company that has been converted into a billing relationship.
type Customer struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	TenantID       int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	CompanyID      int64     `json:"company_id" gorm:"column:company_id;not null"`
	CustomerNumber string    `json:"customer_number" gorm:"column:customer_number"`
	BillingEmail   string    `json:"billing_email,omitempty" gorm:"column:billing_email"`
	BillingStreet  string    `json:"billing_street,omitempty" gorm:"column:billing_street"`
	BillingCity    string    `json:"billing_city,omitempty" gorm:"column:billing_city"`
	PaymentDays    int       `json:"payment_days" gorm:"column:payment_days;default:30"`
	Notes          string    `json:"notes,omitempty"`
	IsActive       bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Customer) TableName() string {
	return "customers"
}
