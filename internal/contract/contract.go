package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract is a tenant-scoped agreement, typically the outcome of a won deal.
// Contracts own payment term schedules the same way deals do.
type Contract struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	TenantID     int64           `json:"tenant_id" gorm:"column:tenant_id;not null"`
	DealID       *int64          `json:"deal_id,omitempty" gorm:"column:deal_id"`
	CompanyID    *int64          `json:"company_id,omitempty" gorm:"column:company_id"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Value        decimal.Decimal `json:"value" gorm:"type:numeric(14,2)"`
	Currency     string          `json:"currency" gorm:"default:EUR"`
	StartDate    *time.Time      `json:"start_date,omitempty" gorm:"column:start_date;type:date"`
	EndDate      *time.Time      `json:"end_date,omitempty" gorm:"column:end_date;type:date"`
	SignedAt     *time.Time      `json:"signed_at,omitempty" gorm:"column:signed_at"`
	IsActive     bool            `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedBy    int64           `json:"created_by" gorm:"column:created_by"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Contract) TableName() string {
	return "contracts"
}

type ContractPaymentTerm struct {
	ID                int64            `json:"id" gorm:"primaryKey"`
	ContractID        int64            `json:"contract_id" gorm:"column:contract_id;not null"`
	InstallmentNumber int              `json:"installment_number" gorm:"column:installment_number;not null"`
	Percentage        *decimal.Decimal `json:"percentage,omitempty" gorm:"type:numeric(5,2)"`
	FixedAmount       *decimal.Decimal `json:"fixed_amount,omitempty" gorm:"column:fixed_amount;type:numeric(14,2)"`
	DueDate           *time.Time       `json:"due_date,omitempty" gorm:"column:due_date;type:date"`
	CalculatedAmount  decimal.Decimal  `json:"calculated_amount" gorm:"column:calculated_amount;type:numeric(14,2)"`
	CreatedAt         time.Time        `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (ContractPaymentTerm) TableName() string {
	return "contract_payment_terms"
}

type ContractCompany struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	ContractID int64     `json:"contract_id" gorm:"column:contract_id;not null"`
	CompanyID  int64     `json:"company_id" gorm:"column:company_id;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (ContractCompany) TableName() string {
	return "contract_companies"
}
