package deal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Deal struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	TenantID         int64           `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Name             string          `json:"name" gorm:"not null"`
	Description      string          `json:"description"`
	StatusID         int64           `json:"status_id" gorm:"column:status_id"`
	Value            decimal.Decimal `json:"value" gorm:"type:numeric(14,2)"`
	Currency         string          `json:"currency" gorm:"default:EUR"`
	StatusResumeDate *time.Time      `json:"status_resume_date,omitempty" gorm:"column:status_resume_date;type:date"`
	CreatedBy        int64           `json:"created_by" gorm:"column:created_by"`
	CreatedAt        time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Deal) TableName() string {
	return "deals"
}

// DealStatus is a tenant catalog entry. Behavior hangs off the explicit flags,
// not off the display name.
type DealStatus struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	TenantID      int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Color         string    `json:"color"`
	SortOrder     int       `json:"sort_order" gorm:"column:sort_order"`
	RequiresReason bool     `json:"requires_reason" gorm:"column:requires_reason;default:false"`
	IsPauseStatus  bool     `json:"is_pause_status" gorm:"column:is_pause_status;default:false"`
	IsActive      bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (DealStatus) TableName() string {
	return "deal_statuses"
}

// Legacy keyword heuristics. Only the seeder uses these, to derive flags for
// status catalogs imported without them; runtime decisions read the flags.
var reasonKeywords = []string{"lost", "not active", "paused", "cancelled", "rejected"}

func NameSuggestsReason(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range reasonKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func NameSuggestsPause(name string) bool {
	return strings.Contains(strings.ToLower(name), "paused")
}

type DealStatusHistory struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	DealID       int64     `json:"deal_id" gorm:"column:deal_id;not null"`
	FromStatusID *int64    `json:"from_status_id,omitempty" gorm:"column:from_status_id"`
	ToStatusID   int64     `json:"to_status_id" gorm:"column:to_status_id;not null"`
	Reason       string    `json:"reason"`
	ChangedBy    int64     `json:"changed_by" gorm:"column:changed_by"`
	ChangedAt    time.Time `json:"changed_at" gorm:"column:changed_at;default:now()"`
}

func (DealStatusHistory) TableName() string {
	return "deal_status_history"
}

type DealPaymentTerm struct {
	ID                int64            `json:"id" gorm:"primaryKey"`
	DealID            int64            `json:"deal_id" gorm:"column:deal_id;not null"`
	InstallmentNumber int              `json:"installment_number" gorm:"column:installment_number;not null"`
	Percentage        *decimal.Decimal `json:"percentage,omitempty" gorm:"type:numeric(5,2)"`
	FixedAmount       *decimal.Decimal `json:"fixed_amount,omitempty" gorm:"column:fixed_amount;type:numeric(14,2)"`
	DueDate           *time.Time       `json:"due_date,omitempty" gorm:"column:due_date;type:date"`
	CalculatedAmount  decimal.Decimal  `json:"calculated_amount" gorm:"column:calculated_amount;type:numeric(14,2)"`
	CreatedAt         time.Time        `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (DealPaymentTerm) TableName() string {
	return "deal_payment_terms"
}

// Join rows linking deals to parties.
type DealCompany struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	DealID    int64     `json:"deal_id" gorm:"column:deal_id;not null"`
	CompanyID int64     `json:"company_id" gorm:"column:company_id;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (DealCompany) TableName() string {
	return "deal_companies"
}

type DealContact struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	DealID    int64     `json:"deal_id" gorm:"column:deal_id;not null"`
	ContactID int64     `json:"contact_id" gorm:"column:contact_id;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (DealContact) TableName() string {
	return "deal_contacts"
}
