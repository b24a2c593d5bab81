package activity

import (
	"time"
)

// Entity types an activity or audit row can attach to.
const (
	EntityDeal     = "deal"
	EntitySite     = "site"
	EntityContract = "contract"
	EntityCompany  = "company"
	EntityContact  = "contact"
	EntityCustomer = "customer"
	EntityQuote    = "quote"
	EntityTenant   = "tenant"
)

const (
	KindNote         = "note"
	KindStatusChange = "status_change"
	KindSystem       = "system"
)

// Activity is a timeline entry on a CRM entity. Status changes and system
// events land here alongside user notes.
type Activity struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	TenantID   int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	EntityType string    `json:"entity_type" gorm:"column:entity_type;not null"`
	EntityID   int64     `json:"entity_id" gorm:"column:entity_id;not null"`
	Kind       string    `json:"kind" gorm:"not null;default:note"`
	Body       string    `json:"body"`
	CreatedBy  int64     `json:"created_by" gorm:"column:created_by"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Activity) TableName() string {
	return "activities"
}

// AuditLog records domain events for compliance. Rows are written by the
// event-bus subscriber, never directly by handlers.
type AuditLog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	TenantID  int64     `json:"tenant_id" gorm:"column:tenant_id"`
	EventType string    `json:"event_type" gorm:"column:event_type;not null"`
	EventID   string    `json:"event_id" gorm:"column:event_id"`
	ActorID   int64     `json:"actor_id" gorm:"column:actor_id"`
	Payload   string    `json:"payload" gorm:"type:jsonb"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
