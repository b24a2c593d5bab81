package layout

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Entity types that carry tabbed detail views.
const (
	EntityDeal     = "deal"
	EntitySite     = "site"
	EntityContract = "contract"
	EntityCompany  = "company"
	EntityContact  = "contact"
)

// TabConfig describes one tab on an entity detail view. Locked tabs cannot be
// hidden by tenant administrators.
type TabConfig struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Icon    string `json:"icon,omitempty"`
	Visible bool   `json:"visible"`
	Locked  bool   `json:"locked"`
	Order   int    `json:"order"`
}

// TabList is the jsonb column shape.
type TabList []TabConfig

func (t TabList) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *TabList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for tab list: %T", value)
	}
	return json.Unmarshal(raw, t)
}

// PageLayoutConfig is a stored layout row. TenantID nil marks the global
// default shared by all tenants.
type PageLayoutConfig struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	TenantID   *int64    `json:"tenant_id,omitempty" gorm:"column:tenant_id"`
	EntityType string    `json:"entity_type" gorm:"column:entity_type;not null"`
	Tabs       TabList   `json:"tabs" gorm:"type:jsonb"`
	UpdatedBy  int64     `json:"updated_by" gorm:"column:updated_by"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (PageLayoutConfig) TableName() string {
	return "page_layout_configs"
}

// defaultLayouts is the in-process fallback table, one entry per entity type.
var defaultLayouts = map[string]TabList{
	EntityDeal: {
		{ID: "overview", Label: "Overview", Icon: "info", Visible: true, Locked: true, Order: 1},
		{ID: "payment_terms", Label: "Payment Terms", Icon: "credit-card", Visible: true, Locked: false, Order: 2},
		{ID: "relationships", Label: "Relationships", Icon: "users", Visible: true, Locked: false, Order: 3},
		{ID: "quotes", Label: "Quotes", Icon: "file-text", Visible: true, Locked: false, Order: 4},
		{ID: "activities", Label: "Activities", Icon: "activity", Visible: true, Locked: false, Order: 5},
		{ID: "history", Label: "History", Icon: "clock", Visible: true, Locked: false, Order: 6},
	},
	EntitySite: {
		{ID: "overview", Label: "Overview", Icon: "info", Visible: true, Locked: true, Order: 1},
		{ID: "devices", Label: "Devices", Icon: "cpu", Visible: true, Locked: false, Order: 2},
		{ID: "relationships", Label: "Relationships", Icon: "users", Visible: true, Locked: false, Order: 3},
		{ID: "activities", Label: "Activities", Icon: "activity", Visible: true, Locked: false, Order: 4},
	},
	EntityContract: {
		{ID: "overview", Label: "Overview", Icon: "info", Visible: true, Locked: true, Order: 1},
		{ID: "payment_terms", Label: "Payment Terms", Icon: "credit-card", Visible: true, Locked: false, Order: 2},
		{ID: "relationships", Label: "Relationships", Icon: "users", Visible: true, Locked: false, Order: 3},
		{ID: "activities", Label: "Activities", Icon: "activity", Visible: true, Locked: false, Order: 4},
	},
	EntityCompany: {
		{ID: "overview", Label: "Overview", Icon: "info", Visible: true, Locked: true, Order: 1},
		{ID: "contacts", Label: "Contacts", Icon: "users", Visible: true, Locked: false, Order: 2},
		{ID: "deals", Label: "Deals", Icon: "briefcase", Visible: true, Locked: false, Order: 3},
		{ID: "activities", Label: "Activities", Icon: "activity", Visible: true, Locked: false, Order: 4},
	},
	EntityContact: {
		{ID: "overview", Label: "Overview", Icon: "info", Visible: true, Locked: true, Order: 1},
		{ID: "relationships", Label: "Relationships", Icon: "users", Visible: true, Locked: false, Order: 2},
		{ID: "activities", Label: "Activities", Icon: "activity", Visible: true, Locked: false, Order: 3},
	},
}

// DefaultTabs returns a copy of the built-in layout for the entity type.
func DefaultTabs(entityType string) (TabList, bool) {
	tabs, ok := defaultLayouts[entityType]
	if !ok {
		return nil, false
	}
	out := make(TabList, len(tabs))
	copy(out, tabs)
	return out, true
}

func ValidEntityType(entityType string) bool {
	_, ok := defaultLayouts[entityType]
	return ok
}
