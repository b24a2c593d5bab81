package permission

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Permission is an entry in the fixed catalog.
type Permission struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Permission) TableName() string {
	return "permissions"
}

// RolePermission grants a fixed catalog permission to a fixed role within a tenant.
type RolePermission struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	TenantID     int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Role         string    `json:"role" gorm:"not null"`
	PermissionID int64     `json:"permission_id" gorm:"column:permission_id;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// Matrix is the authoring shape of a custom role: module name to a map of
// action name to allowed.
type Matrix map[string]map[string]bool

func (m Matrix) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *Matrix) Scan(value interface{}) error {
	if value == nil {
		*m = Matrix{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("unsupported type for permission matrix: %T", value)
}

// CustomRole is a tenant-defined permission bundle. A membership referencing
// one gets its permission set from the matrix instead of the fixed grants.
type CustomRole struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	TenantID    int64     `json:"tenant_id" gorm:"column:tenant_id;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Permissions Matrix    `json:"permissions" gorm:"type:jsonb"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (CustomRole) TableName() string {
	return "custom_roles"
}

// Set is the resolved, boolean-queryable permission set for a membership.
// Admin-or-above short-circuits every check.
type Set struct {
	admin bool
	names map[string]struct{}
}

func NewSet(names []string) Set {
	s := Set{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

func NewAdminSet() Set {
	return Set{admin: true, names: map[string]struct{}{}}
}

// EmptySet is what resolution failures produce: every check fails closed.
func EmptySet() Set {
	return Set{names: map[string]struct{}{}}
}

func (s Set) IsAdmin() bool {
	return s.admin
}

func (s Set) Has(name string) bool {
	if s.admin {
		return true
	}
	_, ok := s.names[name]
	return ok
}

func (s Set) HasAny(names ...string) bool {
	if s.admin {
		return true
	}
	for _, n := range names {
		if _, ok := s.names[n]; ok {
			return true
		}
	}
	return false
}

// Names returns the resolved permission names, empty for admin sets since
// those never consult the list.
func (s Set) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	return out
}

type ctxKey string

const contextSetKey ctxKey = "permissionSet"

func SetFromContext(ctx context.Context) (Set, bool) {
	s, ok := ctx.Value(contextSetKey).(Set)
	return s, ok
}

func ContextWithSet(ctx context.Context, s Set) context.Context {
	return context.WithValue(ctx, contextSetKey, s)
}
