package permission

import (
	"log/slog"

	"github.com/pradiptamal/crm-management/internal/tenant"
)

type RepositoryAPI interface {
	GetCustomRole(id int64) (*CustomRole, error)
	GetRolePermissionNames(tenantID int64, role string) ([]string, error)
	ListCatalog() ([]*Permission, error)
	ListCustomRoles(tenantID int64) ([]*CustomRole, error)
	CreateCustomRole(role *CustomRole) error
	UpdateCustomRole(role *CustomRole) error
	DeactivateCustomRole(id int64) error
}

// Resolver turns a membership into a queryable permission set.
type Resolver struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewResolver(repo RepositoryAPI, logger *slog.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
	}
}

// Resolve produces the effective permission set for a membership.
//
// admin and super_admin short-circuit to the wildcard set. A custom role
// overrides the fixed grants. Everything else reads the fixed grants for
// (tenant, role). Any repository failure yields the empty set: permission
// resolution fails closed, never up to the view layer.
func (r *Resolver) Resolve(m *tenant.UserTenantMembership) Set {
	if m == nil || !m.IsActive {
		return EmptySet()
	}

	if m.IsAdminRole() {
		return NewAdminSet()
	}

	if m.CustomRoleID != nil {
		role, err := r.repo.GetCustomRole(*m.CustomRoleID)
		if err != nil {
			r.logger.Error("failed to load custom role, failing closed",
				"error", err,
				"custom_role_id", *m.CustomRoleID,
				"user_id", m.UserID,
				"tenant_id", m.TenantID)
			return EmptySet()
		}
		if role == nil || !role.IsActive || role.TenantID != m.TenantID {
			r.logger.Warn("custom role unusable, failing closed",
				"custom_role_id", *m.CustomRoleID,
				"tenant_id", m.TenantID)
			return EmptySet()
		}

		names, skipped := TranslateMatrix(role.Permissions)
		if len(skipped) > 0 {
			r.logger.Warn("skipped unknown permission entries",
				"custom_role_id", role.ID,
				"skipped", skipped)
		}
		return NewSet(names)
	}

	names, err := r.repo.GetRolePermissionNames(m.TenantID, m.Role)
	if err != nil {
		r.logger.Error("failed to load role permissions, failing closed",
			"error", err,
			"tenant_id", m.TenantID,
			"role", m.Role)
		return EmptySet()
	}

	return NewSet(names)
}
