package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/auth"
	"github.com/pradiptamal/crm-management/internal/permission"
	"github.com/pradiptamal/crm-management/internal/tenant"
)

// TenantResolver is the slice of the tenant service the middleware needs.
type TenantResolver interface {
	ResolveTenant(userID, requestedTenantID int64) (*tenant.Tenant, *tenant.UserTenantMembership, error)
}

// PermissionResolver turns a membership into an effective permission set.
type PermissionResolver interface {
	Resolve(m *tenant.UserTenantMembership) permission.Set
}

// TenantContext resolves the acting tenant from the X-Tenant-ID header (or the
// user's first active membership) and loads the effective permission set into
// the request context. Runs after auth middleware; requests without a resolved
// user are rejected.
func TenantContext(tenants TenantResolver, permissions PermissionResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, `{"code":401,"message":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			var requestedID int64
			if raw := r.Header.Get("X-Tenant-ID"); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					http.Error(w, `{"code":400,"message":"invalid X-Tenant-ID header"}`, http.StatusBadRequest)
					return
				}
				requestedID = id
			}

			t, membership, err := tenants.ResolveTenant(user.ID, requestedID)
			if err != nil {
				logger.Warn("tenant resolution failed",
					"error", err,
					"user_id", user.ID,
					"requested_tenant_id", requestedID)
				http.Error(w, `{"code":403,"message":"no tenant access"}`, http.StatusForbidden)
				return
			}

			set := permissions.Resolve(membership)

			ctx := internal.ContextWithTenantID(r.Context(), t.ID)
			ctx = permission.ContextWithSet(ctx, set)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
