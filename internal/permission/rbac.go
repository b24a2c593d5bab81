package permission

import (
	"log/slog"
	"net/http"

	"github.com/pradiptamal/crm-management/internal/auth"
)

// RBACAuthorization guards routes with checks against the permission set the
// tenant middleware resolved for the request.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

func (ra *RBACAuthorization) require(check func(Set) bool, label string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			set, ok := SetFromContext(r.Context())
			if !ok {
				ra.logger.Warn("authorization check failed: no permission set in context", "user_id", user.ID)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			if !check(set) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required", label)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequirePermission(name string) func(http.Handler) http.Handler {
	return ra.require(func(s Set) bool { return s.Has(name) }, name)
}

func (ra *RBACAuthorization) RequireAnyPermission(names ...string) func(http.Handler) http.Handler {
	return ra.require(func(s Set) bool { return s.HasAny(names...) }, "any of required set")
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.require(func(s Set) bool { return s.IsAdmin() }, "admin role")
}
