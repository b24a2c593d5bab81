package permission_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pradiptamal/crm-management/internal/permission"
	"github.com/pradiptamal/crm-management/internal/tenant"
)

type mockPermissionRepo struct {
	customRoles map[int64]*permission.CustomRole
	rolePerms   map[string][]string

	customRoleErr error
	rolePermsErr  error
}

func newMockPermissionRepo() *mockPermissionRepo {
	return &mockPermissionRepo{
		customRoles: make(map[int64]*permission.CustomRole),
		rolePerms:   make(map[string][]string),
	}
}

func (m *mockPermissionRepo) GetCustomRole(id int64) (*permission.CustomRole, error) {
	if m.customRoleErr != nil {
		return nil, m.customRoleErr
	}
	return m.customRoles[id], nil
}

func (m *mockPermissionRepo) GetRolePermissionNames(tenantID int64, role string) ([]string, error) {
	if m.rolePermsErr != nil {
		return nil, m.rolePermsErr
	}
	return m.rolePerms[role], nil
}

func (m *mockPermissionRepo) ListCatalog() ([]*permission.Permission, error) {
	return nil, nil
}

func (m *mockPermissionRepo) ListCustomRoles(tenantID int64) ([]*permission.CustomRole, error) {
	return nil, nil
}

func (m *mockPermissionRepo) CreateCustomRole(role *permission.CustomRole) error {
	role.ID = int64(len(m.customRoles) + 1)
	m.customRoles[role.ID] = role
	return nil
}

func (m *mockPermissionRepo) UpdateCustomRole(role *permission.CustomRole) error {
	m.customRoles[role.ID] = role
	return nil
}

func (m *mockPermissionRepo) DeactivateCustomRole(id int64) error {
	if r, ok := m.customRoles[id]; ok {
		r.IsActive = false
	}
	return nil
}

var _ = Describe("Resolver", func() {
	var (
		repo     *mockPermissionRepo
		resolver *permission.Resolver
	)

	membership := func(role string, customRoleID *int64) *tenant.UserTenantMembership {
		return &tenant.UserTenantMembership{
			ID:           1,
			UserID:       10,
			TenantID:     100,
			Role:         role,
			CustomRoleID: customRoleID,
			IsActive:     true,
		}
	}

	BeforeEach(func() {
		repo = newMockPermissionRepo()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		resolver = permission.NewResolver(repo, logger)
	})

	Describe("admin roles", func() {
		It("grants everything to admin without touching the repository", func() {
			repo.customRoleErr = errors.New("should not be called")
			repo.rolePermsErr = errors.New("should not be called")

			set := resolver.Resolve(membership("admin", nil))

			Expect(set.IsAdmin()).To(BeTrue())
			Expect(set.Has("deals.delete")).To(BeTrue())
			Expect(set.Has("anything.at.all")).To(BeTrue())
		})

		It("treats super_admin the same way", func() {
			set := resolver.Resolve(membership("super_admin", nil))
			Expect(set.IsAdmin()).To(BeTrue())
		})
	})

	Describe("custom roles", func() {
		It("resolves permissions from the matrix, overriding the fixed grants", func() {
			repo.rolePerms["member"] = []string{"deals.view"}
			roleID := int64(5)
			repo.customRoles[roleID] = &permission.CustomRole{
				ID:       roleID,
				TenantID: 100,
				IsActive: true,
				Permissions: permission.Matrix{
					"deals":  {"view": true, "edit": true},
					"quotes": {"generate": true, "delete": false},
				},
			}

			set := resolver.Resolve(membership("member", &roleID))

			Expect(set.IsAdmin()).To(BeFalse())
			Expect(set.Has("deals.view")).To(BeTrue())
			Expect(set.Has("deals.edit")).To(BeTrue())
			Expect(set.Has("quotes.generate")).To(BeTrue())
			Expect(set.Has("quotes.delete")).To(BeFalse())
			Expect(set.Has("deals.delete")).To(BeFalse())
		})

		It("maps the read authoring spelling onto view", func() {
			roleID := int64(5)
			repo.customRoles[roleID] = &permission.CustomRole{
				ID:          roleID,
				TenantID:    100,
				IsActive:    true,
				Permissions: permission.Matrix{"sites": {"read": true}},
			}

			set := resolver.Resolve(membership("member", &roleID))
			Expect(set.Has("sites.view")).To(BeTrue())
		})

		It("adds the legacy aliases for the reports module", func() {
			roleID := int64(5)
			repo.customRoles[roleID] = &permission.CustomRole{
				ID:          roleID,
				TenantID:    100,
				IsActive:    true,
				Permissions: permission.Matrix{"reports": {"generate": true}},
			}

			set := resolver.Resolve(membership("member", &roleID))
			Expect(set.Has("reports.generate")).To(BeTrue())
			Expect(set.Has("reports_generate")).To(BeTrue())
			Expect(set.Has("reports_create")).To(BeTrue())
		})

		It("skips unknown modules instead of failing resolution", func() {
			roleID := int64(5)
			repo.customRoles[roleID] = &permission.CustomRole{
				ID:       roleID,
				TenantID: 100,
				IsActive: true,
				Permissions: permission.Matrix{
					"deals":      {"view": true},
					"timetravel": {"view": true},
				},
			}

			set := resolver.Resolve(membership("member", &roleID))
			Expect(set.Has("deals.view")).To(BeTrue())
			Expect(set.Has("timetravel.view")).To(BeFalse())
		})

		It("fails closed when the custom role cannot be loaded", func() {
			roleID := int64(5)
			repo.customRoleErr = errors.New("connection refused")

			set := resolver.Resolve(membership("member", &roleID))
			Expect(set.IsAdmin()).To(BeFalse())
			Expect(set.Has("deals.view")).To(BeFalse())
		})

		It("fails closed when the custom role belongs to another tenant", func() {
			roleID := int64(5)
			repo.customRoles[roleID] = &permission.CustomRole{
				ID:          roleID,
				TenantID:    999,
				IsActive:    true,
				Permissions: permission.Matrix{"deals": {"view": true}},
			}

			set := resolver.Resolve(membership("member", &roleID))
			Expect(set.Has("deals.view")).To(BeFalse())
		})

		It("fails closed when the custom role is deactivated", func() {
			roleID := int64(5)
			repo.customRoles[roleID] = &permission.CustomRole{
				ID:          roleID,
				TenantID:    100,
				IsActive:    false,
				Permissions: permission.Matrix{"deals": {"view": true}},
			}

			set := resolver.Resolve(membership("member", &roleID))
			Expect(set.Has("deals.view")).To(BeFalse())
		})
	})

	Describe("fixed roles", func() {
		It("reads the fixed grants for the membership role", func() {
			repo.rolePerms["member"] = []string{"deals.view", "contacts.view"}

			set := resolver.Resolve(membership("member", nil))
			Expect(set.Has("deals.view")).To(BeTrue())
			Expect(set.Has("contacts.view")).To(BeTrue())
			Expect(set.Has("deals.edit")).To(BeFalse())
		})

		It("fails closed when the grant lookup errors", func() {
			repo.rolePermsErr = errors.New("connection refused")

			set := resolver.Resolve(membership("member", nil))
			Expect(set.Has("deals.view")).To(BeFalse())
		})
	})

	Describe("inactive or missing memberships", func() {
		It("returns the empty set for nil", func() {
			set := resolver.Resolve(nil)
			Expect(set.IsAdmin()).To(BeFalse())
			Expect(set.Has("deals.view")).To(BeFalse())
		})

		It("returns the empty set for a deactivated membership", func() {
			m := membership("admin", nil)
			m.IsActive = false

			set := resolver.Resolve(m)
			Expect(set.IsAdmin()).To(BeFalse())
		})
	})
})

var _ = Describe("ValidateMatrix", func() {
	It("accepts a matrix using only known modules and actions", func() {
		err := permission.ValidateMatrix(permission.Matrix{
			"deals":  {"view": true, "write": false},
			"quotes": {"generate": true},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects unknown modules", func() {
		err := permission.ValidateMatrix(permission.Matrix{"timetravel": {"view": true}})
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown actions", func() {
		err := permission.ValidateMatrix(permission.Matrix{"deals": {"teleport": true}})
		Expect(err).To(HaveOccurred())
	})
})
