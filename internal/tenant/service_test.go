package tenant_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/core/events"
	"github.com/pradiptamal/crm-management/internal/tenant"
)

type mockTenantRepo struct {
	tenants     map[int64]*tenant.Tenant
	memberships map[int64]*tenant.UserTenantMembership
	nextID      int64
}

func newMockTenantRepo() *mockTenantRepo {
	return &mockTenantRepo{
		tenants:     make(map[int64]*tenant.Tenant),
		memberships: make(map[int64]*tenant.UserTenantMembership),
		nextID:      1,
	}
}

func (m *mockTenantRepo) GetTenantByID(id int64) (*tenant.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, internal.ErrTenantNotFound
	}
	return t, nil
}

func (m *mockTenantRepo) GetTenantBySlug(slug string) (*tenant.Tenant, error) {
	for _, t := range m.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, internal.ErrTenantNotFound
}

func (m *mockTenantRepo) ListTenants() ([]*tenant.Tenant, error) {
	var out []*tenant.Tenant
	for _, t := range m.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTenantRepo) GetMembership(userID, tenantID int64) (*tenant.UserTenantMembership, error) {
	for _, ms := range m.memberships {
		if ms.UserID == userID && ms.TenantID == tenantID && ms.IsActive {
			return ms, nil
		}
	}
	return nil, internal.ErrMembershipNotFound
}

func (m *mockTenantRepo) GetMembershipsForUser(userID int64) ([]*tenant.UserTenantMembership, error) {
	var out []*tenant.UserTenantMembership
	for _, ms := range m.memberships {
		if ms.UserID == userID {
			out = append(out, ms)
		}
	}
	return out, nil
}

func (m *mockTenantRepo) ListMembers(tenantID int64) ([]*tenant.UserTenantMembership, error) {
	var out []*tenant.UserTenantMembership
	for _, ms := range m.memberships {
		if ms.TenantID == tenantID {
			out = append(out, ms)
		}
	}
	return out, nil
}

func (m *mockTenantRepo) CreateMembership(ms *tenant.UserTenantMembership) error {
	ms.ID = m.nextID
	m.nextID++
	m.memberships[ms.ID] = ms
	return nil
}

func (m *mockTenantRepo) UpdateMembership(ms *tenant.UserTenantMembership) error {
	m.memberships[ms.ID] = ms
	return nil
}

func (m *mockTenantRepo) DeactivateMembership(id int64) error {
	if ms, ok := m.memberships[id]; ok {
		ms.IsActive = false
	}
	return nil
}

type mockFunctions struct {
	invitations []string
	resets      []int64

	inviteErr error
	resetErr  error
}

func (m *mockFunctions) SendTenantInvitation(ctx context.Context, tenantID int64, email, role string) error {
	if m.inviteErr != nil {
		return m.inviteErr
	}
	m.invitations = append(m.invitations, email)
	return nil
}

func (m *mockFunctions) AdminResetUserPassword(ctx context.Context, tenantID, userID int64, newPassword string) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resets = append(m.resets, userID)
	return nil
}

var _ = Describe("Tenant Service", func() {
	var (
		repo      *mockTenantRepo
		functions *mockFunctions
		service   *tenant.Service
		ctx       context.Context
	)

	const userID = int64(10)

	addMembership := func(tenantID int64, role string, active bool) *tenant.UserTenantMembership {
		ms := &tenant.UserTenantMembership{
			UserID:   userID,
			TenantID: tenantID,
			Role:     role,
			IsActive: active,
		}
		Expect(repo.CreateMembership(ms)).To(Succeed())
		return ms
	}

	BeforeEach(func() {
		repo = newMockTenantRepo()
		functions = &mockFunctions{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(logger)
		service = tenant.NewService(repo, functions, bus, logger)
		ctx = context.Background()

		repo.tenants[1] = &tenant.Tenant{ID: 1, Name: "Alpha", Slug: "alpha", IsActive: true}
		repo.tenants[2] = &tenant.Tenant{ID: 2, Name: "Beta", Slug: "beta", IsActive: true}
		repo.tenants[3] = &tenant.Tenant{ID: 3, Name: "Gone", Slug: "gone", IsActive: false}
	})

	Describe("ResolveTenant", func() {
		It("honors the requested tenant when the user holds an active membership", func() {
			addMembership(1, tenant.RoleMember, true)
			addMembership(2, tenant.RoleMember, true)

			t, m, err := service.ResolveTenant(userID, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.ID).To(Equal(int64(2)))
			Expect(m.TenantID).To(Equal(int64(2)))
		})

		It("rejects a requested tenant without a membership", func() {
			addMembership(1, tenant.RoleMember, true)

			_, _, err := service.ResolveTenant(userID, 2)
			Expect(err).To(MatchError(internal.ErrMembershipNotFound))
		})

		It("ignores deactivated memberships", func() {
			addMembership(2, tenant.RoleMember, false)

			_, _, err := service.ResolveTenant(userID, 2)
			Expect(err).To(MatchError(internal.ErrMembershipNotFound))
		})

		It("lets a super admin act in a tenant without a stored membership", func() {
			addMembership(1, tenant.RoleSuperAdmin, true)

			t, m, err := service.ResolveTenant(userID, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.ID).To(Equal(int64(2)))
			Expect(m.Role).To(Equal(tenant.RoleSuperAdmin))
			Expect(m.IsActive).To(BeTrue())
		})

		It("falls back to the first active membership when no tenant is requested", func() {
			addMembership(1, tenant.RoleMember, true)

			t, _, err := service.ResolveTenant(userID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.ID).To(Equal(int64(1)))
		})

		It("refuses an inactive tenant", func() {
			addMembership(3, tenant.RoleMember, true)

			_, _, err := service.ResolveTenant(userID, 3)
			Expect(err).To(MatchError(internal.ErrTenantInactive))
		})

		It("errors when the user has no memberships at all", func() {
			_, _, err := service.ResolveTenant(userID, 0)
			Expect(err).To(MatchError(internal.ErrMembershipNotFound))
		})
	})

	Describe("AddMember", func() {
		It("rejects a second active membership for the same user and tenant", func() {
			addMembership(1, tenant.RoleMember, true)

			_, err := service.AddMember(ctx, 1, tenant.AddMemberDTO{UserID: userID, Role: tenant.RoleMember})
			Expect(err).To(MatchError(internal.ErrDuplicateMember))
		})

		It("allows re-adding after deactivation", func() {
			ms := addMembership(1, tenant.RoleMember, true)
			Expect(service.DeactivateMember(ctx, 1, ms.ID)).To(Succeed())

			created, err := service.AddMember(ctx, 1, tenant.AddMemberDTO{UserID: userID, Role: tenant.RoleMember})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.IsActive).To(BeTrue())
		})

		It("normalizes the base role when a custom role is assigned", func() {
			customRoleID := int64(5)
			created, err := service.AddMember(ctx, 1, tenant.AddMemberDTO{
				UserID:       userID,
				Role:         tenant.RoleAdmin,
				CustomRoleID: &customRoleID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Role).To(Equal(tenant.RoleMember))
			Expect(created.CustomRoleID).NotTo(BeNil())
		})
	})

	Describe("InviteMember", func() {
		It("dispatches the invitation function", func() {
			err := service.InviteMember(ctx, 1, tenant.InviteMemberDTO{Email: "new@demo.example", Role: tenant.RoleMember}, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(functions.invitations).To(ContainElement("new@demo.example"))
		})

		It("still succeeds when the send fails", func() {
			functions.inviteErr = errors.New("mail provider down")

			err := service.InviteMember(ctx, 1, tenant.InviteMemberDTO{Email: "new@demo.example", Role: tenant.RoleMember}, userID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects an unknown tenant", func() {
			err := service.InviteMember(ctx, 999, tenant.InviteMemberDTO{Email: "new@demo.example", Role: tenant.RoleMember}, userID)
			Expect(err).To(MatchError(internal.ErrTenantNotFound))
		})
	})

	Describe("ResetMemberPassword", func() {
		It("invokes the privileged reset for an active member", func() {
			addMembership(1, tenant.RoleMember, true)

			err := service.ResetMemberPassword(ctx, 1, tenant.ResetMemberPasswordDTO{UserID: userID, NewPassword: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(functions.resets).To(ContainElement(userID))
		})

		It("surfaces a failed function call", func() {
			addMembership(1, tenant.RoleMember, true)
			functions.resetErr = errors.New("function returned 500")

			err := service.ResetMemberPassword(ctx, 1, tenant.ResetMemberPasswordDTO{UserID: userID, NewPassword: "correct-horse"})
			Expect(err).To(HaveOccurred())
		})

		It("refuses for users without an active membership", func() {
			err := service.ResetMemberPassword(ctx, 1, tenant.ResetMemberPasswordDTO{UserID: userID, NewPassword: "correct-horse"})
			Expect(err).To(MatchError(internal.ErrMembershipNotFound))
		})
	})
})
