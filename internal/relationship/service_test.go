package relationship_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/core/events"
	"github.com/pradiptamal/crm-management/internal/relationship"
)

type mockRelationshipRepo struct {
	rels   map[int64]*relationship.EntityRelationship
	roles  map[int64]*relationship.RelationshipRole
	nextID int64
}

func newMockRelationshipRepo() *mockRelationshipRepo {
	return &mockRelationshipRepo{
		rels:   make(map[int64]*relationship.EntityRelationship),
		roles:  make(map[int64]*relationship.RelationshipRole),
		nextID: 1,
	}
}

func (m *mockRelationshipRepo) GetByID(id int64) (*relationship.EntityRelationship, error) {
	rel, ok := m.rels[id]
	if !ok {
		return nil, internal.ErrRelationshipNotFound
	}
	cp := *rel
	return &cp, nil
}

func (m *mockRelationshipRepo) ListByHost(tenantID int64, hostType relationship.HostType, hostID int64, includeInactive bool) ([]*relationship.EntityRelationship, error) {
	var out []*relationship.EntityRelationship
	for _, rel := range m.rels {
		if rel.TenantID != tenantID || rel.HostType != hostType || rel.HostID != hostID {
			continue
		}
		if !includeInactive && !rel.IsActive {
			continue
		}
		out = append(out, rel)
	}
	return out, nil
}

func sameParty(a, b *relationship.EntityRelationship) bool {
	if a.CompanyID != nil && b.CompanyID != nil {
		return *a.CompanyID == *b.CompanyID
	}
	if a.ContactID != nil && b.ContactID != nil {
		return *a.ContactID == *b.ContactID
	}
	return false
}

func (m *mockRelationshipRepo) CreateSucceeding(rel *relationship.EntityRelationship) error {
	now := time.Now()
	for _, existing := range m.rels {
		if existing.IsActive &&
			existing.TenantID == rel.TenantID &&
			existing.HostType == rel.HostType &&
			existing.HostID == rel.HostID &&
			sameParty(existing, rel) {
			existing.IsActive = false
			existing.EndDate = &now
		}
	}
	rel.ID = m.nextID
	m.nextID++
	m.rels[rel.ID] = rel
	return nil
}

func (m *mockRelationshipRepo) Deactivate(id int64, endDate time.Time) error {
	rel, ok := m.rels[id]
	if !ok {
		return internal.ErrRelationshipNotFound
	}
	rel.IsActive = false
	rel.EndDate = &endDate
	return nil
}

func (m *mockRelationshipRepo) Reactivate(id int64, startDate time.Time) error {
	rel, ok := m.rels[id]
	if !ok {
		return internal.ErrRelationshipNotFound
	}
	now := time.Now()
	for _, other := range m.rels {
		if other.ID != id && other.IsActive && sameParty(other, rel) &&
			other.HostType == rel.HostType && other.HostID == rel.HostID {
			other.IsActive = false
			other.EndDate = &now
		}
	}
	rel.IsActive = true
	rel.StartDate = startDate
	rel.EndDate = nil
	return nil
}

func (m *mockRelationshipRepo) Delete(id int64) error {
	delete(m.rels, id)
	return nil
}

func (m *mockRelationshipRepo) GetRole(id int64) (*relationship.RelationshipRole, error) {
	role, ok := m.roles[id]
	if !ok {
		return nil, internal.ErrRelationshipRole
	}
	return role, nil
}

func (m *mockRelationshipRepo) ListRoles(tenantID int64, includeInactive bool) ([]*relationship.RelationshipRole, error) {
	var out []*relationship.RelationshipRole
	for _, role := range m.roles {
		if role.TenantID == tenantID && (includeInactive || role.IsActive) {
			out = append(out, role)
		}
	}
	return out, nil
}

func (m *mockRelationshipRepo) CreateRole(role *relationship.RelationshipRole) error {
	role.ID = m.nextID
	m.nextID++
	m.roles[role.ID] = role
	return nil
}

func (m *mockRelationshipRepo) UpdateRole(role *relationship.RelationshipRole) error {
	m.roles[role.ID] = role
	return nil
}

var _ = Describe("Relationship Service", func() {
	var (
		repo    *mockRelationshipRepo
		bus     *events.EventBus
		service *relationship.Service
		ctx     context.Context

		companyID int64
		contactID int64
	)

	const tenantID = int64(1)
	const actorID = int64(9)

	BeforeEach(func() {
		repo = newMockRelationshipRepo()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		service = relationship.NewService(repo, bus, logger)
		ctx = context.Background()

		companyID = 42
		contactID = 7

		repo.roles[1] = &relationship.RelationshipRole{ID: 1, TenantID: tenantID, Name: "Owner", IsActive: true}
		repo.roles[2] = &relationship.RelationshipRole{ID: 2, TenantID: tenantID, Name: "Operator", IsActive: true}
		repo.roles[3] = &relationship.RelationshipRole{ID: 3, TenantID: 99, Name: "Foreign", IsActive: true}
		repo.roles[4] = &relationship.RelationshipRole{ID: 4, TenantID: tenantID, Name: "Retired", IsActive: false}
	})

	Describe("Create", func() {
		It("links a company to a host", func() {
			rel, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    1,
			}, actorID)

			Expect(err).NotTo(HaveOccurred())
			Expect(rel.IsActive).To(BeTrue())
			Expect(rel.EndDate).To(BeNil())
			Expect(rel.StartDate).NotTo(BeZero())
		})

		It("rejects a relationship naming both company and contact", func() {
			_, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				ContactID: &contactID,
				RoleID:    1,
			}, actorID)

			Expect(err).To(MatchError(internal.ErrRelationshipParty))
		})

		It("rejects a relationship naming neither party", func() {
			_, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType: relationship.HostDeal,
				HostID:   100,
				RoleID:   1,
			}, actorID)

			Expect(err).To(MatchError(internal.ErrRelationshipParty))
		})

		It("rejects a role belonging to another tenant", func() {
			_, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    3,
			}, actorID)

			Expect(err).To(MatchError(internal.ErrRelationshipRole))
		})

		It("rejects a deactivated role", func() {
			_, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    4,
			}, actorID)

			Expect(err).To(MatchError(internal.ErrRelationshipRole))
		})

		It("ends the previous relationship when the same party gets a new role", func() {
			first, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    1,
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    2,
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			prev, err := repo.GetByID(first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(prev.IsActive).To(BeFalse())
			Expect(prev.EndDate).NotTo(BeNil())
		})
	})

	Describe("Deactivate", func() {
		It("refuses to touch a relationship of another tenant", func() {
			rel, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    1,
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			err = service.Deactivate(ctx, tenantID+1, rel.ID, actorID)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})

		It("stamps the end date", func() {
			rel, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    1,
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Deactivate(ctx, tenantID, rel.ID, actorID)).To(Succeed())

			stored, err := repo.GetByID(rel.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive).To(BeFalse())
			Expect(stored.EndDate).NotTo(BeNil())
		})
	})

	Describe("Reactivate", func() {
		It("resets the start date and clears the end date", func() {
			rel, err := service.Create(ctx, tenantID, relationship.CreateRelationshipDTO{
				HostType:  relationship.HostDeal,
				HostID:    100,
				CompanyID: &companyID,
				RoleID:    1,
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Deactivate(ctx, tenantID, rel.ID, actorID)).To(Succeed())

			restored, err := service.Reactivate(ctx, tenantID, rel.ID, actorID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.IsActive).To(BeTrue())
			Expect(restored.EndDate).To(BeNil())
			Expect(restored.StartDate).To(BeTemporally(">=", rel.StartDate))
		})
	})
})
