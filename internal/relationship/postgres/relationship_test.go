package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/relationship"
	relationshipPostgres "github.com/pradiptamal/crm-management/internal/relationship/postgres"
)

func TestRelationshipPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Relationship Postgres Suite")
}

var _ = Describe("Relationship Repository", func() {
	var (
		db   *gorm.DB
		repo relationship.RepositoryAPI
	)

	const tenantID = int64(1)

	companyID := int64(42)
	otherCompanyID := int64(43)
	contactID := int64(7)

	newRel := func(company *int64, contact *int64, roleID int64) *relationship.EntityRelationship {
		return &relationship.EntityRelationship{
			TenantID:  tenantID,
			HostType:  relationship.HostDeal,
			HostID:    100,
			CompanyID: company,
			ContactID: contact,
			RoleID:    roleID,
			StartDate: time.Now(),
			IsActive:  true,
		}
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&relationship.RelationshipRole{}, &relationship.EntityRelationship{})
		Expect(err).NotTo(HaveOccurred())

		repo = relationshipPostgres.NewRelationshipRepository(db)
	})

	Describe("CreateSucceeding", func() {
		It("creates the first relationship as active with no end date", func() {
			rel := newRel(&companyID, nil, 1)

			err := repo.CreateSucceeding(rel)
			Expect(err).NotTo(HaveOccurred())
			Expect(rel.ID).To(BeNumerically(">", 0))

			stored, err := repo.GetByID(rel.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive).To(BeTrue())
			Expect(stored.EndDate).To(BeNil())
		})

		It("ends the previous active relationship for the same party", func() {
			first := newRel(&companyID, nil, 1)
			Expect(repo.CreateSucceeding(first)).To(Succeed())

			second := newRel(&companyID, nil, 2)
			Expect(repo.CreateSucceeding(second)).To(Succeed())

			prev, err := repo.GetByID(first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(prev.IsActive).To(BeFalse())
			Expect(prev.EndDate).NotTo(BeNil())

			curr, err := repo.GetByID(second.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(curr.IsActive).To(BeTrue())

			active, err := repo.ListByHost(tenantID, relationship.HostDeal, 100, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(HaveLen(1))
			Expect(active[0].ID).To(Equal(second.ID))
		})

		It("leaves relationships of other parties on the same host untouched", func() {
			companyRel := newRel(&companyID, nil, 1)
			Expect(repo.CreateSucceeding(companyRel)).To(Succeed())

			otherRel := newRel(&otherCompanyID, nil, 1)
			Expect(repo.CreateSucceeding(otherRel)).To(Succeed())

			contactRel := newRel(nil, &contactID, 1)
			Expect(repo.CreateSucceeding(contactRel)).To(Succeed())

			active, err := repo.ListByHost(tenantID, relationship.HostDeal, 100, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(HaveLen(3))
		})

		It("keeps the full history visible when inactive rows are included", func() {
			first := newRel(&companyID, nil, 1)
			Expect(repo.CreateSucceeding(first)).To(Succeed())
			second := newRel(&companyID, nil, 2)
			Expect(repo.CreateSucceeding(second)).To(Succeed())

			all, err := repo.ListByHost(tenantID, relationship.HostDeal, 100, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(2))
		})
	})

	Describe("Deactivate", func() {
		It("flips is_active off and stamps the end date", func() {
			rel := newRel(&companyID, nil, 1)
			Expect(repo.CreateSucceeding(rel)).To(Succeed())

			endDate := time.Now()
			Expect(repo.Deactivate(rel.ID, endDate)).To(Succeed())

			stored, err := repo.GetByID(rel.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive).To(BeFalse())
			Expect(stored.EndDate).NotTo(BeNil())
		})
	})

	Describe("Reactivate", func() {
		It("restores the row as active with a fresh start date and no end date", func() {
			rel := newRel(&companyID, nil, 1)
			Expect(repo.CreateSucceeding(rel)).To(Succeed())
			Expect(repo.Deactivate(rel.ID, time.Now())).To(Succeed())

			newStart := time.Now().Add(time.Hour)
			Expect(repo.Reactivate(rel.ID, newStart)).To(Succeed())

			stored, err := repo.GetByID(rel.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive).To(BeTrue())
			Expect(stored.EndDate).To(BeNil())
		})

		It("ends any other active relationship for the same party", func() {
			first := newRel(&companyID, nil, 1)
			Expect(repo.CreateSucceeding(first)).To(Succeed())

			second := newRel(&companyID, nil, 2)
			Expect(repo.CreateSucceeding(second)).To(Succeed())

			Expect(repo.Reactivate(first.ID, time.Now())).To(Succeed())

			restored, err := repo.GetByID(first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.IsActive).To(BeTrue())

			displaced, err := repo.GetByID(second.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(displaced.IsActive).To(BeFalse())
			Expect(displaced.EndDate).NotTo(BeNil())

			active, err := repo.ListByHost(tenantID, relationship.HostDeal, 100, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(HaveLen(1))
			Expect(active[0].ID).To(Equal(first.ID))
		})

		It("returns not found for a missing row", func() {
			err := repo.Reactivate(9999, time.Now())
			Expect(err).To(MatchError(internal.ErrRelationshipNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the row entirely", func() {
			rel := newRel(&companyID, nil, 1)
			Expect(repo.CreateSucceeding(rel)).To(Succeed())

			Expect(repo.Delete(rel.ID)).To(Succeed())

			_, err := repo.GetByID(rel.ID)
			Expect(err).To(MatchError(internal.ErrRelationshipNotFound))
		})
	})

	Describe("Roles", func() {
		It("creates and lists active roles ordered by name", func() {
			Expect(repo.CreateRole(&relationship.RelationshipRole{TenantID: tenantID, Name: "Operator", IsActive: true})).To(Succeed())
			Expect(repo.CreateRole(&relationship.RelationshipRole{TenantID: tenantID, Name: "Billing Contact", IsActive: true})).To(Succeed())
			Expect(repo.CreateRole(&relationship.RelationshipRole{TenantID: tenantID, Name: "Retired", IsActive: false})).To(Succeed())

			roles, err := repo.ListRoles(tenantID, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(2))
			Expect(roles[0].Name).To(Equal("Billing Contact"))
			Expect(roles[1].Name).To(Equal("Operator"))
		})

		It("does not leak roles across tenants", func() {
			Expect(repo.CreateRole(&relationship.RelationshipRole{TenantID: tenantID, Name: "Owner", IsActive: true})).To(Succeed())
			Expect(repo.CreateRole(&relationship.RelationshipRole{TenantID: tenantID + 1, Name: "Owner", IsActive: true})).To(Succeed())

			roles, err := repo.ListRoles(tenantID, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(1))
		})
	})
})
