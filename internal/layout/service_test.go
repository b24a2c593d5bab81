package layout_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pradiptamal/crm-management/internal/layout"
)

type mockLayoutRepo struct {
	tenantRows map[string]*layout.PageLayoutConfig
	globalRows map[string]*layout.PageLayoutConfig

	tenantErr error
	globalErr error
	upsertErr error
}

func newMockLayoutRepo() *mockLayoutRepo {
	return &mockLayoutRepo{
		tenantRows: make(map[string]*layout.PageLayoutConfig),
		globalRows: make(map[string]*layout.PageLayoutConfig),
	}
}

func (m *mockLayoutRepo) GetForTenant(tenantID int64, entityType string) (*layout.PageLayoutConfig, error) {
	if m.tenantErr != nil {
		return nil, m.tenantErr
	}
	return m.tenantRows[entityType], nil
}

func (m *mockLayoutRepo) GetGlobal(entityType string) (*layout.PageLayoutConfig, error) {
	if m.globalErr != nil {
		return nil, m.globalErr
	}
	return m.globalRows[entityType], nil
}

func (m *mockLayoutRepo) Upsert(cfg *layout.PageLayoutConfig) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.tenantRows[cfg.EntityType] = cfg
	return nil
}

func (m *mockLayoutRepo) DeleteForTenant(tenantID int64, entityType string) error {
	delete(m.tenantRows, entityType)
	return nil
}

var _ = Describe("Layout Service", func() {
	var (
		repo    *mockLayoutRepo
		service *layout.Service
	)

	const tenantID = int64(1)
	const actorID = int64(9)

	BeforeEach(func() {
		repo = newMockLayoutRepo()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = layout.NewService(repo, logger)
	})

	Describe("Resolve", func() {
		It("rejects unknown entity types", func() {
			_, err := service.Resolve(tenantID, "spaceship")
			Expect(err).To(HaveOccurred())
		})

		It("returns the built-in default when no rows exist", func() {
			tabs, err := service.Resolve(tenantID, layout.EntityDeal)
			Expect(err).NotTo(HaveOccurred())
			Expect(tabs).NotTo(BeEmpty())
			Expect(tabs[0].ID).To(Equal("overview"))
		})

		It("prefers the tenant row over the global row", func() {
			repo.globalRows[layout.EntityDeal] = &layout.PageLayoutConfig{
				EntityType: layout.EntityDeal,
				Tabs: layout.TabList{
					{ID: "overview", Label: "Overview", Visible: true, Locked: true, Order: 1},
					{ID: "quotes", Label: "Quotes", Visible: true, Order: 2},
				},
			}
			repo.tenantRows[layout.EntityDeal] = &layout.PageLayoutConfig{
				EntityType: layout.EntityDeal,
				Tabs: layout.TabList{
					{ID: "overview", Label: "Overview", Visible: true, Locked: true, Order: 1},
					{ID: "history", Label: "History", Visible: true, Order: 2},
				},
			}

			tabs, err := service.Resolve(tenantID, layout.EntityDeal)
			Expect(err).NotTo(HaveOccurred())
			Expect(tabs).To(HaveLen(2))
			Expect(tabs[1].ID).To(Equal("history"))
		})

		It("falls back to the global row when the tenant has no override", func() {
			repo.globalRows[layout.EntityDeal] = &layout.PageLayoutConfig{
				EntityType: layout.EntityDeal,
				Tabs: layout.TabList{
					{ID: "overview", Label: "Overview", Visible: true, Locked: true, Order: 1},
					{ID: "quotes", Label: "Quotes", Visible: true, Order: 2},
				},
			}

			tabs, err := service.Resolve(tenantID, layout.EntityDeal)
			Expect(err).NotTo(HaveOccurred())
			Expect(tabs).To(HaveLen(2))
			Expect(tabs[1].ID).To(Equal("quotes"))
		})

		It("filters hidden tabs and sorts by order", func() {
			repo.tenantRows[layout.EntityDeal] = &layout.PageLayoutConfig{
				EntityType: layout.EntityDeal,
				Tabs: layout.TabList{
					{ID: "history", Label: "History", Visible: true, Order: 3},
					{ID: "overview", Label: "Overview", Visible: true, Locked: true, Order: 1},
					{ID: "quotes", Label: "Quotes", Visible: false, Order: 2},
				},
			}

			tabs, err := service.Resolve(tenantID, layout.EntityDeal)
			Expect(err).NotTo(HaveOccurred())
			Expect(tabs).To(HaveLen(2))
			Expect(tabs[0].ID).To(Equal("overview"))
			Expect(tabs[1].ID).To(Equal("history"))
		})

		It("falls back to the default when the tenant lookup errors", func() {
			repo.tenantErr = errors.New("connection refused")

			tabs, err := service.Resolve(tenantID, layout.EntityDeal)
			Expect(err).NotTo(HaveOccurred())
			Expect(tabs).NotTo(BeEmpty())
		})

		It("falls back to the default when the global lookup errors", func() {
			repo.globalErr = errors.New("connection refused")

			tabs, err := service.Resolve(tenantID, layout.EntityDeal)
			Expect(err).NotTo(HaveOccurred())
			Expect(tabs).NotTo(BeEmpty())
		})
	})

	Describe("Save", func() {
		It("forces locked tabs back to visible", func() {
			cfg, err := service.Save(tenantID, layout.EntityDeal, layout.TabList{
				{ID: "overview", Label: "Overview", Visible: false, Locked: false, Order: 1},
				{ID: "quotes", Label: "Quotes", Visible: false, Order: 2},
			}, actorID)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Tabs[0].Visible).To(BeTrue())
			Expect(cfg.Tabs[0].Locked).To(BeTrue())
			Expect(cfg.Tabs[1].Visible).To(BeFalse())
		})

		It("stores the override under the tenant", func() {
			_, err := service.Save(tenantID, layout.EntityContact, layout.TabList{
				{ID: "overview", Label: "Overview", Visible: true, Locked: true, Order: 1},
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			stored := repo.tenantRows[layout.EntityContact]
			Expect(stored).NotTo(BeNil())
			Expect(stored.TenantID).NotTo(BeNil())
			Expect(*stored.TenantID).To(Equal(tenantID))
			Expect(stored.UpdatedBy).To(Equal(actorID))
		})

		It("rejects unknown entity types", func() {
			_, err := service.Save(tenantID, "spaceship", layout.TabList{}, actorID)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Reset", func() {
		It("drops the tenant override so defaults apply again", func() {
			_, err := service.Save(tenantID, layout.EntityDeal, layout.TabList{
				{ID: "overview", Label: "Overview", Visible: true, Locked: true, Order: 1},
			}, actorID)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Reset(tenantID, layout.EntityDeal)).To(Succeed())

			tabs, err := service.Resolve(tenantID, layout.EntityDeal)
			Expect(err).NotTo(HaveOccurred())
			Expect(len(tabs)).To(BeNumerically(">", 1))
		})
	})
})
