package cmd

import (
	"fmt"
	"log"

	"github.com/pradiptamal/crm-management/internal/deal"
	"github.com/pradiptamal/crm-management/internal/layout"
	"github.com/pradiptamal/crm-management/internal/permission"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		if clearData {
			for _, table := range []string{
				"audit_logs", "activities", "quote_items", "quotes",
				"project_devices", "devices",
				"deal_payment_terms", "contract_payment_terms",
				"deal_status_history", "deal_companies", "deal_contacts", "deals",
				"contract_companies", "contracts",
				"entity_relationships", "relationship_roles",
				"page_layout_configs", "customers", "contacts", "companies", "sites",
				"custom_roles", "user_tenant_memberships",
			} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		// Demo tenant
		tenantSlug := "demo"
		var tenantID int64
		if err := db.Raw("SELECT id FROM tenants WHERE slug = ?", tenantSlug).Row().Scan(&tenantID); err != nil {
			if err := db.Exec(
				"INSERT INTO tenants (name, slug, is_active, default_currency, contact_email, created_at, updated_at) VALUES (?, ?, true, 'EUR', ?, now(), now())",
				"Demo GmbH", tenantSlug, "office@demo.example").Error; err != nil {
				log.Fatalf("failed to insert demo tenant: %v", err)
			}
			if err := db.Raw("SELECT id FROM tenants WHERE slug = ?", tenantSlug).Row().Scan(&tenantID); err != nil {
				log.Fatalf("failed to lookup demo tenant: %v", err)
			}
			fmt.Println("Seeded demo tenant:", tenantSlug)
		}

		// Owner user with an active membership
		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		ownerEmail := "owner@demo.example"
		var ownerID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", ownerEmail).Row().Scan(&ownerID); err != nil {
			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				ownerEmail, "Demo Owner", string(hash)).Error; err != nil {
				log.Fatalf("failed to insert owner user: %v", err)
			}
			if err := db.Raw("SELECT id FROM users WHERE email = ?", ownerEmail).Row().Scan(&ownerID); err != nil {
				log.Fatalf("failed to lookup owner user: %v", err)
			}
			fmt.Println("Seeded owner user:", ownerEmail)
		}

		var exists int
		if err := db.Raw(
			"SELECT 1 FROM user_tenant_memberships WHERE user_id = ? AND tenant_id = ? AND is_active = true",
			ownerID, tenantID).Row().Scan(&exists); err != nil {
			if err := db.Exec(
				"INSERT INTO user_tenant_memberships (user_id, tenant_id, role, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				ownerID, tenantID, "super_admin").Error; err != nil {
				log.Fatalf("failed to insert owner membership: %v", err)
			}
			fmt.Println("Granted super_admin membership to:", ownerEmail)
		}

		// Permission catalog. Names are the module.action grid custom-role
		// matrices resolve against.
		for _, name := range permission.CatalogNames() {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE name = ?", name).Row().Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, created_at) VALUES (?, now())", name).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", name, err)
				}
			}
		}
		fmt.Println("Permission catalog seeded")

		// Deal status catalog. Flags are derived from the legacy name keywords
		// once, at seed time; runtime reads only the flags.
		statuses := []struct {
			Name  string
			Color string
		}{
			{"New", "#4f8df7"},
			{"In Progress", "#f7b733"},
			{"Paused", "#a78bfa"},
			{"Won", "#34d399"},
			{"Lost", "#f87171"},
			{"Cancelled", "#9ca3af"},
		}

		for i, s := range statuses {
			var sid int64
			if err := db.Raw("SELECT id FROM deal_statuses WHERE tenant_id = ? AND name = ?", tenantID, s.Name).Row().Scan(&sid); err != nil {
				if err := db.Exec(
					"INSERT INTO deal_statuses (tenant_id, name, color, sort_order, requires_reason, is_pause_status, is_active, created_at) VALUES (?, ?, ?, ?, ?, ?, true, now())",
					tenantID, s.Name, s.Color, i+1,
					deal.NameSuggestsReason(s.Name), deal.NameSuggestsPause(s.Name)).Error; err != nil {
					log.Fatalf("failed to insert deal status %s: %v", s.Name, err)
				}
				fmt.Printf("Seeded deal status: %s\n", s.Name)
			}
		}

		// Relationship role catalog
		roles := []struct {
			Name     string
			Category string
		}{
			{"Owner", "commercial"},
			{"Operator", "operations"},
			{"Billing Contact", "finance"},
			{"Technical Contact", "operations"},
		}

		for _, r := range roles {
			var rid int64
			if err := db.Raw("SELECT id FROM relationship_roles WHERE tenant_id = ? AND name = ?", tenantID, r.Name).Row().Scan(&rid); err != nil {
				if err := db.Exec(
					"INSERT INTO relationship_roles (tenant_id, name, category, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
					tenantID, r.Name, r.Category).Error; err != nil {
					log.Fatalf("failed to insert relationship role %s: %v", r.Name, err)
				}
				fmt.Printf("Seeded relationship role: %s\n", r.Name)
			}
		}

		// Global page layouts (tenant_id NULL) from the built-in defaults
		for _, entityType := range []string{layout.EntityDeal, layout.EntitySite, layout.EntityContract, layout.EntityCompany, layout.EntityContact} {
			var lid int64
			if err := db.Raw("SELECT id FROM page_layout_configs WHERE tenant_id IS NULL AND entity_type = ?", entityType).Row().Scan(&lid); err != nil {
				tabs, _ := layout.DefaultTabs(entityType)
				cfg := layout.PageLayoutConfig{
					EntityType: entityType,
					Tabs:       tabs,
					UpdatedBy:  ownerID,
				}
				if err := db.Create(&cfg).Error; err != nil {
					log.Fatalf("failed to insert global layout for %s: %v", entityType, err)
				}
				fmt.Printf("Seeded global layout: %s\n", entityType)
			}
		}

		fmt.Println("Seeding complete")
	},
}
