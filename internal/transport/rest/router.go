package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/pradiptamal/crm-management/internal/activity"
	"github.com/pradiptamal/crm-management/internal/auth"
	"github.com/pradiptamal/crm-management/internal/catalog"
	"github.com/pradiptamal/crm-management/internal/company"
	"github.com/pradiptamal/crm-management/internal/contact"
	"github.com/pradiptamal/crm-management/internal/contract"
	"github.com/pradiptamal/crm-management/internal/deal"
	"github.com/pradiptamal/crm-management/internal/layout"
	"github.com/pradiptamal/crm-management/internal/permission"
	"github.com/pradiptamal/crm-management/internal/quote"
	"github.com/pradiptamal/crm-management/internal/relationship"
	"github.com/pradiptamal/crm-management/internal/site"
	"github.com/pradiptamal/crm-management/internal/tenant"
	"github.com/pradiptamal/crm-management/internal/transport/middleware"
	"github.com/pradiptamal/crm-management/internal/transport/swagger"

	"github.com/pradiptamal/crm-management/internal/customer"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	Tenant       *tenant.Handler
	Permission   *permission.Handler
	Relationship *relationship.Handler
	Deal         *deal.Handler
	Contract     *contract.Handler
	Site         *site.Handler
	Company      *company.Handler
	Contact      *contact.Handler
	Customer     *customer.Handler
	Catalog      *catalog.Handler
	Quote        *quote.Handler
	Layout       *layout.Handler
	Activity     *activity.Handler
}

// RegisterAllRoutes wires global middleware and all feature routes. Every
// protected route runs behind auth, tenant resolution, and the RBAC guards.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	h Handlers,
	tenantService middleware.TenantResolver,
	permissionResolver middleware.PermissionResolver,
	rbac *permission.RBACAuthorization,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a signed-in user and a resolved tenant.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)
			pr.Use(middleware.TenantContext(tenantService, permissionResolver, logger))

			// Tenant & membership
			pr.Route("/tenant", func(tr chi.Router) {
				tr.Get("/", h.Tenant.GetCurrentTenant)
				tr.Get("/memberships", h.Tenant.GetMyMemberships)

				tr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireAdmin())
					ar.Get("/members", h.Tenant.ListMembers)
					ar.Post("/members", h.Tenant.AddMember)
					ar.Patch("/members/{id}", h.Tenant.UpdateMember)
					ar.Delete("/members/{id}", h.Tenant.DeactivateMember)
					ar.Post("/invitations", h.Tenant.InviteMember)
					ar.Post("/members/reset-password", h.Tenant.ResetMemberPassword)
				})
			})

			// Permission catalog & custom roles
			pr.Get("/permissions", h.Permission.GetCatalog)
			pr.Route("/custom-roles", func(cr chi.Router) {
				cr.Use(rbac.RequireAdmin())
				cr.Get("/", h.Permission.ListCustomRoles)
				cr.Post("/", h.Permission.CreateCustomRole)
				cr.Put("/{id}", h.Permission.UpdateCustomRole)
				cr.Delete("/{id}", h.Permission.DeactivateCustomRole)
			})

			// Entity relationships
			pr.Route("/relationships", func(rr chi.Router) {
				rr.With(rbac.RequirePermission("relationships.view")).Get("/", h.Relationship.List)
				rr.With(rbac.RequirePermission("relationships.write")).Post("/", h.Relationship.Create)
				rr.With(rbac.RequirePermission("relationships.edit")).Patch("/{id}/deactivate", h.Relationship.Deactivate)
				rr.With(rbac.RequirePermission("relationships.edit")).Patch("/{id}/reactivate", h.Relationship.Reactivate)
				rr.With(rbac.RequirePermission("relationships.delete")).Delete("/{id}", h.Relationship.Delete)
			})
			pr.Route("/relationship-roles", func(rr chi.Router) {
				rr.With(rbac.RequirePermission("relationships.view")).Get("/", h.Relationship.ListRoles)
				rr.With(rbac.RequireAdmin()).Post("/", h.Relationship.CreateRole)
				rr.With(rbac.RequireAdmin()).Put("/{id}", h.Relationship.UpdateRole)
			})

			// Deals
			pr.Route("/deals", func(dr chi.Router) {
				dr.With(rbac.RequirePermission("deals.view")).Get("/", h.Deal.List)
				dr.With(rbac.RequirePermission("deals.view")).Get("/{id}", h.Deal.Get)
				dr.With(rbac.RequirePermission("deals.write")).Post("/", h.Deal.Create)
				dr.With(rbac.RequirePermission("deals.edit")).Patch("/{id}", h.Deal.Update)
				dr.With(rbac.RequirePermission("deals.edit")).Patch("/{id}/status", h.Deal.ChangeStatus)
				dr.With(rbac.RequirePermission("deals.view")).Get("/{id}/status-history", h.Deal.StatusHistory)
				dr.With(rbac.RequirePermission("deals.edit")).Put("/{id}/payment-terms", h.Deal.SetPaymentTerms)
				dr.With(rbac.RequirePermission("deals.view")).Get("/{id}/payment-terms", h.Deal.GetPaymentTerms)
			})
			pr.Route("/deal-statuses", func(sr chi.Router) {
				sr.With(rbac.RequirePermission("deals.view")).Get("/", h.Deal.ListStatuses)
				sr.With(rbac.RequireAdmin()).Post("/", h.Deal.CreateStatus)
			})

			// Contracts
			pr.Route("/contracts", func(cr chi.Router) {
				cr.With(rbac.RequirePermission("contracts.view")).Get("/", h.Contract.List)
				cr.With(rbac.RequirePermission("contracts.view")).Get("/{id}", h.Contract.Get)
				cr.With(rbac.RequirePermission("contracts.write")).Post("/", h.Contract.Create)
				cr.With(rbac.RequirePermission("contracts.edit")).Patch("/{id}", h.Contract.Update)
				cr.With(rbac.RequirePermission("contracts.delete")).Delete("/{id}", h.Contract.Deactivate)
				cr.With(rbac.RequirePermission("contracts.edit")).Put("/{id}/payment-terms", h.Contract.SetPaymentTerms)
				cr.With(rbac.RequirePermission("contracts.view")).Get("/{id}/payment-terms", h.Contract.GetPaymentTerms)
			})

			// Sites
			pr.Route("/sites", func(sr chi.Router) {
				sr.With(rbac.RequirePermission("sites.view")).Get("/", h.Site.List)
				sr.With(rbac.RequirePermission("sites.view")).Get("/{id}", h.Site.Get)
				sr.With(rbac.RequirePermission("sites.write")).Post("/", h.Site.Create)
				sr.With(rbac.RequirePermission("sites.edit")).Patch("/{id}", h.Site.Update)
				sr.With(rbac.RequirePermission("sites.delete")).Delete("/{id}", h.Site.Deactivate)
			})

			// Companies
			pr.Route("/companies", func(cr chi.Router) {
				cr.With(rbac.RequirePermission("companies.view")).Get("/", h.Company.List)
				cr.With(rbac.RequirePermission("companies.view")).Get("/{id}", h.Company.Get)
				cr.With(rbac.RequirePermission("companies.write")).Post("/", h.Company.Create)
				cr.With(rbac.RequirePermission("companies.edit")).Patch("/{id}", h.Company.Update)
				cr.With(rbac.RequirePermission("companies.delete")).Delete("/{id}", h.Company.Deactivate)
			})

			// Contacts
			pr.Route("/contacts", func(cr chi.Router) {
				cr.With(rbac.RequirePermission("contacts.view")).Get("/", h.Contact.List)
				cr.With(rbac.RequirePermission("contacts.view")).Get("/{id}", h.Contact.Get)
				cr.With(rbac.RequirePermission("contacts.write")).Post("/", h.Contact.Create)
				cr.With(rbac.RequirePermission("contacts.edit")).Patch("/{id}", h.Contact.Update)
				cr.With(rbac.RequirePermission("contacts.delete")).Delete("/{id}", h.Contact.Deactivate)
			})

			// Customers
			pr.Route("/customers", func(cr chi.Router) {
				cr.With(rbac.RequirePermission("customers.view")).Get("/", h.Customer.List)
				cr.With(rbac.RequirePermission("customers.view")).Get("/{id}", h.Customer.Get)
				cr.With(rbac.RequirePermission("customers.write")).Post("/", h.Customer.Create)
				cr.With(rbac.RequirePermission("customers.edit")).Patch("/{id}", h.Customer.Update)
				cr.With(rbac.RequirePermission("customers.delete")).Delete("/{id}", h.Customer.Deactivate)
			})

			// Device catalog & project devices
			pr.Route("/devices", func(dr chi.Router) {
				dr.With(rbac.RequirePermission("devices.view")).Get("/", h.Catalog.ListDevices)
				dr.With(rbac.RequirePermission("devices.view")).Get("/{id}", h.Catalog.GetDevice)
				dr.With(rbac.RequirePermission("devices.write")).Post("/", h.Catalog.CreateDevice)
				dr.With(rbac.RequirePermission("devices.edit")).Patch("/{id}", h.Catalog.UpdateDevice)
				dr.With(rbac.RequirePermission("devices.delete")).Delete("/{id}", h.Catalog.DeactivateDevice)
			})
			pr.Route("/project-devices", func(dr chi.Router) {
				dr.With(rbac.RequirePermission("devices.view")).Get("/", h.Catalog.ListProjectDevices)
				dr.With(rbac.RequirePermission("devices.write")).Post("/", h.Catalog.AddProjectDevice)
				dr.With(rbac.RequirePermission("devices.delete")).Delete("/{id}", h.Catalog.RemoveProjectDevice)
			})

			// Quotes
			pr.Route("/quotes", func(qr chi.Router) {
				qr.With(rbac.RequirePermission("quotes.view")).Get("/", h.Quote.List)
				qr.With(rbac.RequirePermission("quotes.view")).Get("/{id}", h.Quote.Get)
				qr.With(rbac.RequirePermission("quotes.write")).Post("/", h.Quote.Create)
				qr.With(rbac.RequirePermission("quotes.edit")).Put("/{id}/items", h.Quote.ReplaceItems)
				qr.With(rbac.RequirePermission("quotes.delete")).Delete("/{id}", h.Quote.Delete)
				qr.With(rbac.RequirePermission("quotes.generate")).Get("/{id}/export.csv", h.Quote.ExportCSV)
				qr.With(rbac.RequirePermission("quotes.generate")).Get("/{id}/print", h.Quote.ExportPrint)
			})

			// Page layouts
			pr.Route("/layouts", func(lr chi.Router) {
				lr.Get("/{entityType}", h.Layout.Get)
				lr.With(rbac.RequireAdmin()).Put("/{entityType}", h.Layout.Save)
				lr.With(rbac.RequireAdmin()).Delete("/{entityType}", h.Layout.Reset)
			})

			// Activities & audit trail
			pr.Route("/activities", func(ar chi.Router) {
				ar.Get("/", h.Activity.Timeline)
				ar.Post("/", h.Activity.AddNote)
			})
			pr.With(rbac.RequireAdmin()).Get("/audit-logs", h.Activity.AuditTrail)
		})
	})
}
