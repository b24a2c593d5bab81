package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/tenant"
	"gorm.io/gorm"
)

// TenantRepository implements tenant.RepositoryAPI using GORM
type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) tenant.RepositoryAPI {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetTenantByID(id int64) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.Where("id = ?", id).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) GetTenantBySlug(slug string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.Where("slug = ?", slug).First(&t).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TenantRepository) ListTenants() ([]*tenant.Tenant, error) {
	var tenants []*tenant.Tenant
	err := r.db.Order("name ASC").Find(&tenants).Error
	return tenants, err
}

func (r *TenantRepository) GetMembership(userID, tenantID int64) (*tenant.UserTenantMembership, error) {
	var m tenant.UserTenantMembership
	err := r.db.Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Order("is_active DESC, created_at DESC").
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrMembershipNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *TenantRepository) GetMembershipsForUser(userID int64) ([]*tenant.UserTenantMembership, error) {
	var memberships []*tenant.UserTenantMembership
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}

func (r *TenantRepository) ListMembers(tenantID int64) ([]*tenant.UserTenantMembership, error) {
	var members []*tenant.UserTenantMembership
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *TenantRepository) CreateMembership(m *tenant.UserTenantMembership) error {
	return r.db.Create(m).Error
}

func (r *TenantRepository) UpdateMembership(m *tenant.UserTenantMembership) error {
	m.UpdatedAt = time.Now()
	return r.db.Save(m).Error
}

func (r *TenantRepository) DeactivateMembership(id int64) error {
	return r.db.Model(&tenant.UserTenantMembership{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
