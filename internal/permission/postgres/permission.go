package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/permission"
	"gorm.io/gorm"
)

// PermissionRepository implements permission.RepositoryAPI using GORM
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetCustomRole(id int64) (*permission.CustomRole, error) {
	var role permission.CustomRole
	err := r.db.Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrCustomRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *PermissionRepository) GetRolePermissionNames(tenantID int64, role string) ([]string, error) {
	var names []string
	err := r.db.
		Table("role_permissions rp").
		Select("p.name").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("rp.tenant_id = ? AND rp.role = ?", tenantID, role).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *PermissionRepository) ListCatalog() ([]*permission.Permission, error) {
	var perms []*permission.Permission
	err := r.db.Order("name ASC").Find(&perms).Error
	return perms, err
}

func (r *PermissionRepository) ListCustomRoles(tenantID int64) ([]*permission.CustomRole, error) {
	var roles []*permission.CustomRole
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}

func (r *PermissionRepository) CreateCustomRole(role *permission.CustomRole) error {
	return r.db.Create(role).Error
}

func (r *PermissionRepository) UpdateCustomRole(role *permission.CustomRole) error {
	role.UpdatedAt = time.Now()
	return r.db.Save(role).Error
}

func (r *PermissionRepository) DeactivateCustomRole(id int64) error {
	return r.db.Model(&permission.CustomRole{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}
