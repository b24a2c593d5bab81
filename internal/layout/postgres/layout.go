package postgres

import (
	"time"

	"github.com/pradiptamal/crm-management/internal/layout"
	"gorm.io/gorm"
)

type LayoutRepository struct {
	db *gorm.DB
}

func NewLayoutRepository(db *gorm.DB) layout.RepositoryAPI {
	return &LayoutRepository{db: db}
}

func (r *LayoutRepository) GetForTenant(tenantID int64, entityType string) (*layout.PageLayoutConfig, error) {
	var cfg layout.PageLayoutConfig
	err := r.db.
		Where("tenant_id = ? AND entity_type = ?", tenantID, entityType).
		First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *LayoutRepository) GetGlobal(entityType string) (*layout.PageLayoutConfig, error) {
	var cfg layout.PageLayoutConfig
	err := r.db.
		Where("tenant_id IS NULL AND entity_type = ?", entityType).
		First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *LayoutRepository) Upsert(cfg *layout.PageLayoutConfig) error {
	existing, err := r.GetForTenant(*cfg.TenantID, cfg.EntityType)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Tabs = cfg.Tabs
		existing.UpdatedBy = cfg.UpdatedBy
		existing.UpdatedAt = time.Now()
		if err := r.db.Save(existing).Error; err != nil {
			return err
		}
		*cfg = *existing
		return nil
	}
	return r.db.Create(cfg).Error
}

func (r *LayoutRepository) DeleteForTenant(tenantID int64, entityType string) error {
	return r.db.
		Where("tenant_id = ? AND entity_type = ?", tenantID, entityType).
		Delete(&layout.PageLayoutConfig{}).Error
}
