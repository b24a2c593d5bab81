package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/catalog"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateDevice(d *catalog.Device) error {
	return r.db.Create(d).Error
}

func (r *CatalogRepository) GetDevice(id int64) (*catalog.Device, error) {
	var d catalog.Device
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDeviceNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *CatalogRepository) ListDevices(tenantID int64, search string, limit, offset int) ([]*catalog.Device, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.db.Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("model ILIKE ? OR manufacturer ILIKE ?", pattern, pattern)
	}

	var devices []*catalog.Device
	err := q.Order("manufacturer ASC, model ASC").Limit(limit).Offset(offset).Find(&devices).Error
	return devices, err
}

func (r *CatalogRepository) UpdateDevice(d *catalog.Device) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}

func (r *CatalogRepository) DeactivateDevice(id int64) error {
	return r.db.Model(&catalog.Device{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}

func (r *CatalogRepository) CreateProjectDevice(pd *catalog.ProjectDevice) error {
	return r.db.Create(pd).Error
}

func (r *CatalogRepository) GetProjectDevice(id int64) (*catalog.ProjectDevice, error) {
	var pd catalog.ProjectDevice
	err := r.db.Where("id = ?", id).First(&pd).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDeviceNotFound
		}
		return nil, err
	}
	return &pd, nil
}

func (r *CatalogRepository) ListProjectDevices(tenantID int64, siteID, dealID *int64) ([]*catalog.ProjectDevice, error) {
	q := r.db.Where("tenant_id = ?", tenantID)
	if siteID != nil {
		q = q.Where("site_id = ?", *siteID)
	}
	if dealID != nil {
		q = q.Where("deal_id = ?", *dealID)
	}

	var rows []*catalog.ProjectDevice
	err := q.Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *CatalogRepository) DeleteProjectDevice(id int64) error {
	return r.db.Delete(&catalog.ProjectDevice{}, id).Error
}
