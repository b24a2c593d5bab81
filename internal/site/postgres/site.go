package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/site"
	"gorm.io/gorm"
)

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) site.RepositoryAPI {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(s *site.Site) error {
	return r.db.Create(s).Error
}

func (r *SiteRepository) GetByID(id int64) (*site.Site, error) {
	var s site.Site
	err := r.db.Where("id = ?", id).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrSiteNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) List(tenantID int64, search string, limit, offset int) ([]*site.Site, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.db.Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR city ILIKE ?", pattern, pattern)
	}

	var sites []*site.Site
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&sites).Error
	return sites, err
}

func (r *SiteRepository) Update(s *site.Site) error {
	s.UpdatedAt = time.Now()
	return r.db.Save(s).Error
}

func (r *SiteRepository) Deactivate(id int64) error {
	return r.db.Model(&site.Site{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}
