package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/company"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.RepositoryAPI {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(c *company.Company) error {
	return r.db.Create(c).Error
}

func (r *CompanyRepository) GetByID(id int64) (*company.Company, error) {
	var c company.Company
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) List(tenantID int64, search string, limit, offset int) ([]*company.Company, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.db.Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	var companies []*company.Company
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&companies).Error
	return companies, err
}

func (r *CompanyRepository) Update(c *company.Company) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(c).Error
}

func (r *CompanyRepository) Deactivate(id int64) error {
	return r.db.Model(&company.Company{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}
