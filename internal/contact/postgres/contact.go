package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/contact"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) contact.RepositoryAPI {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(c *contact.Contact) error {
	return r.db.Create(c).Error
}

func (r *ContactRepository) GetByID(id int64) (*contact.Contact, error) {
	var c contact.Contact
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrContactNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) List(tenantID int64, search string, limit, offset int) ([]*contact.Contact, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.db.Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var contacts []*contact.Contact
	err := q.Order("last_name ASC, first_name ASC").Limit(limit).Offset(offset).Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) ListByCompany(tenantID, companyID int64) ([]*contact.Contact, error) {
	var contacts []*contact.Contact
	err := r.db.
		Where("tenant_id = ? AND company_id = ? AND is_active = ?", tenantID, companyID, true).
		Order("last_name ASC, first_name ASC").
		Find(&contacts).Error
	return contacts, err
}

func (r *ContactRepository) Update(c *contact.Contact) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(c).Error
}

func (r *ContactRepository) Deactivate(id int64) error {
	return r.db.Model(&contact.Contact{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}
