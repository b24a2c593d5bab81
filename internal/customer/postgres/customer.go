package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/customer"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) customer.RepositoryAPI {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(c *customer.Customer) error {
	return r.db.Create(c).Error
}

func (r *CustomerRepository) GetByID(id int64) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("Customer not found", internal.ErrCodeCompanyNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) GetByCompany(tenantID, companyID int64) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.Where("tenant_id = ? AND company_id = ?", tenantID, companyID).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.NewNotFoundError("Customer not found", internal.ErrCodeCompanyNotFound)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(tenantID int64, limit, offset int) ([]*customer.Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var customers []*customer.Customer
	err := r.db.
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("customer_number ASC").
		Limit(limit).Offset(offset).
		Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) Update(c *customer.Customer) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(c).Error
}

func (r *CustomerRepository) Deactivate(id int64) error {
	return r.db.Model(&customer.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}
