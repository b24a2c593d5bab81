package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/contract"
	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) contract.RepositoryAPI {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(c *contract.Contract) error {
	return r.db.Create(c).Error
}

func (r *ContractRepository) GetByID(id int64) (*contract.Contract, error) {
	var c contract.Contract
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrContractNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) List(tenantID int64, limit, offset int) ([]*contract.Contract, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var contracts []*contract.Contract
	err := r.db.
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&contracts).Error
	return contracts, err
}

func (r *ContractRepository) Update(c *contract.Contract) error {
	c.UpdatedAt = time.Now()
	return r.db.Save(c).Error
}

func (r *ContractRepository) Deactivate(id int64) error {
	return r.db.Model(&contract.Contract{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
}

func (r *ContractRepository) ReplacePaymentTerms(contractID int64, terms []contract.ContractPaymentTerm) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_id = ?", contractID).Delete(&contract.ContractPaymentTerm{}).Error; err != nil {
			return err
		}
		for i := range terms {
			if err := tx.Create(&terms[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ContractRepository) ListPaymentTerms(contractID int64) ([]*contract.ContractPaymentTerm, error) {
	var terms []*contract.ContractPaymentTerm
	err := r.db.
		Where("contract_id = ?", contractID).
		Order("installment_number ASC").
		Find(&terms).Error
	return terms, err
}
