package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/activity"
	"github.com/pradiptamal/crm-management/internal/deal"
	"gorm.io/gorm"
)

type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) deal.RepositoryAPI {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(d *deal.Deal, companyIDs, contactIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}

		for _, companyID := range companyIDs {
			if err := tx.Create(&deal.DealCompany{DealID: d.ID, CompanyID: companyID}).Error; err != nil {
				return err
			}
		}
		for _, contactID := range contactIDs {
			if err := tx.Create(&deal.DealContact{DealID: d.ID, ContactID: contactID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DealRepository) GetByID(id int64) (*deal.Deal, error) {
	var d deal.Deal
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDealNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DealRepository) List(tenantID int64, limit, offset int) ([]*deal.Deal, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var deals []*deal.Deal
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&deals).Error
	return deals, err
}

func (r *DealRepository) Update(d *deal.Deal) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}

// ChangeStatus commits the deal row, the history entry, and the timeline
// activity together. status_resume_date is written explicitly so a cleared
// value actually nulls the column.
func (r *DealRepository) ChangeStatus(d *deal.Deal, history *deal.DealStatusHistory, activityNote string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&deal.Deal{}).
			Where("id = ?", d.ID).
			Updates(map[string]interface{}{
				"status_id":          d.StatusID,
				"status_resume_date": d.StatusResumeDate,
				"updated_at":         time.Now(),
			}).Error
		if err != nil {
			return err
		}

		if err := tx.Create(history).Error; err != nil {
			return err
		}

		note := &activity.Activity{
			TenantID:   d.TenantID,
			EntityType: activity.EntityDeal,
			EntityID:   d.ID,
			Kind:       activity.KindStatusChange,
			Body:       activityNote,
			CreatedBy:  history.ChangedBy,
		}
		return tx.Create(note).Error
	})
}

func (r *DealRepository) GetStatus(id int64) (*deal.DealStatus, error) {
	var status deal.DealStatus
	err := r.db.Where("id = ?", id).First(&status).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *DealRepository) ListStatuses(tenantID int64) ([]*deal.DealStatus, error) {
	var statuses []*deal.DealStatus
	err := r.db.
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("sort_order ASC").
		Find(&statuses).Error
	return statuses, err
}

func (r *DealRepository) CreateStatus(status *deal.DealStatus) error {
	return r.db.Create(status).Error
}

func (r *DealRepository) ReplacePaymentTerms(dealID int64, terms []deal.DealPaymentTerm) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deal_id = ?", dealID).Delete(&deal.DealPaymentTerm{}).Error; err != nil {
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

func (r *DealRepository) ListPaymentTerms(dealID int64) ([]*deal.DealPaymentTerm, error) {
	var terms []*deal.DealPaymentTerm
	err := r.db.
		Where("deal_id = ?", dealID).
		Order("installment_number ASC").
		Find(&terms).Error
	return terms, err
}

func (r *DealRepository) ListStatusHistory(dealID int64) ([]*deal.DealStatusHistory, error) {
	var rows []*deal.DealStatusHistory
	err := r.db.
		Where("deal_id = ?", dealID).
		Order("changed_at DESC").
		Find(&rows).Error
	return rows, err
}
