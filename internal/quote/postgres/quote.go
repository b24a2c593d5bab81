package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/quote"
	"gorm.io/gorm"
)

type QuoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) quote.RepositoryAPI {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) CreateWithItems(q *quote.Quote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		for i := range q.Items {
			q.Items[i].QuoteID = q.ID
			if err := tx.Create(&q.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *QuoteRepository) GetByID(id int64) (*quote.Quote, error) {
	var q quote.Quote
	err := r.db.Where("id = ?", id).First(&q).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrQuoteNotFound
		}
		return nil, err
	}

	var items []quote.QuoteItem
	if err := r.db.Where("quote_id = ?", q.ID).Order("sort_order ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	q.Items = items
	return &q, nil
}

func (r *QuoteRepository) List(tenantID int64, dealID *int64, limit, offset int) ([]*quote.Quote, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.db.Where("tenant_id = ?", tenantID)
	if dealID != nil {
		q = q.Where("deal_id = ?", *dealID)
	}

	var quotes []*quote.Quote
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&quotes).Error
	return quotes, err
}

func (r *QuoteRepository) ReplaceItems(q *quote.Quote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", q.ID).Delete(&quote.QuoteItem{}).Error; err != nil {
			return err
		}
		for i := range q.Items {
			q.Items[i].ID = 0
			q.Items[i].QuoteID = q.ID
			if err := tx.Create(&q.Items[i]).Error; err != nil {
				return err
			}
		}

		return tx.Model(&quote.Quote{}).
			Where("id = ?", q.ID).
			Updates(map[string]interface{}{
				"subtotal":   q.Subtotal,
				"discount":   q.Discount,
				"total":      q.Total,
				"updated_at": time.Now(),
			}).Error
	})
}

func (r *QuoteRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&quote.QuoteItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quote.Quote{}, id).Error
	})
}
