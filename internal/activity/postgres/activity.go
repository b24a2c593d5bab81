package postgres

import (
	"github.com/pradiptamal/crm-management/internal/activity"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(a *activity.Activity) error {
	return r.db.Create(a).Error
}

func (r *ActivityRepository) ListByEntity(tenantID int64, entityType string, entityID int64, limit, offset int) ([]*activity.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []*activity.Activity
	err := r.db.
		Where("tenant_id = ? AND entity_type = ? AND entity_id = ?", tenantID, entityType, entityID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}

func (r *ActivityRepository) CreateAuditLog(l *activity.AuditLog) error {
	return r.db.Create(l).Error
}

func (r *ActivityRepository) ListAuditLogs(tenantID int64, limit, offset int) ([]*activity.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []*activity.AuditLog
	err := r.db.
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, err
}
