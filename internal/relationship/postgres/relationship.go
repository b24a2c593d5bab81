package postgres

import (
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/relationship"
	"gorm.io/gorm"
)

// RelationshipRepository implements relationship.RepositoryAPI using GORM.
// Succession and reactivation run inside transactions; the partial unique
// index on (host, party) WHERE is_active backs them up against concurrent
// clients.
type RelationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) relationship.RepositoryAPI {
	return &RelationshipRepository{db: db}
}

func (r *RelationshipRepository) GetByID(id int64) (*relationship.EntityRelationship, error) {
	var rel relationship.EntityRelationship
	err := r.db.Where("id = ?", id).First(&rel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRelationshipNotFound
		}
		return nil, err
	}
	return &rel, nil
}

func (r *RelationshipRepository) ListByHost(tenantID int64, hostType relationship.HostType, hostID int64, includeInactive bool) ([]*relationship.EntityRelationship, error) {
	q := r.db.Where("tenant_id = ? AND host_type = ? AND host_id = ?", tenantID, hostType, hostID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var rels []*relationship.EntityRelationship
	err := q.Order("start_date DESC").Find(&rels).Error
	return rels, err
}

func partyScope(q *gorm.DB, rel *relationship.EntityRelationship) *gorm.DB {
	q = q.Where("tenant_id = ? AND host_type = ? AND host_id = ?", rel.TenantID, rel.HostType, rel.HostID)
	if rel.CompanyID != nil {
		return q.Where("company_id = ?", *rel.CompanyID)
	}
	return q.Where("contact_id = ?", *rel.ContactID)
}

func (r *RelationshipRepository) CreateSucceeding(rel *relationship.EntityRelationship) error {
	now := time.Now()
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := partyScope(tx.Model(&relationship.EntityRelationship{}), rel).
			Where("is_active = ?", true).
			Updates(map[string]interface{}{
				"is_active":  false,
				"end_date":   now,
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}

		return tx.Create(rel).Error
	})
}

func (r *RelationshipRepository) Deactivate(id int64, endDate time.Time) error {
	return r.db.Model(&relationship.EntityRelationship{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"end_date":   endDate,
			"updated_at": time.Now(),
		}).Error
}

func (r *RelationshipRepository) Reactivate(id int64, startDate time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var rel relationship.EntityRelationship
		if err := tx.Where("id = ?", id).First(&rel).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrRelationshipNotFound
			}
			return err
		}

		now := time.Now()
		err := partyScope(tx.Model(&relationship.EntityRelationship{}), &rel).
			Where("is_active = ? AND id <> ?", true, rel.ID).
			Updates(map[string]interface{}{
				"is_active":  false,
				"end_date":   now,
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}

		return tx.Model(&relationship.EntityRelationship{}).
			Where("id = ?", rel.ID).
			Updates(map[string]interface{}{
				"is_active":  true,
				"start_date": startDate,
				"end_date":   nil,
				"updated_at": now,
			}).Error
	})
}

func (r *RelationshipRepository) Delete(id int64) error {
	return r.db.Delete(&relationship.EntityRelationship{}, id).Error
}

func (r *RelationshipRepository) GetRole(id int64) (*relationship.RelationshipRole, error) {
	var role relationship.RelationshipRole
	err := r.db.Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRelationshipRole
		}
		return nil, err
	}
	return &role, nil
}

func (r *RelationshipRepository) ListRoles(tenantID int64, includeInactive bool) ([]*relationship.RelationshipRole, error) {
	q := r.db.Where("tenant_id = ?", tenantID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var roles []*relationship.RelationshipRole
	err := q.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RelationshipRepository) CreateRole(role *relationship.RelationshipRole) error {
	return r.db.Create(role).Error
}

func (r *RelationshipRepository) UpdateRole(role *relationship.RelationshipRole) error {
	role.UpdatedAt = time.Now()
	return r.db.Save(role).Error
}
