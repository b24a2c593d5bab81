package relationship

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/core/events"
)

type RepositoryAPI interface {
	GetByID(id int64) (*EntityRelationship, error)
	ListByHost(tenantID int64, hostType HostType, hostID int64, includeInactive bool) ([]*EntityRelationship, error)

	// CreateSucceeding atomically deactivates any active relationship for the
	// same (host, party) and inserts the new active row.
	CreateSucceeding(rel *EntityRelationship) error

	// Deactivate flips is_active off and stamps end_date.
	Deactivate(id int64, endDate time.Time) error

	// Reactivate atomically deactivates any other active row for the same
	// (host, party), then marks this row active with a fresh start date and no
	// end date.
	Reactivate(id int64, startDate time.Time) error

	Delete(id int64) error

	GetRole(id int64) (*RelationshipRole, error)
	ListRoles(tenantID int64, includeInactive bool) ([]*RelationshipRole, error)
	CreateRole(role *RelationshipRole) error
	UpdateRole(role *RelationshipRole) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Create links a party to a host. When the same party already has an active
// relationship on this host, that one is ended first so role succession reads
// as a timeline instead of duplicate active edges. Both writes happen in one
// transaction inside the repository.
func (s *Service) Create(ctx context.Context, tenantID int64, dto CreateRelationshipDTO, actorID int64) (*EntityRelationship, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := s.repo.GetRole(dto.RoleID)
	if err != nil {
		s.logger.Error("relationship role lookup failed", "error", err, "role_id", dto.RoleID)
		return nil, internal.ErrRelationshipRole
	}
	if role.TenantID != tenantID || !role.IsActive {
		return nil, internal.ErrRelationshipRole
	}

	rel := &EntityRelationship{
		TenantID:  tenantID,
		HostType:  dto.HostType,
		HostID:    dto.HostID,
		CompanyID: dto.CompanyID,
		ContactID: dto.ContactID,
		RoleID:    dto.RoleID,
		Notes:     dto.Notes,
		StartDate: time.Now(),
		IsActive:  true,
	}

	if err := s.repo.CreateSucceeding(rel); err != nil {
		s.logger.Error("failed to create relationship", "error", err,
			"tenant_id", tenantID,
			"host_type", dto.HostType,
			"host_id", dto.HostID)
		return nil, err
	}

	s.logger.Info("relationship created",
		"relationship_id", rel.ID,
		"host_type", rel.HostType,
		"host_id", rel.HostID,
		"role_id", rel.RoleID)

	s.publish(ctx, events.EventTypeRelationshipCreated, rel, actorID)
	return rel, nil
}

func (s *Service) List(tenantID int64, hostType HostType, hostID int64, includeInactive bool) ([]*EntityRelationship, error) {
	if !ValidHostType(hostType) {
		return nil, internal.NewValidationFieldError("host_type", "invalid host type", internal.ErrCodeValidationFailed)
	}

	rels, err := s.repo.ListByHost(tenantID, hostType, hostID, includeInactive)
	if err != nil {
		s.logger.Error("failed to list relationships", "error", err, "host_type", hostType, "host_id", hostID)
		return nil, err
	}
	return rels, nil
}

// Deactivate ends a relationship: is_active off, end_date stamped. The row
// stays as history.
func (s *Service) Deactivate(ctx context.Context, tenantID, relationshipID, actorID int64) error {
	rel, err := s.loadForTenant(tenantID, relationshipID)
	if err != nil {
		return err
	}

	if err := s.repo.Deactivate(rel.ID, time.Now()); err != nil {
		s.logger.Error("failed to deactivate relationship", "error", err, "relationship_id", rel.ID)
		return err
	}

	s.publish(ctx, events.EventTypeRelationshipDeactivate, rel, actorID)
	return nil
}

// Reactivate models a fresh occupancy, not a resumption: start_date resets to
// now and end_date clears. Any other active row for the same party is ended in
// the same transaction so the single-active invariant holds.
func (s *Service) Reactivate(ctx context.Context, tenantID, relationshipID, actorID int64) (*EntityRelationship, error) {
	rel, err := s.loadForTenant(tenantID, relationshipID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Reactivate(rel.ID, time.Now()); err != nil {
		s.logger.Error("failed to reactivate relationship", "error", err, "relationship_id", rel.ID)
		return nil, err
	}

	updated, err := s.repo.GetByID(rel.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTypeRelationshipReactivate, updated, actorID)
	return updated, nil
}

// Delete permanently removes the row, bypassing history.
func (s *Service) Delete(ctx context.Context, tenantID, relationshipID, actorID int64) error {
	rel, err := s.loadForTenant(tenantID, relationshipID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(rel.ID); err != nil {
		s.logger.Error("failed to delete relationship", "error", err, "relationship_id", rel.ID)
		return err
	}

	s.publish(ctx, events.EventTypeRelationshipDeleted, rel, actorID)
	return nil
}

func (s *Service) ListRoles(tenantID int64, includeInactive bool) ([]*RelationshipRole, error) {
	roles, err := s.repo.ListRoles(tenantID, includeInactive)
	if err != nil {
		s.logger.Error("failed to list relationship roles", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return roles, nil
}

func (s *Service) CreateRole(tenantID int64, dto RoleDTO) (*RelationshipRole, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role := &RelationshipRole{
		TenantID:    tenantID,
		Name:        dto.Name,
		Category:    dto.Category,
		Description: dto.Description,
		IsActive:    true,
	}

	if err := s.repo.CreateRole(role); err != nil {
		s.logger.Error("failed to create relationship role", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return role, nil
}

func (s *Service) UpdateRole(tenantID, roleID int64, dto RoleDTO) (*RelationshipRole, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := s.repo.GetRole(roleID)
	if err != nil {
		return nil, internal.ErrRelationshipRole
	}
	if role.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}

	role.Name = dto.Name
	role.Category = dto.Category
	role.Description = dto.Description

	if err := s.repo.UpdateRole(role); err != nil {
		s.logger.Error("failed to update relationship role", "error", err, "role_id", roleID)
		return nil, err
	}
	return role, nil
}

func (s *Service) loadForTenant(tenantID, relationshipID int64) (*EntityRelationship, error) {
	rel, err := s.repo.GetByID(relationshipID)
	if err != nil {
		return nil, internal.ErrRelationshipNotFound
	}
	if rel.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return rel, nil
}

func (s *Service) publish(ctx context.Context, eventType string, rel *EntityRelationship, actorID int64) {
	event := events.NewRelationshipEvent(eventType, rel.TenantID, rel.ID, string(rel.HostType), rel.HostID, actorID)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish relationship event", "error", err, "event_type", eventType)
	}
}
