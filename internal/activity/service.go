package activity

import (
	"context"
	"encoding/json"
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/core/events"
)

type RepositoryAPI interface {
	Create(a *Activity) error
	ListByEntity(tenantID int64, entityType string, entityID int64, limit, offset int) ([]*Activity, error)
	CreateAuditLog(l *AuditLog) error
	ListAuditLogs(tenantID int64, limit, offset int) ([]*AuditLog, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) AddNote(tenantID int64, dto CreateActivityDTO, actorID int64) (*Activity, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := &Activity{
		TenantID:   tenantID,
		EntityType: dto.EntityType,
		EntityID:   dto.EntityID,
		Kind:       KindNote,
		Body:       dto.Body,
		CreatedBy:  actorID,
	}
	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create activity", "error", err, "entity_type", dto.EntityType, "entity_id", dto.EntityID)
		return nil, err
	}
	return a, nil
}

func (s *Service) Timeline(tenantID int64, entityType string, entityID int64, limit, offset int) ([]*Activity, error) {
	if !validEntityType(entityType) {
		return nil, internal.NewValidationFieldError("entity_type", "unknown entity type", internal.ErrCodeValidationFailed)
	}
	return s.repo.ListByEntity(tenantID, entityType, entityID, limit, offset)
}

func (s *Service) AuditTrail(tenantID int64, limit, offset int) ([]*AuditLog, error) {
	return s.repo.ListAuditLogs(tenantID, limit, offset)
}

func validEntityType(t string) bool {
	switch t {
	case EntityDeal, EntitySite, EntityContract, EntityCompany, EntityContact, EntityCustomer, EntityQuote, EntityTenant:
		return true
	}
	return false
}

// RegisterSubscribers attaches the audit-log writer to every domain event
// type. Subscriber failures are logged, not propagated; the originating write
// has already committed.
func (s *Service) RegisterSubscribers(bus *events.EventBus) {
	eventTypes := []string{
		events.EventTypeDealStatusChanged,
		events.EventTypeRelationshipCreated,
		events.EventTypeRelationshipDeactivate,
		events.EventTypeRelationshipReactivate,
		events.EventTypeRelationshipDeleted,
		events.EventTypeMemberInvited,
		events.EventTypeMembershipChanged,
	}
	for _, et := range eventTypes {
		bus.Subscribe(et, s.handleDomainEvent)
	}
}

func (s *Service) handleDomainEvent(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		s.logger.Error("failed to marshal event payload", "error", err, "event_type", event.EventType())
		return err
	}

	log := &AuditLog{
		EventType: event.EventType(),
		EventID:   event.EventID(),
		Payload:   string(payload),
	}
	if data, ok := event.Payload().(map[string]interface{}); ok {
		if v, ok := data["tenant_id"].(int64); ok {
			log.TenantID = v
		}
		if v, ok := data["actor_id"].(int64); ok {
			log.ActorID = v
		}
	}

	if err := s.repo.CreateAuditLog(log); err != nil {
		s.logger.Error("failed to write audit log", "error", err, "event_type", event.EventType())
		return err
	}
	return nil
}
