package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDealStatusChanged      = "deal.status_changed"
	EventTypeRelationshipCreated    = "relationship.created"
	EventTypeRelationshipDeactivate = "relationship.deactivated"
	EventTypeRelationshipReactivate = "relationship.reactivated"
	EventTypeRelationshipDeleted    = "relationship.deleted"
	EventTypeMemberInvited          = "tenant.member_invited"
	EventTypeMembershipChanged      = "tenant.membership_changed"
)

type DealStatusChangedEvent struct {
	BaseEvent
	TenantID   int64  `json:"tenant_id"`
	DealID     int64  `json:"deal_id"`
	StatusID   int64  `json:"status_id"`
	StatusName string `json:"status_name"`
	Reason     string `json:"reason,omitempty"`
	ActorID    int64  `json:"actor_id"`
}

func NewDealStatusChangedEvent(tenantID, dealID, statusID int64, statusName, reason string, actorID int64) *DealStatusChangedEvent {
	return &DealStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeDealStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tenant_id":   tenantID,
				"deal_id":     dealID,
				"status_id":   statusID,
				"status_name": statusName,
				"reason":      reason,
				"actor_id":    actorID,
			},
		},
		TenantID:   tenantID,
		DealID:     dealID,
		StatusID:   statusID,
		StatusName: statusName,
		Reason:     reason,
		ActorID:    actorID,
	}
}

type RelationshipEvent struct {
	BaseEvent
	TenantID       int64  `json:"tenant_id"`
	RelationshipID int64  `json:"relationship_id"`
	HostType       string `json:"host_type"`
	HostID         int64  `json:"host_id"`
	ActorID        int64  `json:"actor_id"`
}

func NewRelationshipEvent(eventType string, tenantID, relationshipID int64, hostType string, hostID, actorID int64) *RelationshipEvent {
	return &RelationshipEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tenant_id":       tenantID,
				"relationship_id": relationshipID,
				"host_type":       hostType,
				"host_id":         hostID,
				"actor_id":        actorID,
			},
		},
		TenantID:       tenantID,
		RelationshipID: relationshipID,
		HostType:       hostType,
		HostID:         hostID,
		ActorID:        actorID,
	}
}

type MemberInvitedEvent struct {
	BaseEvent
	TenantID int64  `json:"tenant_id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ActorID  int64  `json:"actor_id"`
}

func NewMemberInvitedEvent(tenantID int64, email, role string, actorID int64) *MemberInvitedEvent {
	return &MemberInvitedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMemberInvited,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"tenant_id": tenantID,
				"email":     email,
				"role":      role,
				"actor_id":  actorID,
			},
		},
		TenantID: tenantID,
		Email:    email,
		Role:     role,
		ActorID:  actorID,
	}
}
