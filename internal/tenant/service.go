package tenant

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/core/events"
)

type RepositoryAPI interface {
	GetTenantByID(id int64) (*Tenant, error)
	GetTenantBySlug(slug string) (*Tenant, error)
	ListTenants() ([]*Tenant, error)
	GetMembership(userID, tenantID int64) (*UserTenantMembership, error)
	GetMembershipsForUser(userID int64) ([]*UserTenantMembership, error)
	ListMembers(tenantID int64) ([]*UserTenantMembership, error)
	CreateMembership(m *UserTenantMembership) error
	UpdateMembership(m *UserTenantMembership) error
	DeactivateMembership(id int64) error
}

// FunctionInvoker covers the hosted functions the tenant workflows call out to.
type FunctionInvoker interface {
	SendTenantInvitation(ctx context.Context, tenantID int64, email, role string) error
	AdminResetUserPassword(ctx context.Context, tenantID, userID int64, newPassword string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo      RepositoryAPI
	functions FunctionInvoker
	bus       EventPublisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, functions FunctionInvoker, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		functions: functions,
		bus:       bus,
		logger:    logger,
	}
}

// ResolveTenant decides which tenant the user is acting within. A requested
// tenant id is honored when the user holds an active membership there, or when
// the user is a super admin anywhere. With no requested id the first active
// membership wins.
func (s *Service) ResolveTenant(userID, requestedTenantID int64) (*Tenant, *UserTenantMembership, error) {
	memberships, err := s.repo.GetMembershipsForUser(userID)
	if err != nil {
		s.logger.Error("failed to load memberships", "error", err, "user_id", userID)
		return nil, nil, internal.ErrMembershipNotFound
	}

	var active []*UserTenantMembership
	superAdmin := false
	for _, m := range memberships {
		if !m.IsActive {
			continue
		}
		active = append(active, m)
		if m.IsSuperAdmin() {
			superAdmin = true
		}
	}

	if len(active) == 0 {
		return nil, nil, internal.ErrMembershipNotFound
	}

	if requestedTenantID != 0 {
		for _, m := range active {
			if m.TenantID == requestedTenantID {
				return s.loadActiveTenant(requestedTenantID, m)
			}
		}
		if superAdmin {
			// Super admins act across all tenants without a stored membership.
			synthetic := &UserTenantMembership{
				UserID:   userID,
				TenantID: requestedTenantID,
				Role:     RoleSuperAdmin,
				IsActive: true,
			}
			return s.loadActiveTenant(requestedTenantID, synthetic)
		}
		s.logger.Warn("tenant access denied: no membership", "user_id", userID, "tenant_id", requestedTenantID)
		return nil, nil, internal.ErrMembershipNotFound
	}

	return s.loadActiveTenant(active[0].TenantID, active[0])
}

func (s *Service) loadActiveTenant(tenantID int64, m *UserTenantMembership) (*Tenant, *UserTenantMembership, error) {
	t, err := s.repo.GetTenantByID(tenantID)
	if err != nil {
		s.logger.Error("failed to load tenant", "error", err, "tenant_id", tenantID)
		return nil, nil, internal.ErrTenantNotFound
	}
	if !t.IsActive {
		return nil, nil, internal.ErrTenantInactive
	}
	return t, m, nil
}

func (s *Service) GetTenant(tenantID int64) (*Tenant, error) {
	t, err := s.repo.GetTenantByID(tenantID)
	if err != nil {
		return nil, internal.ErrTenantNotFound
	}
	return t, nil
}

func (s *Service) MembershipsForUser(userID int64) ([]*UserTenantMembership, error) {
	memberships, err := s.repo.GetMembershipsForUser(userID)
	if err != nil {
		s.logger.Error("failed to list memberships", "error", err, "user_id", userID)
		return nil, err
	}
	return memberships, nil
}

func (s *Service) ListMembers(tenantID int64) ([]*UserTenantMembership, error) {
	members, err := s.repo.ListMembers(tenantID)
	if err != nil {
		s.logger.Error("failed to list members", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return members, nil
}

// AddMember creates an active membership. At most one active membership per
// (user, tenant); the database enforces this with a partial unique index, the
// check here just produces a friendlier error.
func (s *Service) AddMember(ctx context.Context, tenantID int64, dto AddMemberDTO) (*UserTenantMembership, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetMembership(dto.UserID, tenantID)
	if err == nil && existing != nil && existing.IsActive {
		return nil, internal.ErrDuplicateMember
	}

	role := dto.Role
	if dto.CustomRoleID != nil {
		// Custom role assignment normalizes the base role label.
		role = RoleMember
	}

	m := &UserTenantMembership{
		UserID:       dto.UserID,
		TenantID:     tenantID,
		Role:         role,
		CustomRoleID: dto.CustomRoleID,
		IsActive:     true,
	}

	if err := s.repo.CreateMembership(m); err != nil {
		s.logger.Error("failed to create membership", "error", err, "tenant_id", tenantID, "user_id", dto.UserID)
		return nil, err
	}

	s.publishMembershipChanged(ctx, tenantID, m.UserID)
	return m, nil
}

func (s *Service) UpdateMember(ctx context.Context, tenantID, membershipID int64, dto UpdateMemberDTO) (*UserTenantMembership, error) {
	members, err := s.repo.ListMembers(tenantID)
	if err != nil {
		return nil, err
	}

	var m *UserTenantMembership
	for _, candidate := range members {
		if candidate.ID == membershipID {
			m = candidate
			break
		}
	}
	if m == nil {
		return nil, internal.ErrMembershipNotFound
	}

	if dto.Role != "" {
		if !ValidRole(dto.Role) {
			return nil, internal.NewValidationFieldError("role", "invalid role", internal.ErrCodeValidationFailed)
		}
		m.Role = dto.Role
	}
	m.CustomRoleID = dto.CustomRoleID
	if m.CustomRoleID != nil {
		m.Role = RoleMember
	}

	if err := s.repo.UpdateMembership(m); err != nil {
		s.logger.Error("failed to update membership", "error", err, "membership_id", membershipID)
		return nil, err
	}

	s.publishMembershipChanged(ctx, tenantID, m.UserID)
	return m, nil
}

// DeactivateMember soft-deletes: the row stays for history.
func (s *Service) DeactivateMember(ctx context.Context, tenantID, membershipID int64) error {
	if err := s.repo.DeactivateMembership(membershipID); err != nil {
		s.logger.Error("failed to deactivate membership", "error", err, "membership_id", membershipID)
		return err
	}
	s.publishMembershipChanged(ctx, tenantID, 0)
	return nil
}

// InviteMember dispatches the hosted invitation function. A failed send is a
// warning, not an error: the caller is told the invite was accepted and the
// send is logged for the operator.
func (s *Service) InviteMember(ctx context.Context, tenantID int64, dto InviteMemberDTO, actorID int64) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetTenantByID(tenantID); err != nil {
		return internal.ErrTenantNotFound
	}

	if err := s.bus.Publish(ctx, events.NewMemberInvitedEvent(tenantID, dto.Email, dto.Role, actorID)); err != nil {
		s.logger.Warn("failed to publish invite event", "error", err, "tenant_id", tenantID)
	}

	if err := s.functions.SendTenantInvitation(ctx, tenantID, dto.Email, dto.Role); err != nil {
		s.logger.Warn("invitation send failed", "error", err, "tenant_id", tenantID, "email", dto.Email)
	}

	return nil
}

// ResetMemberPassword performs the privileged reset through the hosted
// function. Unlike the invitation path the function call is the whole
// operation, so its failure is surfaced.
func (s *Service) ResetMemberPassword(ctx context.Context, tenantID int64, dto ResetMemberPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	m, err := s.repo.GetMembership(dto.UserID, tenantID)
	if err != nil || m == nil || !m.IsActive {
		return internal.ErrMembershipNotFound
	}

	if err := s.functions.AdminResetUserPassword(ctx, tenantID, dto.UserID, dto.NewPassword); err != nil {
		s.logger.Error("admin password reset failed", "error", err, "tenant_id", tenantID, "user_id", dto.UserID)
		return internal.NewExternalError("password reset function failed", err)
	}

	return nil
}

func (s *Service) publishMembershipChanged(ctx context.Context, tenantID, userID int64) {
	event := events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      events.EventTypeMembershipChanged,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"tenant_id": tenantID,
			"user_id":   userID,
		},
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish membership change", "error", err, "tenant_id", tenantID)
	}
}
