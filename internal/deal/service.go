package deal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/core/events"
	"github.com/pradiptamal/crm-management/internal/paymentterm"
)

type RepositoryAPI interface {
	Create(deal *Deal, companyIDs, contactIDs []int64) error
	GetByID(id int64) (*Deal, error)
	List(tenantID int64, limit, offset int) ([]*Deal, error)
	Update(deal *Deal) error

	// ChangeStatus writes the deal status, the history row, and the activity
	// note in one transaction.
	ChangeStatus(deal *Deal, history *DealStatusHistory, activityNote string) error

	GetStatus(id int64) (*DealStatus, error)
	ListStatuses(tenantID int64) ([]*DealStatus, error)
	CreateStatus(status *DealStatus) error

	ReplacePaymentTerms(dealID int64, terms []DealPaymentTerm) error
	ListPaymentTerms(dealID int64) ([]*DealPaymentTerm, error)

	ListStatusHistory(dealID int64) ([]*DealStatusHistory, error)
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

func (s *Service) CreateDeal(tenantID int64, dto CreateDealDTO, actorID int64) (*Deal, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d := &Deal{
		TenantID:    tenantID,
		Name:        dto.Name,
		Description: dto.Description,
		StatusID:    dto.StatusID,
		Value:       dto.Value,
		Currency:    dto.Currency,
		CreatedBy:   actorID,
	}

	if err := s.repo.Create(d, dto.CompanyIDs, dto.ContactIDs); err != nil {
		s.logger.Error("failed to create deal", "error", err, "tenant_id", tenantID)
		return nil, err
	}

	s.logger.Info("deal created", "deal_id", d.ID, "tenant_id", tenantID, "name", d.Name)
	return d, nil
}

func (s *Service) GetDeal(tenantID, dealID int64) (*Deal, error) {
	d, err := s.repo.GetByID(dealID)
	if err != nil {
		return nil, internal.ErrDealNotFound
	}
	if d.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return d, nil
}

func (s *Service) ListDeals(tenantID int64, limit, offset int) ([]*Deal, error) {
	deals, err := s.repo.List(tenantID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list deals", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return deals, nil
}

func (s *Service) UpdateDeal(tenantID, dealID int64, dto UpdateDealDTO) (*Deal, error) {
	d, err := s.GetDeal(tenantID, dealID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		d.Name = *dto.Name
	}
	if dto.Description != nil {
		d.Description = *dto.Description
	}
	if dto.Value != nil {
		if dto.Value.IsNegative() {
			return nil, internal.NewValidationFieldError("value", "value cannot be negative", internal.ErrCodeValidationFailed)
		}
		d.Value = *dto.Value
	}
	if dto.Currency != nil {
		d.Currency = *dto.Currency
	}

	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update deal", "error", err, "deal_id", dealID)
		return nil, err
	}
	return d, nil
}

// ChangeStatus transitions a deal. Statuses flagged requires_reason demand a
// reason; only pause statuses carry a resume date, any other transition clears
// it. The status write, the history row, and the activity note land in one
// transaction so a failure never leaves a half-recorded transition.
func (s *Service) ChangeStatus(ctx context.Context, tenantID, dealID int64, dto ChangeStatusDTO, actorID int64) (*Deal, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.GetDeal(tenantID, dealID)
	if err != nil {
		return nil, err
	}

	status, err := s.repo.GetStatus(dto.StatusID)
	if err != nil {
		return nil, internal.ErrStatusNotFound
	}
	if status.TenantID != tenantID || !status.IsActive {
		return nil, internal.ErrStatusNotFound
	}

	if status.RequiresReason && dto.Reason == "" {
		return nil, internal.ErrStatusReason
	}

	fromStatusID := d.StatusID
	d.StatusID = status.ID
	if status.IsPauseStatus {
		d.StatusResumeDate = dto.ResumeDate
	} else {
		d.StatusResumeDate = nil
	}

	history := &DealStatusHistory{
		DealID:     d.ID,
		ToStatusID: status.ID,
		Reason:     dto.Reason,
		ChangedBy:  actorID,
		ChangedAt:  time.Now(),
	}
	if fromStatusID != 0 {
		history.FromStatusID = &fromStatusID
	}

	note := fmt.Sprintf("Status changed to %q", status.Name)
	if dto.Reason != "" {
		note = fmt.Sprintf("Status changed to %q: %s", status.Name, dto.Reason)
	}

	if err := s.repo.ChangeStatus(d, history, note); err != nil {
		s.logger.Error("failed to change deal status", "error", err, "deal_id", d.ID, "status_id", status.ID)
		return nil, err
	}

	s.logger.Info("deal status changed",
		"deal_id", d.ID,
		"status_id", status.ID,
		"status_name", status.Name,
		"actor_id", actorID)

	event := events.NewDealStatusChangedEvent(tenantID, d.ID, status.ID, status.Name, dto.Reason, actorID)
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish status change event", "error", err, "deal_id", d.ID)
	}

	return d, nil
}

// SetPaymentTerms replaces the deal's installment schedule, recalculating
// amounts against the deal value.
func (s *Service) SetPaymentTerms(tenantID, dealID int64, dto SetPaymentTermsDTO) ([]*DealPaymentTerm, error) {
	d, err := s.GetDeal(tenantID, dealID)
	if err != nil {
		return nil, err
	}

	if err := paymentterm.ValidateTerms(dto.Terms); err != nil {
		return nil, err
	}
	paymentterm.CalculateAll(dto.Terms, d.Value)

	rows := make([]DealPaymentTerm, 0, len(dto.Terms))
	for _, t := range dto.Terms {
		rows = append(rows, DealPaymentTerm{
			DealID:            d.ID,
			InstallmentNumber: t.InstallmentNumber,
			Percentage:        t.Percentage,
			FixedAmount:       t.FixedAmount,
			DueDate:           t.DueDate,
			CalculatedAmount:  t.CalculatedAmount,
		})
	}

	if err := s.repo.ReplacePaymentTerms(d.ID, rows); err != nil {
		s.logger.Error("failed to set payment terms", "error", err, "deal_id", d.ID)
		return nil, err
	}

	return s.repo.ListPaymentTerms(d.ID)
}

func (s *Service) PaymentTerms(tenantID, dealID int64) ([]*DealPaymentTerm, error) {
	if _, err := s.GetDeal(tenantID, dealID); err != nil {
		return nil, err
	}
	return s.repo.ListPaymentTerms(dealID)
}

func (s *Service) StatusHistory(tenantID, dealID int64) ([]*DealStatusHistory, error) {
	if _, err := s.GetDeal(tenantID, dealID); err != nil {
		return nil, err
	}
	return s.repo.ListStatusHistory(dealID)
}

func (s *Service) ListStatuses(tenantID int64) ([]*DealStatus, error) {
	return s.repo.ListStatuses(tenantID)
}

func (s *Service) CreateStatus(tenantID int64, dto StatusDTO) (*DealStatus, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	status := &DealStatus{
		TenantID:       tenantID,
		Name:           dto.Name,
		Color:          dto.Color,
		SortOrder:      dto.SortOrder,
		RequiresReason: dto.RequiresReason,
		IsPauseStatus:  dto.IsPauseStatus,
		IsActive:       true,
	}

	if err := s.repo.CreateStatus(status); err != nil {
		s.logger.Error("failed to create deal status", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return status, nil
}
