package customer

import (
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
)

type RepositoryAPI interface {
	Create(c *Customer) error
	GetByID(id int64) (*Customer, error)
	GetByCompany(tenantID, companyID int64) (*Customer, error)
	List(tenantID int64, limit, offset int) ([]*Customer, error)
	Update(c *Customer) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create converts a company into a customer. One customer row per company.
func (s *Service) Create(tenantID int64, dto CustomerDTO) (*Customer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByCompany(tenantID, dto.CompanyID); err == nil && existing != nil && existing.IsActive {
		return nil, internal.NewConflictError("company is already a customer", internal.ErrCodeValidationFailed)
	}

	paymentDays := dto.PaymentDays
	if paymentDays == 0 {
		paymentDays = 30
	}

	c := &Customer{
		TenantID:       tenantID,
		CompanyID:      dto.CompanyID,
		CustomerNumber: dto.CustomerNumber,
		BillingEmail:   dto.BillingEmail,
		BillingStreet:  dto.BillingStreet,
		BillingCity:    dto.BillingCity,
		PaymentDays:    paymentDays,
		Notes:          dto.Notes,
		IsActive:       true,
	}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create customer", "error", err, "tenant_id", tenantID, "company_id", dto.CompanyID)
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(tenantID, id int64) (*Customer, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("Customer not found", internal.ErrCodeCompanyNotFound)
	}
	if c.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return c, nil
}

func (s *Service) List(tenantID int64, limit, offset int) ([]*Customer, error) {
	return s.repo.List(tenantID, limit, offset)
}

func (s *Service) Update(tenantID, id int64, dto CustomerDTO) (*Customer, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	c.CustomerNumber = dto.CustomerNumber
	c.BillingEmail = dto.BillingEmail
	c.BillingStreet = dto.BillingStreet
	c.BillingCity = dto.BillingCity
	if dto.PaymentDays > 0 {
		c.PaymentDays = dto.PaymentDays
	}
	c.Notes = dto.Notes

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update customer", "error", err, "customer_id", id)
		return nil, err
	}
	return c, nil
}

func (s *Service) Deactivate(tenantID, id int64) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	return s.repo.Deactivate(id)
}
