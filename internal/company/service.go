package company

import (
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
)

type RepositoryAPI interface {
	Create(c *Company) error
	GetByID(id int64) (*Company, error)
	List(tenantID int64, search string, limit, offset int) ([]*Company, error)
	Update(c *Company) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(tenantID int64, dto CompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Company{
		TenantID:   tenantID,
		Name:       dto.Name,
		VATNumber:  dto.VATNumber,
		Website:    dto.Website,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Street:     dto.Street,
		City:       dto.City,
		PostalCode: dto.PostalCode,
		Country:    dto.Country,
		Notes:      dto.Notes,
		IsActive:   true,
	}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create company", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(tenantID, id int64) (*Company, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrCompanyNotFound
	}
	if c.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return c, nil
}

func (s *Service) List(tenantID int64, search string, limit, offset int) ([]*Company, error) {
	return s.repo.List(tenantID, search, limit, offset)
}

func (s *Service) Update(tenantID, id int64, dto CompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	c.Name = dto.Name
	c.VATNumber = dto.VATNumber
	c.Website = dto.Website
	c.Email = dto.Email
	c.Phone = dto.Phone
	c.Street = dto.Street
	c.City = dto.City
	c.PostalCode = dto.PostalCode
	c.Country = dto.Country
	c.Notes = dto.Notes

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update company", "error", err, "company_id", id)
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
