package contact

import (
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
)

type RepositoryAPI interface {
	Create(c *Contact) error
	GetByID(id int64) (*Contact, error)
	List(tenantID int64, search string, limit, offset int) ([]*Contact, error)
	ListByCompany(tenantID, companyID int64) ([]*Contact, error)
	Update(c *Contact) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(tenantID int64, dto ContactDTO) (*Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Contact{
		TenantID:  tenantID,
		CompanyID: dto.CompanyID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		JobTitle:  dto.JobTitle,
		Notes:     dto.Notes,
		IsActive:  true,
	}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create contact", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(tenantID, id int64) (*Contact, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrContactNotFound
	}
	if c.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return c, nil
}

func (s *Service) List(tenantID int64, search string, limit, offset int) ([]*Contact, error) {
	return s.repo.List(tenantID, search, limit, offset)
}

func (s *Service) ListByCompany(tenantID, companyID int64) ([]*Contact, error) {
	return s.repo.ListByCompany(tenantID, companyID)
}

func (s *Service) Update(tenantID, id int64, dto ContactDTO) (*Contact, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	c.CompanyID = dto.CompanyID
	c.FirstName = dto.FirstName
	c.LastName = dto.LastName
	c.Email = dto.Email
	c.Phone = dto.Phone
	c.JobTitle = dto.JobTitle
	c.Notes = dto.Notes

	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update contact", "error", err, "contact_id", id)
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
