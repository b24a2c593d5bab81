package site

import (
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
)

type RepositoryAPI interface {
	Create(s *Site) error
	GetByID(id int64) (*Site, error)
	List(tenantID int64, search string, limit, offset int) ([]*Site, error)
	Update(s *Site) error
	Deactivate(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(tenantID int64, dto SiteDTO) (*Site, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	site := &Site{
		TenantID:   tenantID,
		CompanyID:  dto.CompanyID,
		Name:       dto.Name,
		Street:     dto.Street,
		City:       dto.City,
		PostalCode: dto.PostalCode,
		Country:    dto.Country,
		Notes:      dto.Notes,
		IsActive:   true,
	}
	if err := s.repo.Create(site); err != nil {
		s.logger.Error("failed to create site", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return site, nil
}

func (s *Service) Get(tenantID, id int64) (*Site, error) {
	site, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrSiteNotFound
	}
	if site.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return site, nil
}

func (s *Service) List(tenantID int64, search string, limit, offset int) ([]*Site, error) {
	return s.repo.List(tenantID, search, limit, offset)
}

func (s *Service) Update(tenantID, id int64, dto SiteDTO) (*Site, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	site, err := s.Get(tenantID, id)
	if err != nil {
		return nil, err
	}

	site.CompanyID = dto.CompanyID
	site.Name = dto.Name
	site.Street = dto.Street
	site.City = dto.City
	site.PostalCode = dto.PostalCode
	site.Country = dto.Country
	site.Notes = dto.Notes

	if err := s.repo.Update(site); err != nil {
		s.logger.Error("failed to update site", "error", err, "site_id", id)
		return nil, err
	}
	return site, nil
}

func (s *Service) Deactivate(tenantID, id int64) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	return s.repo.Deactivate(id)
}
