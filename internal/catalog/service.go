package catalog

import (
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
)

type RepositoryAPI interface {
	CreateDevice(d *Device) error
	GetDevice(id int64) (*Device, error)
	ListDevices(tenantID int64, search string, limit, offset int) ([]*Device, error)
	UpdateDevice(d *Device) error
	DeactivateDevice(id int64) error

	CreateProjectDevice(pd *ProjectDevice) error
	GetProjectDevice(id int64) (*ProjectDevice, error)
	ListProjectDevices(tenantID int64, siteID, dealID *int64) ([]*ProjectDevice, error)
	DeleteProjectDevice(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateDevice(tenantID int64, dto DeviceDTO) (*Device, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d := &Device{
		TenantID:     tenantID,
		Model:        dto.Model,
		Manufacturer: dto.Manufacturer,
		Description:  dto.Description,
		UnitPrice:    dto.UnitPrice,
		Currency:     dto.Currency,
		IsActive:     true,
	}
	if err := s.repo.CreateDevice(d); err != nil {
		s.logger.Error("failed to create device", "error", err, "tenant_id", tenantID)
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDevice(tenantID, id int64) (*Device, error) {
	d, err := s.repo.GetDevice(id)
	if err != nil {
		return nil, internal.ErrDeviceNotFound
	}
	if d.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return d, nil
}

func (s *Service) ListDevices(tenantID int64, search string, limit, offset int) ([]*Device, error) {
	return s.repo.ListDevices(tenantID, search, limit, offset)
}

func (s *Service) UpdateDevice(tenantID, id int64, dto DeviceDTO) (*Device, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.GetDevice(tenantID, id)
	if err != nil {
		return nil, err
	}

	d.Model = dto.Model
	d.Manufacturer = dto.Manufacturer
	d.Description = dto.Description
	d.UnitPrice = dto.UnitPrice
	if dto.Currency != "" {
		d.Currency = dto.Currency
	}

	if err := s.repo.UpdateDevice(d); err != nil {
		s.logger.Error("failed to update device", "error", err, "device_id", id)
		return nil, err
	}
	return d, nil
}

func (s *Service) DeactivateDevice(tenantID, id int64) error {
	if _, err := s.GetDevice(tenantID, id); err != nil {
		return err
	}
	return s.repo.DeactivateDevice(id)
}

func (s *Service) AddProjectDevice(tenantID int64, dto ProjectDeviceDTO) (*ProjectDevice, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetDevice(tenantID, dto.DeviceID); err != nil {
		return nil, err
	}

	pd := &ProjectDevice{
		TenantID: tenantID,
		DeviceID: dto.DeviceID,
		SiteID:   dto.SiteID,
		DealID:   dto.DealID,
		Quantity: dto.Quantity,
		Notes:    dto.Notes,
	}
	if err := s.repo.CreateProjectDevice(pd); err != nil {
		s.logger.Error("failed to add project device", "error", err, "tenant_id", tenantID, "device_id", dto.DeviceID)
		return nil, err
	}
	return pd, nil
}

func (s *Service) ListProjectDevices(tenantID int64, siteID, dealID *int64) ([]*ProjectDevice, error) {
	return s.repo.ListProjectDevices(tenantID, siteID, dealID)
}

func (s *Service) RemoveProjectDevice(tenantID, id int64) error {
	pd, err := s.repo.GetProjectDevice(id)
	if err != nil {
		return internal.ErrDeviceNotFound
	}
	if pd.TenantID != tenantID {
		return internal.ErrUnauthorizedAccess
	}
	return s.repo.DeleteProjectDevice(id)
}
