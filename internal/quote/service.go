package quote

import (
	"log/slog"

	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/catalog"
)

type RepositoryAPI interface {
	// CreateWithItems writes the quote and its line items in one transaction.
	CreateWithItems(q *Quote) error
	GetByID(id int64) (*Quote, error)
	List(tenantID int64, dealID *int64, limit, offset int) ([]*Quote, error)
	// ReplaceItems swaps the line items and persists the recalculated totals
	// in one transaction.
	ReplaceItems(q *Quote) error
	Delete(id int64) error
}

// DeviceCatalog is the slice of the catalog service quotes resolve device
// lines against.
type DeviceCatalog interface {
	GetDevice(tenantID, id int64) (*catalog.Device, error)
}

type Service struct {
	repo    RepositoryAPI
	devices DeviceCatalog
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, devices DeviceCatalog, logger *slog.Logger) *Service {
	return &Service{repo: repo, devices: devices, logger: logger}
}

// Create builds a quote from the DTO. Device-referencing lines with no
// description or price inherit them from the catalog entry.
func (s *Service) Create(tenantID int64, dto CreateQuoteDTO, actorID int64) (*Quote, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	q := &Quote{
		TenantID:    tenantID,
		DealID:      dto.DealID,
		SiteID:      dto.SiteID,
		QuoteNumber: dto.QuoteNumber,
		Name:        dto.Name,
		Currency:    dto.Currency,
		ValidUntil:  dto.ValidUntil,
		CreatedBy:   actorID,
	}
	if q.Currency == "" {
		q.Currency = "EUR"
	}

	items, err := s.buildItems(tenantID, dto.Items)
	if err != nil {
		return nil, err
	}
	q.Items = items
	q.Recalculate()

	if err := s.repo.CreateWithItems(q); err != nil {
		s.logger.Error("failed to create quote", "error", err, "tenant_id", tenantID)
		return nil, err
	}

	s.logger.Info("quote created", "quote_id", q.ID, "tenant_id", tenantID, "total", q.Total.String())
	return q, nil
}

func (s *Service) Get(tenantID, id int64) (*Quote, error) {
	q, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrQuoteNotFound
	}
	if q.TenantID != tenantID {
		return nil, internal.ErrUnauthorizedAccess
	}
	return q, nil
}

func (s *Service) List(tenantID int64, dealID *int64, limit, offset int) ([]*Quote, error) {
	return s.repo.List(tenantID, dealID, limit, offset)
}

// ReplaceItems swaps the quote's line items for a new set and recalculates.
func (s *Service) ReplaceItems(tenantID, quoteID int64, items []QuoteItemDTO) (*Quote, error) {
	q, err := s.Get(tenantID, quoteID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	built, err := s.buildItems(tenantID, items)
	if err != nil {
		return nil, err
	}
	q.Items = built
	q.Recalculate()

	if err := s.repo.ReplaceItems(q); err != nil {
		s.logger.Error("failed to replace quote items", "error", err, "quote_id", q.ID)
		return nil, err
	}
	return q, nil
}

func (s *Service) Delete(tenantID, id int64) error {
	if _, err := s.Get(tenantID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) buildItems(tenantID int64, dtos []QuoteItemDTO) ([]QuoteItem, error) {
	items := make([]QuoteItem, 0, len(dtos))
	for i, dto := range dtos {
		item := QuoteItem{
			DeviceID:    dto.DeviceID,
			Description: dto.Description,
			Quantity:    dto.Quantity,
			UnitPrice:   dto.UnitPrice,
			DiscountPct: dto.DiscountPct,
			SortOrder:   i + 1,
		}

		if dto.DeviceID != nil {
			device, err := s.devices.GetDevice(tenantID, *dto.DeviceID)
			if err != nil {
				return nil, err
			}
			if item.Description == "" {
				item.Description = device.Manufacturer + " " + device.Model
			}
			if item.UnitPrice.IsZero() {
				item.UnitPrice = device.UnitPrice
			}
		}

		items = append(items, item)
	}
	return items, nil
}
