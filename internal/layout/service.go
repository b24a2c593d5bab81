package layout

import (
	"log/slog"
	"sort"

	internal "github.com/pradiptamal/crm-management/internal"
)

type RepositoryAPI interface {
	// GetForTenant returns the tenant-specific row, or nil when none exists.
	GetForTenant(tenantID int64, entityType string) (*PageLayoutConfig, error)
	// GetGlobal returns the shared row (tenant_id NULL), or nil when none exists.
	GetGlobal(entityType string) (*PageLayoutConfig, error)
	Upsert(cfg *PageLayoutConfig) error
	DeleteForTenant(tenantID int64, entityType string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Resolve returns the visible tabs for (tenant, entity type), ordered.
// Lookup order is tenant row, then global row, then the built-in default.
// Storage errors fall back to the default and are logged; layout resolution
// never fails a page render.
func (s *Service) Resolve(tenantID int64, entityType string) (TabList, error) {
	defaults, ok := DefaultTabs(entityType)
	if !ok {
		return nil, internal.NewValidationFieldError("entity_type", "unknown entity type", internal.ErrCodeValidationFailed)
	}

	cfg, err := s.repo.GetForTenant(tenantID, entityType)
	if err != nil {
		s.logger.Warn("tenant layout fetch failed, falling back to default",
			"error", err, "tenant_id", tenantID, "entity_type", entityType)
		return presentable(defaults), nil
	}

	if cfg == nil {
		cfg, err = s.repo.GetGlobal(entityType)
		if err != nil {
			s.logger.Warn("global layout fetch failed, falling back to default",
				"error", err, "entity_type", entityType)
			return presentable(defaults), nil
		}
	}

	if cfg == nil || len(cfg.Tabs) == 0 {
		return presentable(defaults), nil
	}
	return presentable(cfg.Tabs), nil
}

// Save stores a tenant override. Locked tabs are forced visible regardless of
// what the caller submitted.
func (s *Service) Save(tenantID int64, entityType string, tabs TabList, actorID int64) (*PageLayoutConfig, error) {
	defaults, ok := DefaultTabs(entityType)
	if !ok {
		return nil, internal.NewValidationFieldError("entity_type", "unknown entity type", internal.ErrCodeValidationFailed)
	}

	locked := make(map[string]bool, len(defaults))
	for _, tab := range defaults {
		if tab.Locked {
			locked[tab.ID] = true
		}
	}

	for i := range tabs {
		if locked[tabs[i].ID] {
			tabs[i].Visible = true
			tabs[i].Locked = true
		}
	}

	tid := tenantID
	cfg := &PageLayoutConfig{
		TenantID:   &tid,
		EntityType: entityType,
		Tabs:       tabs,
		UpdatedBy:  actorID,
	}
	if err := s.repo.Upsert(cfg); err != nil {
		s.logger.Error("failed to save layout", "error", err, "tenant_id", tenantID, "entity_type", entityType)
		return nil, err
	}
	return cfg, nil
}

// Reset drops the tenant override so resolution falls through to the global
// row or the built-in default.
func (s *Service) Reset(tenantID int64, entityType string) error {
	if !ValidEntityType(entityType) {
		return internal.NewValidationFieldError("entity_type", "unknown entity type", internal.ErrCodeValidationFailed)
	}
	return s.repo.DeleteForTenant(tenantID, entityType)
}

// presentable filters to visible tabs and sorts ascending by order.
func presentable(tabs TabList) TabList {
	out := make(TabList, 0, len(tabs))
	for _, tab := range tabs {
		if tab.Visible {
			out = append(out, tab)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
