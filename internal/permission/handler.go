package permission

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/transport"
	"github.com/pradiptamal/crm-management/pkg/logger"
)

type CustomRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Permissions Matrix `json:"permissions"`
}

func (d CustomRoleDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	return ValidateMatrix(d.Permissions)
}

type Handler struct {
	*transport.BaseHandler
	repo RepositoryAPI
}

func NewHandler(repo RepositoryAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		repo:        repo,
	}
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	perms, err := h.repo.ListCatalog()
	if err != nil {
		h.Logger.Error("failed to list permission catalog", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load permissions")
		return
	}
	h.WriteJSON(w, http.StatusOK, perms)
}

func (h *Handler) ListCustomRoles(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())
	roles, err := h.repo.ListCustomRoles(tenantID)
	if err != nil {
		h.Logger.Error("failed to list custom roles", "error", err, "tenant_id", tenantID)
		h.WriteError(w, http.StatusInternalServerError, "failed to load custom roles")
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) CreateCustomRole(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	var dto CustomRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	role := &CustomRole{
		TenantID:    tenantID,
		Name:        dto.Name,
		Description: dto.Description,
		Permissions: dto.Permissions,
		IsActive:    true,
	}

	if err := h.repo.CreateCustomRole(role); err != nil {
		h.Logger.Error("failed to create custom role", "error", err, "tenant_id", tenantID)
		h.WriteError(w, http.StatusInternalServerError, "failed to create custom role")
		return
	}

	h.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) UpdateCustomRole(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	roleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}

	var dto CustomRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	role, err := h.repo.GetCustomRole(roleID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if role.TenantID != tenantID {
		h.WriteError(w, http.StatusForbidden, "custom role belongs to another tenant")
		return
	}

	role.Name = dto.Name
	role.Description = dto.Description
	role.Permissions = dto.Permissions

	if err := h.repo.UpdateCustomRole(role); err != nil {
		h.Logger.Error("failed to update custom role", "error", err, "role_id", roleID)
		h.WriteError(w, http.StatusInternalServerError, "failed to update custom role")
		return
	}

	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) DeactivateCustomRole(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	roleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}

	role, err := h.repo.GetCustomRole(roleID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if role.TenantID != tenantID {
		h.WriteError(w, http.StatusForbidden, "custom role belongs to another tenant")
		return
	}

	if err := h.repo.DeactivateCustomRole(roleID); err != nil {
		h.Logger.Error("failed to deactivate custom role", "error", err, "role_id", roleID)
		h.WriteError(w, http.StatusInternalServerError, "failed to deactivate custom role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
