package quote

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	internal "github.com/pradiptamal/crm-management/internal"
	"github.com/pradiptamal/crm-management/internal/auth"
	"github.com/pradiptamal/crm-management/internal/tenant"
	"github.com/pradiptamal/crm-management/internal/transport"
	"github.com/pradiptamal/crm-management/pkg/logger"
)

// TenantLookup resolves tenant metadata for export headers.
type TenantLookup interface {
	GetTenant(tenantID int64) (*tenant.Tenant, error)
}

type Handler struct {
	*transport.BaseHandler
	Service *Service
	Tenants TenantLookup
}

func NewHandler(service *Service, tenants TenantLookup) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Tenants:     tenants,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tenantID := internal.TenantIDFromContext(r.Context())

	var dto CreateQuoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.Service.Create(tenantID, dto, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, q)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid quote ID")
		return
	}

	q, err := h.Service.Get(tenantID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, q)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	var dealID *int64
	if raw := r.URL.Query().Get("deal_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid deal_id")
			return
		}
		dealID = &id
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	quotes, err := h.Service.List(tenantID, dealID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, quotes)
}

func (h *Handler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid quote ID")
		return
	}

	var items []QuoteItemDTO
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.Service.ReplaceItems(tenantID, id, items)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, q)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid quote ID")
		return
	}

	if err := h.Service.Delete(tenantID, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid quote ID")
		return
	}

	q, err := h.Service.Get(tenantID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	info := h.projectInfo(tenantID, q)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="quote-%d.csv"`, q.ID))
	if err := WriteCSV(w, q, info); err != nil {
		h.Logger.Error("failed to write quote CSV", "error", err, "quote_id", q.ID)
	}
}

func (h *Handler) ExportPrint(w http.ResponseWriter, r *http.Request) {
	tenantID := internal.TenantIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid quote ID")
		return
	}

	q, err := h.Service.Get(tenantID, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	info := h.projectInfo(tenantID, q)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderPrintHTML(w, q, info); err != nil {
		h.Logger.Error("failed to render quote print document", "error", err, "quote_id", q.ID)
	}
}

func (h *Handler) projectInfo(tenantID int64, q *Quote) ProjectInfo {
	info := ProjectInfo{
		ProjectName: q.Name,
		QuoteNumber: q.QuoteNumber,
		Currency:    q.Currency,
		ValidUntil:  q.ValidUntil,
		GeneratedAt: time.Now(),
	}
	if t, err := h.Tenants.GetTenant(tenantID); err == nil {
		info.TenantName = t.Name
	}
	return info
}
