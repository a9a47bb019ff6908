package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"siteledger-backend/internal/domain"
	"siteledger-backend/internal/service"
	"siteledger-backend/internal/utils"
)

// OrderHandler exposes the rental order lifecycle over JSON.
type OrderHandler struct {
	svc service.RentalOrderService
}

func NewOrderHandler(svc service.RentalOrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderResponse struct {
	Order     *domain.RentalOrder   `json:"order"`
	Breakdown *domain.CostBreakdown `json:"breakdown,omitempty"`
}

type listResponse struct {
	Orders []domain.RentalOrder `json:"orders"`
	Total  int32                `json:"total"`
}

// orderID parses the {id} path variable, replying 400 itself on a
// malformed value. The bool reports whether the handler should proceed.
func orderID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid order id %q", raw)})
		return 0, false
	}
	return int32(id), true
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in service.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResponse{Order: order})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	siteID, _ := strconv.ParseInt(q.Get("site_id"), 10, 32)
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(q.Get("page_size"), 10, 32)

	orders, total, err := h.svc.ListOrders(r.Context(), int32(siteID), q.Get("status"), int32(page), int32(pageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.RentalOrder{}
	}
	writeJSON(w, http.StatusOK, listResponse{Orders: orders, Total: total})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, breakdown, err := h.svc.GetOrder(r.Context(), id, time.Time{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order, Breakdown: breakdown})
}

// GetBreakdown returns the cost breakdown as of an arbitrary date, so
// a site manager can preview what settling today (or any day) costs.
func (h *OrderHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	asOf := time.Time{}
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid as_of date %q", raw)})
			return
		}
		asOf = parsed
	}
	_, breakdown, err := h.svc.GetOrder(r.Context(), id, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func (h *OrderHandler) ActivateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.svc.ActivateOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	order, err := h.svc.CancelOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *OrderHandler) RecordReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var in service.ReturnInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.svc.RecordReturn(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResponse{Order: order})
}

func (h *OrderHandler) RecordAdvance(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var in service.AdvanceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	order, err := h.svc.RecordAdvance(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResponse{Order: order})
}

func (h *OrderHandler) SettleOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var in service.SettlementInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	rec, err := h.svc.SettleOrder(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *OrderHandler) GetSettlement(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	rec, err := h.svc.GetSettlement(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
