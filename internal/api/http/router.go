package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"siteledger-backend/internal/service"
)

// NewRouter wires the order lifecycle endpoints.
func NewRouter(svc service.RentalOrderService) *mux.Router {
	router := mux.NewRouter()
	handler := NewOrderHandler(svc)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/orders", handler.CreateOrder).Methods("POST")
	api.HandleFunc("/orders", handler.ListOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", handler.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/breakdown", handler.GetBreakdown).Methods("GET")
	api.HandleFunc("/orders/{id}/activate", handler.ActivateOrder).Methods("POST")
	api.HandleFunc("/orders/{id}/cancel", handler.CancelOrder).Methods("POST")
	api.HandleFunc("/orders/{id}/returns", handler.RecordReturn).Methods("POST")
	api.HandleFunc("/orders/{id}/advances", handler.RecordAdvance).Methods("POST")
	api.HandleFunc("/orders/{id}/settlement", handler.SettleOrder).Methods("POST")
	api.HandleFunc("/orders/{id}/settlement", handler.GetSettlement).Methods("GET")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	return router
}
