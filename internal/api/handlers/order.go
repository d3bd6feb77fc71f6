package handlers

import (
	"net/http"

	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	service "github.com/freshcutsco/meat-delivery-platform/internal/services"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	service  service.OrderService
	validate *validator.Validate
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{service: svc, validate: validator.New()}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.CheckoutRequest

	if !utils.ParseAndValidate(r, w, &req, h.validate) {
		return
	}

	order, err := h.service.Checkout(r.Context(), userID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, orders)
}
