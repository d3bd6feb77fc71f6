package handlers

import (
	"net/http"

	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	service "github.com/freshcutsco/meat-delivery-platform/internal/services"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// DeliveryHandler exposes the eligibility checks. Both endpoints are public;
// a visitor can check deliverability before signing in.
type DeliveryHandler struct {
	service  service.DeliveryService
	validate *validator.Validate
}

func NewDeliveryHandler(svc service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{service: svc, validate: validator.New()}
}

func (h *DeliveryHandler) CheckPoint(w http.ResponseWriter, r *http.Request) {

	var req models.CheckPointRequest

	if !utils.ParseAndValidate(r, w, &req, h.validate) {
		return
	}

	assessment, err := h.service.CheckPoint(r.Context(), &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, assessment)
}

func (h *DeliveryHandler) CheckAddress(w http.ResponseWriter, r *http.Request) {

	var req models.CheckAddressRequest

	if !utils.ParseAndValidate(r, w, &req, h.validate) {
		return
	}

	assessment, err := h.service.CheckAddress(r.Context(), &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, assessment)
}
