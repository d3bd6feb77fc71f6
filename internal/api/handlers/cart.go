package handlers

import (
	"net/http"

	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	service "github.com/freshcutsco/meat-delivery-platform/internal/services"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	service  service.CartService
	validate *validator.Validate
}

func NewCartHandler(svc service.CartService) *CartHandler {
	return &CartHandler{service: svc, validate: validator.New()}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, summary)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.AddItemRequest

	if !utils.ParseAndValidate(r, w, &req, h.validate) {
		return
	}

	summary, err := h.service.AddItem(r.Context(), userID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, summary)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	lineID := r.PathValue("lineId")
	if lineID == "" {
		response.Error(w, errors.BadRequestError("Line id is required"))
		return
	}

	summary, err := h.service.RemoveItem(r.Context(), userID, lineID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, summary)
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest

	if !utils.ParseAndValidate(r, w, &req, h.validate) {
		return
	}

	summary, err := h.service.SetQuantity(r.Context(), userID, &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, summary)
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

func (h *CartHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req visibilityRequest

	if err := utils.DecodeJSONBody(r, &req); err != nil {
		response.Error(w, errors.BadRequestError("Failed to parse request body"))
		return
	}

	if err := h.service.SetVisibility(r.Context(), userID, req.Visible); err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, nil)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Clear(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, summary)
}
