package handlers

import (
	"net/http"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	service "github.com/freshcutsco/meat-delivery-platform/internal/services"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service  service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc, validate: validator.New()}
}

func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {

	var req models.RequestCodeRequest

	if !utils.ParseAndValidate(r, w, &req, h.validate) {
		return
	}

	resp, err := h.service.RequestCode(r.Context(), &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, resp)
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {

	var req models.VerifyCodeRequest

	if !utils.ParseAndValidate(r, w, &req, h.validate) {
		return
	}

	resp, err := h.service.VerifyCode(r.Context(), &req)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, resp)
}

// Profile returns the user record behind the session token.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return
	}

	user, err := h.service.Profile(r.Context(), claims.Phone)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Success(w, http.StatusOK, user)
}
