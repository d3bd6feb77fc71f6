package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	appErrors "github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"log/slog"
)

func DecodeJSONBody(r *http.Request, dest any) error {

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("failed to parse request body: %w", err)
	}

	return nil
}

// ParseAndValidate decodes the body into dest and runs struct validation,
// writing the error response itself. Returns false when the handler should
// stop.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	logger := middleware.LoggerFromContext(r.Context())

	if err := DecodeJSONBody(r, dest); err != nil {
		logger.Warn("Invalid request body", slog.String("error", err.Error()))
		response.Error(w, appErrorBadBody())
		return false
	}

	if err := validate.Struct(dest); err != nil {

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			logger.Warn("Validation failed", slog.String("error", err.Error()))
			response.ValidationError(w, validationErrs)
			return false
		}

		logger.Warn("Validation failed", slog.String("error", err.Error()))
		response.Error(w, appErrorBadBody())
		return false
	}

	return true
}

func appErrorBadBody() error {
	return appErrors.BadRequestError("Failed to parse request body")
}
