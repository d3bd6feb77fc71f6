package handlers

import (
	"net/http"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils/response"
	"github.com/google/uuid"
)

// requireUser extracts the authenticated user id, writing the error response
// itself when the session claims are missing.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return uuid.Nil, false
	}

	return claims.UserID, true
}
