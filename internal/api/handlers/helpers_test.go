package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, payload any) io.Reader {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// newAuthenticatedRequest builds a request carrying session claims the way
// the auth middleware would after verifying a token.
func newAuthenticatedRequest(t *testing.T, method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, body)

	claims := &models.Claims{UserID: userID, Phone: "+919999999999"}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}
