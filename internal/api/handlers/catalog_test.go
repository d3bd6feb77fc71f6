package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/handlers"
	"github.com/freshcutsco/meat-delivery-platform/internal/catalog"
	"github.com/freshcutsco/meat-delivery-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalogHandler(t *testing.T) *handlers.CatalogHandler {
	t.Helper()

	sale := 239.0

	cat, err := catalog.New([]models.Product{
		{ID: 1, Name: "Chicken Curry Cut", Price: 320, SalePrice: &sale, Category: "chicken"},
		{ID: 2, Name: "Mutton Shoulder", Price: 660, Category: "mutton"},
	})
	require.NoError(t, err)

	return handlers.NewCatalogHandler(cat)
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	t.Run("Success - All Products", func(t *testing.T) {
		handler := testCatalogHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rec := httptest.NewRecorder()

		handler.ListProducts(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.Len(t, envelope["data"], 2)
	})

	t.Run("Success - Category Filter", func(t *testing.T) {
		handler := testCatalogHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=mutton", nil)
		rec := httptest.NewRecorder()

		handler.ListProducts(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.Len(t, envelope["data"], 1)
	})
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler := testCatalogHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/1", nil)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()

		handler.GetProduct(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		handler := testCatalogHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil)
		req.SetPathValue("id", "42")
		rec := httptest.NewRecorder()

		handler.GetProduct(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Failure - Non-Numeric Id", func(t *testing.T) {
		handler := testCatalogHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/ribeye", nil)
		req.SetPathValue("id", "ribeye")
		rec := httptest.NewRecorder()

		handler.GetProduct(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCatalogHandler_ListCategories(t *testing.T) {
	t.Run("Success - Sorted Unique Categories", func(t *testing.T) {
		handler := testCatalogHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products/categories", nil)
		rec := httptest.NewRecorder()

		handler.ListCategories(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, []any{"chicken", "mutton"}, envelope["data"])
	})
}
