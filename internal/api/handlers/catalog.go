package handlers

import (
	"net/http"
	"strconv"

	"github.com/freshcutsco/meat-delivery-platform/internal/catalog"
	"github.com/freshcutsco/meat-delivery-platform/internal/errors"
	"github.com/freshcutsco/meat-delivery-platform/internal/utils/response"
)

// CatalogHandler serves the read-only product reference table.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// ListProducts returns the full catalog, optionally filtered by category.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {

	category := r.URL.Query().Get("category")

	products := h.catalog.List()

	if category != "" {
		filtered := products[:0:0]
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}

		products = filtered
	}

	response.Success(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.Error(w, errors.BadRequestError("Product id must be an integer"))
		return
	}

	product, ok := h.catalog.Lookup(id)
	if !ok {
		response.Error(w, errors.NotFoundError("Product not found"))
		return
	}

	response.Success(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, http.StatusOK, h.catalog.Categories())
}
