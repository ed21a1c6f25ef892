package transport

import (
	"errors"
	"net/http"
	"strconv"

	"shopfront-be/internal/logger"
	"shopfront-be/internal/product"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load products.")
		return
	}

	if products == nil {
		products = []product.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id.")
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found.")
			return
		}
		logger.FromCtx(r.Context()).Error("product detail failed",
			zap.Int("product_id", id),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to load product.")
		return
	}

	writeJSON(w, http.StatusOK, p)
}
