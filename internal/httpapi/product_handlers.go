package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"entrega.dev/internal/auth"
	"entrega.dev/internal/catalog"
)

type productRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Image       string `json:"image"`
	NutriScore  string `json:"nutri_score"`
	Ingredients string `json:"ingredients"`
	CategoryID  string `json:"category_id"`
	UserID      string `json:"user_id"`
}

func (req *productRequest) toProduct() *catalog.Product {
	return &catalog.Product{
		ID:          req.ID,
		Name:        req.Name,
		PriceCents:  req.PriceCents,
		Image:       req.Image,
		NutriScore:  req.NutriScore,
		Ingredients: req.Ingredients,
		CategoryID:  req.CategoryID,
		UserID:      req.UserID,
	}
}

func (a *API) handleProductsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listProducts(w, r)
	case http.MethodPost:
		a.createProduct(w, r)
	case http.MethodPut:
		a.updateProduct(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodPut)
	}
}

func (a *API) handleProductResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/products/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if q, ok := strings.CutPrefix(path, "name/"); ok {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.searchProductsByName(w, r, q)
		return
	}
	if rest, ok := strings.CutPrefix(path, "price/"); ok {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.listProductsByPrice(w, r, rest)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getProduct(w, r, path)
	case http.MethodDelete:
		a.deleteProduct(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.products.List(r.Context())
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	if products == nil {
		products = []*catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.ID = ""
	product := req.toProduct()
	if err := product.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !a.checkProductReferences(w, r, product) {
		return
	}
	if err := a.products.Create(r.Context(), product); err != nil {
		handleCatalogError(w, r, err)
		return
	}

	a.audit(r.Context(), "catalog.product.create", "product", product.ID, map[string]any{
		"name":        product.Name,
		"price_cents": product.PriceCents,
	})

	w.Header().Set("Location", "/products/"+product.ID)
	writeJSON(w, http.StatusCreated, product)
}

func (a *API) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}
	product := req.toProduct()
	if err := product.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if !a.checkProductReferences(w, r, product) {
		return
	}
	if err := a.products.Update(r.Context(), product); err != nil {
		handleCatalogError(w, r, err)
		return
	}

	updated, err := a.products.Find(r.Context(), product.ID)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}

	a.audit(r.Context(), "catalog.product.update", "product", updated.ID, nil)

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request, id string) {
	product, err := a.products.Find(r.Context(), id)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.products.Delete(r.Context(), id); err != nil {
		handleCatalogError(w, r, err)
		return
	}
	a.audit(r.Context(), "catalog.product.delete", "product", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) searchProductsByName(w http.ResponseWriter, r *http.Request, name string) {
	products, err := a.products.SearchByName(r.Context(), name)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	if products == nil {
		products = []*catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// listProductsByPrice serves price/below/{cents} and price/above/{cents}.
func (a *API) listProductsByPrice(w http.ResponseWriter, r *http.Request, rest string) {
	direction, raw, ok := strings.Cut(rest, "/")
	if !ok {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	cents, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || cents < 0 {
		writeError(w, r, http.StatusBadRequest, "price must be a non-negative integer of cents")
		return
	}

	var products []*catalog.Product
	switch direction {
	case "below":
		products, err = a.products.ListPriceBelow(r.Context(), cents)
	case "above":
		products, err = a.products.ListPriceAbove(r.Context(), cents)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	if products == nil {
		products = []*catalog.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// checkProductReferences rejects products pointing at unknown categories or
// owners. Reports whether the request may proceed.
func (a *API) checkProductReferences(w http.ResponseWriter, r *http.Request, p *catalog.Product) bool {
	if _, err := a.categories.Find(r.Context(), p.CategoryID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "unknown category")
			return false
		}
		handleCatalogError(w, r, err)
		return false
	}
	if _, err := a.users.Find(r.Context(), p.UserID); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "unknown user")
			return false
		}
		handleAuthError(w, r, err)
		return false
	}
	return true
}

func handleCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidProduct), errors.Is(err, catalog.ErrInvalidCategory):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
