package httpapi

import (
	"net/http"
	"strings"

	"entrega.dev/internal/catalog"
)

type categoryRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Keyword     string `json:"keyword"`
	Image       string `json:"image"`
}

func (req *categoryRequest) toCategory() *catalog.Category {
	return &catalog.Category{
		ID:          req.ID,
		Description: req.Description,
		Keyword:     req.Keyword,
		Image:       req.Image,
	}
}

func (a *API) handleCategoriesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listCategories(w, r)
	case http.MethodPost:
		a.createCategory(w, r)
	case http.MethodPut:
		a.updateCategory(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodPut)
	}
}

func (a *API) handleCategoryResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/categories/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if q, ok := strings.CutPrefix(path, "keyword/"); ok {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.searchCategoriesByKeyword(w, r, q)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getCategory(w, r, path)
	case http.MethodDelete:
		a.deleteCategory(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List(r.Context())
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	if categories == nil {
		categories = []*catalog.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.ID = ""
	category := req.toCategory()
	if err := category.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.categories.Create(r.Context(), category); err != nil {
		handleCatalogError(w, r, err)
		return
	}

	a.audit(r.Context(), "catalog.category.create", "category", category.ID, map[string]any{
		"description": category.Description,
	})

	w.Header().Set("Location", "/categories/"+category.ID)
	writeJSON(w, http.StatusCreated, category)
}

func (a *API) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, r, http.StatusBadRequest, "id is required")
		return
	}
	category := req.toCategory()
	if err := category.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.categories.Update(r.Context(), category); err != nil {
		handleCatalogError(w, r, err)
		return
	}

	updated, err := a.categories.Find(r.Context(), category.ID)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}

	a.audit(r.Context(), "catalog.category.update", "category", updated.ID, nil)

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) getCategory(w http.ResponseWriter, r *http.Request, id string) {
	category, err := a.categories.Find(r.Context(), id)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (a *API) deleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.categories.Delete(r.Context(), id); err != nil {
		handleCatalogError(w, r, err)
		return
	}
	a.audit(r.Context(), "catalog.category.delete", "category", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) searchCategoriesByKeyword(w http.ResponseWriter, r *http.Request, keyword string) {
	categories, err := a.categories.SearchByKeyword(r.Context(), keyword)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	if categories == nil {
		categories = []*catalog.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}
