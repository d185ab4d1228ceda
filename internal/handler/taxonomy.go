package handler

import (
	"net/http"

	"github.com/chetan-code/missioncontrol/internal/service"
	"github.com/go-chi/chi/v5"
)

// TaxonomyHandler serves the category / type / item tree under /api/cti.
type TaxonomyHandler struct {
	taxonomy service.TaxonomyService
}

func NewTaxonomyHandler(taxonomy service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomy: taxonomy}
}

type taxonomyRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	TypeID     string `json:"type_id"`
}

func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.taxonomy.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req taxonomyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.taxonomy.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *TaxonomyHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaxonomyHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.taxonomy.ListTypes(r.Context(), r.URL.Query().Get("category_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *TaxonomyHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req taxonomyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	t, err := h.taxonomy.CreateType(r.Context(), req.Name, req.CategoryID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaxonomyHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeleteType(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaxonomyHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.taxonomy.ListItems(r.Context(), r.URL.Query().Get("type_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *TaxonomyHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req taxonomyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	i, err := h.taxonomy.CreateItem(r.Context(), req.Name, req.TypeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, i)
}

func (h *TaxonomyHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
