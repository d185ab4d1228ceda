package handler

import (
	"net/http"
	"testing"

	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomy_TreeAndCascade(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register("alice@example.com", "alice")

	rec := api.do(http.MethodPost, "/api/cti/categories", token, map[string]string{"name": "Network"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cat models.Category
	decode(t, rec, &cat)

	rec = api.do(http.MethodPost, "/api/cti/types", token, map[string]string{"name": "Firewall", "category_id": cat.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var typ models.Type
	decode(t, rec, &typ)

	rec = api.do(http.MethodPost, "/api/cti/items", token, map[string]string{"name": "Rule change", "type_id": typ.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item models.Item
	decode(t, rec, &item)

	task := createTask(t, api, token, map[string]any{
		"title": "Open port", "description": "443",
		"cti": map[string]string{"category_id": cat.ID, "type_id": typ.ID, "item_id": item.ID},
	})
	require.NotNil(t, task.TaxonomyLabel)
	assert.Equal(t, "Network / Firewall / Rule change", task.TaxonomyLabel.Label)

	rec = api.do(http.MethodGet, "/api/cti/types?category_id="+cat.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var types []models.Type
	decode(t, rec, &types)
	assert.Len(t, types, 1)

	rec = api.do(http.MethodDelete, "/api/cti/categories/"+cat.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/cti/items?type_id="+typ.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/tasks/"+task.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Task
	decode(t, rec, &got)
	require.NotNil(t, got.TaxonomyLabel)
	assert.Equal(t, models.UnresolvedLabel, got.TaxonomyLabel.Label)
}

func TestTaxonomy_Errors(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register("bob@example.com", "bob")

	rec := api.do(http.MethodPost, "/api/cti/categories", token, map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/cti/types", token, map[string]string{"name": "x", "category_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, "/api/cti/items/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/cti/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
