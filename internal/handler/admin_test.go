package handler

import (
	"net/http"
	"testing"

	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_NonAdminForbidden(t *testing.T) {
	api := newTestAPI(t)
	token, _ := api.register("alice@example.com", "alice")

	rec := api.do(http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdmin_RoleLifecycle(t *testing.T) {
	api := newTestAPI(t)
	rootToken, rootID := api.admin("root@example.com", "root")
	userToken, userID := api.register("bob@example.com", "bob")

	rec := api.do(http.MethodPut, "/api/admin/users/"+rootID+"/role", rootToken, map[string]string{"role": "user"})
	assert.Equal(t, http.StatusForbidden, rec.Code, "no self demotion")

	rec = api.do(http.MethodPut, "/api/admin/users/"+userID+"/role", rootToken, map[string]string{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, "/api/admin/users/"+userID+"/role", rootToken, map[string]string{"role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code)

	// bob's existing token now passes the admin check
	rec = api.do(http.MethodGet, "/api/admin/users", userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.UserPublic
	decode(t, rec, &users)
	assert.Len(t, users, 2)

	// and is refused again right after a demotion
	rec = api.do(http.MethodPut, "/api/admin/users/"+userID+"/role", rootToken, map[string]string{"role": "user"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdmin_UpdateAndDelete(t *testing.T) {
	api := newTestAPI(t)
	rootToken, rootID := api.admin("root@example.com", "root")
	_, userID := api.register("carol@example.com", "carol")
	api.register("dave@example.com", "dave")

	rec := api.do(http.MethodPut, "/api/admin/users/"+userID, rootToken, map[string]string{"username": "caroline"})
	require.Equal(t, http.StatusOK, rec.Code)
	var u models.UserPublic
	decode(t, rec, &u)
	assert.Equal(t, "caroline", u.Username)
	assert.Equal(t, "carol@example.com", u.Email)

	rec = api.do(http.MethodPut, "/api/admin/users/"+userID, rootToken, map[string]string{"email": "dave@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodDelete, "/api/admin/users/"+rootID, rootToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodDelete, "/api/admin/users/"+userID, rootToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodDelete, "/api/admin/users/"+userID, rootToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_DeletedCallerIsUnauthorized(t *testing.T) {
	api := newTestAPI(t)
	rootToken, _ := api.admin("root@example.com", "root")
	otherToken, otherID := api.admin("second@example.com", "second")

	rec := api.do(http.MethodDelete, "/api/admin/users/"+otherID, rootToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/admin/users", otherToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
