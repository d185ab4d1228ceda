package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/chetan-code/missioncontrol/internal/service"
	"github.com/chetan-code/missioncontrol/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t        *testing.T
	router   http.Handler
	services Services
}

func newTestAPI(t *testing.T, opts ...func(*Services)) *testAPI {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	users := repository.NewUserRepo(database)
	tasks := repository.NewTaskRepo(database)

	hasher := auth.NewPasswordHasher(auth.HashParams{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32})
	tokens, err := auth.NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)
	identity, err := service.NewIdentityService(users, hasher, tokens)
	require.NoError(t, err)

	s := Services{
		Identity:  identity,
		Tasks:     service.NewTaskService(tasks, uow),
		Taxonomy:  service.NewTaxonomyService(repository.NewTaxonomyRepo(database), uow),
		Admin:     service.NewAdminService(users, hasher),
		Dashboard: service.NewDashboardService(users, tasks),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &testAPI{t: t, router: NewRouter(s), services: s}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) doWithHeader(method, path, key, value string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(key, value)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register signs up a fresh user and returns its token and id.
func (a *testAPI) register(email, username string) (string, string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "username": username, "password": "long enough",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var res service.AuthResult
	decode(a.t, rec, &res)
	return res.Token, res.User.ID
}

func (a *testAPI) admin(email, username string) (string, string) {
	a.t.Helper()
	u, err := a.services.Admin.CreateAdmin(context.Background(), email, username, "long enough")
	require.NoError(a.t, err)
	res, err := a.services.Identity.Login(context.Background(), email, "long enough")
	require.NoError(a.t, err)
	return res.Token, u.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	decode(t, rec, &body)
	return body.Error
}
