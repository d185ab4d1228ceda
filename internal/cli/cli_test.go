package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/config"
	"github.com/chetan-code/missioncontrol/internal/db"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/chetan-code/missioncontrol/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCreateAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	dbPath := filepath.Join(t.TempDir(), "mc.db")
	envFile := filepath.Join(t.TempDir(), "none.env")

	out, err := runCmd(t, "create-admin", "--env-file", envFile, "--db", dbPath,
		"--email", "root@example.com", "--username", "root", "--password", "long enough")
	require.NoError(t, err)
	assert.Contains(t, out, "Created admin root")

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	u, err := repository.NewUserRepo(database).GetByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestCreateAdmin_RejectsShortPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSWORD", "")
	dbPath := filepath.Join(t.TempDir(), "mc.db")

	_, err := runCmd(t, "create-admin", "--env-file", filepath.Join(t.TempDir(), "none.env"), "--db", dbPath,
		"--email", "root@example.com", "--username", "root", "--password", "short")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCreateAdmin_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := runCmd(t, "create-admin", "--env-file", filepath.Join(t.TempDir(), "none.env"),
		"--db", filepath.Join(t.TempDir(), "mc.db"),
		"--email", "root@example.com", "--username", "root", "--password", "long enough")
	assert.Error(t, err)
}

func TestNewRouter_ServesAPI(t *testing.T) {
	database := testutil.NewTestDB(t)
	cfg := &config.Config{JWTSecret: "test-secret", Port: "0"}
	router, err := newRouter(cfg, database, auth.HashParams{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32})
	require.NoError(t, err)

	body := strings.NewReader(`{"email":"a@example.com","username":"alice","password":"long enough"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	req = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+res.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
