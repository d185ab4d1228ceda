package service

import (
	"database/sql"
	"testing"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/chetan-code/missioncontrol/internal/testutil"
	"github.com/stretchr/testify/require"
)

// cheap argon2 settings so tests don't spend 64MiB per hash
var testHashParams = auth.HashParams{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

type testEnv struct {
	db       *sql.DB
	users    *repository.SQLUserRepo
	tasks    *repository.SQLTaskRepo
	taxonomy *repository.SQLTaxonomyRepo
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenIssuer
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	tokens, err := auth.NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)
	return &testEnv{
		db:       database,
		users:    repository.NewUserRepo(database),
		tasks:    repository.NewTaskRepo(database),
		taxonomy: repository.NewTaxonomyRepo(database),
		hasher:   auth.NewPasswordHasher(testHashParams),
		tokens:   tokens,
	}
}

func (e *testEnv) identity(t *testing.T) IdentityService {
	t.Helper()
	svc, err := NewIdentityService(e.users, e.hasher, e.tokens)
	require.NoError(t, err)
	return svc
}

func (e *testEnv) taskService() TaskService {
	return NewTaskService(e.tasks, testutil.NewTestUoW(e.db))
}

func (e *testEnv) taxonomyService() TaxonomyService {
	return NewTaxonomyService(e.taxonomy, testutil.NewTestUoW(e.db))
}

func (e *testEnv) adminService() AdminService {
	return NewAdminService(e.users, e.hasher)
}

func strPtr(s string) *string { return &s }
