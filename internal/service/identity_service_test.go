package service

import (
	"context"
	"testing"

	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityService_RegisterLoginVerify(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "  Alice@Example.com ", "alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.Equal(t, models.RoleUser, reg.User.Role)

	login, err := svc.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	sub, err := svc.VerifyToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sub)

	me, err := svc.CurrentUser(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
}

func TestIdentityService_Register_StoresArgonHash(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "bob@example.com", "bob", "hunter2hunter2")
	require.NoError(t, err)

	stored, err := env.users.GetByID(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.PasswordHash, "hunter2hunter2")
	assert.Contains(t, stored.PasswordHash, "$argon2id$")
}

func TestIdentityService_Register_Validation(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"short password", "a@example.com", "alice", "short"},
		{"empty email", "", "alice", "long enough"},
		{"malformed email", "not-an-email", "alice", "long enough"},
		{"display name email", "Alice <a@example.com>", "alice", "long enough"},
		{"empty username", "a@example.com", "  ", "long enough"},
		{"username with spaces", "a@example.com", "al ice", "long enough"},
		{"username too short", "a@example.com", "al", "long enough"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.username, tc.password)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}

	count, err := env.users.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestIdentityService_Register_Conflicts(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol@example.com", "carol", "long enough")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "CAROL@example.com", "carol2", "long enough")
	assert.ErrorIs(t, err, models.ErrConflict, "email compare is case-insensitive")

	_, err = svc.Register(ctx, "other@example.com", "carol", "long enough")
	assert.ErrorIs(t, err, models.ErrConflict)

	count, err := env.users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIdentityService_Login_FailuresAreIndistinguishable(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dave@example.com", "dave", "long enough")
	require.NoError(t, err)

	_, wrongPw := svc.Login(ctx, "dave@example.com", "wrong password")
	_, unknown := svc.Login(ctx, "nobody@example.com", "long enough")

	require.ErrorIs(t, wrongPw, models.ErrUnauthorized)
	require.ErrorIs(t, unknown, models.ErrUnauthorized)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestIdentityService_VerifyToken_RejectsGarbage(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)

	_, err := svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestIdentityService_CurrentUser_DeletedAccount(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "erin@example.com", "erin", "long enough")
	require.NoError(t, err)
	require.NoError(t, env.users.Delete(ctx, reg.User.ID))

	sub, err := svc.VerifyToken(reg.Token)
	require.NoError(t, err, "tokens outlive their account")

	_, err = svc.CurrentUser(ctx, sub)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestIdentityService_LoginWithProvider(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	u := testutil.NewTestUser(testutil.WithEmail("frank@example.com"))
	require.NoError(t, env.users.Create(ctx, u))

	res, err := svc.LoginWithProvider(ctx, "Frank@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	_, err = svc.LoginWithProvider(ctx, "stranger@example.com")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestIdentityService_Directory(t *testing.T) {
	env := setupEnv(t)
	svc := env.identity(t)
	ctx := context.Background()

	users, err := svc.Directory(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, env.users.Create(ctx, testutil.NewTestUser()))
	require.NoError(t, env.users.Create(ctx, testutil.NewTestUser()))

	users, err = svc.Directory(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
