package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/google/uuid"
)

type identityService struct {
	users  repository.UserRepo
	hasher *auth.PasswordHasher
	tokens *auth.TokenIssuer
	// verified against when the email is unknown so both login failures cost the same
	dummyHash string
}

func NewIdentityService(users repository.UserRepo, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) (IdentityService, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("preparing dummy hash: %w", err)
	}
	return &identityService{users: users, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

func (s *identityService) Register(ctx context.Context, email, username, password string) (*AuthResult, error) {
	u, err := newUser(s.hasher, email, username, password, models.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "user_registered", "user_id", u.ID)
	return s.issue(u)
}

func (s *identityService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		_, _ = s.hasher.Verify(password, s.dummyHash)
		return nil, errInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		slog.ErrorContext(ctx, "password_hash_unreadable", "user_id", u.ID, "error", err)
		return nil, errInvalidCredentials
	}
	if !ok {
		return nil, errInvalidCredentials
	}
	return s.issue(u)
}

// LoginWithProvider signs in an existing account whose email an external
// identity provider has already vouched for. Unknown emails are not
// registered on the fly.
func (s *identityService) LoginWithProvider(ctx context.Context, email string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account for this provider email", models.ErrUnauthorized)
		}
		return nil, err
	}
	return s.issue(u)
}

func (s *identityService) VerifyToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// CurrentUser resolves a token subject. Tokens outlive account deletion, so
// NotFound here is expected rather than exceptional.
func (s *identityService) CurrentUser(ctx context.Context, userID string) (*models.UserPublic, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

// Directory lists every account for assignee pickers.
func (s *identityService) Directory(ctx context.Context) ([]models.UserPublic, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *identityService) issue(u *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u.Public()}, nil
}

// one value for "no such account" and "wrong password"
var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)

// newUser validates registration input and hashes the password.
func newUser(hasher *auth.PasswordHasher, email, username, password string, role models.Role) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	username, err = normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
