package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/repository"
)

type adminService struct {
	users  repository.UserRepo
	hasher *auth.PasswordHasher
}

func NewAdminService(users repository.UserRepo, hasher *auth.PasswordHasher) AdminService {
	return &adminService{users: users, hasher: hasher}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.UserPublic, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func publicUsers(users []models.User) []models.UserPublic {
	out := make([]models.UserPublic, len(users))
	for i := range users {
		out[i] = users[i].Public()
	}
	return out
}

// SetRole changes another account's role. Re-applying the current role is
// a successful no-op.
func (s *adminService) SetRole(ctx context.Context, callerID, id string, role models.Role) (*models.UserPublic, error) {
	if callerID == id {
		return nil, fmt.Errorf("%w: cannot change your own role", models.ErrForbidden)
	}
	if !role.Valid() {
		return nil, invalid("role must be 'user' or 'admin'")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		u.Role = role
		u.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, u); err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "user_role_changed", "user_id", id, "role", role, "by", callerID)
	}
	pub := u.Public()
	return &pub, nil
}

func (s *adminService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.UserPublic, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		if u.Email, err = normalizeEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Username != nil {
		if u.Username, err = normalizeUsername(*in.Username); err != nil {
			return nil, err
		}
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

func (s *adminService) DeleteUser(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return fmt.Errorf("%w: cannot delete your own account", models.ErrForbidden)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "user_deleted", "user_id", id, "by", callerID)
	return nil
}

// CreateAdmin provisions an admin account directly. Registration never
// grants admin, so this is how the first admin comes to exist.
func (s *adminService) CreateAdmin(ctx context.Context, email, username, password string) (*models.UserPublic, error) {
	u, err := newUser(s.hasher, email, username, password, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}
