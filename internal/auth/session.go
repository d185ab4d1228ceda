package auth

import (
	"context"

	"github.com/chetan-code/missioncontrol/internal/models"
)

// Session is the caller identity resolved by the auth middleware. It is the
// only place handlers read identity from.
type Session struct {
	UserID string
	Role   models.Role
}

func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// we are doing this to avoid collision with libraries
type contextKey string

const sessionKey contextKey = "session"

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok && s.UserID != ""
}
