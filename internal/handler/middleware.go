package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/service"
	"github.com/go-chi/chi/v5/middleware"
)

func loggerMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		//logging completion of a request
		slog.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"ip", r.RemoteAddr,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			//how long does it take a req to complete
			"duration", time.Since(start).String(),
		)
	})
}

var errMissingToken = fmt.Errorf("%w: missing bearer token", models.ErrUnauthorized)

// AuthMiddleware admits requests carrying a valid bearer token and puts the
// caller's session on the context. The role is left unset.
func AuthMiddleware(identity service.IdentityService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, r, errMissingToken)
				return
			}
			userID, err := identity.VerifyToken(token)
			if err != nil {
				writeError(w, r, err)
				return
			}
			ctx := auth.WithSession(r.Context(), auth.Session{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware must run after AuthMiddleware. It looks the caller up on
// every request so a demotion takes effect on the next call.
func AdminMiddleware(identity service.IdentityService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := auth.SessionFromContext(r.Context())
			if !ok {
				writeError(w, r, errMissingToken)
				return
			}
			me, err := identity.CurrentUser(r.Context(), sess.UserID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					err = fmt.Errorf("%w: account no longer exists", models.ErrUnauthorized)
				}
				writeError(w, r, err)
				return
			}
			if me.Role != models.RoleAdmin {
				slog.WarnContext(r.Context(), "admin_access_denied", "user_id", me.ID, "path", r.URL.Path)
				writeError(w, r, fmt.Errorf("%w: admin role required", models.ErrForbidden))
				return
			}
			sess.Role = me.Role
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// sessionFrom is only called behind AuthMiddleware.
func sessionFrom(r *http.Request) auth.Session {
	s, _ := auth.SessionFromContext(r.Context())
	return s
}
