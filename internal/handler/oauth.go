package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chetan-code/missioncontrol/internal/config"
	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/service"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

/*
gothic keeps the OAuth state in a short lived cookie and compares it on the
callback, so the login round trip must have started from this app.
Protection from cross site request forgery
*/
func SetupGothic(g config.Google, cookieKey []byte, secure bool) {
	goth.UseProviders(
		google.New(g.ClientID, g.ClientSecret, g.CallbackURL, "email", "profile"),
	)

	store := sessions.NewCookieStore(cookieKey)
	store.MaxAge(600) //only needs to survive the consent screen
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure

	gothic.Store = store
}

// GoogleAuth signs existing accounts in through Google. It never creates
// accounts: the Google email must already be registered.
type GoogleAuth struct {
	identity service.IdentityService
	begin    func(http.ResponseWriter, *http.Request)
	complete func(http.ResponseWriter, *http.Request) (goth.User, error)
}

func NewGoogleAuth(identity service.IdentityService) *GoogleAuth {
	return &GoogleAuth{
		identity: identity,
		begin:    gothic.BeginAuthHandler,
		complete: gothic.CompleteUserAuth,
	}
}

func (g *GoogleAuth) Begin(w http.ResponseWriter, r *http.Request) {
	//gothic look for provider query by default
	//forcing to use google
	q := r.URL.Query()
	q.Set("provider", "google")
	r.URL.RawQuery = q.Encode()

	g.begin(w, r)
}

func (g *GoogleAuth) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	q.Set("provider", "google")
	r.URL.RawQuery = q.Encode()

	user, err := g.complete(w, r)
	if err != nil {
		slog.WarnContext(r.Context(), "oauth_callback_failed", "error", err)
		writeError(w, r, fmt.Errorf("%w: google sign-in failed", models.ErrUnauthorized))
		return
	}
	if user.Email == "" {
		writeError(w, r, fmt.Errorf("%w: google account has no email", models.ErrUnauthorized))
		return
	}

	res, err := g.identity.LoginWithProvider(r.Context(), user.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "oauth_login_success", "user_id", res.User.ID, "provider", "google")
	writeJSON(w, http.StatusOK, res)
}
