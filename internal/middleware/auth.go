package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/AdamBeresnev/poule-board/internal/apiclient"
	users "github.com/AdamBeresnev/poule-board/internal/user"
	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionTokenKey    = "token"
	sessionUsernameKey = "username"
)

// SignIn stores the upstream bearer token in a fresh session.
func SignIn(ctx context.Context, sessionManager *scs.SessionManager, token, username string) error {
	if err := sessionManager.RenewToken(ctx); err != nil {
		return err
	}
	sessionManager.Put(ctx, sessionTokenKey, token)
	sessionManager.Put(ctx, sessionUsernameKey, username)
	return nil
}

func SignOut(ctx context.Context, sessionManager *scs.SessionManager) error {
	sessionManager.Remove(ctx, sessionTokenKey)
	sessionManager.Remove(ctx, sessionUsernameKey)
	return sessionManager.RenewToken(ctx)
}

// LoadSession puts the bearer token and the organizer of the session into the
// request context. Expired tokens are dropped from the session.
func LoadSession(sessionManager *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionManager.GetString(r.Context(), sessionTokenKey)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if TokenExpired(token, time.Now()) {
				slog.Info("session token expired, signing out")
				sessionManager.Remove(r.Context(), sessionTokenKey)
				sessionManager.Remove(r.Context(), sessionUsernameKey)
				next.ServeHTTP(w, r)
				return
			}

			ctx := apiclient.WithToken(r.Context(), token)
			ctx = users.WithOrganizer(ctx, &users.Organizer{
				Username: sessionManager.GetString(r.Context(), sessionUsernameKey),
				IsActive: true,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth sends anonymous requests to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthenticatedUser(r.Context()) == nil {
			RedirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectToLogin redirects the browser, using HX-Redirect for htmx requests
// so the whole page navigates instead of a fragment swap.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

func GetAuthenticatedUser(ctx context.Context) *users.Organizer {
	return users.FromContext(ctx)
}

// TokenExpired reads the exp claim without verifying the signature. The
// upstream API is the authority on validity; this only avoids sending a token
// that is known to be dead. Tokens that are not JWTs never expire here.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}

// ExpireOnUnauthorized signs the session out when the upstream API rejected
// its token and redirects to the login page. It reports whether it handled err.
func ExpireOnUnauthorized(sessionManager *scs.SessionManager, w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		return false
	}
	sessionManager.Remove(r.Context(), sessionTokenKey)
	sessionManager.Remove(r.Context(), sessionUsernameKey)
	RedirectToLogin(w, r)
	return true
}
