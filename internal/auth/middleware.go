package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mlaurent/pantry-planner/internal/model"
	"github.com/mlaurent/pantry-planner/internal/repository"
)

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "user", u), ANY package that knows the string "user"
// can read or shadow your value. Using a package-private type prevents
// collisions: only this package can create a key of type contextKey.
type contextKey string

const userKey contextKey = "user"

// TokenCookie is the name of the cookie checked when no Authorization header
// is present. Browser clients that can't set headers (plain form posts,
// server-side redirects) rely on it.
const TokenCookie = "token"

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// Per-request state machine: no token → 401; token present but invalid or
// expired → 401; token valid but the user record no longer exists → 401;
// otherwise the resolved *model.User is stored in the request context and the
// chain continues. A rejected request is terminal — the client must
// re-authenticate, the server never retries.
//
// TOKEN SOURCES, IN ORDER:
//  1. "Authorization: Bearer <token>" header (API clients)
//  2. "token" cookie (browser fallback)
//
// WHY RESOLVE THE USER HERE AND NOT IN EACH HANDLER?
// The JWT only proves "this token was issued for user X at some point".
// The account may have been deleted since. Loading the record once in the
// middleware means every downstream handler can trust that the user in the
// context exists right now, and handlers never repeat the lookup.
func RequireAuth(tokens *TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				unauthorized(w)
				return
			}

			userID, err := tokens.Validate(tokenStr)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				// Valid token for an account that no longer exists.
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user from the request context.
//
// Returns (nil, false) if the request did not pass through RequireAuth —
// which on protected routes indicates a wiring bug, not a client error.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// extractToken pulls the JWT out of the request: Authorization header first,
// cookie fallback. Returns "" when neither is present.
func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return token
		}
	}
	if cookie, err := r.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// unauthorized writes the 401 envelope the rest of the API uses. The body is
// inlined rather than importing the handler package — auth must not depend
// on the layer above it.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"valid authentication required","error":"unauthorized"}`))
}
