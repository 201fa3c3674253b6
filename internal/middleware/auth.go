package middleware

import (
	"context"
	"net/http"
	"strings"
)

// TokenParser validates a bearer token and returns the subject email.
type TokenParser interface {
	Parse(token string) (string, error)
}

type contextKey string

const userEmailKey contextKey = "user_email"

// UserEmail returns the authenticated user's email from the request context.
func UserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}

// RequireAuth is middleware that validates the Authorization: Bearer header
// and injects the subject email into the request context.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				http.Error(w, `{"detail":"not authenticated"}`, http.StatusUnauthorized)
				return
			}

			email, err := tokens.Parse(token)
			if err != nil {
				http.Error(w, `{"detail":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
