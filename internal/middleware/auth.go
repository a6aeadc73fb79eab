package middleware

import (
	"context"
	"net/http"
	"strings"
)

// SubjectFunc resolves a bearer token to the email it was issued for.
type SubjectFunc func(token string) (string, error)

// EmailFromContext returns the logged-in email, or "" for anonymous calls.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// Session reads an optional "Authorization: Bearer <token>" header.
// A valid token puts its email into the request context. With required
// set, a missing or bad token is rejected with 401; otherwise the request
// continues anonymously.
func Session(subject SubjectFunc, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearer(r.Header.Get("Authorization"))
			if token == "" {
				if required {
					writeJSONError(w, http.StatusUnauthorized, "Login required")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			email, err := subject(token)
			if err != nil {
				if required {
					writeJSONError(w, http.StatusUnauthorized, "Session expired, please log in again")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), emailKey, email)))
		})
	}
}

func bearer(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
