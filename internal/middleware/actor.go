package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/crucial707/itadmin/internal/auth"
)

type key string

const ActorKey key = "actor_id"

// Actor identifies the acting user from an optional "Authorization: Bearer" token.
// Requests without the header continue anonymously; a header carrying an
// invalid token is rejected with 401.
func Actor(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				unauthorized(w, "invalid authorization header")
				return
			}
			userID, err := auth.Parse(secret, strings.TrimSpace(tokenStr))
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ActorKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorID returns the acting user's id, or nil for anonymous requests.
func ActorID(ctx context.Context) *int {
	if id, ok := ctx.Value(ActorKey).(int); ok {
		return &id
	}
	return nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
