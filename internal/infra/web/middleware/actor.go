package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type actorKey struct{}

// Actor pulls the acting user from the X-User-ID header into the request
// context. Missing or malformed headers pass through as zero; the use cases
// reject an unresolved actor themselves.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get("X-User-ID"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), actorKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func ActorFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(actorKey{}).(int64)
	return id
}
