package middleware

import (
	"net/http"

	"github.com/estately-app/estately-backend/internal/session"
)

// SessionScope puts the distributor into every request context, the
// explicit provider boundary: handlers resolving session state outside
// this middleware panic rather than read ambient globals.
func SessionScope(d *session.Distributor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := session.NewContext(r.Context(), d)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
