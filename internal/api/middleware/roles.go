package middleware

import (
	"log"
	"net/http"

	"github.com/dom/link-appender/internal/domain"
)

// RequireRole permits the request when the route declares no roles or the
// authenticated role is in the declared set. Must run after Auth.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqCtx, ok := GetRequestContext(r.Context())
			if !ok {
				log.Printf("ERROR [middleware.RequireRole] no request context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, role := range roles {
				if reqCtx.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Printf("ERROR [middleware.RequireRole] role %q not permitted for %s %s", reqCtx.Role, r.Method, r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}
