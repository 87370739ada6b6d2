package middleware

import "net/http"

// RequireRole rejects requests whose token role is not in the allowed set.
// It must run after AuthJWT.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allow := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allow[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if _, ok := allow[role]; !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
