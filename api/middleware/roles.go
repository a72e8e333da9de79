package middleware

import (
	"net/http"

	"github.com/serpcat/serp-backend/api/responses"
	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

// RequireRole guards a subtree so only the listed roles may pass. Denied
// actors are pointed at their own landing route.
func RequireRole(logg *logger.Logger, allowed ...enums.UserRole) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		roleSet[string(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := RoleFromContext(r.Context())
			if _, ok := roleSet[actor]; !ok {
				redirect := enums.LoginRoute
				if role, err := enums.ParseUserRole(actor); err == nil {
					redirect = role.DefaultRoute()
				}
				err := pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role").
					WithDetails(map[string]string{"redirect_to": redirect})
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
