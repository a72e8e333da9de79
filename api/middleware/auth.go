package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/api/responses"
	"github.com/serpcat/serp-backend/api/validators"
	pkgauth "github.com/serpcat/serp-backend/pkg/auth"
	"github.com/serpcat/serp-backend/pkg/config"
	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

// SessionChecker confirms that an access token still belongs to the user's
// live session. A new login replaces the session, invalidating older tokens.
type SessionChecker interface {
	HasSession(ctx context.Context, userID uuid.UUID, accessID string) (bool, error)
}

func unauthenticated(message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, message).
		WithDetails(map[string]string{"redirect_to": enums.LoginRoute})
}

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, sessions SessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := validators.BearerToken(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, unauthenticated("invalid or expired token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, unauthenticated("token missing session id"))
				return
			}

			if sessions != nil {
				ok, err := sessions.HasSession(r.Context(), claims.UserID, claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, unauthenticated("session expired"))
					return
				}
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
