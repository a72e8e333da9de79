package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
)

// BearerToken extracts the raw JWT from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authorization header")
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(header[7:])
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "empty bearer token")
	}
	return token, nil
}
