package auth

import (
	"github.com/serpcat/serp-backend/internal/users"
)

// LoginInput is the validated credential payload.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries everything the client needs after authenticating.
type LoginResult struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	RedirectTo   string         `json:"redirect_to"`
	User         *users.UserDTO `json:"user"`
}

// SessionDTO describes the authenticated session for the frontend router.
type SessionDTO struct {
	User       *users.UserDTO `json:"user"`
	RedirectTo string         `json:"redirect_to"`
}

// RefreshInput carries the expired access token plus the refresh token.
type RefreshInput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshResult carries the replacement token pair.
type RefreshResult struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
