package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/serpcat/serp-backend/internal/users"
	pkgauth "github.com/serpcat/serp-backend/pkg/auth"
	"github.com/serpcat/serp-backend/pkg/auth/session"
	"github.com/serpcat/serp-backend/pkg/config"
	"github.com/serpcat/serp-backend/pkg/db/models"
	"github.com/serpcat/serp-backend/pkg/enums"
	pkgerrors "github.com/serpcat/serp-backend/pkg/errors"
	"github.com/serpcat/serp-backend/pkg/logger"
)

// Service authenticates operators and manages their sessions.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Refresh(ctx context.Context, input RefreshInput) (*RefreshResult, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Session(ctx context.Context, userID uuid.UUID) (*SessionDTO, error)
}

type userReader interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type passwordVerifier interface {
	Verify(password, encoded string) error
}

type sessionManager interface {
	Generate(ctx context.Context, userID uuid.UUID) (session.Tokens, error)
	Rotate(ctx context.Context, userID uuid.UUID, refreshToken string) (session.Tokens, error)
	Revoke(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	users    userReader
	verifier passwordVerifier
	sessions sessionManager
	jwtCfg   config.JWTConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs the auth service.
func NewService(usersRepo userReader, verifier passwordVerifier, sessions sessionManager, jwtCfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if usersRepo == nil {
		return nil, fmt.Errorf("user reader required")
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		users:    usersRepo,
		verifier: verifier,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Login verifies credentials and opens a fresh session. Unknown emails and
// wrong passwords produce the same response so the endpoint cannot be used
// to probe for accounts.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	if err := s.verifier.Verify(input.Password, user.PasswordHash); err != nil {
		return nil, invalidCredentials()
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled").
			WithDetails(map[string]string{"redirect_to": enums.LoginRoute})
	}

	tokens, err := s.sessions.Generate(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening session")
	}

	accessToken, err := s.mintFor(user, tokens.AccessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "updating last login failed")
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"user_id":    user.ID.String(),
		"actor_role": user.Role.String(),
	})
	s.logg.Info(ctx, "login succeeded")

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtCfg.AccessTokenTTL().Seconds()),
		RedirectTo:   user.Role.DefaultRoute(),
		User:         users.FromModel(user),
	}, nil
}

// Refresh rotates the session keyed by the (possibly expired) access token.
func (s *service) Refresh(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, input.AccessToken)
	if err != nil {
		return nil, sessionExpired()
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sessionExpired()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled").
			WithDetails(map[string]string{"redirect_to": enums.LoginRoute})
	}

	tokens, err := s.sessions.Rotate(ctx, user.ID, input.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrTokenMismatch) {
			return nil, sessionExpired()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotating session")
	}

	accessToken, err := s.mintFor(user, tokens.AccessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}

	return &RefreshResult{
		AccessToken:  accessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtCfg.AccessTokenTTL().Seconds()),
	}, nil
}

// Logout drops the server-side session. Tokens already issued stop passing
// the session check immediately.
func (s *service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.Revoke(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	ctx = s.logg.WithUserID(ctx, userID.String())
	s.logg.Info(ctx, "logout completed")
	return nil
}

// Session reports the caller's account and landing route.
func (s *service) Session(ctx context.Context, userID uuid.UUID) (*SessionDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sessionExpired()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled").
			WithDetails(map[string]string{"redirect_to": enums.LoginRoute})
	}

	return &SessionDTO{
		User:       users.FromModel(user),
		RedirectTo: user.Role.DefaultRoute(),
	}, nil
}

func (s *service) mintFor(user *models.User, accessID string) (string, error) {
	return pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		JTI:    accessID,
	})
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials").
		WithDetails(map[string]string{"redirect_to": enums.LoginRoute})
}

func sessionExpired() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired").
		WithDetails(map[string]string{"redirect_to": enums.LoginRoute})
}
