package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/serpcat/serp-backend/pkg/config"
	"github.com/serpcat/serp-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "serp-backend",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID: userID,
		Name:   "Dispatch Center",
		Role:   enums.UserRoleEmergencyCenter,
		JTI:    "jti-1",
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}
	if strings.Count(signed, ".") != 2 {
		t.Fatalf("expected a compact JWT, got %q", signed)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID: got %s, want %s", claims.UserID, userID)
	}
	if claims.Role != enums.UserRoleEmergencyCenter {
		t.Errorf("Role: got %s, want %s", claims.Role, enums.UserRoleEmergencyCenter)
	}
	if claims.ID != "jti-1" {
		t.Errorf("jti: got %q, want %q", claims.ID, "jti-1")
	}

	wantExpiry := now.Add(time.Hour)
	if diff := claims.ExpiresAt.Time.Sub(wantExpiry); diff > time.Second || diff < -time.Second {
		t.Errorf("expiry: got %s, want about %s", claims.ExpiresAt.Time, wantExpiry)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Name:   "Operator",
		Role:   enums.UserRoleEmergencyOperator,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	wrong := cfg
	wrong.Secret = "other-secret"
	if _, err := ParseAccessToken(wrong, signed); err == nil {
		t.Fatal("expected parse to fail with a different secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Name:   "Operator",
		Role:   enums.UserRoleEmergencyOperator,
	})
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected parse to fail for an expired token")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessTokenAllowExpired: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti on the expired token")
	}
}

func TestMintRejectsInvalidRole(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Name:   "Nobody",
		Role:   enums.UserRole("superadmin"),
	}); err == nil {
		t.Fatal("expected mint to reject an unknown role")
	}
}
