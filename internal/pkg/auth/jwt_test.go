package auth

import (
	"testing"
	"time"

	"github.com/cybersleuth25/unisphere/internal/app/models"
)

func testJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "unisphere-test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := testJWTService(time.Minute)
	user := &models.User{ID: 42, Email: "jdoe@university.edu", Role: models.RoleStudent}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if accessToken == "" || refreshToken == "" {
		t.Fatal("expected non-empty tokens")
	}
	if expiresIn != 60 {
		t.Fatalf("expiresIn = %d, want 60", expiresIn)
	}
	if refreshExpiresIn != int((24 * time.Hour).Seconds()) {
		t.Fatalf("refreshExpiresIn = %d", refreshExpiresIn)
	}

	claims, err := svc.ValidateToken(accessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "jdoe@university.edu" || claims.RoleType != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)
	user := &models.User{ID: 1, Email: "a@b.edu", Role: models.RoleStudent}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := svc.ValidateToken(accessToken); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := testJWTService(time.Minute)
	user := &models.User{ID: 1, Email: "a@b.edu", Role: models.RoleStudent}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Minute})
	if _, err := other.ValidateToken(accessToken); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("ExtractBearerToken = %q, %v", token, err)
	}

	// A bare token is accepted as-is.
	token, err = ExtractBearerToken("abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("ExtractBearerToken bare = %q, %v", token, err)
	}

	if _, err := ExtractBearerToken(""); err == nil {
		t.Fatal("expected error for empty header")
	}
}
