package controllers_test

import (
	"net/http"
	"testing"

	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

func TestRegisterReturnsTokenPair(t *testing.T) {
	env := newTestEnv(t)
	env.authSvc.registerResp = &dto.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		User:         &dto.UserSummary{ID: 1, Username: "ada", Email: "ada@unisphere.edu", Role: "student"},
	}

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@unisphere.edu",
		Password: "Sup3rSecret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data dto.TokenResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Data.AccessToken != "access" || resp.Data.User == nil || resp.Data.User.Email != "ada@unisphere.edu" {
		t.Errorf("token response = %+v", resp.Data)
	}
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	env := newTestEnv(t)
	env.authSvc.registerErr = apperrors.ErrEmailAlreadyExists

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@unisphere.edu",
		Password: "Sup3rSecret",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Username: "ada",
		Email:    "ada@unisphere.edu",
		Password: "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	env.authSvc.loginErr = apperrors.ErrInvalidCredentials

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Email:    "ada@unisphere.edu",
		Password: "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginReturnsTokenPair(t *testing.T) {
	env := newTestEnv(t)
	env.authSvc.loginResp = &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Email:    "ada@unisphere.edu",
		Password: "Sup3rSecret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    dto.TokenResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if !resp.Success || resp.Data.AccessToken != "access" {
		t.Errorf("response = %s", rec.Body.String())
	}
}
