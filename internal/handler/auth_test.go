package handler

import (
	"net/http"
	"testing"

	"github.com/iliyamo/code-redemption/internal/config"
	"github.com/iliyamo/code-redemption/internal/utils"
)

func newAuthHandler() *AuthHandler {
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 60}
	return NewAuthHandler(cfg, utils.StaticVerifier{
		AdminUsername: "admin",
		AdminPassword: "admin123",
		UserPassword:  "1",
	})
}

func TestLoginAdmin(t *testing.T) {
	h := newAuthHandler()
	c, rec := newTestContext(http.MethodPost, "/api/login",
		`{"username":"admin","password":"admin123","role":"admin"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["role"] != "admin" || body["name"] != "Administrator" {
		t.Fatalf("unexpected identity: %v", body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatal("no token issued")
	}
}

func TestLoginAdminRejected(t *testing.T) {
	h := newAuthHandler()
	c, rec := newTestContext(http.MethodPost, "/api/login",
		`{"username":"admin","password":"wrong","role":"admin"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid admin credentials" {
		t.Fatalf("unexpected error: %v", body)
	}
}

func TestLoginUserRejected(t *testing.T) {
	h := newAuthHandler()
	c, rec := newTestContext(http.MethodPost, "/api/login",
		`{"username":"alice","password":"2","role":"user"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid password. Use password: 1" {
		t.Fatalf("unexpected error: %v", body)
	}
}

func TestLoginUser(t *testing.T) {
	h := newAuthHandler()
	c, rec := newTestContext(http.MethodPost, "/api/login",
		`{"username":"alice","password":"1","role":"user"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["role"] != "user" || body["username"] != "alice" {
		t.Fatalf("unexpected identity: %v", body)
	}
}
