package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/manish-terminal/elastomech/internal/config"
	"github.com/manish-terminal/elastomech/internal/stock/service"
	"github.com/manish-terminal/elastomech/internal/stock/testutil"
	"go.uber.org/zap"
)

func setupAuthTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	router := testutil.SetupRouter()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "elastomech",
		},
	}
	authSvc := service.NewAuthService(nil, cfg, zap.NewNop())
	h := NewAuthHandler(authSvc)

	router.POST("/api/auth/signin", h.SignIn)
	return &testutil.TestEnv{Router: router, T: t}
}

func TestSignInWithStaticUsers(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/auth/signin", map[string]interface{}{
		"username": "admin",
		"password": "admin123",
		"role":     "admin",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	if user["role"] != "admin" {
		t.Errorf("Expected admin role, got %v", user["role"])
	}
	token := data["token"].(map[string]interface{})
	if token["accessToken"] == "" {
		t.Error("Expected non-empty access token")
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/auth/signin", map[string]interface{}{
		"username": "worker",
		"password": "worker123",
		"role":     "worker",
	}, "")
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200 for worker, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/auth/signin", map[string]interface{}{
		"username": "admin",
		"password": "wrong",
		"role":     "admin",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d: %s", w.Code, w.Body.String())
	}

	// role 缺失属于参数错误
	w2 := testutil.DoRequest(env.Router, "POST", "/api/auth/signin", map[string]interface{}{
		"username": "admin",
		"password": "admin123",
	}, "")
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without role, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestSignInRejectsRoleMismatch(t *testing.T) {
	env := setupAuthTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/auth/signin", map[string]interface{}{
		"username": "worker",
		"password": "worker123",
		"role":     "admin",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d: %s", w.Code, w.Body.String())
	}
}
