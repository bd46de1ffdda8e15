package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/storestock_backend/middlewares"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/gin-gonic/gin"
)

func newAuthRouter() (*gin.Engine, *struct {
	token   string
	storeId string
	userId  int
}) {
	gin.SetMode(gin.TestMode)
	seen := &struct {
		token   string
		storeId string
		userId  int
	}{}

	r := gin.New()
	r.Use(middlewares.AuthMiddleware())
	r.GET("/protected", middlewares.RequireAuth(), func(c *gin.Context) {
		ctx := c.Request.Context()
		seen.token, _ = utils.GetTokenFromContext(ctx)
		seen.storeId, _ = utils.GetStoreIdFromContext(ctx)
		seen.userId, _ = utils.GetUserIdFromContext(ctx)
		c.Status(http.StatusNoContent)
	})
	return r, seen
}

func TestAuthMiddlewarePropagatesClaims(t *testing.T) {
	r, seen := newAuthRouter()

	token, err := utils.JwtGenerate(7, "store-1")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if seen.token != token {
		t.Errorf("context token does not match the presented token")
	}
	if seen.storeId != "store-1" {
		t.Errorf("context store id = %q, want store-1", seen.storeId)
	}
	if seen.userId != 7 {
		t.Errorf("context user id = %d, want 7", seen.userId)
	}
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	r, _ := newAuthRouter()

	// garbage token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token status = %d, want 401", w.Code)
	}

	// wrong scheme
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme status = %d, want 401", w.Code)
	}

	// no token at all passes the middleware but fails RequireAuth
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", w.Code)
	}
}

func TestCorrelationMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	var got string
	r.GET("/ping", func(c *gin.Context) {
		got, _ = utils.GetCorrelationIdFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	// caller-supplied id is reused
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-Id", "corr-123")
	r.ServeHTTP(w, req)
	if got != "corr-123" {
		t.Fatalf("context correlation id = %q, want corr-123", got)
	}
	if w.Header().Get("X-Correlation-Id") != "corr-123" {
		t.Fatalf("echoed header = %q, want corr-123", w.Header().Get("X-Correlation-Id"))
	}

	// otherwise one is generated
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Correlation-Id") == "" {
		t.Fatal("no correlation id generated")
	}
}
