package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "smartgov_backend/internal/http"
	"smartgov_backend/platform/logger"
)

type testHTTPConfig struct{}

func (testHTTPConfig) GetHTTPAddr() string      { return ":8080" }
func (testHTTPConfig) GetCORSAllowAll() bool    { return true }
func (testHTTPConfig) GetCORSOrigins() []string { return nil }
func (testHTTPConfig) GetCORSAllowCreds() bool  { return false }
func (testHTTPConfig) GetRateLimitRPS() float64 { return 100 }
func (testHTTPConfig) GetRateLimitBurst() int   { return 100 }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }
func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
}

func newTestApp() *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config:  testHTTPConfig{},
		Logger:  logger.New("development"),
		Modules: []apphttp.Module{pingModule{}},
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine := New(newTestApp())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestModuleRoutesRegistered(t *testing.T) {
	engine := New(newTestApp())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	engine := New(newTestApp())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
}
