package fixtures

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apphttp "smartgov_backend/internal/http"
	"smartgov_backend/internal/recommend/service"
	"smartgov_backend/platform/config"
	"smartgov_backend/platform/httpkit"
)

// Module exposes the demo endpoints backed by fixture data.
type Module struct {
	store *Store
	svc   *service.Service
	cfg   config.RecommenderConfig
}

// NewModule creates the demo module.
func NewModule(store *Store, svc *service.Service, cfg config.RecommenderConfig) *Module {
	return &Module{store: store, svc: svc, cfg: cfg}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "demo"
}

// RegisterRoutes mounts the demo routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/demo")
	group.GET("/users", m.listUsers)
	group.GET("/users/:id/recommendations", m.userRecommendations)
}

// listUsers returns the fixture users.
// GET /api/v1/demo/users
func (m *Module) listUsers(c *gin.Context) {
	httpkit.OK(c, gin.H{"users": m.store.Users()})
}

// userRecommendations runs the recommender over a fixture user's services.
// GET /api/v1/demo/users/:id/recommendations
func (m *Module) userRecommendations(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid user ID", nil)
		return
	}

	user, ok := m.store.User(userID)
	if !ok {
		httpkit.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}

	topN := m.cfg.GetDefaultTopN()
	if raw := c.Query("topN"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httpkit.Error(c, http.StatusBadRequest, "topN must be a positive integer", nil)
			return
		}
		topN = parsed
	}

	result := m.svc.Rank(c.Request.Context(), user, m.store.ServicesFor(userID), topN)
	result.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	httpkit.OK(c, result)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
