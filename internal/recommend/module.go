// Package recommend provides the recommendation bounded context: the scoring
// engine and ranking service behind the recommendations API.
package recommend

import (
	"smartgov_backend/internal/events"
	apphttp "smartgov_backend/internal/http"
	"smartgov_backend/internal/recommend/handler"
	"smartgov_backend/internal/recommend/service"
	"smartgov_backend/platform/config"
	"smartgov_backend/platform/logger"
	"smartgov_backend/platform/validator"
)

// Config combines the configuration interfaces the module needs.
type Config interface {
	config.RecommenderConfig
	config.AlertConfig
}

// Module is the recommendation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the recommendation module with all its dependencies.
func NewModule(cfg Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(service.DefaultScoring(), cfg, bus, log)
	h := handler.New(svc, val, cfg)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "recommend"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts recommendation routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/recommendations")
	group.POST("", m.handler.Recommendations)
	group.POST("/services/:id", m.handler.ServiceDetail)
	group.GET("/weights", m.handler.Weights)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
