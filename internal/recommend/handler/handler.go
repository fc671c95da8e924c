package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"smartgov_backend/internal/recommend/service"
	"smartgov_backend/internal/recommend/transport"
	"smartgov_backend/platform/apperr"
	"smartgov_backend/platform/config"
	"smartgov_backend/platform/httpkit"
	"smartgov_backend/platform/validator"
)

// Handler handles HTTP requests for recommendations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	cfg config.RecommenderConfig
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidServiceID = "invalid service ID"
	msgServiceNotFound  = "service not found in submitted list"
)

// New creates a new recommendations handler.
func New(svc *service.Service, val *validator.Validator, cfg config.RecommenderConfig) *Handler {
	return &Handler{svc: svc, val: val, cfg: cfg}
}

// Recommendations ranks the submitted services for the user.
// POST /api/v1/recommendations
func (h *Handler) Recommendations(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	topN := h.cfg.GetDefaultTopN()
	if req.TopN != nil {
		topN = *req.TopN
	}

	result := h.svc.Rank(c.Request.Context(), req.User, req.Services, topN)
	result.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	httpkit.OK(c, result)
}

// ServiceDetail scores one service from the submitted list.
// POST /api/v1/recommendations/services/:id
func (h *Handler) ServiceDetail(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidServiceID, nil)
		return
	}

	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	detail, found := h.svc.ScoreOne(req.User, req.Services, serviceID)
	if !found {
		httpkit.HandleError(c, apperr.NotFound(msgServiceNotFound))
		return
	}
	httpkit.OK(c, detail)
}

// Weights returns the active scoring model weights.
// GET /api/v1/recommendations/weights
func (h *Handler) Weights(c *gin.Context) {
	httpkit.OK(c, h.svc.Weights())
}

func (h *Handler) bindRequest(c *gin.Context) (transport.RecommendationRequest, bool) {
	var req transport.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return req, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return req, false
	}
	return req, true
}
