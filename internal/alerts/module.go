// Package alerts turns recommendation events into queued SMS dispatch tasks.
// It subscribes to the domain event bus and is not HTTP-facing.
package alerts

import (
	"context"

	"smartgov_backend/internal/events"
	"smartgov_backend/internal/scheduler"
	"smartgov_backend/platform/config"
	"smartgov_backend/platform/logger"
)

// Module listens for generated recommendations and enqueues SMS alerts.
type Module struct {
	dispatcher scheduler.AlertDispatcher
	cfg        config.AlertConfig
	log        *logger.Logger
}

// New creates the alerts module. dispatcher may be nil when Redis is not
// configured; alerts are then skipped and the API keeps working.
func New(dispatcher scheduler.AlertDispatcher, cfg config.AlertConfig, log *logger.Logger) *Module {
	return &Module{dispatcher: dispatcher, cfg: cfg, log: log}
}

// RegisterHandlers subscribes to recommendation domain events.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.RecommendationsGenerated{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.RecommendationsGenerated:
		return m.handleRecommendationsGenerated(ctx, e)
	default:
		return nil
	}
}

func (m *Module) handleRecommendationsGenerated(ctx context.Context, e events.RecommendationsGenerated) error {
	if !m.cfg.GetAlertsEnabled() {
		return nil
	}
	if m.dispatcher == nil {
		m.log.Debug("alert dispatcher not configured, skipping alerts", "user_id", e.UserID, "count", len(e.Alerts))
		return nil
	}

	for _, alert := range e.Alerts {
		payload := scheduler.AlertSMSPayload{
			UserID:      e.UserID,
			ServiceID:   alert.ServiceID,
			ServiceName: alert.ServiceName,
			Priority:    alert.Priority,
			Message:     alert.Message,
			Phone:       alert.Phone,
		}
		if err := m.dispatcher.EnqueueAlertSMS(ctx, payload); err != nil {
			return err
		}
		m.log.AlertQueued(alert.ServiceID, alert.Priority, alert.Phone)
	}

	return nil
}

// Compile-time check that Module implements events.Handler
var _ events.Handler = (*Module)(nil)
