// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"smartgov_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Recommendation Domain Events
// =============================================================================

// AlertPayload is one ready-to-send SMS alert carried by a recommendation event.
type AlertPayload struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Priority    string `json:"priority"`
	Message     string `json:"message"`
	ActionLink  string `json:"actionLink"`
	Phone       string `json:"phone"`
}

// RecommendationsGenerated is published after a ranking request produced
// at least one critical or high priority alert.
type RecommendationsGenerated struct {
	BaseEvent
	UserID   int64          `json:"userId"`
	UserName string         `json:"userName"`
	Alerts   []AlertPayload `json:"alerts"`
}

func (e RecommendationsGenerated) EventName() string { return "recommend.recommendations.generated" }
