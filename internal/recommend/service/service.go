// Package service implements the recommendation core: the scoring model and
// the ranking orchestration. Everything here is a pure computation over a
// single request's data; the only side effect is an optional domain event
// publish after a ranking completes.
package service

import (
	"context"
	"fmt"
	"sort"

	"smartgov_backend/internal/events"
	"smartgov_backend/internal/recommend/transport"
	"smartgov_backend/platform/logger"
	"smartgov_backend/platform/phone"
)

// Ranking result statuses.
const (
	StatusSuccess    = "success"
	StatusNoServices = "no_services"
)

const msgNoServices = "no active services for this user"

// Reason strings attached to ranked services by threshold rules.
const (
	ReasonExpiresSoon      = "Expires soon"
	ReasonHighSeason       = "High-demand season"
	ReasonFrequentCategory = "Frequently used category"
	ReasonFrequentUser     = "Frequent user"
)

// AlertLinker builds citizen-facing action links for alert messages.
type AlertLinker interface {
	GetAppBaseURL() string
}

// Service is the recommendation engine. It is stateless and safe for
// concurrent use.
type Service struct {
	scoring ScoringConfig
	links   AlertLinker
	bus     events.Bus
	log     *logger.Logger
}

// New creates the recommendation service.
func New(scoring ScoringConfig, links AlertLinker, bus events.Bus, log *logger.Logger) *Service {
	return &Service{scoring: scoring, links: links, bus: bus, log: log}
}

// Scoring exposes the active scoring model, e.g. for the weights endpoint.
func (s *Service) Scoring() ScoringConfig {
	return s.scoring
}

// Rank scores every service for the user, orders them by final score
// descending (ties keep input order), and returns the top N plus the single
// top recommendation. An empty service list is a valid state, not an error.
func (s *Service) Rank(ctx context.Context, user transport.User, services []transport.ServiceInput, topN int) transport.RecommendationResponse {
	if len(services) == 0 {
		return transport.RecommendationResponse{
			Status:          StatusNoServices,
			Message:         msgNoServices,
			UserID:          user.ID,
			UserName:        user.Name,
			Recommendations: []transport.RankedService{},
			SMSAlerts:       []transport.SMSAlert{},
		}
	}

	scored := make([]transport.RankedService, 0, len(services))
	for _, svc := range services {
		scored = append(scored, s.scoreService(user, svc))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	summary := s.summarize(scored)

	if topN > len(scored) {
		topN = len(scored)
	}
	top := scored[:topN]
	topOne := top[0]

	alerts := s.buildAlerts(user, top)
	s.publishAlerts(ctx, user, alerts)

	if s.log != nil {
		s.log.RecommendationServed(user.ID, len(services), len(top), topOne.FinalScore)
	}

	return transport.RecommendationResponse{
		Status:            StatusSuccess,
		UserID:            user.ID,
		UserName:          user.Name,
		TotalServices:     len(services),
		Recommendations:   top,
		TopRecommendation: &topOne,
		SMSAlerts:         alerts,
		Summary:           &summary,
	}
}

// ScoreOne scores a single service from the submitted list by ID.
func (s *Service) ScoreOne(user transport.User, services []transport.ServiceInput, serviceID int64) (transport.RankedService, bool) {
	for _, svc := range services {
		if svc.ID == serviceID {
			return s.scoreService(user, svc), true
		}
	}
	return transport.RankedService{}, false
}

func (s *Service) scoreService(user transport.User, svc transport.ServiceInput) transport.RankedService {
	breakdown, final := s.scoring.Score(user, svc)

	return transport.RankedService{
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		FinalScore:  final,
		Priority:    PriorityLevel(final),
		Reasons:     s.reasons(user, svc),
		DaysLeft:    svc.DaysLeft,
		Breakdown:   breakdown,
	}
}

// reasons derives the ordered justification list. Reasons whose threshold
// is not met are omitted; an empty list is valid.
func (s *Service) reasons(user transport.User, svc transport.ServiceInput) []string {
	out := []string{}
	if svc.DaysLeft <= s.scoring.ExpiresSoonDays {
		out = append(out, ReasonExpiresSoon)
	}
	if svc.Seasonality == SeasonalityInSeason {
		out = append(out, ReasonHighSeason)
	}
	if svc.CategoryImportance >= s.scoring.FrequentCategoryMin {
		out = append(out, ReasonFrequentCategory)
	}
	if user.ActivityLevel == ActivityHigh {
		out = append(out, ReasonFrequentUser)
	}
	return out
}

// buildAlerts prepares SMS alerts for critical and high priority entries in
// the returned top N.
func (s *Service) buildAlerts(user transport.User, ranked []transport.RankedService) []transport.SMSAlert {
	alerts := []transport.SMSAlert{}
	recipient := phone.NormalizeE164(user.Phone)

	for _, rec := range ranked {
		if rec.Priority != PriorityCritical && rec.Priority != PriorityHigh {
			continue
		}

		label := "Important"
		if rec.Priority == PriorityCritical {
			label = "Urgent"
		}

		reason := "Action needed"
		if len(rec.Reasons) > 0 {
			reason = rec.Reasons[0]
		}

		link := fmt.Sprintf("%s/service/%d", s.links.GetAppBaseURL(), rec.ServiceID)
		alerts = append(alerts, transport.SMSAlert{
			ServiceID:   rec.ServiceID,
			ServiceName: rec.ServiceName,
			Priority:    rec.Priority,
			Message:     fmt.Sprintf("%s: %s\n%s\nComplete it now: %s", label, rec.ServiceName, reason, link),
			ActionLink:  link,
			Phone:       recipient,
		})
	}

	return alerts
}

func (s *Service) publishAlerts(ctx context.Context, user transport.User, alerts []transport.SMSAlert) {
	if s.bus == nil || len(alerts) == 0 {
		return
	}

	payloads := make([]events.AlertPayload, 0, len(alerts))
	for _, a := range alerts {
		payloads = append(payloads, events.AlertPayload{
			ServiceID:   a.ServiceID,
			ServiceName: a.ServiceName,
			Priority:    a.Priority,
			Message:     a.Message,
			ActionLink:  a.ActionLink,
			Phone:       a.Phone,
		})
	}

	s.bus.Publish(ctx, events.RecommendationsGenerated{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		UserName:  user.Name,
		Alerts:    payloads,
	})
}

// summarize aggregates statistics over the full scored list.
func (s *Service) summarize(scored []transport.RankedService) transport.Summary {
	counts := map[string]int{
		PriorityCritical: 0,
		PriorityHigh:     0,
		PriorityMedium:   0,
		PriorityLow:      0,
	}

	urgent := 0
	total := 0.0
	for _, rec := range scored {
		counts[rec.Priority]++
		if rec.DaysLeft <= s.scoring.ExpiresSoonDays {
			urgent++
		}
		total += rec.FinalScore
	}

	return transport.Summary{
		TotalServices:     len(scored),
		UrgentServices:    urgent,
		PriorityBreakdown: counts,
		AverageScore:      round2(total / float64(len(scored))),
	}
}

// Weights describes the active model weights for the weights endpoint.
func (s *Service) Weights() transport.WeightsResponse {
	return transport.WeightsResponse{
		Factors: map[string]transport.WeightFactor{
			"urgency": {
				Weight:      s.scoring.WeightUrgency,
				Description: "Time sensitivity: how soon does the service expire?",
			},
			"seasonality": {
				Weight:      s.scoring.WeightSeasonality,
				Description: "Seasonal demand for the service",
			},
			"category": {
				Weight:      s.scoring.WeightCategory,
				Description: "How critical the service category is in general",
			},
			"activity": {
				Weight:      s.scoring.WeightActivity,
				Description: "User engagement level on the platform",
			},
		},
		Note: "Weights are tunable via ScoringConfig based on real usage data",
	}
}
