package service

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"smartgov_backend/internal/events"
	"smartgov_backend/internal/recommend/transport"
)

type testLinks struct{}

func (testLinks) GetAppBaseURL() string { return "https://app.example.com" }

type capturingBus struct {
	mu     sync.Mutex
	events []events.Event
	done   chan struct{}
}

func newCapturingBus() *capturingBus {
	return &capturingBus{done: make(chan struct{}, 1)}
}

func (b *capturingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	b.events = append(b.events, event)
	b.mu.Unlock()
	select {
	case b.done <- struct{}{}:
	default:
	}
}

func (b *capturingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *capturingBus) Subscribe(string, events.Handler) {}

func testUser() transport.User {
	return transport.User{ID: 1, Name: "Reem AlHarbi", ActivityLevel: ActivityHigh, Phone: "0500000000"}
}

func testServices() []transport.ServiceInput {
	return []transport.ServiceInput{
		{ID: 103, Name: "National ID Renewal", DaysLeft: 150, Seasonality: SeasonalityOffSeason, CategoryImportance: 0.3},
		{ID: 101, Name: "Passport Renewal", DaysLeft: 28, Seasonality: SeasonalityInSeason, CategoryImportance: 0.8},
		{ID: 102, Name: "Vehicle Inspection", DaysLeft: 72, Seasonality: SeasonalityOffSeason, CategoryImportance: 0.5},
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	result := svc.Rank(context.Background(), testUser(), testServices(), 5)

	if result.Status != StatusSuccess {
		t.Fatalf("status = %q, want %q", result.Status, StatusSuccess)
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("expected 3 recommendations, got %d", len(result.Recommendations))
	}
	for i := 1; i < len(result.Recommendations); i++ {
		if result.Recommendations[i].FinalScore > result.Recommendations[i-1].FinalScore {
			t.Fatalf("recommendations not ordered: %v before %v",
				result.Recommendations[i-1].FinalScore, result.Recommendations[i].FinalScore)
		}
	}
	if result.TopRecommendation == nil {
		t.Fatal("expected a top recommendation")
	}
	if result.TopRecommendation.ServiceID != 101 {
		t.Fatalf("top recommendation = %d, want 101", result.TopRecommendation.ServiceID)
	}
}

func TestRankStableOnEqualScores(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	user := testUser()
	twins := []transport.ServiceInput{
		{ID: 1, Name: "first", DaysLeft: 20, Seasonality: SeasonalityInSeason, CategoryImportance: 0.5},
		{ID: 2, Name: "second", DaysLeft: 20, Seasonality: SeasonalityInSeason, CategoryImportance: 0.5},
	}

	result := svc.Rank(context.Background(), user, twins, 5)

	if result.Recommendations[0].ServiceID != 1 || result.Recommendations[1].ServiceID != 2 {
		t.Fatalf("tie broken against input order: got %d, %d",
			result.Recommendations[0].ServiceID, result.Recommendations[1].ServiceID)
	}
}

func TestRankEmptyServicesIsValidState(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	result := svc.Rank(context.Background(), testUser(), nil, 5)

	if result.Status != StatusNoServices {
		t.Fatalf("status = %q, want %q", result.Status, StatusNoServices)
	}
	if result.TopRecommendation != nil {
		t.Fatalf("expected no top recommendation, got %+v", result.TopRecommendation)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("expected empty recommendations, got %d", len(result.Recommendations))
	}
}

func TestRankTopNLargerThanList(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	result := svc.Rank(context.Background(), testUser(), testServices(), 50)

	if len(result.Recommendations) != 3 {
		t.Fatalf("expected all 3 services, got %d", len(result.Recommendations))
	}
}

func TestRankTruncatesToTopN(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	result := svc.Rank(context.Background(), testUser(), testServices(), 1)

	if len(result.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(result.Recommendations))
	}
	if result.Summary == nil || result.Summary.TotalServices != 3 {
		t.Fatalf("summary should cover all scored services, got %+v", result.Summary)
	}
}

func TestRankIsIdempotent(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	first := svc.Rank(context.Background(), testUser(), testServices(), 5)
	second := svc.Rank(context.Background(), testUser(), testServices(), 5)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different results")
	}
}

func TestRankReasons(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	urgent := transport.ServiceInput{ID: 1, Name: "Passport Renewal", DaysLeft: 10, Seasonality: SeasonalityInSeason, CategoryImportance: 0.9}
	result := svc.Rank(context.Background(), testUser(), []transport.ServiceInput{urgent}, 5)

	want := []string{ReasonExpiresSoon, ReasonHighSeason, ReasonFrequentCategory, ReasonFrequentUser}
	if !reflect.DeepEqual(result.Recommendations[0].Reasons, want) {
		t.Fatalf("reasons = %v, want %v", result.Recommendations[0].Reasons, want)
	}

	quiet := transport.ServiceInput{ID: 2, Name: "Commercial Registration", DaysLeft: 365, Seasonality: SeasonalityOffSeason, CategoryImportance: 0.1}
	lowUser := transport.User{ID: 2, Name: "Saleh", ActivityLevel: ActivityLow, Phone: "+966555000111"}
	result = svc.Rank(context.Background(), lowUser, []transport.ServiceInput{quiet}, 5)

	if len(result.Recommendations[0].Reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", result.Recommendations[0].Reasons)
	}
}

func TestRankBuildsAlertsForCriticalAndHigh(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	result := svc.Rank(context.Background(), testUser(), testServices(), 5)

	if len(result.SMSAlerts) == 0 {
		t.Fatal("expected at least one SMS alert")
	}
	for _, alert := range result.SMSAlerts {
		if alert.Priority != PriorityCritical && alert.Priority != PriorityHigh {
			t.Fatalf("alert generated for priority %q", alert.Priority)
		}
		if !strings.Contains(alert.Message, alert.ActionLink) {
			t.Fatalf("alert message %q does not contain action link %q", alert.Message, alert.ActionLink)
		}
		if !strings.HasPrefix(alert.ActionLink, "https://app.example.com/service/") {
			t.Fatalf("unexpected action link %q", alert.ActionLink)
		}
		if alert.Phone != "+966500000000" {
			t.Fatalf("phone = %q, want normalized +966500000000", alert.Phone)
		}
	}
}

func TestRankPublishesRecommendationsGenerated(t *testing.T) {
	bus := newCapturingBus()
	svc := New(DefaultScoring(), testLinks{}, bus, nil)

	result := svc.Rank(context.Background(), testUser(), testServices(), 5)
	if len(result.SMSAlerts) == 0 {
		t.Fatal("expected alerts to trigger an event")
	}

	select {
	case <-bus.done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event publish")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	event, ok := bus.events[0].(events.RecommendationsGenerated)
	if !ok {
		t.Fatalf("unexpected event type %T", bus.events[0])
	}
	if event.UserID != 1 || len(event.Alerts) != len(result.SMSAlerts) {
		t.Fatalf("event = %+v, want userID 1 with %d alerts", event, len(result.SMSAlerts))
	}
}

func TestRankSummaryCounts(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	result := svc.Rank(context.Background(), testUser(), testServices(), 5)

	summary := result.Summary
	if summary == nil {
		t.Fatal("expected a summary")
	}
	if summary.TotalServices != 3 {
		t.Fatalf("total services = %d, want 3", summary.TotalServices)
	}
	if summary.UrgentServices != 1 {
		t.Fatalf("urgent services = %d, want 1", summary.UrgentServices)
	}

	counted := 0
	for _, n := range summary.PriorityBreakdown {
		counted += n
	}
	if counted != 3 {
		t.Fatalf("priority breakdown sums to %d, want 3", counted)
	}
	if summary.AverageScore <= 0 || summary.AverageScore > 100 {
		t.Fatalf("average score %v out of range", summary.AverageScore)
	}
}

func TestScoreOne(t *testing.T) {
	svc := New(DefaultScoring(), testLinks{}, nil, nil)

	detail, found := svc.ScoreOne(testUser(), testServices(), 101)
	if !found {
		t.Fatal("expected service 101 to be found")
	}
	if detail.ServiceName != "Passport Renewal" {
		t.Fatalf("service name = %q", detail.ServiceName)
	}

	if _, found := svc.ScoreOne(testUser(), testServices(), 999); found {
		t.Fatal("expected service 999 to be absent")
	}
}
