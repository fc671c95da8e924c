package alerts

import (
	"context"
	"testing"

	"smartgov_backend/internal/events"
	"smartgov_backend/internal/scheduler"
	"smartgov_backend/platform/logger"
)

type testAlertConfig struct {
	enabled bool
}

func (c testAlertConfig) GetAppBaseURL() string  { return "https://app.example.com" }
func (c testAlertConfig) GetAlertsEnabled() bool { return c.enabled }

type capturingDispatcher struct {
	payloads []scheduler.AlertSMSPayload
}

func (d *capturingDispatcher) EnqueueAlertSMS(_ context.Context, payload scheduler.AlertSMSPayload) error {
	d.payloads = append(d.payloads, payload)
	return nil
}

func sampleEvent() events.RecommendationsGenerated {
	return events.RecommendationsGenerated{
		BaseEvent: events.NewBaseEvent(),
		UserID:    1,
		UserName:  "Reem AlHarbi",
		Alerts: []events.AlertPayload{
			{ServiceID: 101, ServiceName: "Passport Renewal", Priority: "critical", Message: "Urgent", Phone: "+966500000000"},
			{ServiceID: 102, ServiceName: "Vehicle Inspection", Priority: "high", Message: "Important", Phone: "+966500000000"},
		},
	}
}

func TestHandleEnqueuesOneTaskPerAlert(t *testing.T) {
	dispatcher := &capturingDispatcher{}
	m := New(dispatcher, testAlertConfig{enabled: true}, logger.New("development"))

	if err := m.Handle(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(dispatcher.payloads) != 2 {
		t.Fatalf("expected 2 enqueued alerts, got %d", len(dispatcher.payloads))
	}
	first := dispatcher.payloads[0]
	if first.UserID != 1 || first.ServiceID != 101 || first.Priority != "critical" {
		t.Fatalf("unexpected payload: %+v", first)
	}
}

func TestHandleSkipsWhenAlertsDisabled(t *testing.T) {
	dispatcher := &capturingDispatcher{}
	m := New(dispatcher, testAlertConfig{enabled: false}, logger.New("development"))

	if err := m.Handle(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(dispatcher.payloads) != 0 {
		t.Fatalf("expected no enqueued alerts, got %d", len(dispatcher.payloads))
	}
}

func TestHandleToleratesMissingDispatcher(t *testing.T) {
	m := New(nil, testAlertConfig{enabled: true}, logger.New("development"))

	if err := m.Handle(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestHandleIgnoresUnrelatedEvents(t *testing.T) {
	dispatcher := &capturingDispatcher{}
	m := New(dispatcher, testAlertConfig{enabled: true}, logger.New("development"))

	if err := m.Handle(context.Background(), unrelated{}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(dispatcher.payloads) != 0 {
		t.Fatalf("expected no enqueued alerts, got %d", len(dispatcher.payloads))
	}
}

type unrelated struct{ events.BaseEvent }

func (unrelated) EventName() string { return "test.unrelated" }
