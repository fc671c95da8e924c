package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return "default" }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error for missing redis url")
	}
}

func TestEnqueueAlertSMS(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	payload := AlertSMSPayload{
		UserID:      1,
		ServiceID:   101,
		ServiceName: "Passport Renewal",
		Priority:    "critical",
		Message:     "Urgent: Passport Renewal",
		Phone:       "+966500000000",
	}

	if err := client.EnqueueAlertSMS(context.Background(), payload); err != nil {
		t.Fatalf("EnqueueAlertSMS: %v", err)
	}

	if len(mr.Keys()) == 0 {
		t.Fatal("expected enqueued task keys in redis")
	}
}

func TestAlertSMSTaskRoundTrip(t *testing.T) {
	payload := AlertSMSPayload{
		UserID:      2,
		ServiceID:   201,
		ServiceName: "Driving License Renewal",
		Priority:    "high",
		Message:     "Important: Driving License Renewal",
		Phone:       "+966501234567",
	}

	task, err := NewAlertSMSTask(payload)
	if err != nil {
		t.Fatalf("NewAlertSMSTask: %v", err)
	}
	if task.Type() != TaskAlertSMSDispatch {
		t.Fatalf("task type = %q, want %q", task.Type(), TaskAlertSMSDispatch)
	}

	parsed, err := ParseAlertSMSPayload(task)
	if err != nil {
		t.Fatalf("ParseAlertSMSPayload: %v", err)
	}
	if parsed != payload {
		t.Fatalf("parsed = %+v, want %+v", parsed, payload)
	}
}
