package scheduler

import (
	"context"
	"fmt"

	"smartgov_backend/platform/config"
	"smartgov_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// SMSSender delivers one SMS message. Real delivery is out of scope; the
// default implementation logs the send.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// LoggingSMSSender is the mock SMS gateway: it records the send in the log
// instead of calling a provider.
type LoggingSMSSender struct {
	log *logger.Logger
}

// NewLoggingSMSSender creates the mock sender.
func NewLoggingSMSSender(log *logger.Logger) *LoggingSMSSender {
	return &LoggingSMSSender{log: log}
}

// SendSMS logs the outbound message.
func (s *LoggingSMSSender) SendSMS(_ context.Context, phone, message string) error {
	s.log.Info("sms_sent", "phone", phone, "message", message)
	return nil
}

// Worker consumes alert dispatch tasks from the queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	sender SMSSender
	log    *logger.Logger
}

// NewWorker creates the asynq worker for SMS alert dispatch.
func NewWorker(cfg config.SchedulerConfig, sender SMSSender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		sender: sender,
		log:    log,
	}

	mux.HandleFunc(TaskAlertSMSDispatch, w.handleAlertSMS)

	return w, nil
}

// Run starts the worker and blocks until Shutdown is called.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the worker gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleAlertSMS(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAlertSMSPayload(task)
	if err != nil {
		return fmt.Errorf("parse alert sms payload: %w", err)
	}

	if err := w.sender.SendSMS(ctx, payload.Phone, payload.Message); err != nil {
		return fmt.Errorf("send sms for service %d: %w", payload.ServiceID, err)
	}

	w.log.Info("alert_dispatched",
		"user_id", payload.UserID,
		"service_id", payload.ServiceID,
		"priority", payload.Priority,
	)
	return nil
}
