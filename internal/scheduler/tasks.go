package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAlertSMSDispatch = "alerts.sms.dispatch"

// AlertSMSPayload is the task payload for one outbound SMS alert.
type AlertSMSPayload struct {
	UserID      int64  `json:"userId"`
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Priority    string `json:"priority"`
	Message     string `json:"message"`
	Phone       string `json:"phone"`
}

func NewAlertSMSTask(payload AlertSMSPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAlertSMSDispatch, data), nil
}

func ParseAlertSMSPayload(task *asynq.Task) (AlertSMSPayload, error) {
	var payload AlertSMSPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AlertSMSPayload{}, err
	}
	return payload, nil
}
