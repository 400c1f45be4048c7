package scheduler

import (
	"encoding/json"
	"fmt"

	"framtt_backend/internal/email"

	"github.com/hibiken/asynq"
)

const TaskNotificationEmail = "notification.email.send"

// Email kinds carried by TaskNotificationEmail.
const (
	EmailKindDemoConfirmation = "demo_confirmation"
	EmailKindSalesAlert       = "sales_alert"
)

type NotificationEmailPayload struct {
	Kind    string            `json:"kind"`
	To      string            `json:"to"`
	Request email.DemoRequest `json:"request"`
}

func NewNotificationEmailTask(payload NotificationEmailPayload) (*asynq.Task, error) {
	switch payload.Kind {
	case EmailKindDemoConfirmation, EmailKindSalesAlert:
	default:
		return nil, fmt.Errorf("unknown email kind %q", payload.Kind)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationEmail, data), nil
}

func ParseNotificationEmailPayload(task *asynq.Task) (NotificationEmailPayload, error) {
	var payload NotificationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return NotificationEmailPayload{}, err
	}
	return payload, nil
}
