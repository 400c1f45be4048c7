// Package notification sends demo request emails in response to domain events.
// Domain modules publish events and never talk to email providers directly.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"framtt_backend/internal/email"
	"framtt_backend/internal/events"
	"framtt_backend/internal/scheduler"
	"framtt_backend/platform/config"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	cfg    config.NotificationConfig
	queue  scheduler.NotificationEnqueuer
	log    *logger.Logger
}

// New creates a new notification module.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// SetQueue routes deliveries through the asynq worker. Without a queue the
// module sends in-process.
func (m *Module) SetQueue(queue scheduler.NotificationEnqueuer) { m.queue = queue }

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.DemoRequestSubmitted{}.EventName(), m)

	m.log.Info("notification module registered event handlers", "queued", m.queue != nil)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.DemoRequestSubmitted:
		return m.handleDemoRequestSubmitted(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

// handleDemoRequestSubmitted never returns delivery errors: a failed email is
// counted and logged, and the request that triggered it has already succeeded.
func (m *Module) handleDemoRequestSubmitted(ctx context.Context, e events.DemoRequestSubmitted) error {
	if !m.cfg.GetNotificationsEnabled() {
		return nil
	}

	req := m.demoRequest(e)

	if e.Email != "" {
		m.dispatch(ctx, scheduler.NotificationEmailPayload{
			Kind:    scheduler.EmailKindDemoConfirmation,
			To:      e.Email,
			Request: req,
		})
	}

	if sales := strings.TrimSpace(m.cfg.GetSalesEmail()); sales != "" {
		m.dispatch(ctx, scheduler.NotificationEmailPayload{
			Kind:    scheduler.EmailKindSalesAlert,
			To:      sales,
			Request: req,
		})
	} else {
		m.log.Warn("sales alert skipped, SALES_EMAIL not set", "requestId", e.RequestID)
	}

	return nil
}

func (m *Module) dispatch(ctx context.Context, payload scheduler.NotificationEmailPayload) {
	if m.queue != nil {
		err := m.queue.EnqueueNotificationEmail(ctx, payload)
		if err == nil {
			return
		}
		m.log.Warn("enqueue notification failed, sending in-process",
			"kind", payload.Kind,
			"requestId", payload.Request.RequestID,
			"error", err,
		)
	}

	_ = m.DeliverEmail(ctx, payload)
}

// DeliverEmail sends one notification email. It is also the asynq task
// handler, so failures are returned for retry after being recorded.
func (m *Module) DeliverEmail(ctx context.Context, payload scheduler.NotificationEmailPayload) error {
	var err error
	switch payload.Kind {
	case scheduler.EmailKindDemoConfirmation:
		err = m.sender.SendDemoConfirmationEmail(ctx, payload.To, payload.Request)
	case scheduler.EmailKindSalesAlert:
		err = m.sender.SendSalesAlertEmail(ctx, payload.To, payload.Request)
	default:
		err = fmt.Errorf("unknown email kind %q", payload.Kind)
	}

	if err != nil {
		httpkit.NotificationFailures.WithLabelValues(payload.Kind).Inc()
		m.log.NotificationFailed(payload.Kind, payload.To, err)
		return errors.Join(errors.New("deliver "+payload.Kind), err)
	}

	m.log.Info("notification email sent", "kind", payload.Kind, "requestId", payload.Request.RequestID)
	return nil
}

func (m *Module) demoRequest(e events.DemoRequestSubmitted) email.DemoRequest {
	req := email.DemoRequest{
		RequestID:         e.RequestID.String(),
		Type:              e.Type,
		ModuleID:          e.ModuleID,
		Name:              e.Name,
		Email:             e.Email,
		Company:           e.Company,
		Phone:             e.Phone,
		VehicleCount:      e.VehicleCount,
		CurrentChallenges: e.CurrentChallenges,
		Timeline:          e.Timeline,
		PreferredContact:  e.PreferredContact,
		BestTime:          e.BestTime,
		Message:           e.Message,
		SubmittedAt:       e.OccurredAt(),
	}
	if base := strings.TrimRight(m.cfg.GetFrontendURL(), "/"); base != "" {
		req.DashboardURL = base + "/admin/demo-requests/" + req.RequestID
	}
	return req
}

var (
	_ events.Handler                = (*Module)(nil)
	_ scheduler.NotificationHandler = (*Module)(nil)
)
