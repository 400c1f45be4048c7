package notification

import (
	"context"
	"errors"
	"testing"

	"framtt_backend/internal/email"
	"framtt_backend/internal/events"
	"framtt_backend/internal/scheduler"
	"framtt_backend/platform/logger"

	"github.com/google/uuid"
)

type testNotificationConfig struct {
	enabled bool
	sales   string
}

func (c testNotificationConfig) GetNotificationsEnabled() bool { return c.enabled }
func (c testNotificationConfig) GetSalesEmail() string         { return c.sales }
func (c testNotificationConfig) GetFrontendURL() string        { return "https://admin.framtt.com/" }

type sentEmail struct {
	kind string
	to   string
	req  email.DemoRequest
}

type testSender struct {
	sent []sentEmail
	fail error
}

func (s *testSender) SendDemoConfirmationEmail(_ context.Context, to string, req email.DemoRequest) error {
	s.sent = append(s.sent, sentEmail{kind: scheduler.EmailKindDemoConfirmation, to: to, req: req})
	return s.fail
}

func (s *testSender) SendSalesAlertEmail(_ context.Context, to string, req email.DemoRequest) error {
	s.sent = append(s.sent, sentEmail{kind: scheduler.EmailKindSalesAlert, to: to, req: req})
	return s.fail
}

func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

type testQueue struct {
	payloads []scheduler.NotificationEmailPayload
	err      error
}

func (q *testQueue) EnqueueNotificationEmail(_ context.Context, p scheduler.NotificationEmailPayload) error {
	if q.err != nil {
		return q.err
	}
	q.payloads = append(q.payloads, p)
	return nil
}

func demoEvent(emailAddr string) events.DemoRequestSubmitted {
	return events.DemoRequestSubmitted{
		BaseEvent:        events.NewBaseEvent(),
		RequestID:        uuid.New(),
		Type:             "general",
		Name:             "Ana",
		Email:            emailAddr,
		PreferredContact: "email",
	}
}

func TestDemoRequestSendsConfirmationAndAlert(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{enabled: true, sales: "sales@framtt.com"}, logger.Discard())

	e := demoEvent("ana@example.com")
	if err := m.Handle(context.Background(), e); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}
	if sender.sent[0].kind != scheduler.EmailKindDemoConfirmation || sender.sent[0].to != "ana@example.com" {
		t.Fatalf("unexpected confirmation %+v", sender.sent[0])
	}
	if sender.sent[1].kind != scheduler.EmailKindSalesAlert || sender.sent[1].to != "sales@framtt.com" {
		t.Fatalf("unexpected alert %+v", sender.sent[1])
	}
	wantURL := "https://admin.framtt.com/admin/demo-requests/" + e.RequestID.String()
	if sender.sent[1].req.DashboardURL != wantURL {
		t.Fatalf("expected dashboard url %q, got %q", wantURL, sender.sent[1].req.DashboardURL)
	}
}

func TestDemoRequestWithoutEmailOnlyAlertsSales(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{enabled: true, sales: "sales@framtt.com"}, logger.Discard())

	_ = m.Handle(context.Background(), demoEvent(""))
	if len(sender.sent) != 1 || sender.sent[0].kind != scheduler.EmailKindSalesAlert {
		t.Fatalf("expected only the sales alert, got %+v", sender.sent)
	}
}

func TestDisabledNotificationsSendNothing(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{enabled: false, sales: "sales@framtt.com"}, logger.Discard())

	_ = m.Handle(context.Background(), demoEvent("ana@example.com"))
	if len(sender.sent) != 0 {
		t.Fatalf("expected no emails, got %d", len(sender.sent))
	}
}

func TestDeliveryFailureDoesNotFailHandler(t *testing.T) {
	sender := &testSender{fail: errors.New("smtp down")}
	m := New(sender, testNotificationConfig{enabled: true, sales: "sales@framtt.com"}, logger.Discard())

	if err := m.Handle(context.Background(), demoEvent("ana@example.com")); err != nil {
		t.Fatalf("expected best-effort delivery, got %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected both sends to be attempted, got %d", len(sender.sent))
	}
}

func TestQueuedDeliveryEnqueuesInsteadOfSending(t *testing.T) {
	sender := &testSender{}
	queue := &testQueue{}
	m := New(sender, testNotificationConfig{enabled: true, sales: "sales@framtt.com"}, logger.Discard())
	m.SetQueue(queue)

	_ = m.Handle(context.Background(), demoEvent("ana@example.com"))
	if len(queue.payloads) != 2 || len(sender.sent) != 0 {
		t.Fatalf("expected 2 queued and 0 sent, got %d queued, %d sent", len(queue.payloads), len(sender.sent))
	}
}

func TestQueueFailureFallsBackToInProcess(t *testing.T) {
	sender := &testSender{}
	m := New(sender, testNotificationConfig{enabled: true, sales: "sales@framtt.com"}, logger.Discard())
	m.SetQueue(&testQueue{err: errors.New("redis unavailable")})

	_ = m.Handle(context.Background(), demoEvent("ana@example.com"))
	if len(sender.sent) != 2 {
		t.Fatalf("expected in-process fallback, got %d sent", len(sender.sent))
	}
}

func TestDeliverEmailReturnsErrorForRetry(t *testing.T) {
	m := New(&testSender{fail: errors.New("brevo 500")}, testNotificationConfig{enabled: true}, logger.Discard())

	err := m.DeliverEmail(context.Background(), scheduler.NotificationEmailPayload{Kind: scheduler.EmailKindSalesAlert, To: "sales@framtt.com"})
	if err == nil {
		t.Fatal("expected delivery error")
	}
	if err := m.DeliverEmail(context.Background(), scheduler.NotificationEmailPayload{Kind: "sms"}); err == nil {
		t.Fatal("expected unknown kind error")
	}
}
