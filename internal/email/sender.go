package email

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"framtt_backend/platform/config"
)

// DemoRequest is the demo request data rendered into notification emails.
type DemoRequest struct {
	RequestID         string
	Type              string
	ModuleID          string
	Name              string
	Email             string
	Company           string
	Phone             string
	VehicleCount      *int
	CurrentChallenges string
	Timeline          string
	PreferredContact  string
	BestTime          string
	Message           string
	SubmittedAt       time.Time
	// DashboardURL links the sales alert to the admin view. Optional.
	DashboardURL string
}

type Sender interface {
	SendDemoConfirmationEmail(ctx context.Context, toEmail string, req DemoRequest) error
	SendSalesAlertEmail(ctx context.Context, toEmail string, req DemoRequest) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

type NoopSender struct{}

func (NoopSender) SendDemoConfirmationEmail(ctx context.Context, toEmail string, req DemoRequest) error {
	return nil
}

func (NoopSender) SendSalesAlertEmail(ctx context.Context, toEmail string, req DemoRequest) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender picks the delivery backend named by EMAIL_PROVIDER.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	switch cfg.GetEmailProvider() {
	case config.EmailProviderNoop, "":
		return NoopSender{}, nil
	case config.EmailProviderSMTP:
		return NewSMTPSender(
			cfg.GetSMTPHost(),
			cfg.GetSMTPPort(),
			cfg.GetSMTPUsername(),
			cfg.GetSMTPPassword(),
			cfg.GetEmailFromAddress(),
			cfg.GetEmailFromName(),
		), nil
	case config.EmailProviderBrevo:
		return &BrevoSender{
			apiKey:    cfg.GetBrevoAPIKey(),
			fromName:  cfg.GetEmailFromName(),
			fromEmail: cfg.GetEmailFromAddress(),
			endpoint:  brevoEndpoint,
			client:    &http.Client{Timeout: 10 * time.Second},
		}, nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.GetEmailProvider())
	}
}

// Available reports whether sender actually delivers mail.
func Available(sender Sender) bool {
	_, noop := sender.(NoopSender)
	return sender != nil && !noop
}

// renderer turns a DemoRequest into subject and body for each message kind.
// Both transports share it.
type renderer struct{}

func (renderer) confirmation(req DemoRequest) (string, string, error) {
	content, err := renderEmailTemplate("demo_confirmation.html", demoConfirmationEmailData{
		baseEmailData: baseEmailData{
			Title:      subjectDemoConfirmation,
			Heading:    "Thank you for your interest in Framtt!",
			Subheading: "Our team will contact you within 24 hours.",
		},
		Greeting:    greeting(req.Name),
		RequestID:   req.RequestID,
		RequestType: formatRequestType(req.Type),
		ModuleName:  formatModuleName(req.ModuleID),
		SubmittedAt: formatSubmitted(req.SubmittedAt),
	})
	return subjectDemoConfirmation, content, err
}

func (renderer) salesAlert(req DemoRequest) (string, string, error) {
	subject := fmt.Sprintf(subjectSalesAlertFmt, formatRequestType(req.Type), req.RequestID)
	content, err := renderEmailTemplate("sales_alert.html", salesAlertEmailData{
		baseEmailData: baseEmailData{
			Title:    "New Demo Request",
			Heading:  "New Demo Request",
			CTALabel: ctaLabel(req.DashboardURL),
			CTAURL:   req.DashboardURL,
		},
		RequestID:         req.RequestID,
		RequestType:       formatRequestType(req.Type),
		ModuleName:        formatModuleName(req.ModuleID),
		Name:              req.Name,
		Email:             orNA(req.Email),
		Company:           orNA(req.Company),
		Phone:             orNA(req.Phone),
		VehicleCount:      formatVehicleCount(req.VehicleCount),
		Timeline:          orNA(formatTimeline(req.Timeline)),
		PreferredContact:  req.PreferredContact,
		BestTime:          req.BestTime,
		CurrentChallenges: req.CurrentChallenges,
		Message:           req.Message,
		SubmittedAt:       formatSubmitted(req.SubmittedAt),
	})
	return subject, content, err
}

func ctaLabel(url string) string {
	if url == "" {
		return ""
	}
	return "Open in dashboard"
}
