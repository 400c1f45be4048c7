package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type demoConfirmationEmailData struct {
	baseEmailData
	Greeting    string
	RequestID   string
	RequestType string
	ModuleName  string
	SubmittedAt string
}

type salesAlertEmailData struct {
	baseEmailData
	RequestID         string
	RequestType       string
	ModuleName        string
	Name              string
	Email             string
	Company           string
	Phone             string
	VehicleCount      string
	Timeline          string
	PreferredContact  string
	BestTime          string
	CurrentChallenges string
	Message           string
	SubmittedAt       string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
