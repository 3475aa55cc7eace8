package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"membership-api/internal/config"
	"membership-api/pkg/logging"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoService sends transactional email through the Brevo API.
type BrevoService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// NewBrevoService creates a new Brevo service instance
func NewBrevoService() *BrevoService {
	return &BrevoService{
		apiKey:    config.AppConfig.BrevoAPIKey,
		fromEmail: config.AppConfig.BrevoFromEmail,
		fromName:  config.AppConfig.BrevoFromName,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// EmailRequest represents Brevo email request structure
type EmailRequest struct {
	Sender      EmailSender `json:"sender"`
	To          []EmailTo   `json:"to"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
	TextContent string      `json:"textContent"`
}

type EmailSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type EmailTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SendWelcomeEmail sends the post-password-creation welcome email. Best
// effort: a missing API key or a send failure only logs.
func (s *BrevoService) SendWelcomeEmail(to, name string) {
	if s.apiKey == "" || s.fromEmail == "" {
		logging.Warnf("Brevo not configured, skipping welcome email for %s", to)
		return
	}

	service := config.AppConfig.ServiceName
	subject := fmt.Sprintf("Bem-vindo! Sua conta %s está pronta", service)
	textContent := fmt.Sprintf(
		"Olá %s,\n\nSua senha foi criada com sucesso e sua área de membros já está liberada.\n\nBons estudos!\n%s",
		name, service)
	htmlContent := fmt.Sprintf(
		`<html><body style="font-family: Arial, sans-serif;"><h2>Bem-vindo, %s!</h2><p>Sua senha foi criada com sucesso e sua área de membros já está liberada.</p><p>Bons estudos!<br>%s</p></body></html>`,
		name, service)

	req := EmailRequest{
		Sender:      EmailSender{Name: s.fromName, Email: s.fromEmail},
		To:          []EmailTo{{Email: to, Name: name}},
		Subject:     subject,
		HTMLContent: htmlContent,
		TextContent: textContent,
	}

	if err := s.sendEmail(req); err != nil {
		logging.Errorf("failed to send welcome email to %s: %v", to, err)
	}
}

// sendEmail sends email via Brevo API
func (s *BrevoService) sendEmail(req EmailRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, brevoEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("brevo API error: status %d", resp.StatusCode)
	}

	return nil
}
