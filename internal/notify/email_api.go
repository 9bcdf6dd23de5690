package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// APIMailer delivers email through a transactional-email HTTP API. Requests
// are time-bounded so a slow provider cannot stall the caller.
type APIMailer struct {
	apiKey     string
	endpoint   string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

func NewAPIMailer(apiKey, endpoint, fromEmail, fromName string) *APIMailer {
	if fromName == "" {
		fromName = fromEmail
	}
	return &APIMailer{
		apiKey:     apiKey,
		endpoint:   endpoint,
		fromEmail:  fromEmail,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

type emailSendRequest struct {
	Sender   emailParty        `json:"sender"`
	To       []emailParty      `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params,omitempty"`
}

type emailParty struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (m *APIMailer) SendEmail(ctx context.Context, to []string, subject, template string, data map[string]string) bool {
	recipients := make([]emailParty, 0, len(to))
	for _, addr := range to {
		if strings.TrimSpace(addr) == "" {
			continue
		}
		recipients = append(recipients, emailParty{Email: addr})
	}
	if len(recipients) == 0 {
		return false
	}

	payload := emailSendRequest{
		Sender:   emailParty{Email: m.fromEmail, Name: m.fromName},
		To:       recipients,
		Subject:  subject,
		Template: template,
		Params:   data,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: email marshal failed: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(raw))
	if err != nil {
		log.Printf("notify: email request build failed: %v", err)
		return false
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: email send failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("notify: email provider rejected: %s", fmt.Sprintf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body))))
		return false
	}
	return true
}
