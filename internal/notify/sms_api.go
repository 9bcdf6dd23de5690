package notify

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APISMS delivers SMS through a provider's REST endpoint (form-encoded, Twilio
// style).
type APISMS struct {
	apiKey     string
	endpoint   string
	fromNumber string
	httpClient *http.Client
}

func NewAPISMS(apiKey, endpoint, fromNumber string) *APISMS {
	return &APISMS{
		apiKey:     apiKey,
		endpoint:   endpoint,
		fromNumber: fromNumber,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

func (s *APISMS) SendSMS(ctx context.Context, to, message string) bool {
	if strings.TrimSpace(to) == "" {
		return false
	}

	form := url.Values{}
	form.Set("From", s.fromNumber)
	form.Set("To", to)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		log.Printf("notify: sms request build failed: %v", err)
		return false
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	req.Header.Set("authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("notify: sms send failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("notify: sms provider rejected: status=%d", resp.StatusCode)
		return false
	}
	return true
}
