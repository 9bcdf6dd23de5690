package notify

import (
	"context"
	"log"
	"strings"
)

// Console backends log instead of sending. Default in dev and tests.

type ConsoleMailer struct{}

func NewConsoleMailer() *ConsoleMailer { return &ConsoleMailer{} }

func (m *ConsoleMailer) SendEmail(_ context.Context, to []string, subject, template string, data map[string]string) bool {
	log.Printf("[EMAIL] to=%s subject=%q template=%s data=%v", strings.Join(to, ","), subject, template, data)
	return true
}

type ConsoleSMS struct{}

func NewConsoleSMS() *ConsoleSMS { return &ConsoleSMS{} }

func (s *ConsoleSMS) SendSMS(_ context.Context, to, message string) bool {
	log.Printf("[SMS] to=%s message=%q", to, message)
	return true
}
