package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"strings"

	"google.golang.org/api/gmail/v1"
)

const confirmationSubject = "Confirm your Jobs Tracker account"

// MailService sends account mail through the Gmail API. With no client it
// only logs the link, which is how local development runs.
type MailService struct {
	GmailClient *gmail.Service
	From        string
}

func NewMailService(client *gmail.Service, from string) *MailService {
	return &MailService{GmailClient: client, From: from}
}

func (s *MailService) SendConfirmation(ctx context.Context, to, confirmURL string) error {
	if s.GmailClient == nil {
		log.Printf("⚠️ Gmail disabled (no client). Confirmation link for %s: %s", to, confirmURL)
		return nil
	}

	body := fmt.Sprintf("Welcome to Jobs Tracker!\r\n\r\nConfirm your email address by opening this link:\r\n%s\r\n\r\nIf you did not sign up, ignore this message.\r\n", confirmURL)
	msg := &gmail.Message{Raw: encodeMessage(s.From, to, confirmationSubject, body)}

	sent, err := s.GmailClient.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send to %s failed: %w", to, err)
	}
	log.Printf("📧 Confirmation email sent to %s (message %s)", to, sent.Id)
	return nil
}

// encodeMessage builds an RFC 2822 message in the base64url form Gmail expects.
func encodeMessage(from, to, subject, body string) string {
	var b strings.Builder
	if from != "" {
		b.WriteString("From: " + from + "\r\n")
	}
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
