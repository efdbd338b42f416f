package models

import (
	"time"

	"contact-mailer/internal/mail"
)

// EmailJob ist eine Kontaktformular-Benachrichtigung, die über NATS an den
// Mail-Worker weitergereicht wird.
type EmailJob struct {
	From     string `json:"from"`
	To       string `json:"to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	Subject  string `json:"subject"`
	TextBody string `json:"text_body"`
	HTMLBody string `json:"html_body,omitempty"`

	// Zeitpunkt, nach dem der Absender nicht mehr auf die Antwort wartet.
	// Nullwert bedeutet: keine Frist.
	Deadline time.Time `json:"deadline"`

	// Trace-Kontext von Datadog, damit der Worker den Span fortsetzen kann.
	TraceContext map[string]string `json:"trace_context,omitempty"`
}

// EmailAck ist die Antwort des Workers auf genau einen EmailJob.
type EmailAck struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewEmailJob kopiert msg in einen Job.
func NewEmailJob(msg mail.Message) EmailJob {
	return EmailJob{
		From:     msg.From,
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
	}
}

// Message wandelt den Job zurück in eine Mail-Nachricht.
func (j EmailJob) Message() mail.Message {
	return mail.Message{
		From:     j.From,
		To:       j.To,
		ReplyTo:  j.ReplyTo,
		Subject:  j.Subject,
		TextBody: j.TextBody,
		HTMLBody: j.HTMLBody,
	}
}

// Expired meldet, ob der Absender zum Zeitpunkt now nicht mehr auf eine
// Antwort wartet.
func (j EmailJob) Expired(now time.Time) bool {
	return !j.Deadline.IsZero() && !now.Before(j.Deadline)
}
