package contact

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 form used in notification bodies.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type messageKey int

const (
	msgAllFieldsRequired messageKey = iota
	msgInvalidEmail
	msgSent
	msgInternalError
	msgMethodNotAllowed
)

var messages = map[messageKey]map[Language]string{
	msgAllFieldsRequired: {
		English: "All fields are required.",
		Spanish: "Todos los campos son obligatorios.",
	},
	msgInvalidEmail: {
		English: "Please enter a valid email address.",
		Spanish: "Por favor ingrese un email válido.",
	},
	msgSent: {
		English: "Message sent successfully. We will get back to you soon.",
		Spanish: "Mensaje enviado exitosamente. Nos pondremos en contacto pronto.",
	},
	msgInternalError: {
		English: "Internal server error. Please try again later.",
		Spanish: "Error interno. Por favor, inténtalo más tarde.",
	},
	msgMethodNotAllowed: {
		English: "Method Not Allowed",
	},
}

func localize(key messageKey, lang Language) string {
	table := messages[key]
	if s, ok := table[lang]; ok {
		return s
	}
	return table[English]
}

// BuildNotification renders the subject and both bodies for s.
func BuildNotification(s Sanitized, brand string, submittedAt time.Time) Notification {
	stamp := submittedAt.UTC().Format(TimestampLayout)

	text := fmt.Sprintf(`New Contact Form Submission - %s

Name: %s
Email: %s
Message:
%s

Submitted on: %s`, brand, s.Name, s.Email, s.Message, stamp)

	html := fmt.Sprintf(`<h2>New Contact Form Submission - %s</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
<hr>
<p><small>Submitted on: %s</small></p>`,
		template.HTMLEscapeString(brand),
		template.HTMLEscapeString(s.Name),
		template.HTMLEscapeString(s.Email),
		strings.ReplaceAll(template.HTMLEscapeString(s.Message), "\n", "<br>"),
		stamp)

	return Notification{
		Subject:  SafeSubject(fmt.Sprintf("New Contact Form: %s - %s", s.Name, brand)),
		TextBody: strings.TrimSpace(text),
		HTMLBody: html,
		ReplyTo:  s.Email,
	}
}
