package contact

import (
	"encoding/json"
	"net/http"
)

// Language selects the localized reply text.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// ParseLanguage maps a caller-supplied code onto a supported language.
// Anything other than "es" is English.
func ParseLanguage(code string) Language {
	if code == string(Spanish) {
		return Spanish
	}
	return English
}

// Submission holds the raw form fields of one request.
type Submission struct {
	Name     string
	Email    string
	Message  string
	Language Language
}

// Sanitized is a Submission after line and length sanitization.
type Sanitized struct {
	Name    string
	Email   string
	Message string
}

// Notification is the email rendered from a sanitized submission.
type Notification struct {
	Subject  string
	TextBody string
	HTMLBody string
	ReplyTo  string
}

// Request is a transport-neutral view of an inbound HTTP request.
type Request struct {
	Method          string
	Headers         http.Header
	Body            string
	IsBase64Encoded bool
}

// Reply is the JSON body returned to the caller.
type Reply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Response is the handler outcome. A nil Reply means an empty body.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Reply      *Reply
}

// Body renders the reply as JSON, or "" when there is none.
func (r Response) Body() string {
	if r.Reply == nil {
		return ""
	}
	b, err := json.Marshal(r.Reply)
	if err != nil {
		return ""
	}
	return string(b)
}
