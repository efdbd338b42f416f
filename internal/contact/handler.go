package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"contact-mailer/internal/logging"
	"contact-mailer/internal/mail"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// ValidationReason names why a submission was rejected.
type ValidationReason int

const (
	ReasonMissingFields ValidationReason = iota
	ReasonInvalidEmail
)

// ValidationError is a caller-caused rejection, reported as 400.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonInvalidEmail:
		return "invalid email address"
	default:
		return "missing required fields"
	}
}

// Validate checks the required fields and the email shape of sub.
func Validate(sub Submission) error {
	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		return &ValidationError{Reason: ReasonMissingFields}
	}
	if !ValidEmail(sub.Email) {
		return &ValidationError{Reason: ReasonInvalidEmail}
	}
	return nil
}

// Options holds the fixed addressing and CORS settings of a Handler.
type Options struct {
	FromEmail     string
	ToEmail       string
	AllowedOrigin string
	BrandName     string
}

// Handler turns one contact-form request into at most one email and exactly
// one response. It holds no per-request state.
type Handler struct {
	sender  mail.Sender
	opts    Options
	headers map[string]string
	logger  *logging.Logger
	now     func() time.Time
}

func NewHandler(sender mail.Sender, opts Options, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{
		sender: sender,
		opts:   opts,
		headers: map[string]string{
			"Content-Type":                 "application/json; charset=utf-8",
			"Access-Control-Allow-Origin":  opts.AllowedOrigin,
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Allow-Methods": "POST, OPTIONS",
		},
		logger: logger,
		now:    time.Now,
	}
}

// Handle processes req. It never returns an error: every failure is a Response.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	switch req.Method {
	case http.MethodOptions:
		return h.respond(http.StatusOK, nil)
	case http.MethodPost:
	default:
		return h.reply(http.StatusMethodNotAllowed, false, localize(msgMethodNotAllowed, English))
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Error processing contact form: %v", r)
			resp = h.internalError()
		}
	}()

	sub := ParseBody(req)
	if err := Validate(sub); err != nil {
		return h.rejected(err, sub.Language)
	}

	clean := Sanitize(sub)
	submittedAt := h.now()
	note := BuildNotification(clean, h.opts.BrandName, submittedAt)

	if err := h.dispatch(ctx, note); err != nil {
		h.logger.Error("Error processing contact form: %v", err)
		return h.internalError()
	}

	h.logger.Info("Contact form submitted by %s at %s", clean.Email, submittedAt.UTC().Format(TimestampLayout))
	return h.reply(http.StatusOK, true, localize(msgSent, sub.Language))
}

func (h *Handler) dispatch(ctx context.Context, note Notification) (err error) {
	span, ctx := tracer.StartSpanFromContext(ctx, "contact.dispatch", tracer.ResourceName("send_notification"))
	defer func() { span.Finish(tracer.WithError(err)) }()

	err = h.sender.Send(ctx, mail.Message{
		From:     h.opts.FromEmail,
		To:       h.opts.ToEmail,
		ReplyTo:  note.ReplyTo,
		Subject:  note.Subject,
		TextBody: note.TextBody,
		HTMLBody: note.HTMLBody,
	})
	if err != nil {
		var dispatchErr *mail.DispatchError
		if !errors.As(err, &dispatchErr) {
			err = mail.Dispatch("mail", err)
		}
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func (h *Handler) rejected(err error, lang Language) Response {
	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Reason == ReasonInvalidEmail {
		return h.reply(http.StatusBadRequest, false, localize(msgInvalidEmail, lang))
	}
	return h.reply(http.StatusBadRequest, false, localize(msgAllFieldsRequired, lang))
}

func (h *Handler) internalError() Response {
	return h.reply(http.StatusInternalServerError, false, localize(msgInternalError, English))
}

func (h *Handler) reply(status int, success bool, message string) Response {
	return h.respond(status, &Reply{Success: success, Message: message})
}

func (h *Handler) respond(status int, reply *Reply) Response {
	headers := make(map[string]string, len(h.headers))
	for k, v := range h.headers {
		headers[k] = v
	}
	return Response{StatusCode: status, Headers: headers, Reply: reply}
}
