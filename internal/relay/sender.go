package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"contact-mailer/internal/mail"
	"contact-mailer/internal/models"
	natsclient "contact-mailer/internal/nats"

	"github.com/nats-io/nats.go"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const providerName = "relay"

type requester interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

// Sender hands a message to a mail worker over NATS request/reply and waits
// for the worker to report the outcome of its single send attempt.
type Sender struct {
	conn    requester
	subject string
	timeout time.Duration
}

func NewSender(conn *nats.Conn, timeout time.Duration) *Sender {
	return &Sender{conn: conn, subject: natsclient.ContactSend, timeout: timeout}
}

func (s *Sender) Send(ctx context.Context, msg mail.Message) (err error) {
	span, ctx := tracer.StartSpanFromContext(ctx, "relay.request", tracer.ResourceName(s.subject))
	defer func() { span.Finish(tracer.WithError(err)) }()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	job := models.NewEmailJob(msg)
	// the worker drops jobs it could not finish before we stop waiting
	job.Deadline, _ = ctx.Deadline()
	carrier := tracer.TextMapCarrier{}
	if err := tracer.Inject(span.Context(), carrier); err == nil && len(carrier) > 0 {
		job.TraceContext = carrier
	}

	data, err := json.Marshal(job)
	if err != nil {
		return mail.Dispatch(providerName, fmt.Errorf("failed to marshal job: %w", err))
	}

	reply, err := s.conn.RequestWithContext(ctx, s.subject, data)
	if err != nil {
		if errors.Is(err, nats.ErrNoResponders) {
			return mail.Dispatch(providerName, fmt.Errorf("no mail worker listening on %s", s.subject))
		}
		return mail.Dispatch(providerName, fmt.Errorf("request on %s: %w", s.subject, err))
	}

	var ack models.EmailAck
	if err := json.Unmarshal(reply.Data, &ack); err != nil {
		return mail.Dispatch(providerName, fmt.Errorf("failed to decode worker reply: %w", err))
	}
	if !ack.OK {
		return mail.Dispatch(providerName, fmt.Errorf("worker rejected job: %s", ack.Error))
	}
	return nil
}
