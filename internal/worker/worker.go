package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"contact-mailer/internal/logging"
	"contact-mailer/internal/mail"
	"contact-mailer/internal/models"
	natsclient "contact-mailer/internal/nats"

	"github.com/nats-io/nats.go"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const (
	summaryInterval = 30 * time.Second
	// Zeit, die für die Antwort an den wartenden Absender reserviert bleibt.
	replyMargin = 500 * time.Millisecond
)

// Worker beantwortet Relay-Requests, indem er jede Nachricht genau einmal
// über den konfigurierten Mail-Provider verschickt.
type Worker struct {
	nc             *nats.Conn
	sender         mail.Sender
	logger         *logging.Logger
	sendTimeout    time.Duration
	now            func() time.Time
	processedCount atomic.Uint64
	failedCount    atomic.Uint64
}

func New(nc *nats.Conn, sender mail.Sender, logger *logging.Logger) *Worker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Worker{
		nc:          nc,
		sender:      sender,
		logger:      logger,
		sendTimeout: 30 * time.Second,
		now:         time.Now,
	}
}

// Run blockiert, bis ctx beendet wird, und leert danach die Subscription.
func (w *Worker) Run(ctx context.Context) error {
	sub, err := w.nc.QueueSubscribe(natsclient.ContactSend, natsclient.WorkerQueue, w.processMessage)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", natsclient.ContactSend, err)
	}
	w.logger.Info("Worker started. Waiting for contact notifications on %s...", natsclient.ContactSend)

	go w.logSummary(ctx)

	<-ctx.Done()
	w.logger.Info("Worker stopping, draining subscription")
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("failed to drain subscription: %w", err)
	}
	return nil
}

func (w *Worker) logSummary(ctx context.Context) {
	ticker := time.NewTicker(summaryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.logger.Info("WORKER SUMMARY -> Processed: %d, Failed: %d", w.processedCount.Load(), w.failedCount.Load())
		}
	}
}

func (w *Worker) processMessage(msg *nats.Msg) {
	ack := w.handle(context.Background(), msg.Data)

	reply, err := json.Marshal(ack)
	if err != nil {
		w.logger.Error("Could not marshal ack: %v", err)
		return
	}
	if err := msg.Respond(reply); err != nil {
		w.logger.Error("Could not respond to %s: %v", msg.Subject, err)
	}
}

// handle verarbeitet einen Job ohne Wiederholungsversuche.
func (w *Worker) handle(ctx context.Context, data []byte) models.EmailAck {
	var job models.EmailJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.failedCount.Add(1)
		w.logger.Error("Could not unmarshal message, discarding: %v", err)
		return models.EmailAck{Error: "invalid job payload"}
	}
	if job.From == "" || job.To == "" || job.Subject == "" {
		w.failedCount.Add(1)
		w.logger.Error("Discarding job without from/to/subject")
		return models.EmailAck{Error: "job is missing from, to or subject"}
	}

	// Ein Job, auf den niemand mehr wartet, wird nicht mehr verschickt: der
	// Absender hat bereits einen Fehler gemeldet.
	if job.Expired(w.now().Add(replyMargin)) {
		w.failedCount.Add(1)
		w.logger.Warn("Discarding expired job for %s (deadline %s)", job.To, job.Deadline.UTC().Format(time.RFC3339Nano))
		return models.EmailAck{Error: "job expired before it was sent"}
	}

	opts := []tracer.StartSpanOption{tracer.ResourceName(natsclient.ContactSend)}
	if len(job.TraceContext) > 0 {
		if sctx, err := tracer.Extract(tracer.TextMapCarrier(job.TraceContext)); err == nil {
			opts = append(opts, tracer.ChildOf(sctx))
		}
	}
	span, ctx := tracer.StartSpanFromContext(ctx, "worker.process", opts...)

	sendDeadline := w.now().Add(w.sendTimeout)
	if !job.Deadline.IsZero() {
		if d := job.Deadline.Add(-replyMargin); d.Before(sendDeadline) {
			sendDeadline = d
		}
	}
	ctx, cancel := context.WithDeadline(ctx, sendDeadline)
	defer cancel()

	err := w.sender.Send(ctx, job.Message())
	span.Finish(tracer.WithError(err))
	if err != nil {
		w.failedCount.Add(1)
		w.logger.Error("Sending contact notification to %s failed: %v", job.To, err)
		return models.EmailAck{Error: err.Error()}
	}

	w.processedCount.Add(1)
	w.logger.Info("Successfully sent contact notification to %s (reply-to %s)", job.To, job.ReplyTo)
	return models.EmailAck{OK: true}
}
