package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"contact-mailer/internal/app"
	"contact-mailer/internal/config"
	natsclient "contact-mailer/internal/nats"
	"contact-mailer/internal/worker"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Der Worker selbst spricht den Provider direkt an.
	if cfg.MailTransport == config.TransportRelay {
		log.Fatalf("MAIL_TRANSPORT=relay is not valid for the worker, use ses or graph")
	}

	tracer.Start(
		tracer.WithService(cfg.DDService+"-worker"),
		tracer.WithEnv(cfg.DDEnv),
	)
	defer tracer.Stop()

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender, closeSender, err := app.NewSender(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to create mail sender: %v", err)
		os.Exit(1)
	}
	defer closeSender()

	nc, err := natsclient.Connect(cfg.NatsURL, cfg.DDService+"-worker")
	if err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
	defer nc.Close()

	if err := worker.New(nc, sender, logger).Run(ctx); err != nil {
		logger.Error("Worker stopped with error: %v", err)
		os.Exit(1)
	}
}
