package main

import (
	"context"
	"log"

	"contact-mailer/internal/api"
	"contact-mailer/internal/app"
	"contact-mailer/internal/config"

	"github.com/aws/aws-lambda-go/lambda"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tracer.Start(
		tracer.WithService(cfg.DDService),
		tracer.WithEnv(cfg.DDEnv),
	)
	defer tracer.Stop()

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Built once per container and reused across invocations.
	sender, closeSender, err := app.NewSender(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create mail sender: %v", err)
	}
	defer closeSender()

	lambda.Start(api.NewLambdaHandler(app.NewContactHandler(cfg, sender, logger)))
}
