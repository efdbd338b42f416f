package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contact-mailer/internal/api"
	"contact-mailer/internal/app"
	"contact-mailer/internal/config"

	httptrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/net/http"
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
	defer logger.Close()

	sender, closeSender, err := app.NewSender(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to create mail sender: %v", err)
		os.Exit(1)
	}
	defer closeSender()

	contactHandler := api.NewHTTPHandler(app.NewContactHandler(cfg, sender, logger))

	mux := httptrace.NewServeMux(httptrace.WithServiceName(cfg.DDService))
	mux.Handle("/contact", contactHandler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		logger.Info("API service starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}
	logger.Info("Server stopped")
}
