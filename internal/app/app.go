package app

import (
	"context"
	"fmt"

	"contact-mailer/internal/config"
	"contact-mailer/internal/contact"
	"contact-mailer/internal/graph"
	"contact-mailer/internal/logging"
	"contact-mailer/internal/mail"
	"contact-mailer/internal/mail/ses"
	natsclient "contact-mailer/internal/nats"
	"contact-mailer/internal/relay"
)

// NewLogger builds the process logger from cfg.
func NewLogger(cfg *config.Config) (*logging.Logger, error) {
	return logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile})
}

// NewSender builds the mail sender selected by MAIL_TRANSPORT. The returned
// close function releases connections held by the sender.
func NewSender(ctx context.Context, cfg *config.Config, logger *logging.Logger) (mail.Sender, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	switch cfg.MailTransport {
	case config.TransportSES:
		sender, err := ses.New(ctx, ses.Config{
			Region:           cfg.AWSRegion,
			Endpoint:         cfg.SESEndpoint,
			ConfigurationSet: cfg.SESConfigurationSet,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using SES mail transport in region %s", cfg.AWSRegion)
		return sender, func() {}, nil

	case config.TransportGraph:
		logger.Info("Using Microsoft Graph mail transport for tenant %s", cfg.TenantID)
		return graph.NewClient(graph.Config{
			TenantID:     cfg.TenantID,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
		}, logger), func() {}, nil

	case config.TransportRelay:
		nc, err := natsclient.Connect(cfg.NatsURL, cfg.DDService)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using NATS relay transport at %s", cfg.NatsURL)
		return relay.NewSender(nc, cfg.RelayTimeout), nc.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown MAIL_TRANSPORT %q", cfg.MailTransport)
}

// NewContactHandler wires the submission handler with the configured addresses.
func NewContactHandler(cfg *config.Config, sender mail.Sender, logger *logging.Logger) *contact.Handler {
	return contact.NewHandler(sender, contact.Options{
		FromEmail:     cfg.FromEmail,
		ToEmail:       cfg.NotificationEmail,
		AllowedOrigin: cfg.CORSOrigin,
		BrandName:     cfg.BrandName,
	}, logger)
}
