package ses

import (
	"context"
	"fmt"

	"contact-mailer/internal/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const (
	providerName = "ses"
	charset      = "UTF-8"
)

// Config selects the SES region and optional endpoint and configuration set.
type Config struct {
	Region           string
	Endpoint         string
	ConfigurationSet string
}

type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Sender delivers messages with the SES v2 SendEmail API.
type Sender struct {
	api              sendEmailAPI
	configurationSet string
}

// New builds the SES client once from the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Sender{api: client, configurationSet: cfg.ConfigurationSet}, nil
}

func (s *Sender) Send(ctx context.Context, msg mail.Message) (err error) {
	span, ctx := tracer.StartSpanFromContext(ctx, "ses.send_email")
	defer func() { span.Finish(tracer.WithError(err)) }()

	out, err := s.api.SendEmail(ctx, buildInput(msg, s.configurationSet))
	if err != nil {
		return mail.Dispatch(providerName, err)
	}
	if out != nil && out.MessageId != nil {
		span.SetTag("ses.message_id", *out.MessageId)
	}
	return nil
}

func buildInput(msg mail.Message, configurationSet string) *sesv2.SendEmailInput {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: content(msg.Subject),
				Body: &types.Body{
					Text: content(msg.TextBody),
					Html: content(msg.HTMLBody),
				},
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	if configurationSet != "" {
		input.ConfigurationSetName = aws.String(configurationSet)
	}
	return input
}

func content(data string) *types.Content {
	return &types.Content{Data: aws.String(data), Charset: aws.String(charset)}
}
