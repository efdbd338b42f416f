package ses

import (
	"context"
	"errors"
	"testing"

	"contact-mailer/internal/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

var testMessage = mail.Message{
	From:     "noreply@example.com",
	To:       "owner@example.com",
	ReplyTo:  "ana@test.com",
	Subject:  "New Contact Form: Ana - Edites Solutions",
	TextBody: "plain",
	HTMLBody: "<p>html</p>",
}

func TestSendBuildsInput(t *testing.T) {
	api := &fakeSES{}
	s := &Sender{api: api, configurationSet: "contact-form"}

	require.NoError(t, s.Send(context.Background(), testMessage))

	in := api.input
	require.NotNil(t, in)
	assert.Equal(t, "noreply@example.com", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"owner@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"ana@test.com"}, in.ReplyToAddresses)
	assert.Equal(t, "contact-form", aws.ToString(in.ConfigurationSetName))

	simple := in.Content.Simple
	assert.Equal(t, testMessage.Subject, aws.ToString(simple.Subject.Data))
	assert.Equal(t, "UTF-8", aws.ToString(simple.Subject.Charset))
	assert.Equal(t, "plain", aws.ToString(simple.Body.Text.Data))
	assert.Equal(t, "UTF-8", aws.ToString(simple.Body.Text.Charset))
	assert.Equal(t, "<p>html</p>", aws.ToString(simple.Body.Html.Data))
	assert.Equal(t, "UTF-8", aws.ToString(simple.Body.Html.Charset))
}

func TestSendWithoutConfigurationSet(t *testing.T) {
	api := &fakeSES{}
	s := &Sender{api: api}

	require.NoError(t, s.Send(context.Background(), testMessage))
	assert.Nil(t, api.input.ConfigurationSetName)
}

func TestSendWrapsProviderError(t *testing.T) {
	cause := errors.New("MessageRejected: Email address is not verified")
	s := &Sender{api: &fakeSES{err: cause}}

	err := s.Send(context.Background(), testMessage)

	var dispatchErr *mail.DispatchError
	require.True(t, errors.As(err, &dispatchErr))
	assert.Equal(t, "ses", dispatchErr.Provider)
	assert.ErrorIs(t, err, cause)
}
