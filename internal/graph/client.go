package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contact-mailer/internal/logging"
	"contact-mailer/internal/mail"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

const (
	providerName        = "graph"
	defaultLoginBaseURL = "https://login.microsoftonline.com"
	defaultGraphBaseURL = "https://graph.microsoft.com"
)

// Config enthält die App-Registrierung für den Client-Credentials-Flow.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

type Client struct {
	cfg          Config
	client       *http.Client
	logger       *logging.Logger
	loginBaseURL string
	graphBaseURL string
}

// oAuthTokenResponse wird verwendet, um die Antwort des Token-Endpunkts zu parsen.
type oAuthTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// emailMessage ist die Hauptstruktur für die an die Graph-API gesendete JSON-Payload.
type emailMessage struct {
	Message         message `json:"message"`
	SaveToSentItems bool    `json:"saveToSentItems"`
}

type message struct {
	Subject      string      `json:"subject"`
	Body         body        `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
	ReplyTo      []recipient `json:"replyTo,omitempty"`
}

type body struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

// NewClient erstellt eine neue Instanz des Graph-API-Clients.
func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Debug("Graph client initialised with TenantID: %s, ClientID: %s", cfg.TenantID, cfg.ClientID)
	return &Client{
		cfg:          cfg,
		client:       &http.Client{Timeout: 20 * time.Second},
		logger:       logger,
		loginBaseURL: defaultLoginBaseURL,
		graphBaseURL: defaultGraphBaseURL,
	}
}

// Send verschickt die Nachricht über das Postfach des Absenders (msg.From).
// Graph kennt nur einen Body-Typ, daher wird der HTML-Body gesendet und der
// Text-Body nur verwendet, wenn kein HTML vorhanden ist.
func (c *Client) Send(ctx context.Context, msg mail.Message) (err error) {
	span, ctx := tracer.StartSpanFromContext(ctx, "graph.send_mail")
	defer func() { span.Finish(tracer.WithError(err)) }()

	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return mail.Dispatch(providerName, fmt.Errorf("authentication failed: %w", err))
	}

	graphAPIURL := fmt.Sprintf("%s/v1.0/users/%s/sendMail", c.graphBaseURL, url.PathEscape(msg.From))
	c.logger.Debug("Sending email via Graph API endpoint: %s", graphAPIURL)

	payload := emailMessage{
		Message: message{
			Subject:      msg.Subject,
			Body:         messageBody(msg),
			ToRecipients: []recipient{{EmailAddress: emailAddress{Address: msg.To}}},
		},
		SaveToSentItems: true,
	}
	if msg.ReplyTo != "" {
		payload.Message.ReplyTo = []recipient{{EmailAddress: emailAddress{Address: msg.ReplyTo}}}
	}

	emailBytes, err := json.Marshal(payload)
	if err != nil {
		return mail.Dispatch(providerName, fmt.Errorf("failed to marshal email message: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphAPIURL, bytes.NewReader(emailBytes))
	if err != nil {
		return mail.Dispatch(providerName, fmt.Errorf("failed to create email request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return mail.Dispatch(providerName, fmt.Errorf("failed to send email request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return mail.Dispatch(providerName, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes)))
	}
	return nil
}

func messageBody(msg mail.Message) body {
	if msg.HTMLBody != "" {
		return body{ContentType: "HTML", Content: msg.HTMLBody}
	}
	return body{ContentType: "Text", Content: msg.TextBody}
}

// getAccessToken ruft ein OAuth2-Zugriffstoken von Microsoft Identity Platform ab.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.loginBaseURL, url.PathEscape(c.cfg.TenantID))
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"scope":         {"https://graph.microsoft.com/.default"},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("failed to get token, status: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var tokenResponse oAuthTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResponse.AccessToken == "" {
		return "", fmt.Errorf("token response without access_token")
	}

	return tokenResponse.AccessToken, nil
}
